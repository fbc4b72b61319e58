package ustar

import (
	"fmt"
	"time"

	"github.com/meigma/ustar/internal/ustarfmt"
)

// BlockSize is the unit of both header records and content storage.
const BlockSize = ustarfmt.BlockSize

// Header is the decoded form of one 512-byte USTAR header record.
//
// Checksum holds the stored checksum after decoding, or the computed
// checksum after [Header.WithChecksum]. The magic and version literals
// are not represented; Encode always writes them and decoding rejects
// blocks that do not carry them.
type Header struct {
	Name       string
	Mode       int64
	UID        int
	GID        int
	Size       int64
	ModTime    time.Time
	Checksum   int64
	Type       TypeFlag
	LinkTarget string
	OwnerName  string
	GroupName  string
	DevMajor   int64
	DevMinor   int64
}

// Encode serializes the header into its canonical 512-byte record.
// Numeric fields are written as zero-padded octal text, text fields are
// NUL-padded, and the checksum field is computed over the encoding with
// itself blanked to spaces. Device numbers are written only for block
// and character entries. The receiver is not modified.
func (h *Header) Encode() ([]byte, error) {
	b, err := h.encode()
	if err != nil {
		return nil, err
	}
	return b[:], nil
}

func (h *Header) encode() (ustarfmt.Block, error) {
	var b ustarfmt.Block

	ustarfmt.PutString(b[ustarfmt.OffName:ustarfmt.OffName+ustarfmt.LenName], h.Name)
	if err := h.encodeNumeric(&b); err != nil {
		return b, err
	}
	b[ustarfmt.OffType] = byte(h.Type)
	ustarfmt.PutString(b[ustarfmt.OffLink:ustarfmt.OffLink+ustarfmt.LenLink], h.LinkTarget)
	copy(b[ustarfmt.OffMagic:], ustarfmt.Magic[:])
	copy(b[ustarfmt.OffVersion:], ustarfmt.Version[:])
	ustarfmt.PutString(b[ustarfmt.OffOwner:ustarfmt.OffOwner+ustarfmt.LenOwner], h.OwnerName)
	ustarfmt.PutString(b[ustarfmt.OffGroup:ustarfmt.OffGroup+ustarfmt.LenGroup], h.GroupName)

	ustarfmt.PutChecksum(&b)
	return b, nil
}

type octalField struct {
	name  string
	off   int
	width int
	val   int64
}

func (h *Header) encodeNumeric(b *ustarfmt.Block) error {
	fields := []octalField{
		{"mode", ustarfmt.OffMode, ustarfmt.LenMode, h.Mode},
		{"uid", ustarfmt.OffUID, ustarfmt.LenUID, int64(h.UID)},
		{"gid", ustarfmt.OffGID, ustarfmt.LenGID, int64(h.GID)},
		{"size", ustarfmt.OffSize, ustarfmt.LenSize, h.Size},
		{"mtime", ustarfmt.OffModTime, ustarfmt.LenModTime, h.unixModTime()},
	}
	if h.Type == TypeChar || h.Type == TypeBlock {
		fields = append(fields,
			octalField{"devmajor", ustarfmt.OffDevMajor, ustarfmt.LenDevMajor, h.DevMajor},
			octalField{"devminor", ustarfmt.OffDevMinor, ustarfmt.LenDevMinor, h.DevMinor},
		)
	}
	for _, f := range fields {
		if err := ustarfmt.PutOctal(b[f.off:f.off+f.width], f.val); err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
	}
	return nil
}

func (h *Header) unixModTime() int64 {
	if h.ModTime.IsZero() {
		return 0
	}
	return h.ModTime.Unix()
}

// ComputeChecksum returns the unsigned byte sum of the canonical
// encoding with the checksum field treated as eight spaces.
func (h *Header) ComputeChecksum() (int64, error) {
	b, err := h.encode()
	if err != nil {
		return 0, err
	}
	return ustarfmt.Checksum(&b), nil
}

// WithChecksum returns a copy of the header whose Checksum field holds
// the recomputed value. The receiver is not modified.
func (h Header) WithChecksum() (Header, error) {
	sum, err := h.ComputeChecksum()
	if err != nil {
		return Header{}, err
	}
	h.Checksum = sum
	return h, nil
}

// ValidChecksum reports whether the stored Checksum matches the
// recomputed value. Headers that cannot be encoded are never valid.
func (h *Header) ValidChecksum() bool {
	sum, err := h.ComputeChecksum()
	if err != nil {
		return false
	}
	return sum == h.Checksum
}

// DecodeHeader parses one 512-byte header record.
//
// It returns [ErrEndOfArchive] for the all-zero sentinel block,
// [ErrInvalidMagic] when the magic field does not match the format
// literal, and [ErrInvalidChecksum] when the stored checksum field does
// not byte-for-byte match the recomputed one. The block length must be
// exactly [BlockSize].
func DecodeHeader(block []byte) (Header, error) {
	if len(block) != ustarfmt.BlockSize {
		return Header{}, fmt.Errorf("%w: header block is %d bytes, want %d", ErrEncoding, len(block), ustarfmt.BlockSize)
	}
	var b ustarfmt.Block
	copy(b[:], block)
	return decodeHeader(&b)
}

func decodeHeader(b *ustarfmt.Block) (Header, error) {
	if ustarfmt.IsZero(b) {
		return Header{}, ErrEndOfArchive
	}
	if !ustarfmt.ValidMagic(b) {
		return Header{}, ErrInvalidMagic
	}
	if !ustarfmt.VerifyChecksum(b) {
		return Header{}, ErrInvalidChecksum
	}

	h := Header{
		Name:       ustarfmt.ParseString(b[ustarfmt.OffName : ustarfmt.OffName+ustarfmt.LenName]),
		Type:       TypeFlag(b[ustarfmt.OffType]),
		LinkTarget: ustarfmt.ParseString(b[ustarfmt.OffLink : ustarfmt.OffLink+ustarfmt.LenLink]),
		OwnerName:  ustarfmt.ParseString(b[ustarfmt.OffOwner : ustarfmt.OffOwner+ustarfmt.LenOwner]),
		GroupName:  ustarfmt.ParseString(b[ustarfmt.OffGroup : ustarfmt.OffGroup+ustarfmt.LenGroup]),
	}

	var err error
	if h.Mode, err = parseField(b, ustarfmt.OffMode, ustarfmt.LenMode, "mode"); err != nil {
		return Header{}, err
	}
	uid, err := parseField(b, ustarfmt.OffUID, ustarfmt.LenUID, "uid")
	if err != nil {
		return Header{}, err
	}
	h.UID = int(uid)
	gid, err := parseField(b, ustarfmt.OffGID, ustarfmt.LenGID, "gid")
	if err != nil {
		return Header{}, err
	}
	h.GID = int(gid)
	if h.Size, err = parseField(b, ustarfmt.OffSize, ustarfmt.LenSize, "size"); err != nil {
		return Header{}, err
	}
	mtime, err := parseField(b, ustarfmt.OffModTime, ustarfmt.LenModTime, "mtime")
	if err != nil {
		return Header{}, err
	}
	if mtime != 0 {
		h.ModTime = time.Unix(mtime, 0)
	}
	if h.Checksum, err = parseField(b, ustarfmt.OffChecksum, ustarfmt.LenChecksum, "checksum"); err != nil {
		return Header{}, err
	}
	if h.Type == TypeChar || h.Type == TypeBlock {
		if h.DevMajor, err = parseField(b, ustarfmt.OffDevMajor, ustarfmt.LenDevMajor, "devmajor"); err != nil {
			return Header{}, err
		}
		if h.DevMinor, err = parseField(b, ustarfmt.OffDevMinor, ustarfmt.LenDevMinor, "devminor"); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

func parseField(b *ustarfmt.Block, off, width int, name string) (int64, error) {
	v, err := ustarfmt.ParseOctal(b[off : off+width])
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}
