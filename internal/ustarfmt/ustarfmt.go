// Package ustarfmt implements the byte-level USTAR header layout: fixed
// field offsets, NUL-padded octal text encoding, the header checksum,
// and end-of-archive sentinel detection.
package ustarfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrEncoding is returned when a header field cannot be encoded to or
// decoded from its fixed-width octal text form.
var ErrEncoding = errors.New("ustar: invalid field encoding")

// BlockSize is the unit of both header records and content storage.
const BlockSize = 512

// TrailerBlocks is the number of zero blocks appended after the last
// entry of a non-empty archive.
const TrailerBlocks = 18

// Block is one 512-byte unit of the archive stream.
type Block [BlockSize]byte

// Field offsets and widths within the 512-byte header record.
const (
	OffName     = 0
	LenName     = 100
	OffMode     = 100
	LenMode     = 8
	OffUID      = 108
	LenUID      = 8
	OffGID      = 116
	LenGID      = 8
	OffSize     = 124
	LenSize     = 12
	OffModTime  = 136
	LenModTime  = 12
	OffChecksum = 148
	LenChecksum = 8
	OffType     = 156
	OffLink     = 157
	LenLink     = 100
	OffMagic    = 257
	LenMagic    = 6
	OffVersion  = 263
	LenVersion  = 2
	OffOwner    = 265
	LenOwner    = 32
	OffGroup    = 297
	LenGroup    = 32
	OffDevMajor = 329
	LenDevMajor = 8
	OffDevMinor = 337
	LenDevMinor = 8
	OffPrefix   = 345
	LenPrefix   = 155
)

// Magic is the format identifier stored at OffMagic.
var Magic = [LenMagic]byte{'u', 's', 't', 'a', 'r', ' '}

// Version is the format version stored at OffVersion.
var Version = [LenVersion]byte{' ', 0x00}

var zeroBlock Block

// PutString copies s into dst, truncating to len(dst). The remainder of
// dst is left untouched; callers encode into zeroed blocks.
func PutString(dst []byte, s string) {
	copy(dst, s)
}

// ParseString decodes a NUL-padded text field, stopping at the first NUL.
func ParseString(src []byte) string {
	if i := bytes.IndexByte(src, 0x00); i >= 0 {
		src = src[:i]
	}
	return string(src)
}

// PutOctal writes v as zero-padded octal text followed by a NUL byte,
// filling the full width of dst. It fails when v is negative or does not
// fit in the field.
func PutOctal(dst []byte, v int64) error {
	if v < 0 {
		return fmt.Errorf("%w: negative value %d", ErrEncoding, v)
	}
	s := strconv.FormatInt(v, 8)
	if len(s) > len(dst)-1 {
		return fmt.Errorf("%w: value %d overflows %d-byte field", ErrEncoding, v, len(dst))
	}
	pad := len(dst) - 1 - len(s)
	for i := range pad {
		dst[i] = '0'
	}
	copy(dst[pad:], s)
	dst[len(dst)-1] = 0x00
	return nil
}

// ParseOctal decodes a NUL- or space-terminated octal text field. An
// all-NUL field decodes to zero.
func ParseOctal(src []byte) (int64, error) {
	trimmed := bytes.Trim(src, " \x00")
	if len(trimmed) == 0 {
		return 0, nil
	}
	v, err := strconv.ParseInt(string(trimmed), 8, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad octal field %q", ErrEncoding, trimmed)
	}
	return v, nil
}

// Checksum sums the unsigned value of every byte in the block with the
// checksum field treated as eight spaces.
func Checksum(b *Block) int64 {
	var sum int64
	for i, c := range b {
		if i >= OffChecksum && i < OffChecksum+LenChecksum {
			c = ' '
		}
		sum += int64(c)
	}
	return sum
}

// PutChecksum computes the block checksum and stores it as six
// zero-padded octal digits, a NUL, and a trailing space.
func PutChecksum(b *Block) {
	sum := Checksum(b)
	field := formatChecksum(sum)
	copy(b[OffChecksum:OffChecksum+LenChecksum], field[:])
}

// VerifyChecksum recomputes the block checksum and compares the stored
// checksum field byte-for-byte against the canonical encoding.
func VerifyChecksum(b *Block) bool {
	field := formatChecksum(Checksum(b))
	return bytes.Equal(b[OffChecksum:OffChecksum+LenChecksum], field[:])
}

func formatChecksum(sum int64) [LenChecksum]byte {
	var field [LenChecksum]byte
	s := fmt.Sprintf("%06o", sum)
	copy(field[:], s)
	field[6] = 0x00
	field[7] = ' '
	return field
}

// ValidMagic reports whether the block carries the USTAR magic literal.
func ValidMagic(b *Block) bool {
	return bytes.Equal(b[OffMagic:OffMagic+LenMagic], Magic[:])
}

// IsZero reports whether the block is the all-zero end-of-archive
// sentinel. A valid header always has a non-zero magic field, so the
// two are never confusable.
func IsZero(b *Block) bool {
	return *b == zeroBlock
}

// FixedName returns name truncated and NUL-padded to the width of the
// header name field, the form in which names are stored and compared.
func FixedName(name string) [LenName]byte {
	var fixed [LenName]byte
	copy(fixed[:], name)
	return fixed
}
