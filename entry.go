package ustar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/meigma/ustar/internal/ustarfmt"
)

// Entry pairs one header with the 512-byte content blocks it describes.
// Non-regular entries (directories, symlinks, devices, pipes) carry zero
// content blocks.
//
// Entries are immutable once built: they are created by [NewEntry] or
// [ReadEntry] and only ever consumed afterwards.
type Entry struct {
	Header Header

	blocks []ustarfmt.Block
}

// NewEntry builds an entry from a filesystem path.
//
// The header is populated from the configured [MetadataProvider] (the
// local filesystem by default), the name field holds the final path
// element, and the checksum is recomputed after all other fields are
// set. Regular file content is read in 512-byte blocks with the final
// partial block zero-padded; every other type yields a bare header with
// a zero size field.
func NewEntry(path string, opts ...BuildOption) (*Entry, error) {
	cfg := newBuildConfig(opts)
	return newEntry(path, &cfg)
}

func newEntry(path string, cfg *buildConfig) (*Entry, error) {
	md, err := cfg.provider.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	h := Header{
		Name:      filepath.Base(path),
		Mode:      md.Mode,
		UID:       md.UID,
		GID:       md.GID,
		ModTime:   md.ModTime,
		Type:      md.Type,
		OwnerName: cfg.ownerName,
		GroupName: cfg.groupName,
	}
	switch md.Type {
	case TypeSymlink:
		h.LinkTarget = md.LinkTarget
	case TypeChar, TypeBlock:
		h.DevMajor = md.DevMajor
		h.DevMinor = md.DevMinor
	}

	e := &Entry{}
	if md.Type.hasContent() {
		h.Size = md.Size
		e.blocks, err = chunkFile(path)
		if err != nil {
			return nil, err
		}
	}

	e.Header, err = h.WithChecksum()
	if err != nil {
		return nil, err
	}
	cfg.log().Debug("built entry",
		"name", e.Header.Name,
		"type", e.Header.Type.String(),
		"size", e.Header.Size,
		"blocks", len(e.blocks))
	return e, nil
}

// chunkFile reads a regular file in consecutive 512-byte blocks. Each
// read starts from a zeroed block so a partial final read leaves the
// remainder of that block zero-filled.
func chunkFile(path string) ([]ustarfmt.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var blocks []ustarfmt.Block
	for {
		var b ustarfmt.Block
		n, err := io.ReadFull(f, b[:])
		if n > 0 {
			blocks = append(blocks, b)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return blocks, nil
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
}

// NumBlocks returns the number of content blocks the entry carries.
func (e *Entry) NumBlocks() int {
	return len(e.blocks)
}

// Content returns the entry's content bytes, truncated to the header's
// size field. Block padding beyond the declared size is not included.
func (e *Entry) Content() []byte {
	raw := make([]byte, 0, len(e.blocks)*ustarfmt.BlockSize)
	for i := range e.blocks {
		raw = append(raw, e.blocks[i][:]...)
	}
	if e.Header.Size >= 0 && e.Header.Size < int64(len(raw)) {
		raw = raw[:e.Header.Size]
	}
	return raw
}

// WriteTo serializes the entry: the encoded header followed by each
// content block in order. It returns the total byte count, which is
// always 512 times one plus the number of blocks on success.
func (e *Entry) WriteTo(w io.Writer) (int64, error) {
	block, err := e.Header.encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(block[:])
	written := int64(n)
	if err != nil {
		return written, fmt.Errorf("write header: %w", err)
	}
	for i := range e.blocks {
		n, err := w.Write(e.blocks[i][:])
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("write content block: %w", err)
		}
	}
	return written, nil
}

// ReadEntry decodes the next entry from a sequential stream.
//
// It reads exactly one header block, then floor(size/512)+1 content
// blocks, stopping early when the stream is exhausted. Decoding fails
// with [ErrEndOfArchive] on the all-zero sentinel, [ErrInvalidMagic] on
// a bad magic field, and [ErrInvalidChecksum] on a checksum mismatch.
// The final content block is kept whole; bytes beyond the declared size
// are retained verbatim.
func ReadEntry(r io.Reader) (*Entry, error) {
	var hb ustarfmt.Block
	if _, err := io.ReadFull(r, hb[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := decodeHeader(&hb)
	if err != nil {
		return nil, err
	}

	e := &Entry{Header: h}
	if !h.Type.hasContent() {
		// Non-regular entries own zero content blocks regardless of any
		// size field quirks.
		return e, nil
	}
	expected := int(h.Size/ustarfmt.BlockSize) + 1
	for range expected {
		var b ustarfmt.Block
		n, err := io.ReadFull(r, b[:])
		if n > 0 {
			e.blocks = append(e.blocks, b)
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, fmt.Errorf("read content block: %w", err)
		}
	}
	return e, nil
}
