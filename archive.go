package ustar

import (
	"errors"
	"io"
	"iter"

	"github.com/meigma/ustar/internal/ustarfmt"
)

// Archive is an ordered collection of entries forming one complete
// container. Insertion order is archive order and is preserved on
// serialization.
//
// An Archive is not safe for concurrent use; callers own it exclusively
// for the duration of any operation.
type Archive struct {
	entries []*Entry
}

// New builds an archive containing exactly one entry built from path.
func New(path string, opts ...BuildOption) (*Archive, error) {
	a := &Archive{}
	if err := a.Add(path, opts...); err != nil {
		return nil, err
	}
	return a, nil
}

// Add builds an entry from path and appends it. On failure the archive
// is left unchanged.
func (a *Archive) Add(path string, opts ...BuildOption) error {
	e, err := NewEntry(path, opts...)
	if err != nil {
		return err
	}
	a.entries = append(a.entries, e)
	return nil
}

// Open scans a sequential stream into an archive.
//
// Scanning collects entries until the all-zero end-of-archive sentinel.
// By default any other decode failure also ends the scan and the entries
// collected so far are returned; [OpenWithStrict] propagates such
// failures instead.
func Open(r io.Reader, opts ...OpenOption) (*Archive, error) {
	cfg := openConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Archive{}
	for {
		e, err := ReadEntry(r)
		if err != nil {
			if errors.Is(err, ErrEndOfArchive) {
				return a, nil
			}
			if cfg.strict {
				return nil, err
			}
			cfg.log().Warn("archive scan stopped before end-of-archive sentinel",
				"entries", len(a.entries),
				"error", err)
			return a, nil
		}
		cfg.log().Debug("scanned entry",
			"name", e.Header.Name,
			"type", e.Header.Type.String(),
			"size", e.Header.Size)
		a.entries = append(a.entries, e)
	}
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Entries iterates the entries in archive order.
func (a *Archive) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, e := range a.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Remove deletes the first entry whose name field matches name, both
// compared in their fixed 100-byte zero-padded form. It reports whether
// an entry was removed.
func (a *Archive) Remove(name string) bool {
	want := ustarfmt.FixedName(name)
	for i, e := range a.entries {
		if ustarfmt.FixedName(e.Header.Name) == want {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return true
		}
	}
	return false
}

// WriteTo serializes every entry in order and terminates the stream with
// 18 all-zero blocks. An empty archive writes nothing, terminator
// included. It returns the total byte count written.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	if len(a.entries) == 0 {
		return 0, nil
	}

	var written int64
	for _, e := range a.entries {
		n, err := e.WriteTo(w)
		written += n
		if err != nil {
			return written, err
		}
	}

	var zero ustarfmt.Block
	for range ustarfmt.TrailerBlocks {
		n, err := w.Write(zero[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
