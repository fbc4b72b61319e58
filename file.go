package ustar

import (
	"fmt"
	"os"
)

// OpenFile scans an archive file from disk. The file handle is scoped to
// the call and released on every exit path.
func OpenFile(path string, opts ...OpenOption) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Open(f, opts...)
}

// WriteFile serializes the archive to a new file at path, returning the
// total byte count written. On failure the target may hold a truncated
// prefix; no cleanup is attempted.
func (a *Archive) WriteFile(path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	n, err := a.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}
