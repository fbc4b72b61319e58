// Package platform maps OS file metadata to the fields a header needs,
// isolating syscall-level details behind build tags.
package platform

import (
	"io/fs"
	"os"
	"time"
)

// Metadata carries the filesystem facts needed to build a header.
type Metadata struct {
	Mode       int64
	UID        int
	GID        int
	Size       int64
	ModTime    time.Time
	LinkTarget string
	DevMajor   int64
	DevMinor   int64

	IsDir     bool
	IsSymlink bool
	IsChar    bool
	IsBlock   bool
	IsFIFO    bool
	IsRegular bool
}

// Stat resolves path without following symlinks and maps the result to
// Metadata. Device numbers are populated for block and character nodes,
// the link target for symlinks.
func Stat(path string) (Metadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, err
	}

	mode := info.Mode()
	md := Metadata{
		Mode:      int64(mode.Perm()),
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		IsDir:     mode.IsDir(),
		IsSymlink: mode&fs.ModeSymlink != 0,
		IsChar:    mode&fs.ModeCharDevice == fs.ModeCharDevice,
		IsBlock:   mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0,
		IsFIFO:    mode&fs.ModeNamedPipe != 0,
		IsRegular: mode.IsRegular(),
	}
	fillSys(&md, info)

	if md.IsSymlink {
		target, err := os.Readlink(path)
		if err != nil {
			return Metadata{}, err
		}
		md.LinkTarget = target
	}

	return md, nil
}
