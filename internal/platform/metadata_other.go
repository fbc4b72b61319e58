//go:build !unix

package platform

import (
	"errors"
	"io/fs"
)

// fillSys is a no-op on platforms without Unix owner or device metadata.
func fillSys(md *Metadata, info fs.FileInfo) {}

// Mkfifo is unsupported on non-Unix platforms.
func Mkfifo(path string, mode uint32) error {
	return errors.New("platform: named pipes are not supported")
}

// Mknod is unsupported on non-Unix platforms.
func Mknod(path string, perm uint32, major, minor int64, block bool) error {
	return errors.New("platform: device nodes are not supported")
}
