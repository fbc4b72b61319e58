//go:build unix

package platform

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/unix"
)

// fillSys extracts owner and device numbers from the raw stat result.
func fillSys(md *Metadata, info fs.FileInfo) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	md.UID = int(stat.Uid)
	md.GID = int(stat.Gid)
	if md.IsChar || md.IsBlock {
		rdev := uint64(stat.Rdev) //nolint:unconvert // Rdev is a narrower type on some platforms
		md.DevMajor = int64(unix.Major(rdev))
		md.DevMinor = int64(unix.Minor(rdev))
	}
}

// Mkfifo creates a named pipe at path.
func Mkfifo(path string, mode uint32) error {
	return unix.Mkfifo(path, mode)
}

// Mknod creates a device node at path. block selects a block device
// over a character device.
func Mknod(path string, perm uint32, major, minor int64, block bool) error {
	mode := perm | unix.S_IFCHR
	if block {
		mode = perm | unix.S_IFBLK
	}
	dev := unix.Mkdev(uint32(major), uint32(minor))
	return unix.Mknod(path, mode, int(dev))
}
