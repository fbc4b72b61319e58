package ustar

import (
	"time"

	"github.com/meigma/ustar/internal/platform"
)

// TypeFlag classifies an archive entry. The values are the single-byte
// type codes stored in the header's type field.
type TypeFlag byte

// Entry type codes.
const (
	TypeNormal   TypeFlag = '0'
	TypeHardLink TypeFlag = '1'
	TypeSymlink  TypeFlag = '2'
	TypeChar     TypeFlag = '3'
	TypeBlock    TypeFlag = '4'
	TypeDir      TypeFlag = '5'
	TypeFIFO     TypeFlag = '6'
	TypeUnknown  TypeFlag = 0x00
)

// String returns a short name for the type code.
func (t TypeFlag) String() string {
	switch t {
	case TypeNormal:
		return "normal"
	case TypeHardLink:
		return "hardlink"
	case TypeSymlink:
		return "symlink"
	case TypeChar:
		return "char"
	case TypeBlock:
		return "block"
	case TypeDir:
		return "dir"
	case TypeFIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// hasContent reports whether entries of this type carry content blocks.
// Only regular files do; every other type serializes as a bare header.
func (t TypeFlag) hasContent() bool {
	return t == TypeNormal
}

// Metadata describes one filesystem entry as seen by a
// [MetadataProvider]. LinkTarget is set only for symlinks, DevMajor and
// DevMinor only for block and character devices.
type Metadata struct {
	Type       TypeFlag
	Mode       int64
	UID        int
	GID        int
	Size       int64
	ModTime    time.Time
	LinkTarget string
	DevMajor   int64
	DevMinor   int64
}

// MetadataProvider resolves a path to its metadata. The default provider
// stats the local filesystem; tests substitute fixed values via
// [BuildWithMetadataProvider].
type MetadataProvider interface {
	Stat(path string) (Metadata, error)
}

// systemProvider is the default MetadataProvider, backed by Lstat.
type systemProvider struct{}

func (systemProvider) Stat(path string) (Metadata, error) {
	md, err := platform.Stat(path)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{
		Type:       classify(md),
		Mode:       md.Mode,
		UID:        md.UID,
		GID:        md.GID,
		Size:       md.Size,
		ModTime:    md.ModTime,
		LinkTarget: md.LinkTarget,
		DevMajor:   md.DevMajor,
		DevMinor:   md.DevMinor,
	}, nil
}

// classify maps stat results to exactly one type code. Anything that is
// neither a pipe, device, directory, symlink, nor regular file falls
// back to TypeUnknown.
func classify(md platform.Metadata) TypeFlag {
	switch {
	case md.IsFIFO:
		return TypeFIFO
	case md.IsChar:
		return TypeChar
	case md.IsBlock:
		return TypeBlock
	case md.IsDir:
		return TypeDir
	case md.IsSymlink:
		return TypeSymlink
	case md.IsRegular:
		return TypeNormal
	}
	return TypeUnknown
}
