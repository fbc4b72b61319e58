package ustar

import (
	"errors"

	"github.com/meigma/ustar/internal/ustarfmt"
)

// Sentinel errors for archive operations.
var (
	// ErrEndOfArchive is returned when a decoded header is the all-zero
	// end-of-archive sentinel. It signals normal termination of a scan,
	// not a defect in the stream.
	ErrEndOfArchive = errors.New("ustar: end of archive")

	// ErrInvalidMagic is returned when a header's magic field does not
	// match the USTAR format identifier.
	ErrInvalidMagic = errors.New("ustar: invalid magic")

	// ErrInvalidChecksum is returned when a header's stored checksum does
	// not match the recomputed value.
	ErrInvalidChecksum = errors.New("ustar: invalid checksum")

	// ErrEncoding is returned when a header field cannot be encoded to or
	// decoded from its fixed-width octal text form, or when a header
	// block has the wrong length.
	ErrEncoding = ustarfmt.ErrEncoding
)
