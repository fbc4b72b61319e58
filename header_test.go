package ustar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/ustar/internal/ustarfmt"
)

func testHeader() Header {
	return Header{
		Name:      "a.txt",
		Mode:      0o644,
		UID:       1000,
		GID:       1000,
		Size:      1234,
		ModTime:   time.Unix(1700000000, 0),
		Type:      TypeNormal,
		OwnerName: "builder",
	}
}

func TestHeaderEncodeLayout(t *testing.T) {
	t.Parallel()

	h := testHeader()
	raw, err := h.Encode()
	require.NoError(t, err)
	require.Len(t, raw, BlockSize)

	assert.Equal(t, []byte("a.txt"), raw[:5])
	assert.Equal(t, byte(0x00), raw[5])
	assert.Equal(t, []byte("0000644\x00"), raw[ustarfmt.OffMode:ustarfmt.OffMode+8])
	assert.Equal(t, []byte("00000002322\x00"), raw[ustarfmt.OffSize:ustarfmt.OffSize+12])
	assert.Equal(t, byte('0'), raw[ustarfmt.OffType])
	assert.Equal(t, []byte("ustar "), raw[ustarfmt.OffMagic:ustarfmt.OffMagic+6])
	assert.Equal(t, []byte{' ', 0x00}, raw[ustarfmt.OffVersion:ustarfmt.OffVersion+2])
	assert.Equal(t, []byte("builder"), raw[ustarfmt.OffOwner:ustarfmt.OffOwner+7])

	// The prefix and reserved regions are never populated.
	assert.Equal(t, make([]byte, 167), raw[ustarfmt.OffPrefix:])
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := testHeader().WithChecksum()
	require.NoError(t, err)

	raw, err := h.Encode()
	require.NoError(t, err)

	got, err := DecodeHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, h.Name, got.Name)
	assert.Equal(t, h.Mode, got.Mode)
	assert.Equal(t, h.UID, got.UID)
	assert.Equal(t, h.GID, got.GID)
	assert.Equal(t, h.Size, got.Size)
	assert.Equal(t, h.ModTime.Unix(), got.ModTime.Unix())
	assert.Equal(t, h.Checksum, got.Checksum)
	assert.Equal(t, h.Type, got.Type)
	assert.Equal(t, h.OwnerName, got.OwnerName)
}

func TestHeaderDeviceRoundTrip(t *testing.T) {
	t.Parallel()

	h := Header{
		Name:     "null",
		Mode:     0o666,
		Type:     TypeChar,
		DevMajor: 1,
		DevMinor: 3,
	}
	raw, err := h.Encode()
	require.NoError(t, err)

	got, err := DecodeHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeChar, got.Type)
	assert.Equal(t, int64(1), got.DevMajor)
	assert.Equal(t, int64(3), got.DevMinor)
}

func TestHeaderSymlinkRoundTrip(t *testing.T) {
	t.Parallel()

	h := Header{Name: "link", Type: TypeSymlink, LinkTarget: "target/file"}
	raw, err := h.Encode()
	require.NoError(t, err)

	got, err := DecodeHeader(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeSymlink, got.Type)
	assert.Equal(t, "target/file", got.LinkTarget)
	// Device fields stay zero for non-device entries.
	assert.Zero(t, got.DevMajor)
	assert.Zero(t, got.DevMinor)
}

func TestWithChecksumIsPure(t *testing.T) {
	t.Parallel()

	h := testHeader()
	updated, err := h.WithChecksum()
	require.NoError(t, err)
	assert.Zero(t, h.Checksum)
	assert.NotZero(t, updated.Checksum)
	assert.True(t, updated.ValidChecksum())
	assert.False(t, h.ValidChecksum())
}

func TestValidChecksumDetectsFieldChange(t *testing.T) {
	t.Parallel()

	h, err := testHeader().WithChecksum()
	require.NoError(t, err)
	require.True(t, h.ValidChecksum())

	h.Name = "b.txt"
	assert.False(t, h.ValidChecksum())
}

func TestDecodeHeaderSingleByteMutation(t *testing.T) {
	t.Parallel()

	h, err := testHeader().WithChecksum()
	require.NoError(t, err)
	raw, err := h.Encode()
	require.NoError(t, err)

	// Every mutated non-checksum, non-magic byte must fail validation.
	for _, off := range []int{0, ustarfmt.OffMode, ustarfmt.OffSize, ustarfmt.OffOwner, 511} {
		mutated := make([]byte, BlockSize)
		copy(mutated, raw)
		mutated[off]++
		_, err := DecodeHeader(mutated)
		assert.ErrorIs(t, err, ErrInvalidChecksum, "offset %d", off)
	}
}

func TestDecodeHeaderRejectsWrongLength(t *testing.T) {
	t.Parallel()

	_, err := DecodeHeader(make([]byte, 511))
	require.ErrorIs(t, err, ErrEncoding)

	_, err = DecodeHeader(make([]byte, 1024))
	require.ErrorIs(t, err, ErrEncoding)
}

func TestDecodeHeaderSentinel(t *testing.T) {
	t.Parallel()

	_, err := DecodeHeader(make([]byte, BlockSize))
	require.ErrorIs(t, err, ErrEndOfArchive)
}

func TestDecodeHeaderRejectsBadMagic(t *testing.T) {
	t.Parallel()

	h, err := testHeader().WithChecksum()
	require.NoError(t, err)
	raw, err := h.Encode()
	require.NoError(t, err)

	// GNU-style magic is not the format literal, checksum notwithstanding.
	copy(raw[ustarfmt.OffMagic:], "ustar\x00")
	var b ustarfmt.Block
	copy(b[:], raw)
	ustarfmt.PutChecksum(&b)

	_, err = DecodeHeader(b[:])
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestEncodeRejectsOversizedValues(t *testing.T) {
	t.Parallel()

	h := testHeader()
	h.Size = 1 << 40
	_, err := h.Encode()
	require.ErrorIs(t, err, ErrEncoding)

	h = testHeader()
	h.UID = -1
	_, err = h.Encode()
	require.ErrorIs(t, err, ErrEncoding)
}
