package ustar

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/ustar/internal/testutil"
	"github.com/meigma/ustar/internal/ustarfmt"
)

// fakeProvider returns fixed metadata for any path.
type fakeProvider struct {
	md  Metadata
	err error
}

func (p fakeProvider) Stat(string) (Metadata, error) {
	return p.md, p.err
}

func TestNewEntryChunkCounts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		length int
		blocks int
	}{
		{"empty", 0, 0},
		{"one byte", 1, 1},
		{"exact block", 512, 1},
		{"one over", 513, 2},
		{"two blocks", 1024, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := testutil.WriteFile(t, dir, "data.bin", testutil.Pattern(tc.length))

			e, err := NewEntry(path)
			require.NoError(t, err)
			assert.Equal(t, tc.blocks, e.NumBlocks())
			assert.Equal(t, int64(tc.length), e.Header.Size)
		})
	}
}

func TestNewEntryPadsFinalBlock(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "data.bin", testutil.Pattern(513))

	e, err := NewEntry(path)
	require.NoError(t, err)
	require.Equal(t, 2, e.NumBlocks())

	// Bytes 1..511 of the second block are padding and must be zero.
	assert.True(t, testutil.AllZero(e.blocks[1][1:]))
	assert.Equal(t, testutil.Pattern(513), e.Content())
}

func TestNewEntryHeaderFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "hello.txt", []byte("hello"))

	e, err := NewEntry(path, BuildWithOwnerName("builder"), BuildWithGroupName("staff"))
	require.NoError(t, err)

	assert.Equal(t, "hello.txt", e.Header.Name)
	assert.Equal(t, TypeNormal, e.Header.Type)
	assert.Equal(t, int64(5), e.Header.Size)
	assert.Equal(t, "builder", e.Header.OwnerName)
	assert.Equal(t, "staff", e.Header.GroupName)
	assert.True(t, e.Header.ValidChecksum())
	assert.False(t, e.Header.ModTime.IsZero())
}

func TestNewEntryOwnerNameDefaultsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "a.txt", []byte("x"))

	e, err := NewEntry(path)
	require.NoError(t, err)
	assert.Empty(t, e.Header.OwnerName)
}

func TestNewEntrySymlinkHasNoContent(t *testing.T) {
	t.Parallel()

	provider := fakeProvider{md: Metadata{
		Type:       TypeSymlink,
		Mode:       0o777,
		Size:       11,
		ModTime:    time.Unix(1700000000, 0),
		LinkTarget: "target/file",
	}}

	e, err := NewEntry("link", BuildWithMetadataProvider(provider))
	require.NoError(t, err)
	assert.Zero(t, e.NumBlocks())
	assert.Zero(t, e.Header.Size)
	assert.Equal(t, "target/file", e.Header.LinkTarget)
	assert.Equal(t, TypeSymlink, e.Header.Type)
}

func TestNewEntryDeviceNumbers(t *testing.T) {
	t.Parallel()

	provider := fakeProvider{md: Metadata{
		Type:     TypeBlock,
		Mode:     0o660,
		DevMajor: 8,
		DevMinor: 1,
	}}

	e, err := NewEntry("sda1", BuildWithMetadataProvider(provider))
	require.NoError(t, err)
	assert.Zero(t, e.NumBlocks())
	assert.Equal(t, int64(8), e.Header.DevMajor)
	assert.Equal(t, int64(1), e.Header.DevMinor)
}

func TestNewEntryMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewEntry(t.TempDir() + "/missing.txt")
	require.Error(t, err)
}

func TestEntryWriteToByteCount(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "data.bin", testutil.Pattern(1000))

	e, err := NewEntry(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := e.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(512*(1+2)), n)
	assert.Equal(t, int64(buf.Len()), n)
}

func TestEntryStreamRoundTrip(t *testing.T) {
	t.Parallel()

	content := testutil.Pattern(1000)
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "data.bin", content)

	e, err := NewEntry(path, BuildWithOwnerName("builder"))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = e.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadEntry(&buf)
	require.NoError(t, err)
	assert.Equal(t, e.Header.Name, got.Header.Name)
	assert.Equal(t, e.Header.Size, got.Header.Size)
	assert.Equal(t, e.Header.Type, got.Header.Type)
	assert.Equal(t, e.Header.Checksum, got.Header.Checksum)
	assert.Equal(t, content, got.Content())
}

func TestReadEntrySentinel(t *testing.T) {
	t.Parallel()

	_, err := ReadEntry(bytes.NewReader(make([]byte, BlockSize)))
	require.ErrorIs(t, err, ErrEndOfArchive)
}

func TestReadEntryBadMagic(t *testing.T) {
	t.Parallel()

	var b ustarfmt.Block
	copy(b[:], "not a tar header")
	b[ustarfmt.OffMagic] = 'x'
	_, err := ReadEntry(bytes.NewReader(b[:]))
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestReadEntryBadChecksum(t *testing.T) {
	t.Parallel()

	h, err := testHeader().WithChecksum()
	require.NoError(t, err)
	raw, err := h.Encode()
	require.NoError(t, err)
	raw[0]++

	_, err = ReadEntry(bytes.NewReader(raw))
	require.ErrorIs(t, err, ErrInvalidChecksum)
}

func TestReadEntryShortStream(t *testing.T) {
	t.Parallel()

	// A 1000-byte entry followed by stream end instead of its blocks.
	h := Header{Name: "trunc", Type: TypeNormal, Size: 1000}
	raw, err := h.Encode()
	require.NoError(t, err)
	stored, err := DecodeHeader(raw)
	require.NoError(t, err)

	got, err := ReadEntry(io.MultiReader(bytes.NewReader(raw), strings.NewReader("")))
	require.NoError(t, err)
	assert.Equal(t, stored.Size, got.Header.Size)
	// Block collection ends the moment a read returns zero bytes.
	assert.Zero(t, got.NumBlocks())
}

func TestReadEntryTruncatedHeader(t *testing.T) {
	t.Parallel()

	_, err := ReadEntry(bytes.NewReader(make([]byte, 100)))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEndOfArchive)
}

func TestReadEntryKeepsFinalBlockPadding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "data.bin", testutil.Pattern(100))

	e, err := NewEntry(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = e.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadEntry(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, got.NumBlocks())
	// Content is block-granular on the wire; the declared size bounds
	// what Content returns.
	assert.Len(t, got.Content(), 100)
}
