package ustar

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"

	"github.com/meigma/ustar/internal/ustarfmt"
)

// EntrySummary describes one entry for listings: the header facts plus a
// canonical digest of the entry's content.
type EntrySummary struct {
	Name    string
	Type    TypeFlag
	Size    int64
	Mode    int64
	ModTime time.Time
	Digest  digest.Digest
}

// InspectResult provides listings and aggregate statistics for an
// archive without serializing it.
type InspectResult struct {
	archive *Archive

	// Lazy computed aggregates
	statsOnce      sync.Once
	totalDataBytes int64
	serializedSize int64
}

// Inspect returns a view over the archive's entries and statistics.
// The view reads the archive it was created from; mutating the archive
// afterwards invalidates it.
func (a *Archive) Inspect() *InspectResult {
	return &InspectResult{archive: a}
}

// EntryCount returns the number of entries.
func (r *InspectResult) EntryCount() int {
	return r.archive.Len()
}

// Summaries returns one EntrySummary per entry in archive order.
// Digests are computed over content truncated to each header's size.
func (r *InspectResult) Summaries() []EntrySummary {
	summaries := make([]EntrySummary, 0, r.archive.Len())
	for e := range r.archive.Entries() {
		summaries = append(summaries, summarize(e))
	}
	return summaries
}

func summarize(e *Entry) EntrySummary {
	return EntrySummary{
		Name:    e.Header.Name,
		Type:    e.Header.Type,
		Size:    e.Header.Size,
		Mode:    e.Header.Mode,
		ModTime: e.Header.ModTime,
		Digest:  digest.FromBytes(e.Content()),
	}
}

// TotalDataBytes returns the sum of all declared entry sizes.
// Computed on first call; the result is cached.
func (r *InspectResult) TotalDataBytes() int64 {
	r.computeStats()
	return r.totalDataBytes
}

// SerializedSize returns the exact byte count WriteTo would produce,
// terminator included. Computed on first call; the result is cached.
func (r *InspectResult) SerializedSize() int64 {
	r.computeStats()
	return r.serializedSize
}

func (r *InspectResult) computeStats() {
	r.statsOnce.Do(func() {
		for e := range r.archive.Entries() {
			r.totalDataBytes += e.Header.Size
			r.serializedSize += int64((1 + e.NumBlocks()) * ustarfmt.BlockSize)
		}
		if r.archive.Len() > 0 {
			r.serializedSize += int64(ustarfmt.TrailerBlocks * ustarfmt.BlockSize)
		}
	})
}

// Verify rechecks every entry's stored checksum against a canonical
// re-encode and computes each entry's content digest. Digest work runs
// in parallel across entries; the archive itself is only read.
//
// The first checksum mismatch fails verification with an error wrapping
// [ErrInvalidChecksum] and naming the entry.
func (a *Archive) Verify(ctx context.Context) ([]EntrySummary, error) {
	summaries := make([]EntrySummary, a.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	i := 0
	for e := range a.Entries() {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !e.Header.ValidChecksum() {
				return fmt.Errorf("entry %s: %w", e.Header.Name, ErrInvalidChecksum)
			}
			summaries[idx] = summarize(e)
			return nil
		})
		i++
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
