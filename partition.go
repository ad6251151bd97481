package treesort

import (
	"slices"

	"github.com/tamirms/treesort/internal/bits"
)

// partition splits data into exactly workers contiguous chunks and loads them
// into a fresh arena.
//
// Every chunk has ceil(n/workers) elements except the tail: the last non-empty
// chunk holds the remainder, and trailing chunks are empty when the division
// leaves nothing for them (always the case when n < workers). Chunks are
// copies, so the caller's slice is never written.
func partition[T any](data []T, workers int) *chunkArena[T] {
	n := len(data)
	size := bits.CeilDiv(n, workers)
	arena := newChunkArena[T](workers)
	for i := range workers {
		start := min(i*size, n)
		end := min(start+size, n)
		arena.put(i, slices.Clone(data[start:end:end]))
	}
	return arena
}
