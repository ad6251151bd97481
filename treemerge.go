package treesort

import (
	"context"
	"fmt"

	"github.com/tamirms/treesort/internal/bits"
	"github.com/tamirms/treesort/internal/merge"
	"golang.org/x/sync/errgroup"
)

// treeMerge reduces a set of individually sorted chunks to one sorted chunk
// by repeated pairwise merge rounds.
//
// Rounds run in a loop rather than by recursion, so the chunk set after every
// round is visible to observe (round numbers start at 1). A set of width N
// takes exactly CeilLog2(N) rounds; a set of width 1 is returned unchanged
// after zero rounds.
//
// ctx is checked between rounds only. A round in flight always runs to
// completion.
func treeMerge[T any](ctx context.Context, set *chunkArena[T], key func(T) uint64,
	observe func(round int, set *chunkArena[T])) (*chunkArena[T], int, error) {
	rounds := 0
	for set.len() > 1 {
		if err := ctx.Err(); err != nil {
			return nil, rounds, err
		}
		next, err := mergeRound(set, key)
		if err != nil {
			return nil, rounds, fmt.Errorf("merge round %d: %w", rounds+1, err)
		}
		set = next
		rounds++
		if observe != nil {
			observe(rounds, set)
		}
	}
	return set, rounds, nil
}

// mergeRound merges adjacent pairs (0,1), (2,3), ... concurrently, one
// goroutine per pair, and returns the next chunk set.
//
// The merged chunk of pair p goes to slot p of the next set regardless of
// which pair finishes first. With an odd width the last chunk is moved to the
// final slot without spawning a worker.
func mergeRound[T any](cur *chunkArena[T], key func(T) uint64) (*chunkArena[T], error) {
	width := cur.len()
	pairs := width / 2
	next := newChunkArena[T](bits.CeilDiv(width, 2))

	var g errgroup.Group
	for p := range pairs {
		lo, hi := 2*p, 2*p+1
		g.Go(func() error {
			return runWorker(phaseMerge, lo, func() error {
				// Lower index first: a fixed total order over slots.
				left, err := cur.checkout(lo)
				if err != nil {
					return err
				}
				right, err := cur.checkout(hi)
				if err != nil {
					cur.checkin(lo, left)
					return err
				}
				merged := merge.Merge(left, right, key)
				cur.consume(hi)
				cur.consume(lo)
				next.put(p, merged)
				return nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if width%2 == 1 {
		last, err := cur.take(width - 1)
		if err != nil {
			return nil, fmt.Errorf("passthrough chunk %d: %w", width-1, err)
		}
		next.put(pairs, last)
	}
	return next, nil
}
