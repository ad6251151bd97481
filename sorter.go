package treesort

import (
	"context"
	"fmt"
	"time"

	sorterrors "github.com/tamirms/treesort/errors"
	"github.com/tamirms/treesort/internal/fingerprint"
)

// Sorter runs the two-phase parallel sort with a fixed configuration.
//
// Usage:
//
//	s, err := treesort.NewSorter(treesort.WithWorkers(8))
//	if err != nil { return err }
//	res, err := s.Sort(ctx, values)
//	if err != nil { return err }
//	use(res.Values)
//
// A Sorter holds no per-run state and is safe for concurrent use.
type Sorter struct {
	cfg *sortConfig
}

// Result is the output of one sort run.
type Result[T any] struct {
	// Values holds every input element in non-decreasing key order.
	Values []T

	// Stats describes the run. It is observational only.
	Stats Stats
}

// Stats describes one sort run.
type Stats struct {
	Elements   int
	Partitions int
	Rounds     int
	Strategy   Strategy
	LocalSort  time.Duration
	Merge      time.Duration
	Elapsed    time.Duration
}

// RoundInfo is the shape of the chunk set after the local-sort phase
// (Round 0) or after merge round Round.
type RoundInfo struct {
	Round     int
	ChunkLens []int
}

// NewSorter creates a Sorter.
// Returns ErrInvalidWorkers if the worker count is not positive and
// ErrInvalidStrategy if the strategy is unknown.
func NewSorter(opts ...Option) (*Sorter, error) {
	cfg := defaultSortConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", sorterrors.ErrInvalidWorkers, cfg.workers)
	}
	if cfg.strategy != StrategyCounting && cfg.strategy != StrategyRadix {
		return nil, fmt.Errorf("%w: strategy ID %d", sorterrors.ErrInvalidStrategy, uint16(cfg.strategy))
	}
	return &Sorter{cfg: cfg}, nil
}

// Workers returns the configured partition and worker count.
func (s *Sorter) Workers() int { return s.cfg.workers }

// Strategy returns the configured local sort strategy.
func (s *Sorter) Strategy() Strategy { return s.cfg.strategy }

// Sort sorts a copy of data. The input slice is not modified.
func (s *Sorter) Sort(ctx context.Context, data []uint64) (*Result[uint64], error) {
	return SortBy(ctx, s, data, identityKey)
}

// Sort is a convenience wrapper that creates a Sorter from opts and returns
// only the sorted values.
func Sort(ctx context.Context, data []uint64, opts ...Option) ([]uint64, error) {
	s, err := NewSorter(opts...)
	if err != nil {
		return nil, err
	}
	res, err := s.Sort(ctx, data)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

// SortBy sorts a copy of data by key using s. Elements with equal keys keep
// their input order. The input slice is not modified.
//
// On error no partial output is returned.
func SortBy[T any](ctx context.Context, s *Sorter, data []T, key func(T) uint64) (*Result[T], error) {
	res, phase, err := run(ctx, s.cfg, data, key)
	if err != nil {
		s.cfg.metrics.observeFailure(phase)
		return nil, err
	}
	s.cfg.metrics.observeSuccess(res.Stats)
	return res, nil
}

// run executes one sort. On failure it also reports which worker phase
// failed, or "" when no worker was at fault.
func run[T any](ctx context.Context, cfg *sortConfig, data []T, key func(T) uint64) (*Result[T], string, error) {
	start := timeNow()

	sorter, err := newLocalSorter(cfg.strategy, key, cfg.countingLimit)
	if err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	set := partition(data, cfg.workers)
	var want fingerprint.Fingerprint
	if cfg.verify {
		want = chunkFingerprint(set, key)
	}

	localStart := timeNow()
	if err := localSortPhase(set, sorter); err != nil {
		return nil, phaseLocalSort, err
	}
	localDone := timeNow()
	if cfg.observer != nil {
		cfg.observer(RoundInfo{Round: 0, ChunkLens: set.lens()})
	}

	var observe func(int, *chunkArena[T])
	if cfg.observer != nil {
		observe = func(round int, a *chunkArena[T]) {
			cfg.observer(RoundInfo{Round: round, ChunkLens: a.lens()})
		}
	}
	final, rounds, err := treeMerge(ctx, set, key, observe)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", err
		}
		return nil, phaseMerge, err
	}
	values, err := final.take(0)
	if err != nil {
		return nil, "", err
	}
	if values == nil {
		values = []T{}
	}
	mergeDone := timeNow()

	if cfg.verify {
		if err := verify(values, key, want); err != nil {
			return nil, "", err
		}
	}

	end := timeNow()
	return &Result[T]{
		Values: values,
		Stats: Stats{
			Elements:   len(values),
			Partitions: cfg.workers,
			Rounds:     rounds,
			Strategy:   cfg.strategy,
			LocalSort:  localDone.Sub(localStart),
			Merge:      mergeDone.Sub(localDone),
			Elapsed:    end.Sub(start),
		},
	}, "", nil
}

// chunkFingerprint folds the per-chunk fingerprints of a freshly partitioned
// set into the fingerprint of the whole input.
func chunkFingerprint[T any](set *chunkArena[T], key func(T) uint64) fingerprint.Fingerprint {
	var f fingerprint.Fingerprint
	for _, c := range set.chunks() {
		f.Combine(fingerprint.Of(c, key))
	}
	return f
}

// verify checks that values is non-decreasing by key and is a permutation of
// the input summarized by want.
func verify[T any](values []T, key func(T) uint64, want fingerprint.Fingerprint) error {
	for i := 1; i < len(values); i++ {
		if key(values[i-1]) > key(values[i]) {
			return fmt.Errorf("%w: out of order at index %d", sorterrors.ErrVerifyFailed, i)
		}
	}
	if got := fingerprint.Of(values, key); got != want {
		return fmt.Errorf("%w: multiset fingerprint mismatch (count %d, want %d)",
			sorterrors.ErrVerifyFailed, got.Count, want.Count)
	}
	return nil
}

func identityKey(v uint64) uint64 { return v }

// timeNow is the clock behind Stats durations.
var timeNow = time.Now
