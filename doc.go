// Package treesort sorts bounded non-negative integers with a two-phase
// parallel algorithm: independent local sorts over disjoint partitions,
// followed by a bottom-up parallel tree merge.
//
// # Basic Usage
//
//	sorted, err := treesort.Sort(ctx, values, treesort.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Records can be sorted by an integer key. Equal keys keep their input order:
//
//	s, err := treesort.NewSorter(treesort.WithWorkers(4), treesort.WithStrategy(treesort.StrategyRadix))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := treesort.SortBy(ctx, s, rows, func(r Row) uint64 { return r.ID })
//
// # Algorithm
//
// The input is copied into N = WithWorkers(n) contiguous chunks of
// ceil(len/N) elements (the tail chunk holds the remainder and may be empty).
// The local-sort phase sorts every chunk in place on its own goroutine using
// the selected Strategy. The tree merge phase then merges adjacent pairs of
// chunks concurrently, round after round, until one chunk remains; N chunks
// take exactly ceil(log2 N) rounds. Both phases are fork-join: a phase ends
// only when all of its workers have finished, and the first worker error
// (including a recovered panic) fails the whole sort.
//
// # Package Structure
//
//   - Public API: sorter.go (Sort, NewSorter, SortBy, Result, Stats)
//   - Configuration: options.go (Option, With* functions)
//   - Phases: partition.go, localsort.go, treemerge.go over the chunk arena in arena.go
//   - Local sort dispatch: strategy.go; algorithms in internal/counting, internal/radix
//   - Pairwise merge: internal/merge
//   - Run files: runfile_header.go, runfile_writer.go, runfile.go (mmap-backed persistence)
//   - Observability: metrics.go (Prometheus collectors)
//   - Platform: fallocate_*.go, fadvise_*.go, prefault_*.go (OS-specific optimizations)
package treesort
