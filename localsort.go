package treesort

import (
	"fmt"

	sorterrors "github.com/tamirms/treesort/errors"
	"golang.org/x/sync/errgroup"
)

// Phase names used in worker errors and metrics labels.
const (
	phaseLocalSort = "local_sort"
	phaseMerge     = "merge"
)

// runWorker runs one unit of phase work, converting a panic into an
// ErrWorkerPanic error so the phase's Wait surfaces it to the caller.
//
// A worker that panics never checks its chunks back in; the arena is
// abandoned along with the failed run.
func runWorker(phase string, chunk int, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s chunk %d: %v", sorterrors.ErrWorkerPanic, phase, chunk, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%s chunk %d: %w", phase, chunk, err)
	}
	return nil
}

// localSortPhase sorts every chunk of the arena in place, one goroutine per
// chunk, and returns once all of them have finished.
//
// Workers are independent: each checks out exactly one slot, so there is no
// contention and no ordering among them. The first worker error is returned;
// the remaining workers still run to completion before Wait returns.
func localSortPhase[T any](arena *chunkArena[T], sorter localSorter[T]) error {
	var g errgroup.Group
	for i := range arena.len() {
		g.Go(func() error {
			return runWorker(phaseLocalSort, i, func() error {
				data, err := arena.checkout(i)
				if err != nil {
					return err
				}
				err = sorter.Sort(data)
				arena.checkin(i, data)
				return err
			})
		})
	}
	return g.Wait()
}
