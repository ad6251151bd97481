package treesort

import (
	"fmt"
	"sync/atomic"

	sorterrors "github.com/tamirms/treesort/errors"
)

// chunkArena holds the chunk set of one phase or merge round, addressed by
// index.
//
// Ownership is explicit: a worker must checkout a slot before touching its
// data and hand it back with checkin (data stays in the slot) or consume
// (slot becomes empty). A slot is checked out by at most one worker at a
// time; a second checkout fails with ErrChunkBusy instead of blocking.
// Workers touching two slots check them out in increasing index order.
//
// Slot data written by a worker is read by the coordinating goroutine only
// after the phase's errgroup Wait, which orders the accesses.
type chunkArena[T any] struct {
	slots []chunkSlot[T]
}

type chunkSlot[T any] struct {
	data       []T
	present    bool
	checkedOut atomic.Bool
}

func newChunkArena[T any](width int) *chunkArena[T] {
	return &chunkArena[T]{slots: make([]chunkSlot[T], width)}
}

// len returns the number of slots (the chunk set width).
func (a *chunkArena[T]) len() int {
	return len(a.slots)
}

// put stores data in slot i. Only the goroutine producing slot i may call it,
// and only before anyone checks the slot out.
func (a *chunkArena[T]) put(i int, data []T) {
	s := &a.slots[i]
	s.data = data
	s.present = true
}

// checkout grants exclusive access to slot i.
func (a *chunkArena[T]) checkout(i int) ([]T, error) {
	s := &a.slots[i]
	if !s.checkedOut.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w: slot %d", sorterrors.ErrChunkBusy, i)
	}
	if !s.present {
		s.checkedOut.Store(false)
		return nil, fmt.Errorf("%w: slot %d", sorterrors.ErrChunkMissing, i)
	}
	return s.data, nil
}

// checkin stores data back into slot i and releases it.
func (a *chunkArena[T]) checkin(i int, data []T) {
	s := &a.slots[i]
	s.data = data
	s.checkedOut.Store(false)
}

// consume empties slot i and releases it. The chunk has been used up as a
// merge input and must not be read again.
func (a *chunkArena[T]) consume(i int) {
	s := &a.slots[i]
	s.data = nil
	s.present = false
	s.checkedOut.Store(false)
}

// take moves slot i's chunk out of the arena. Used by the coordinator for the
// unpaired passthrough chunk, which no worker touches.
func (a *chunkArena[T]) take(i int) ([]T, error) {
	data, err := a.checkout(i)
	if err != nil {
		return nil, err
	}
	a.consume(i)
	return data, nil
}

// chunks returns the current slot contents in index order. Empty slots are
// reported as nil. Callers must not hold this across a phase.
func (a *chunkArena[T]) chunks() [][]T {
	out := make([][]T, len(a.slots))
	for i := range a.slots {
		out[i] = a.slots[i].data
	}
	return out
}

// lens returns the length of every slot in index order.
func (a *chunkArena[T]) lens() []int {
	out := make([]int, len(a.slots))
	for i := range a.slots {
		out[i] = len(a.slots[i].data)
	}
	return out
}
