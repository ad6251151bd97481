// Package counting implements a stable counting sort over records keyed by a
// bounded non-negative integer.
//
// Time and space are O(n + maxKey): the frequency table has one slot per
// possible key value up to the largest key present. Large key ranges are
// rejected up front with ErrValueRangeTooLarge rather than attempting the
// allocation.
package counting

import (
	"fmt"
	"math"

	sorterrors "github.com/tamirms/treesort/errors"
)

// Sorter sorts slices in place by key. It is stateless and safe for
// concurrent use; each call allocates its own frequency table.
type Sorter[T any] struct {
	key   func(T) uint64
	limit uint64
}

// New returns a counting Sorter. limit is the largest key the sorter accepts;
// a slice whose maximum key exceeds it, or whose table would not fit in an
// int-indexed slice, fails with ErrValueRangeTooLarge and is left untouched.
func New[T any](key func(T) uint64, limit uint64) *Sorter[T] {
	return &Sorter[T]{key: key, limit: limit}
}

// Sort reorders data into non-decreasing key order. Records with equal keys
// keep their relative order.
func (s *Sorter[T]) Sort(data []T) error {
	if len(data) == 0 {
		return nil
	}

	maxKey := s.key(data[0])
	for _, v := range data[1:] {
		maxKey = max(maxKey, s.key(v))
	}
	// The table needs maxKey+1 int-indexed slots.
	if maxKey > s.limit || maxKey >= math.MaxInt {
		return fmt.Errorf("%w: max key %d, limit %d", sorterrors.ErrValueRangeTooLarge, maxKey, s.limit)
	}

	// count[k] ends up as the number of records with key <= k.
	count := make([]int, maxKey+1)
	for _, v := range data {
		count[s.key(v)]++
	}
	for i := 1; i < len(count); i++ {
		count[i] += count[i-1]
	}

	// Backward scatter keeps equal keys in input order.
	output := make([]T, len(data))
	for i := len(data) - 1; i >= 0; i-- {
		k := s.key(data[i])
		count[k]--
		output[count[k]] = data[i]
	}

	copy(data, output)
	return nil
}
