// Package radix implements a stable least-significant-digit radix sort over
// records keyed by a non-negative integer, using base 10 digits.
//
// Each pass is a counting sort over a single decimal digit, so memory is
// O(n) regardless of the key range. The number of passes is the decimal
// digit count of the largest key.
package radix

import "github.com/tamirms/treesort/internal/bits"

const base = 10

// Sorter sorts slices in place by key. It is stateless and safe for
// concurrent use.
type Sorter[T any] struct {
	key func(T) uint64
}

// New returns a radix Sorter.
func New[T any](key func(T) uint64) *Sorter[T] {
	return &Sorter[T]{key: key}
}

// Sort reorders data into non-decreasing key order. Records with equal keys
// keep their relative order. It never fails.
func (s *Sorter[T]) Sort(data []T) error {
	if len(data) == 0 {
		return nil
	}

	maxKey := s.key(data[0])
	for _, v := range data[1:] {
		maxKey = max(maxKey, s.key(v))
	}
	maxDigits := bits.DecimalDigits(maxKey)

	src := data
	dst := make([]T, len(data))
	divisor := uint64(1)
	for d := 0; d < maxDigits; d++ {
		pass(src, dst, s.key, divisor)
		src, dst = dst, src
		if d+1 < maxDigits {
			divisor *= base
		}
	}

	// After an odd number of passes the sorted data lives in the scratch slice.
	if maxDigits%2 == 1 {
		copy(data, src)
	}
	return nil
}

// pass performs one stable counting pass keyed on the decimal digit selected
// by divisor, reading src and writing dst.
func pass[T any](src, dst []T, key func(T) uint64, divisor uint64) {
	var count [base]int
	for _, v := range src {
		count[(key(v)/divisor)%base]++
	}
	for i := 1; i < base; i++ {
		count[i] += count[i-1]
	}
	for i := len(src) - 1; i >= 0; i-- {
		digit := (key(src[i]) / divisor) % base
		count[digit]--
		dst[count[digit]] = src[i]
	}
}
