// Package merge implements the two-pointer merge of two sorted sequences.
package merge

// Merge returns a new slice holding every element of left and right in
// non-decreasing key order. Both inputs must already be sorted by key.
// When keys are equal the element from left is emitted first, so merging
// adjacent runs of a stable sort stays stable. Neither input is modified.
func Merge[T any](left, right []T, key func(T) uint64) []T {
	merged := make([]T, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if key(left[i]) <= key(right[j]) {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}
