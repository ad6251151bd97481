// Package bits provides small integer arithmetic helpers shared by the
// partitioner, the merge tree, and the radix sorter.
package bits

import "math/bits"

// CeilDiv returns ceil(a / b). b must be positive.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}

// CeilLog2 returns ceil(log2(n)) for n >= 1, and 0 for n <= 1.
// This is the number of pairwise merge rounds needed to reduce n chunks to one.
func CeilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// DecimalDigits returns the number of base-10 digits in v. Zero has one digit.
func DecimalDigits(v uint64) int {
	d := 1
	for v >= 10 {
		v /= 10
		d++
	}
	return d
}
