package bits

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{10, 5, 2},
		{10, 3, 4},
		{9, 4, 3},
	}
	for _, tt := range tests {
		if got := CeilDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("CeilDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestCeilDivMatchesFloat compares against float ceil for random inputs.
func TestCeilDivMatchesFloat(t *testing.T) {
	rng := newTestRNG(t)
	for i := 0; i < 10000; i++ {
		a := rng.IntN(1 << 20)
		b := rng.IntN(1<<10) + 1
		want := int(math.Ceil(float64(a) / float64(b)))
		if got := CeilDiv(a, b); got != want {
			t.Fatalf("iter %d: CeilDiv(%d, %d) = %d, want %d", i, a, b, got, want)
		}
	}
}

func TestCeilLog2(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{1024, 10},
		{1025, 11},
	}
	for _, tt := range tests {
		if got := CeilLog2(tt.n); got != tt.want {
			t.Errorf("CeilLog2(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

// TestCeilLog2Bound verifies 2^(k-1) < n <= 2^k for k = CeilLog2(n).
func TestCeilLog2Bound(t *testing.T) {
	rng := newTestRNG(t)
	for i := 0; i < 10000; i++ {
		n := rng.IntN(1<<30) + 2
		k := CeilLog2(n)
		if n > 1<<k || n <= 1<<(k-1) {
			t.Fatalf("iter %d: CeilLog2(%d) = %d out of bounds", i, n, k)
		}
	}
}

func TestDecimalDigits(t *testing.T) {
	rng := newTestRNG(t)
	for _, v := range []uint64{0, 1, 9, 10, 99, 100, math.MaxUint64} {
		if got, want := DecimalDigits(v), len(strconv.FormatUint(v, 10)); got != want {
			t.Errorf("DecimalDigits(%d) = %d, want %d", v, got, want)
		}
	}
	for i := 0; i < 10000; i++ {
		v := rng.Uint64() >> rng.UintN(64)
		if got, want := DecimalDigits(v), len(strconv.FormatUint(v, 10)); got != want {
			t.Fatalf("iter %d: DecimalDigits(%d) = %d, want %d", i, v, got, want)
		}
	}
}
