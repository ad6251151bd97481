package merge

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
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

func identity(v uint64) uint64 { return v }

type tagged struct {
	key  uint64
	side byte
	tag  int
}

func TestMergeFixed(t *testing.T) {
	tests := []struct {
		name        string
		left, right []uint64
		want        []uint64
	}{
		{"both empty", nil, nil, []uint64{}},
		{"left empty", nil, []uint64{1, 2}, []uint64{1, 2}},
		{"right empty", []uint64{3, 4}, []uint64{}, []uint64{3, 4}},
		{"interleaved", []uint64{7, 9}, []uint64{3, 5}, []uint64{3, 5, 7, 9}},
		{"round two", []uint64{3, 5, 7, 9}, []uint64{1, 2, 4, 6}, []uint64{1, 2, 3, 4, 5, 6, 7, 9}},
		{"duplicates", []uint64{1, 1, 2}, []uint64{1, 2, 2}, []uint64{1, 1, 1, 2, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.left, tt.right, identity)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Merge(%v, %v) = %v, want %v", tt.left, tt.right, got, tt.want)
			}
		})
	}
}

// TestMergeProperties checks sortedness, length, and multiset preservation
// for random sorted inputs.
func TestMergeProperties(t *testing.T) {
	rng := newTestRNG(t)
	for iter := 0; iter < 500; iter++ {
		left := make([]uint64, rng.IntN(50))
		right := make([]uint64, rng.IntN(50))
		for i := range left {
			left[i] = rng.Uint64N(20)
		}
		for i := range right {
			right[i] = rng.Uint64N(20)
		}
		slices.Sort(left)
		slices.Sort(right)

		got := Merge(left, right, identity)
		if len(got) != len(left)+len(right) {
			t.Fatalf("iter %d: len = %d, want %d", iter, len(got), len(left)+len(right))
		}
		if !slices.IsSorted(got) {
			t.Fatalf("iter %d: merged output not sorted: %v", iter, got)
		}
		want := append(slices.Clone(left), right...)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Fatalf("iter %d: multiset mismatch", iter)
		}
	}
}

// TestMergeLeftWinsTies verifies equal keys come from left before right.
func TestMergeLeftWinsTies(t *testing.T) {
	left := []tagged{{1, 'L', 0}, {1, 'L', 1}, {2, 'L', 2}}
	right := []tagged{{1, 'R', 0}, {2, 'R', 1}, {2, 'R', 2}}
	got := Merge(left, right, func(r tagged) uint64 { return r.key })

	want := []tagged{
		{1, 'L', 0}, {1, 'L', 1}, {1, 'R', 0},
		{2, 'L', 2}, {2, 'R', 1}, {2, 'R', 2},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Merge tie order = %v, want %v", got, want)
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	left := []uint64{1, 4, 9}
	right := []uint64{2, 3}
	_ = Merge(left, right, identity)
	if !slices.Equal(left, []uint64{1, 4, 9}) || !slices.Equal(right, []uint64{2, 3}) {
		t.Errorf("inputs modified: left=%v right=%v", left, right)
	}
}
