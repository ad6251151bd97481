package treesort

import (
	"encoding/binary"
	"hash/fnv"
	randv2 "math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

// randomValues returns n values in [0, maxValue).
func randomValues(rng *randv2.Rand, n int, maxValue uint64) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		values[i] = rng.Uint64N(maxValue)
	}
	return values
}

// tagged carries its input position so tests can check tie order.
type tagged struct {
	key uint64
	tag int
}

func taggedKey(v tagged) uint64 { return v.key }

func tag(keys []uint64) []tagged {
	out := make([]tagged, len(keys))
	for i, k := range keys {
		out[i] = tagged{key: k, tag: i}
	}
	return out
}

// requireStableOrder fails unless got is sorted by key with equal keys in
// ascending tag order.
func requireStableOrder(t *testing.T, got []tagged) {
	t.Helper()
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.key > cur.key {
			t.Fatalf("index %d: key %d after %d", i, cur.key, prev.key)
		}
		if prev.key == cur.key && prev.tag > cur.tag {
			t.Fatalf("index %d: key %d has tag %d after tag %d", i, cur.key, cur.tag, prev.tag)
		}
	}
}
