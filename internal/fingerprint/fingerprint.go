// Package fingerprint computes an order-independent fingerprint of a
// multiset of keys.
//
// Each key is hashed with xxHash3 and the hashes are combined with
// commutative operations (wrapping sum and xor), so any permutation of the
// same keys yields the same Fingerprint. Comparing the fingerprint of a
// sort's input with that of its output detects dropped or duplicated
// elements without retaining a copy of the input.
package fingerprint

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// Size is the encoded size of a Fingerprint in bytes.
const Size = 24

// Fingerprint summarizes a multiset of keys.
type Fingerprint struct {
	Count uint64
	Sum   uint64
	Xor   uint64
}

// Of returns the fingerprint of the keys of data.
func Of[T any](data []T, key func(T) uint64) Fingerprint {
	var f Fingerprint
	for _, v := range data {
		f.Add(key(v))
	}
	return f
}

// Add folds one key into the fingerprint.
func (f *Fingerprint) Add(k uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], k)
	h := xxh3.Hash(buf[:])
	f.Count++
	f.Sum += h
	f.Xor ^= h
}

// Combine folds another fingerprint into f, as if its keys had been added.
func (f *Fingerprint) Combine(o Fingerprint) {
	f.Count += o.Count
	f.Sum += o.Sum
	f.Xor ^= o.Xor
}

// EncodeTo writes the fingerprint as three little-endian uint64s.
// buf must be at least Size bytes.
func (f Fingerprint) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.Count)
	binary.LittleEndian.PutUint64(buf[8:16], f.Sum)
	binary.LittleEndian.PutUint64(buf[16:24], f.Xor)
}

// Decode parses a fingerprint written by EncodeTo.
func Decode(buf []byte) Fingerprint {
	return Fingerprint{
		Count: binary.LittleEndian.Uint64(buf[0:8]),
		Sum:   binary.LittleEndian.Uint64(buf[8:16]),
		Xor:   binary.LittleEndian.Uint64(buf[16:24]),
	}
}
