// Package encoding converts between uint64 values and their fixed-width
// little-endian byte representation used in run files.
package encoding

import "encoding/binary"

// ValueSize is the encoded width of one value in bytes.
const ValueSize = 8

// PutValues writes values to dst as consecutive little-endian uint64s and
// returns the number of bytes written. dst must hold len(values)*ValueSize
// bytes.
func PutValues(dst []byte, values []uint64) int {
	for i, v := range values {
		binary.LittleEndian.PutUint64(dst[i*ValueSize:], v)
	}
	return len(values) * ValueSize
}

// ValueAt reads the i-th little-endian uint64 from buf.
func ValueAt(buf []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(buf[i*ValueSize:])
}

// Values decodes every value in buf into dst and returns dst.
// len(buf) must be a multiple of ValueSize and dst must have room for
// len(buf)/ValueSize values.
func Values(dst []uint64, buf []byte) []uint64 {
	n := len(buf) / ValueSize
	dst = dst[:n]
	for i := range n {
		dst[i] = binary.LittleEndian.Uint64(buf[i*ValueSize:])
	}
	return dst
}
