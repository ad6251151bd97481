package treesort

import (
	"encoding/binary"

	sorterrors "github.com/tamirms/treesort/errors"
	"github.com/tamirms/treesort/internal/fingerprint"
)

const (
	// runMagic identifies treesort run files: "TSRT" in little-endian.
	runMagic = uint32(0x54525354)

	// runVersion is the current run file format version.
	runVersion = uint16(0x0001)

	// runHeaderSize is the exact size of the serialized header (32 bytes).
	runHeaderSize = 32

	// runFooterSize is the exact size of the serialized footer (32 bytes).
	runFooterSize = 32

	// runFlagSorted marks a file whose values are non-decreasing.
	runFlagSorted = uint16(1 << 0)
)

// runHeader is the 32-byte run file header.
//
// Layout:
//
//	Offset  Size  Field    Type
//	0       4     Magic    0x54525354 ("TSRT")
//	4       2     Version  0x0001
//	6       2     Flags    uint16_le (bit 0: values sorted)
//	8       8     Count    uint64_le (number of values)
//	16      16    Reserved [16]byte (zero)
//
// The value region follows immediately: Count little-endian uint64s.
type runHeader struct {
	Magic    uint32
	Version  uint16
	Flags    uint16
	Count    uint64
	Reserved [16]byte
}

func (h *runHeader) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	binary.LittleEndian.PutUint64(buf[8:16], h.Count)
	copy(buf[16:32], h.Reserved[:])
}

func decodeRunHeader(buf []byte) (*runHeader, error) {
	if len(buf) < runHeaderSize {
		return nil, sorterrors.ErrTruncatedFile
	}

	h := &runHeader{
		Magic:   binary.LittleEndian.Uint32(buf[0:4]),
		Version: binary.LittleEndian.Uint16(buf[4:6]),
		Flags:   binary.LittleEndian.Uint16(buf[6:8]),
		Count:   binary.LittleEndian.Uint64(buf[8:16]),
	}
	copy(h.Reserved[:], buf[16:32])

	if h.Magic != runMagic {
		return nil, sorterrors.ErrInvalidMagic
	}
	if h.Version != runVersion {
		return nil, sorterrors.ErrInvalidVersion
	}
	if h.Flags&^runFlagSorted != 0 {
		return nil, sorterrors.ErrCorruptedFile
	}
	return h, nil
}

func (h *runHeader) sorted() bool {
	return h.Flags&runFlagSorted != 0
}

// runFooter is the 32-byte run file footer.
//
// Layout:
//
//	Offset  Size  Field        Type
//	0       8     ValuesHash   uint64_le (xxHash64 of the value region)
//	8       24    Fingerprint  count, sum, xor (xxh3 multiset fingerprint)
type runFooter struct {
	ValuesHash  uint64
	Fingerprint fingerprint.Fingerprint
}

func (f *runFooter) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.ValuesHash)
	f.Fingerprint.EncodeTo(buf[8 : 8+fingerprint.Size])
}

func decodeRunFooter(buf []byte) (*runFooter, error) {
	if len(buf) < runFooterSize {
		return nil, sorterrors.ErrTruncatedFile
	}
	return &runFooter{
		ValuesHash:  binary.LittleEndian.Uint64(buf[0:8]),
		Fingerprint: fingerprint.Decode(buf[8 : 8+fingerprint.Size]),
	}, nil
}
