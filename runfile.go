package treesort

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	sorterrors "github.com/tamirms/treesort/errors"
	"github.com/tamirms/treesort/internal/encoding"
	"github.com/tamirms/treesort/internal/fingerprint"
)

// RunFile is a read-only view of a run file.
//
// Thread Safety:
// - Len, At, Values, IsSorted and Verify are safe for concurrent use
// - Close must only be called after all reads have completed
// - After Close returns, reads return ErrRunFileClosed or panic
type RunFile struct {
	mmap mmap.MMap
	data []byte

	header *runHeader
	values []byte // View of the value region

	closed atomic.Bool
}

// OpenRunFile opens a run file by memory-mapping it.
// The file descriptor is closed before OpenRunFile returns.
func OpenRunFile(path string) (*RunFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat run file: %w", err)
	}
	if stat.Size() < runHeaderSize+runFooterSize {
		return nil, sorterrors.ErrTruncatedFile
	}

	// Readers scan the value region front to back.
	fadviseSequential(int(file.Fd()), 0, stat.Size())

	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap run file: %w", err)
	}

	rf := &RunFile{
		mmap: mm,
		data: []byte(mm),
	}
	if err := rf.initFromData(); err != nil {
		return nil, errors.Join(err, rf.Close())
	}
	return rf, nil
}

// OpenRunFileBytes reads a run file from an in-memory byte slice.
// No file is memory-mapped; Close is a no-op.
// The caller must not modify data while the RunFile is in use.
func OpenRunFileBytes(data []byte) (*RunFile, error) {
	if len(data) < runHeaderSize+runFooterSize {
		return nil, sorterrors.ErrTruncatedFile
	}
	rf := &RunFile{data: data}
	if err := rf.initFromData(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *RunFile) initFromData() error {
	hdr, err := decodeRunHeader(rf.data[:runHeaderSize])
	if err != nil {
		return err
	}

	size := uint64(len(rf.data))
	maxCount := (size - runHeaderSize - runFooterSize) / encoding.ValueSize
	if hdr.Count > maxCount {
		return sorterrors.ErrTruncatedFile
	}
	if runHeaderSize+hdr.Count*encoding.ValueSize+runFooterSize != size {
		return sorterrors.ErrCorruptedFile
	}

	rf.header = hdr
	rf.values = rf.data[runHeaderSize : runHeaderSize+hdr.Count*encoding.ValueSize]
	return nil
}

// Close releases the mapping. Safe to call multiple times.
func (rf *RunFile) Close() error {
	if rf.closed.Swap(true) {
		return nil
	}
	if rf.mmap != nil {
		return rf.mmap.Unmap()
	}
	return nil
}

// Len returns the number of values in the file.
func (rf *RunFile) Len() int {
	return int(rf.header.Count)
}

// IsSorted reports whether the writer recorded the values as non-decreasing.
// Use Verify to check the claim against the data.
func (rf *RunFile) IsSorted() bool {
	return rf.header.sorted()
}

// At returns the i-th value. Panics if i is out of range.
func (rf *RunFile) At(i int) uint64 {
	return encoding.ValueAt(rf.values, i)
}

// Values copies every value out of the file.
func (rf *RunFile) Values() ([]uint64, error) {
	if rf.closed.Load() {
		return nil, sorterrors.ErrRunFileClosed
	}
	return encoding.Values(make([]uint64, rf.Len()), rf.values), nil
}

// Verify checks the value region against the footer: its xxHash64, its
// multiset fingerprint, and, when the header claims so, sortedness.
//
// The footer is decoded on each Verify call rather than at open time.
func (rf *RunFile) Verify() error {
	if rf.closed.Load() {
		return sorterrors.ErrRunFileClosed
	}

	ftr, err := decodeRunFooter(rf.data[len(rf.data)-runFooterSize:])
	if err != nil {
		return err
	}

	if xxhash.Sum64(rf.values) != ftr.ValuesHash {
		return sorterrors.ErrChecksumFailed
	}

	var fp fingerprint.Fingerprint
	n := rf.Len()
	var prev uint64
	for i := range n {
		v := encoding.ValueAt(rf.values, i)
		if rf.header.sorted() && i > 0 && v < prev {
			return fmt.Errorf("%w: sorted flag set but index %d is out of order", sorterrors.ErrCorruptedFile, i)
		}
		fp.Add(v)
		prev = v
	}
	if fp != ftr.Fingerprint {
		return sorterrors.ErrChecksumFailed
	}
	return nil
}
