package treesort

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	sorterrors "github.com/tamirms/treesort/errors"
	"github.com/tamirms/treesort/internal/encoding"
	"github.com/tamirms/treesort/internal/fingerprint"
)

// RunWriter writes a run file through a memory-mapped, preallocated region.
// File layout: [Header 32B][Values Count×8B][Footer 32B]
//
// The value count is fixed at creation. Values are appended in order; the
// writer tracks whether they arrive non-decreasing and records that in the
// header. A RunWriter is not safe for concurrent use.
type RunWriter struct {
	file *os.File
	mmap mmap.MMap
	data []byte

	count   uint64
	written uint64
	sorted  bool
	last    uint64

	// Streaming hashers, updated while the appended values are hot in cache.
	valuesHasher *xxhash.Digest
	fp           fingerprint.Fingerprint
}

// CreateRunFile creates path and prepares it to hold exactly count values.
func CreateRunFile(path string, count uint64) (*RunWriter, error) {
	size := int64(runHeaderSize + count*encoding.ValueSize + runFooterSize)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create run file: %w", err)
	}

	// Pre-allocate disk blocks to prevent SIGBUS on disk full.
	if err := fallocateFile(file, size); err != nil {
		primaryErr := fmt.Errorf("allocate run file: %w", err)
		return nil, errors.Join(primaryErr, file.Close())
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("mmap run file: %w", err)
		return nil, errors.Join(primaryErr, file.Close())
	}

	w := &RunWriter{
		file:         file,
		mmap:         mm,
		data:         []byte(mm),
		count:        count,
		sorted:       true,
		valuesHasher: xxhash.New(),
	}
	prefaultRegion(w.data[runHeaderSize : runHeaderSize+count*encoding.ValueSize])
	return w, nil
}

// Append writes values after those already written.
// Returns ErrCountMismatch if this would exceed the declared count.
func (w *RunWriter) Append(values []uint64) error {
	if w.mmap == nil {
		return sorterrors.ErrRunFileClosed
	}
	if w.written+uint64(len(values)) > w.count {
		return fmt.Errorf("%w: append of %d exceeds count %d (written %d)",
			sorterrors.ErrCountMismatch, len(values), w.count, w.written)
	}
	if len(values) == 0 {
		return nil
	}

	offset := runHeaderSize + w.written*encoding.ValueSize
	n := encoding.PutValues(w.data[offset:], values)
	if _, err := w.valuesHasher.Write(w.data[offset : offset+uint64(n)]); err != nil {
		panic("hash.Hash.Write returned unexpected error: " + err.Error())
	}

	for _, v := range values {
		if w.sorted && w.written > 0 && v < w.last {
			w.sorted = false
		}
		w.fp.Add(v)
		w.last = v
		w.written++
	}
	return nil
}

// Finish writes the header and footer, flushes, and closes the file.
// Returns ErrCountMismatch if fewer values than declared were appended.
// On error the file is closed but left on disk.
func (w *RunWriter) Finish() error {
	if w.mmap == nil {
		return sorterrors.ErrRunFileClosed
	}
	if w.written != w.count {
		primaryErr := fmt.Errorf("%w: wrote %d of %d values", sorterrors.ErrCountMismatch, w.written, w.count)
		return errors.Join(primaryErr, w.Close())
	}

	hdr := runHeader{
		Magic:   runMagic,
		Version: runVersion,
		Count:   w.count,
	}
	if w.sorted {
		hdr.Flags |= runFlagSorted
	}
	hdr.encodeTo(w.data[0:runHeaderSize])

	ftr := runFooter{
		ValuesHash:  w.valuesHasher.Sum64(),
		Fingerprint: w.fp,
	}
	footerOffset := runHeaderSize + w.count*encoding.ValueSize
	ftr.encodeTo(w.data[footerOffset : footerOffset+runFooterSize])

	// Flush dirty pages to file (ensures writes visible before unmap)
	if err := w.mmap.Flush(); err != nil {
		primaryErr := fmt.Errorf("mmap flush failed: %w", err)
		return errors.Join(primaryErr, w.Close())
	}

	unmapErr := w.mmap.Unmap()
	w.mmap = nil
	w.data = nil
	if unmapErr != nil {
		primaryErr := fmt.Errorf("mmap unmap failed: %w", unmapErr)
		return errors.Join(primaryErr, w.Close())
	}

	closeErr := w.file.Close()
	w.file = nil
	return closeErr
}

// Close releases the writer without finalizing (for error cleanup).
// Idempotent: safe to call multiple times, and after Finish.
func (w *RunWriter) Close() error {
	var unmapErr error
	if w.mmap != nil {
		unmapErr = w.mmap.Unmap()
		w.mmap = nil
		w.data = nil
	}
	var closeErr error
	if w.file != nil {
		closeErr = w.file.Close()
		w.file = nil
	}
	return errors.Join(unmapErr, closeErr)
}

// WriteRunFile writes values to a new run file at path.
func WriteRunFile(path string, values []uint64) error {
	w, err := CreateRunFile(path, uint64(len(values)))
	if err != nil {
		return err
	}
	if err := w.Append(values); err != nil {
		return errors.Join(err, w.Close())
	}
	return w.Finish()
}
