// Package errors defines all exported error sentinels for the treesort library.
//
// This is the single source of truth for error values. Both the top-level
// treesort package and the internal sorting packages import from here,
// ensuring errors.Is checks work across package boundaries.
package errors

import "errors"

// Configuration errors
var (
	ErrInvalidWorkers  = errors.New("treesort: worker count must be positive")
	ErrInvalidStrategy = errors.New("treesort: unknown local sort strategy")
)

// Sort errors
var (
	ErrValueRangeTooLarge = errors.New("treesort: value range exceeds counting sort limit")
	ErrWorkerPanic        = errors.New("treesort: worker panicked")
	ErrChunkBusy          = errors.New("treesort: chunk is already checked out")
	ErrChunkMissing       = errors.New("treesort: chunk slot is empty")
	ErrVerifyFailed       = errors.New("treesort: sorted output failed verification")
)

// Run file errors
var (
	ErrInvalidMagic   = errors.New("treesort: invalid run file magic number")
	ErrInvalidVersion = errors.New("treesort: unsupported run file version")
	ErrTruncatedFile  = errors.New("treesort: run file is truncated")
	ErrCorruptedFile  = errors.New("treesort: run file data is corrupted")
	ErrChecksumFailed = errors.New("treesort: run file checksum verification failed")
	ErrRunFileClosed  = errors.New("treesort: run file is closed")
	ErrCountMismatch  = errors.New("treesort: run file value count mismatch")
)
