//go:build !linux && !darwin

package treesort

import "os"

// fallocateFile reserves disk blocks for a run file before it is memory-mapped,
// so a full disk fails here instead of raising SIGBUS during writes.
// On platforms without native fallocate, uses Truncate as a fallback.
// Note: This sets file size but may not reserve actual disk blocks on all filesystems.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
