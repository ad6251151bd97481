//go:build darwin

package treesort

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves disk blocks for a run file before it is memory-mapped,
// so a full disk fails here instead of raising SIGBUS during writes.
// On macOS, uses fcntl F_PREALLOCATE; filesystems that reject it fall back to
// a plain ftruncate.
func fallocateFile(file *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Length:  size,
	}
	err := unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst)
	if errors.Is(err, unix.ENOSPC) {
		return err
	}
	// F_PREALLOCATE only reserves space; the size is set separately.
	return unix.Ftruncate(int(file.Fd()), size)
}
