//go:build linux

package treesort

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves disk blocks for a run file before it is memory-mapped,
// so a full disk fails here instead of raising SIGBUS during writes.
// Filesystems without fallocate support (NFS, some FUSE mounts) fall back to
// a plain ftruncate, which sets the size without reserving blocks.
func fallocateFile(file *os.File, size int64) error {
	fd := int(file.Fd())
	err := unix.Fallocate(fd, 0, 0, size)
	if err != nil && !errors.Is(err, unix.EOPNOTSUPP) && !errors.Is(err, unix.ENOSYS) && !errors.Is(err, unix.EINVAL) {
		return err
	}
	// Fallocate with mode 0 extends the file, but a zero-length reservation
	// does not, and the fallback path needs the size set either way.
	return unix.Ftruncate(fd, size)
}
