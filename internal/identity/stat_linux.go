//go:build linux

package identity

import (
	"time"

	"golang.org/x/sys/unix"
)

// statTimes returns the inode change time and last access time. The stdlib
// FileInfo only exposes mtime, so this goes through the raw stat syscall.
func statTimes(path string, fallback time.Time) (created, accessed time.Time) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return fallback, fallback
	}
	created = time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	accessed = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	return created, accessed
}
