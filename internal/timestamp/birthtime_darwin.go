//go:build darwin

package timestamp

import (
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func birthTime(path string) (time.Time, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, false
	}
	ts := syscall.Timespec{Sec: st.Birthtimespec.Sec, Nsec: st.Birthtimespec.Nsec}
	if ts.Sec == 0 && ts.Nsec == 0 {
		return time.Time{}, false
	}
	return time.Unix(ts.Sec, ts.Nsec), true
}
