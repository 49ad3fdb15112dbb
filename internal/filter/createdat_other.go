//go:build !windows && !darwin

package filter

import (
	"os"
	"time"
)

// createdAt reports whether a creation ("birth") timestamp is available for
// info. Most Linux filesystems and the syscall.Stat_t the standard library
// exposes there carry no birth time, only change/modify times, so this
// platform always reports unavailable; callers must then reject rather than
// silently falling back to modification time.
func createdAt(info os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
