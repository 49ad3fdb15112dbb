//go:build windows

package filter

import (
	"os"
	"syscall"
	"time"
)

// createdAt extracts the creation time Windows tracks natively for every
// file, via the syscall.Win32FileAttributeData the standard library
// populates in os.FileInfo.Sys().
func createdAt(info os.FileInfo) (time.Time, bool) {
	attrs, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, attrs.CreationTime.Nanoseconds()), true
}
