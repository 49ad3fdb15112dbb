//go:build !windows

package transfer

import (
	"io"
	"os"
)

// platformCopy copies src to dest using the standard library, which yields
// the number of bytes written directly.
func platformCopy(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	written, err := io.Copy(out, in)
	if err != nil {
		return written, err
	}
	if err := out.Sync(); err != nil {
		return written, err
	}
	return written, nil
}
