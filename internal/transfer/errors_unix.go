//go:build !windows

package transfer

import (
	"errors"
	"syscall"
)

func isCrossDeviceError(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

func isDiskFullError(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
