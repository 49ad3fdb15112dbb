//go:build windows

package transfer

import (
	"errors"
	"syscall"
)

// Windows system error codes not exposed as syscall constants.
const (
	errNotSameDevice = syscall.Errno(17)  // ERROR_NOT_SAME_DEVICE
	errDiskFull      = syscall.Errno(112) // ERROR_DISK_FULL
)

func isCrossDeviceError(err error) bool {
	return errors.Is(err, errNotSameDevice)
}

func isDiskFullError(err error) bool {
	return errors.Is(err, errDiskFull)
}
