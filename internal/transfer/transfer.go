// Package transfer implements the file-transfer state machine the engine
// drives: verified copy, atomic-rename-with-cross-device-fallback move, and
// error classification into short human-readable prefixes.
package transfer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CopyAndVerify copies src to dest using the platform copy primitive, then
// confirms the number of bytes written matches expectedSize. On any
// failure the partially written destination is removed on a best-effort
// basis before the error is returned.
func CopyAndVerify(src, dest string, expectedSize int64) error {
	copied, err := platformCopy(src, dest)
	if err != nil {
		os.Remove(dest)
		return err
	}
	if copied != expectedSize {
		os.Remove(dest)
		return fmt.Errorf("incomplete copy: wrote %d bytes, expected %d", copied, expectedSize)
	}
	return nil
}

// MoveFile attempts an atomic rename of src to dest. If the rename fails
// because source and destination are on different devices, it falls back
// to CopyAndVerify followed by removing src. Any other rename error
// (including a not-found source) propagates unchanged — in particular a
// NotFound error never triggers the copy fallback.
func MoveFile(src, dest string, expectedSize int64) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !isCrossDeviceError(err) {
		return err
	}
	if copyErr := CopyAndVerify(src, dest, expectedSize); copyErr != nil {
		return copyErr
	}
	return os.Remove(src)
}

// ClassifyError maps err to a short human-readable prefix based on its
// underlying kind, followed by the raw error message.
func ClassifyError(err error) string {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("Permission denied: %v", err)
	case isDiskFullError(err):
		return fmt.Sprintf("Disk full: %v", err)
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("File not found: %v", err)
	case isCrossDeviceError(err):
		return fmt.Sprintf("Cross-device operation failed: %v", err)
	default:
		return fmt.Sprintf("Operation failed: %v", err)
	}
}
