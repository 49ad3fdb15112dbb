// Package undo reverses a single recorded transfer: a file currently at its
// destination is moved back to its original source location.
package undo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eddybean/filo/internal/transfer"
)

// Undo moves the file at destination back to source. It fails if
// destination does not exist, or if a file already occupies source; on
// success it creates source's parent directory as needed and performs the
// reverse transfer through the same primitive the engine uses, so
// cross-device undo works identically to a cross-device move.
func Undo(source, destination string) error {
	destInfo, err := os.Stat(destination)
	if err != nil {
		return fmt.Errorf("File no longer exists at destination: %w", err)
	}
	if _, err := os.Stat(source); err == nil {
		return fmt.Errorf("File already exists at original location: %s", source)
	}

	if err := os.MkdirAll(filepath.Dir(source), 0o755); err != nil {
		return fmt.Errorf("%s", transfer.ClassifyError(err))
	}

	if err := transfer.MoveFile(destination, source, destInfo.Size()); err != nil {
		return fmt.Errorf("%s", transfer.ClassifyError(err))
	}
	return nil
}
