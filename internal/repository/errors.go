package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage marks failures of the underlying database, as opposed to
	// missing rows or rejected input.
	ErrStorage = errors.New("storage failure")

	// ErrHierarchyCorrupt is returned when a folder walk meets a cycle or
	// exceeds MaxFolderDepth.
	ErrHierarchyCorrupt = fmt.Errorf("%w: folder hierarchy is corrupt", ErrStorage)
)

// MaxFolderDepth bounds every recursive folder walk
const MaxFolderDepth = 256

func storageError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStorage, err)
}
