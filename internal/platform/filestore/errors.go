package filestore

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence matches every *PersistenceError through errors.Is.
	ErrPersistence = errors.New("persistence failed")

	// ErrInvalidKey is returned for output keys that cannot be used as a
	// file name.
	ErrInvalidKey = errors.New("invalid output key")
)

// PersistenceError reports a document file that could not be written or
// removed.
type PersistenceError struct {
	Key  string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s at %s: %v", e.Key, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPersistence) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
