package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when a stored row cannot be normalized
	// into a valid domain record. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrReadFailed is returned when the underlying store could not be
	// read. This is distinct from an empty result: callers must never
	// treat a read failure as "no entries".
	ErrReadFailed = errors.New("store read failed")
)

// StoreError carries the entity and operation that failed alongside the
// underlying cause.
type StoreError struct {
	Entity    string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As checks.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError wrapping the given cause.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
