package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrValidationFailed indicates that the caller supplied invalid input.
	// Every *ValidationError matches it with errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrStorage indicates that the underlying store failed.
	// Every *StorageError matches it with errors.Is.
	ErrStorage = errors.New("storage error")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// StorageError wraps a failure of the relational store.
// Op names the statement intent, e.g. "news.delete".
type StorageError struct {
	Op  string
	Err error
}

// Error returns the operation and the underlying cause.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

// Unwrap exposes the driver error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err unless it is nil or already a *StorageError.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
