package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-policy input. No state changes.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown day, task entry, interval or catalog task.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks a failure of the underlying persistence layer.
	ErrStorage = errors.New("storage failure")

	// ErrConflict indicates the stored document changed between read and write
	// and the retry budget was exhausted.
	ErrConflict = errors.New("concurrent modification")
)

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing entity and the key it was looked up by.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: not found", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StorageError wraps a driver-level failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
