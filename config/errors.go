package config

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrNotFound is returned when a requested key exists in no source and
	// has no environment override.
	ErrNotFound = errors.New("config: key not found")

	// ErrRequired marks a missing required key in the error returned by
	// Verify.
	ErrRequired = errors.New("config: required key not found in environment or configuration sources")
)

// NotFoundError represents a lookup of a key that exists nowhere.
type NotFoundError struct {
	Key string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config: key %q not found", e.Key)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// NewNotFoundError returns a new NotFoundError for the given key.
func NewNotFoundError(key string) *NotFoundError {
	return &NotFoundError{Key: key}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
