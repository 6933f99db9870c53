package attrkit

import (
	"errors"
	"fmt"

	"github.com/attrkit/attrkit/field"
)

// Standard sentinel errors for common failures.
var (
	// ErrMissingField is returned when a required field has no value.
	ErrMissingField = errors.New("attrkit: missing required field")

	// ErrImmutable is returned when mutating an immutable field that
	// already holds a value.
	ErrImmutable = errors.New("attrkit: field is immutable")

	// ErrUnknownField is returned when accessing a field that was never
	// declared on the schema.
	ErrUnknownField = errors.New("attrkit: unknown field")

	// ErrDuplicateField is returned when a schema declares the same field
	// name twice.
	ErrDuplicateField = errors.New("attrkit: duplicate field")
)

// MissingFieldError represents a required field absent at construction.
type MissingFieldError struct {
	Field string // Field name
}

// Error returns the error string.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("attrkit: missing required field %q", e.Field)
}

// Is reports whether the target error matches MissingFieldError.
// This allows errors.Is(err, ErrMissingField) to return true.
func (e *MissingFieldError) Is(err error) bool {
	return err == ErrMissingField
}

// NewMissingFieldError returns a new MissingFieldError for the given field.
func NewMissingFieldError(name string) *MissingFieldError {
	return &MissingFieldError{Field: name}
}

// IsMissingField returns true if the error is a MissingFieldError.
func IsMissingField(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingFieldError
	return errors.As(err, &e) || errors.Is(err, ErrMissingField)
}

// CoercionError represents a raw value that cannot be converted to the
// declared type of its field.
type CoercionError struct {
	Field string     // Field name
	Value any        // Raw value as supplied
	Type  field.Type // Declared type of the field
	Err   error      // Underlying conversion error, if any
}

// Error returns the error string.
func (e *CoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attrkit: cannot coerce %v (%T) to %s for field %q: %s",
			e.Value, e.Value, e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("attrkit: cannot coerce %v (%T) to %s for field %q",
		e.Value, e.Value, e.Type, e.Field)
}

// Unwrap returns the underlying error.
func (e *CoercionError) Unwrap() error {
	return e.Err
}

// NewCoercionError returns a new CoercionError for the given field.
func NewCoercionError(name string, value any, t field.Type, err error) *CoercionError {
	return &CoercionError{Field: name, Value: value, Type: t, Err: err}
}

// IsCoercion returns true if the error is a CoercionError.
func IsCoercion(err error) bool {
	if err == nil {
		return false
	}
	var e *CoercionError
	return errors.As(err, &e)
}

// ValidationError represents a coerced value failing a declared predicate.
type ValidationError struct {
	Field string // Field name
	Err   error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("attrkit: validator failed for field %q: %s", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given field.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Field: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// ImmutableFieldError represents a mutation of an immutable field that
// already holds a value.
type ImmutableFieldError struct {
	Field string // Field name
}

// Error returns the error string.
func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("attrkit: field %q is immutable", e.Field)
}

// Is reports whether the target error matches ImmutableFieldError.
// This allows errors.Is(err, ErrImmutable) to return true.
func (e *ImmutableFieldError) Is(err error) bool {
	return err == ErrImmutable
}

// NewImmutableFieldError returns a new ImmutableFieldError for the given field.
func NewImmutableFieldError(name string) *ImmutableFieldError {
	return &ImmutableFieldError{Field: name}
}

// IsImmutableField returns true if the error is an ImmutableFieldError.
func IsImmutableField(err error) bool {
	if err == nil {
		return false
	}
	var e *ImmutableFieldError
	return errors.As(err, &e) || errors.Is(err, ErrImmutable)
}

// DuplicateFieldError represents a redefinition of a field name on the
// same schema.
type DuplicateFieldError struct {
	Field string // Field name
}

// Error returns the error string.
func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("attrkit: duplicate field %q", e.Field)
}

// Is reports whether the target error matches DuplicateFieldError.
// This allows errors.Is(err, ErrDuplicateField) to return true.
func (e *DuplicateFieldError) Is(err error) bool {
	return err == ErrDuplicateField
}

// NewDuplicateFieldError returns a new DuplicateFieldError for the given field.
func NewDuplicateFieldError(name string) *DuplicateFieldError {
	return &DuplicateFieldError{Field: name}
}

// IsDuplicateField returns true if the error is a DuplicateFieldError.
func IsDuplicateField(err error) bool {
	if err == nil {
		return false
	}
	var e *DuplicateFieldError
	return errors.As(err, &e) || errors.Is(err, ErrDuplicateField)
}

// UnknownFieldError represents an access to a field that was never declared.
type UnknownFieldError struct {
	Field string // Field name
}

// Error returns the error string.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("attrkit: unknown field %q", e.Field)
}

// Is reports whether the target error matches UnknownFieldError.
// This allows errors.Is(err, ErrUnknownField) to return true.
func (e *UnknownFieldError) Is(err error) bool {
	return err == ErrUnknownField
}

// NewUnknownFieldError returns a new UnknownFieldError for the given field.
func NewUnknownFieldError(name string) *UnknownFieldError {
	return &UnknownFieldError{Field: name}
}

// IsUnknownField returns true if the error is an UnknownFieldError.
func IsUnknownField(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownFieldError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownField)
}
