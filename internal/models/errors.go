package models

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound is returned when no profile exists for a user ID.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrTripNotFound is returned when no active trip exists for a user ID.
	// Callers must treat this distinctly from an empty match result.
	ErrTripNotFound = errors.New("trip not found")
)

// ValidationError reports a rejected field before any store mutation happens.
// The Field name lets the caller re-prompt for exactly the bad input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
