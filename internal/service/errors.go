package service

import (
	"errors"
	"fmt"
)

// ErrNotFound marks an entity lookup miss so the API layer can answer 404
// instead of 500. Wrap it with context: fmt.Errorf("project %d: %w", id,
// ErrNotFound).
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed input; the API layer maps it
// to 400. Fields carries optional per-field messages.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
