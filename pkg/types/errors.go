package types

import (
	"errors"
	"fmt"
)

// ValidationError reports bad caller input: a missing required property,
// a value that does not match its data type, a malformed schema. The
// message is caller-visible; the access layer maps it to a 400 response.
// Detected before the first persistence call, it guarantees no mutation
// was performed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
