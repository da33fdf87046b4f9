// Package validation implements the consistency rules between projects,
// sprints and tasks. Every mutation entry point runs the relevant checks
// inside its transaction; the first violation aborts the whole write.
package validation

import (
	"errors"
	"fmt"
)

// Error is a validation rejection carrying a human-readable message.
// Callers surface the message verbatim to the end user.
type Error struct {
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Errorf creates a new validation rejection with a formatted message
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a validation rejection
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
