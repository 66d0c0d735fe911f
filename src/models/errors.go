package models

import "errors"

// ErrNotFound covers both a genuinely missing row and a row owned by another
// user; callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ValidationError marks caller input that violates a documented constraint.
// The message is safe to return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
