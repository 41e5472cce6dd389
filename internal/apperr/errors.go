package apperr

import (
	"errors"
	"fmt"
)

// Input validation conditions raised by the ranking and evaluation core.
var (
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrEmptyInput    = errors.New("empty input")
	ErrInvalidRange  = errors.New("invalid range")
	ErrQueryMismatch = errors.New("query mismatch")
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

func ShapeMismatch(format string, args ...any) *ValidationError {
	return NewValidationWrap(fmt.Sprintf(format, args...), ErrShapeMismatch)
}

func EmptyInput(format string, args ...any) *ValidationError {
	return NewValidationWrap(fmt.Sprintf(format, args...), ErrEmptyInput)
}

func InvalidRange(format string, args ...any) *ValidationError {
	return NewValidationWrap(fmt.Sprintf(format, args...), ErrInvalidRange)
}

func QueryMismatch(format string, args ...any) *ValidationError {
	return NewValidationWrap(fmt.Sprintf(format, args...), ErrQueryMismatch)
}
