// Package errors provides coded error types shared by the floor-plan packages.
//
// Codes are machine-readable and map onto HTTP statuses in the handlers:
//
//	err := errors.New(errors.ErrCodeInvalidInput, "capacity must be positive, got %d", c)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // 400
//	}
package errors

import (
	"errors"
	"fmt"
)

// ============================================================
// Codes
// ============================================================

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput          Code = "INVALID_INPUT"
	ErrCodeNotFound              Code = "NOT_FOUND"
	ErrCodeConflict              Code = "CONFLICT"
	ErrCodeInsufficientSelection Code = "INSUFFICIENT_SELECTION"
	ErrCodeInvalidState          Code = "INVALID_STATE"
	ErrCodeCommitFailed          Code = "COMMIT_FAILED"
	ErrCodeInternal              Code = "INTERNAL_ERROR"
)

// ============================================================
// Error
// ============================================================

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, or "" if it carries none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
