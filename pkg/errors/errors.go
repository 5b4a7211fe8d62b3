// Package errors provides structured error types for netfile.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the store and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Load and save failures map onto four recoverable categories:
//   - NOT_FOUND: the path does not reference a regular file
//   - UNREADABLE: neither format family parses, or the result is not a mapping
//   - UNKNOWN_VERSION: a version tag is present but no codec handles it
//   - SAVE_FAILED: an I/O or encode error occurred while writing
//
// None of them should terminate the host process. Callers treat a failed
// load as "abort this load, keep prior state".
//
// # Usage
//
//	doc, err := store.Load(path)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // Nothing to open
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSaveFailed, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Load errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeUnreadable     Code = "UNREADABLE"
	ErrCodeUnknownVersion Code = "UNKNOWN_VERSION"

	// Save errors
	ErrCodeSaveFailed Code = "SAVE_FAILED"

	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidVersion  Code = "INVALID_VERSION"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
// Only the outermost *Error is consulted.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
