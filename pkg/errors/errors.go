// Package errors provides structured error types for the neuroreport application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes distinguish failures that abort a whole report run (INVALID_CONFIG)
// from failures that only cost a single artifact (READER_FAILURE,
// EMPTY_SLICE_RANGE, RENDER_FAILURE) and from conditions recovered locally
// with a fallback (MISSING_ASSET).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeReaderFailure, "read events from %s", path)
//	if errors.Is(err, errors.ErrCodeReaderFailure) {
//	    // skip this artifact, keep scanning
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load session info %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors abort the whole run.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Per-artifact errors are caught at the artifact boundary.
	ErrCodeReaderFailure   Code = "READER_FAILURE"
	ErrCodeRenderFailure   Code = "RENDER_FAILURE"
	ErrCodeEmptySliceRange Code = "EMPTY_SLICE_RANGE"
	ErrCodeUnsupported     Code = "UNSUPPORTED_ARTIFACT"

	// Recoverable conditions, resolved by a local fallback.
	ErrCodeMissingAsset Code = "MISSING_ASSET"

	// Unexpected internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// Fatal reports whether err should abort the whole report run instead of
// costing only the artifact being rendered.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidConfig, ErrCodeInternal:
		return true
	}
	return false
}
