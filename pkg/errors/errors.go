// Package errors provides structured error types for the planogram editor.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI, API, and the editing core
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - CAPACITY_*/HEIGHT_*/TYPE_*: placement constraint failures
//   - INVALID_*: input validation failures and dangling references
//   - *_NOT_FOUND: resource not found
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCapacityExceeded, "row %s is full", rowID)
//	if errors.Is(err, errors.ErrCodeCapacityExceeded) {
//	    // Handle the rejected edit
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDraft, origErr, "draft %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Placement constraint failures (edit rejected, state unchanged)
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	ErrCodeHeightExceeded   Code = "HEIGHT_EXCEEDED"
	ErrCodeTypeMismatch     Code = "TYPE_MISMATCH"
	ErrCodeNotStackable     Code = "NOT_STACKABLE"

	// Reference and input validation errors
	ErrCodeInvalidTarget            Code = "INVALID_TARGET"
	ErrCodeInvalidTemplate          Code = "INVALID_TEMPLATE"
	ErrCodeInvalidDraft             Code = "INVALID_DRAFT"
	ErrCodeInvalidCatalog           Code = "INVALID_CATALOG"
	ErrCodeInvalidCompartmentConfig Code = "INVALID_COMPARTMENT_CONFIG"
	ErrCodeInvalidAction            Code = "INVALID_ACTION"

	// Resource not found errors
	ErrCodeNotFound         Code = "NOT_FOUND"
	ErrCodeTemplateNotFound Code = "TEMPLATE_NOT_FOUND"
	ErrCodeDraftNotFound    Code = "DRAFT_NOT_FOUND"
	ErrCodeEntryNotFound    Code = "ENTRY_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
