// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, version mismatches
//   - Data/Resource errors (200-299): Data not found, parse and query failures
//   - Strategy errors (300-399): Strategy registry lookup and registration errors
//   - Benchmark errors (400-499): Benchmark setup and profiling errors
//   - Report errors (500-599): Report and plot generation errors
//   - Result store errors (600-699): Result persistence and retrieval errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataNotFound, "data not found for symbol %s", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeDataNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientTicksError represents an error when a dataset holds fewer
// ticks than a requested benchmark size.
type InsufficientTicksError struct {
	Required int    // Tick count the run asked for
	Actual   int    // Tick count the dataset holds
	Dataset  string // Optional: dataset path or name
	Message  string // Human-readable message
}

// NewInsufficientTicksError creates a new InsufficientTicksError.
func NewInsufficientTicksError(required, actual int, dataset, message string) *InsufficientTicksError {
	return &InsufficientTicksError{
		Required: required,
		Actual:   actual,
		Dataset:  dataset,
		Message:  message,
	}
}

// NewInsufficientTicksErrorf creates a new InsufficientTicksError with a formatted message.
func NewInsufficientTicksErrorf(required, actual int, dataset, format string, args ...any) *InsufficientTicksError {
	return &InsufficientTicksError{
		Required: required,
		Actual:   actual,
		Dataset:  dataset,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientTicksError) Error() string {
	return e.Message
}

// IsInsufficientTicksError checks if an error is an InsufficientTicksError.
// It uses errors.As to check the error chain.
func IsInsufficientTicksError(err error) bool {
	var insufficientErr *InsufficientTicksError

	return errors.As(err, &insufficientErr)
}
