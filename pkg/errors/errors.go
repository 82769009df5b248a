package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors, fatal before any processing
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"

	// Entry-level errors
	ErrMismatchedLists ErrorCode = "MISMATCHED_FILE_LISTS"
	ErrSourceNotFound  ErrorCode = "SOURCE_NOT_FOUND"

	// Per-target errors
	ErrSourceTypeMismatch ErrorCode = "SOURCE_TYPE_MISMATCH"
	ErrTargetClear        ErrorCode = "TARGET_CLEAR"
	ErrDirCreate          ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate      ErrorCode = "SYMLINK_CREATE"

	// Installer errors
	ErrInstallTarget ErrorCode = "INSTALL_TARGET"
	ErrInstallWrite  ErrorCode = "INSTALL_WRITE"
)

// RelinkError represents a structured error with code and details
type RelinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RelinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RelinkError) Unwrap() error {
	return e.Wrapped
}

// Is matches two RelinkErrors by code
func (e *RelinkError) Is(target error) bool {
	var targetErr *RelinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RelinkError with the given code and message
func New(code ErrorCode, message string) *RelinkError {
	return &RelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RelinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RelinkError {
	return &RelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RelinkError
func Wrap(err error, code ErrorCode, message string) *RelinkError {
	if err == nil {
		return nil
	}
	return &RelinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RelinkError {
	if err == nil {
		return nil
	}
	return &RelinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RelinkError) WithDetail(key string, value interface{}) *RelinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// the error is not a RelinkError
func GetErrorCode(err error) ErrorCode {
	var relinkErr *RelinkError
	if errors.As(err, &relinkErr) {
		return relinkErr.Code
	}
	return ErrUnknown
}
