// Package errors provides coded errors for setup failures that abort a run.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of fatal error.
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Profile errors
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrProfileInvalid  ErrorCode = "PROFILE_INVALID"

	// Source errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceFetch    ErrorCode = "SOURCE_FETCH"
	ErrArchiveInvalid ErrorCode = "ARCHIVE_INVALID"

	// Output errors
	ErrRender    ErrorCode = "RENDER"
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// Error is a structured error carrying a code, details and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithDetail attaches a key/value pair and returns the error for chaining.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.Details[key] = value
	return e
}

func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// GetErrorCode returns the code of the first *Error in err's chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// IsErrorCode reports whether err's chain contains an *Error with code.
func IsErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}
