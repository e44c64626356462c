// Package errors provides the coded error type shared by every simreg
// package. Codes are stable and are what tests and callers match on.
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

	// Registration-time errors
	ErrDuplicateName  ErrorCode = "DUPLICATE_NAME"
	ErrRegistrySealed ErrorCode = "REGISTRY_SEALED"
	ErrInvalidArity   ErrorCode = "INVALID_ARITY"
	ErrMalformedIface ErrorCode = "MALFORMED_INTERFACE"
	ErrStartupFailed  ErrorCode = "STARTUP_FAILED"
	ErrNonconforming  ErrorCode = "NONCONFORMING_TYPE"
	ErrTypeMismatch   ErrorCode = "TYPE_MISMATCH"

	// Lookup-time errors
	ErrUnknownName      ErrorCode = "UNKNOWN_NAME"
	ErrUnknownClass     ErrorCode = "UNKNOWN_CLASS"
	ErrUnknownFunction  ErrorCode = "UNKNOWN_FUNCTION"
	ErrUnknownModule    ErrorCode = "UNKNOWN_MODULE"
	ErrUnknownChannel   ErrorCode = "UNKNOWN_CHANNEL"
	ErrUnknownNetwork   ErrorCode = "UNKNOWN_NETWORK"
	ErrUnknownInterface ErrorCode = "UNKNOWN_INTERFACE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// unknownNameCodes are the codes reported for a registry lookup miss.
var unknownNameCodes = map[ErrorCode]bool{
	ErrUnknownName:      true,
	ErrUnknownClass:     true,
	ErrUnknownFunction:  true,
	ErrUnknownModule:    true,
	ErrUnknownChannel:   true,
	ErrUnknownNetwork:   true,
	ErrUnknownInterface: true,
}

// SimregError represents a structured error with code and details
type SimregError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SimregError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SimregError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *SimregError carrying the same code.
func (e *SimregError) Is(target error) bool {
	var targetErr *SimregError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SimregError with the given code and message
func New(code ErrorCode, message string) *SimregError {
	return &SimregError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SimregError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SimregError {
	return &SimregError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SimregError
func Wrap(err error, code ErrorCode, message string) *SimregError {
	if err == nil {
		return nil
	}
	return &SimregError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SimregError {
	if err == nil {
		return nil
	}
	return &SimregError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SimregError) WithDetail(key string, value interface{}) *SimregError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SimregError) WithDetails(details map[string]interface{}) *SimregError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var simErr *SimregError
	if errors.As(err, &simErr) {
		return simErr.Code == code
	}
	return false
}

// IsUnknownName reports whether err is a lookup miss of any kind.
func IsUnknownName(err error) bool {
	var simErr *SimregError
	if errors.As(err, &simErr) {
		return unknownNameCodes[simErr.Code]
	}
	return false
}

// UnknownName builds a lookup-miss error that names the missing identifier.
func UnknownName(code ErrorCode, kind, name string) *SimregError {
	return Newf(code, "%s %q not found", kind, name).
		WithDetail("name", name).
		WithDetail("kind", kind)
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SimregError
func GetErrorCode(err error) ErrorCode {
	var simErr *SimregError
	if errors.As(err, &simErr) {
		return simErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SimregError
func GetErrorDetails(err error) map[string]interface{} {
	var simErr *SimregError
	if errors.As(err, &simErr) {
		return simErr.Details
	}
	return nil
}
