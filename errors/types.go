package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Document / catalog errors
	ErrCodeCatalogOpen      ErrorCode = "CATALOG_OPEN"
	ErrCodeQueryFailure     ErrorCode = "QUERY_FAILURE"
	ErrCodeNoSpools         ErrorCode = "NO_SPOOLS"
	ErrCodeNoViewDefinition ErrorCode = "NO_VIEW_DEFINITION"

	// Viewport errors
	ErrCodeViewportUnready ErrorCode = "VIEWPORT_UNREADY"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// SpoolError represents a structured error with context
type SpoolError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *SpoolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SpoolError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *SpoolError) WithDetail(key string, value interface{}) *SpoolError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *SpoolError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new SpoolError
func New(code ErrorCode, message string) *SpoolError {
	return &SpoolError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SpoolError
func Wrap(err error, code ErrorCode, message string) *SpoolError {
	return &SpoolError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific SpoolError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	spoolErr, ok := err.(*SpoolError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	if spoolErr.Code == code {
		return true
	}
	// A SpoolError may wrap another one with a more specific code.
	return spoolErr.Cause != nil && Is(spoolErr.Cause, code)
}

// GetCode extracts the outermost error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	spoolErr, ok := err.(*SpoolError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return spoolErr.Code
}
