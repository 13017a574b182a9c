package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pass - to read stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrInvalidDelimiter = errors.New("delimiter must be a single character other than a quote or line break")
	ErrInvalidKeyCase   = errors.New("unknown key case")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeCSVParse   ErrorType = "csv parsing"
	ErrorTypeJSONParse  ErrorType = "json parsing"
	ErrorTypeConversion ErrorType = "conversion"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewCSVParseError creates a new error for malformed CSV
func NewCSVParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCSVParse,
		Message: message,
		Err:     err,
	}
}

// NewJSONParseError creates a new error for malformed JSON
func NewJSONParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeJSONParse,
		Message: message,
		Err:     err,
	}
}

// NewConversionError creates a new error for structures that have no
// equivalent in the target format
func NewConversionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConversion,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to option resolution
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", withCause(appErr))
		case ErrorTypeCSVParse:
			return fmt.Sprintf("CSV parsing error: %s", withCause(appErr))
		case ErrorTypeJSONParse:
			return fmt.Sprintf("JSON parsing error: %s", withCause(appErr))
		case ErrorTypeConversion:
			return fmt.Sprintf("Conversion error: %s", withCause(appErr))
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", withCause(appErr))
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", withCause(appErr))
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrInvalidDelimiter) {
		return "Error: The delimiter must be a single character other than a quote or line break."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}

// withCause appends the wrapped error when it adds detail the message lacks.
func withCause(e *AppError) string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, e.Err)
}
