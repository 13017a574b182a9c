package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeJSONParse,
				Message: "invalid JSON syntax",
				Err:     nil,
			},
			expected: "json parsing: invalid JSON syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name: "same type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeInput,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeCSVParse,
				Message: "test message",
				Err:     nil,
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Is(tt.target)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "input error with cause",
			err:      NewInputError("file 'a.csv' not found", ErrFileNotFound),
			expected: "Input error: file 'a.csv' not found (file not found)",
		},
		{
			name:     "csv parse error",
			err:      NewCSVParseError("malformed CSV", errors.New("parse error on line 2, column 3: unterminated quoted field")),
			expected: "CSV parsing error: malformed CSV (parse error on line 2, column 3: unterminated quoted field)",
		},
		{
			name:     "json parse error",
			err:      NewJSONParseError("JSON syntax error at offset 4", nil),
			expected: "JSON parsing error: JSON syntax error at offset 4",
		},
		{
			name:     "conversion error",
			err:      NewConversionError("root must be an array", nil),
			expected: "Conversion error: root must be an array",
		},
		{
			name:     "config error",
			err:      NewConfigError("bad delimiter", nil),
			expected: "Configuration error: bad delimiter",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "wrapped app error",
			err:      fmt.Errorf("stage: %w", NewOutputError("failed to write output", nil)),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - file not found",
			err:      ErrFileNotFound,
			expected: "Error: The specified file could not be found. Please check the file path.",
		},
		{
			name:     "standard error - invalid delimiter",
			err:      ErrInvalidDelimiter,
			expected: "Error: The delimiter must be a single character other than a quote or line break.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_ErrorsIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewConversionError("bad root", ErrNoInput))
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeConversion}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeOutput}))
	assert.True(t, errors.Is(err, ErrNoInput))
}
