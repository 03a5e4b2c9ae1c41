package specerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a schema document could not be read or decoded.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a schema document failed document-schema validation.
	ErrValidation = errors.New("validation error")

	// ErrMalformedSchema indicates schema content that breaks a diff precondition.
	ErrMalformedSchema = errors.New("malformed schema")

	// ErrDuplicateField indicates a field name repeated within one field list.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to read or decode a schema document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents a schema document that does not match the
// expected document structure.
type ValidationError struct {
	// Path is the file path or source identifier
	Path string
	// Pointer is the JSON pointer to the offending location (e.g., "/types/User/fields")
	Pointer string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MalformedSchemaError represents schema content that violates a precondition
// the diff engine relies on.
type MalformedSchemaError struct {
	// Owner is the entity or operation name the problem was found in
	Owner string
	// Field is the offending field name, if the problem is field-related
	Field string
	// Duplicate is true when Field appears more than once in Owner's field list
	Duplicate bool
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *MalformedSchemaError) Error() string {
	msg := "malformed schema"
	switch {
	case e.Owner != "" && e.Field != "":
		msg += ": " + e.Owner + "." + e.Field
	case e.Owner != "":
		msg += ": " + e.Owner
	case e.Field != "":
		msg += ": " + e.Field
	}
	if e.Duplicate {
		msg += ": duplicate field name"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as MalformedSchemaError has no underlying cause.
func (e *MalformedSchemaError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
// Matches ErrMalformedSchema, and also ErrDuplicateField when Duplicate is set.
func (e *MalformedSchemaError) Is(target error) bool {
	if target == ErrMalformedSchema {
		return true
	}
	return target == ErrDuplicateField && e.Duplicate
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "file_size", "inline_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
