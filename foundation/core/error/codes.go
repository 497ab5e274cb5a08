// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the calculator: engine
//              failures that are reported to the user as sentinel values, and
//              collaborator failures (storage, configuration, images).
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Reduced to calculator domain codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"
	CodeNotFound Code = "NOT_FOUND"

	// Arithmetic engine
	CodeDivisionByZero Code = "DIVISION_BY_ZERO"
	CodeInvalidInput   Code = "INVALID_INPUT"
	CodeParseError     Code = "PARSE_ERROR"
	CodeOverflow       Code = "OVERFLOW"

	// Collaborators
	CodeStorageError Code = "STORAGE_ERROR"
	CodeConfigError  Code = "CONFIG_ERROR"
	CodeImageError   Code = "IMAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound,
		CodeDivisionByZero, CodeInvalidInput, CodeParseError, CodeOverflow,
		CodeStorageError, CodeConfigError, CodeImageError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeDivisionByZero, CodeInvalidInput, CodeParseError, CodeOverflow:
		return "arithmetic"
	case CodeStorageError:
		return "storage"
	case CodeConfigError:
		return "configuration"
	case CodeImageError:
		return "image"
	default:
		return "generic"
	}
}

// MessageKey returns the i18n catalog key for the user-visible text of
// this code.
func (c Code) MessageKey() string {
	switch c {
	case CodeDivisionByZero:
		return "error.division_by_zero"
	case CodeInvalidInput:
		return "error.invalid_input"
	case CodeOverflow:
		return "error.overflow"
	default:
		return "error.generic"
	}
}
