// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to decide how loud an error is: engine
//              errors are expected user mistakes, storage or configuration
//              errors degrade the application.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-17 v0.2.0: Mapping for calculator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates an expected user mistake, e.g. dividing by zero
	SeverityLow Severity = iota

	// SeverityMedium indicates a degraded feature with a workaround
	SeverityMedium

	// SeverityHigh indicates a failure that disables a feature, e.g. the history store
	SeverityHigh

	// SeverityCritical indicates the application cannot continue
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should be surfaced
// beyond the log
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeDivisionByZero, CodeInvalidInput, CodeParseError, CodeOverflow, CodeNotFound:
		return SeverityLow
	case CodeStorageError, CodeConfigError:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
