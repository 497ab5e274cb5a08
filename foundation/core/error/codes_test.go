// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for code validity, categories, message keys and
//              severity mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Calculator codes

package error

import "testing"

func TestCode_IsValid(t *testing.T) {
	valid := []Code{CodeUnknown, CodeDivisionByZero, CodeInvalidInput, CodeParseError,
		CodeOverflow, CodeStorageError, CodeConfigError, CodeImageError}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%v.IsValid() = false, want true", c)
		}
	}
	if Code("NOPE").IsValid() {
		t.Error("unknown code should not be valid")
	}
}

func TestCode_Category(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeDivisionByZero, "arithmetic"},
		{CodeParseError, "arithmetic"},
		{CodeStorageError, "storage"},
		{CodeConfigError, "configuration"},
		{CodeImageError, "image"},
		{CodeUnknown, "generic"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Category() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCode_MessageKey(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeDivisionByZero, "error.division_by_zero"},
		{CodeInvalidInput, "error.invalid_input"},
		{CodeOverflow, "error.overflow"},
		{CodeParseError, "error.generic"},
	}
	for _, tt := range tests {
		if got := tt.code.MessageKey(); got != tt.want {
			t.Errorf("%v.MessageKey() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestGetSeverityFromCode(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeDivisionByZero, SeverityLow},
		{CodeStorageError, SeverityHigh},
		{CodeInternal, SeverityCritical},
		{CodeImageError, SeverityMedium},
	}
	for _, tt := range tests {
		if got := GetSeverityFromCode(tt.code); got != tt.want {
			t.Errorf("GetSeverityFromCode(%v) = %v, want %v", tt.code, got, tt.want)
		}
	}
	if !SeverityHigh.ShouldAlert() || SeverityLow.ShouldAlert() {
		t.Error("ShouldAlert() thresholds wrong")
	}
}
