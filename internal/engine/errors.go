// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     engine
// Description: Error sentinels reported by the arithmetic engine
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package engine

import (
	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

// Sentinels for errors.Is. The engine returns fresh errors carrying the
// same code plus operation details; matching is by code.
var (
	ErrDivisionByZero = mreerror.New("division by zero").WithCode(mreerror.CodeDivisionByZero)
	ErrInvalidInput   = mreerror.New("invalid input").WithCode(mreerror.CodeInvalidInput)
	ErrParse          = mreerror.New("malformed operand").WithCode(mreerror.CodeParseError)
	ErrOverflow       = mreerror.New("result out of range").WithCode(mreerror.CodeOverflow)
)

func divisionByZero(operation, operand string) error {
	return mreerror.New("division by zero").
		WithCode(mreerror.CodeDivisionByZero).
		WithOperation(operation).
		WithDetail("operand", operand)
}

func invalidInput(operation, operand string) error {
	return mreerror.New("invalid input").
		WithCode(mreerror.CodeInvalidInput).
		WithOperation(operation).
		WithDetail("operand", operand)
}

func parseError(operation, operand string, cause error) error {
	return mreerror.Wrap(cause, "malformed operand").
		WithCode(mreerror.CodeParseError).
		WithOperation(operation).
		WithDetail("operand", operand)
}

func overflow(operation string) error {
	return mreerror.New("result out of range").
		WithCode(mreerror.CodeOverflow).
		WithOperation(operation)
}
