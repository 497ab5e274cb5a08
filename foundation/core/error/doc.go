// Package error provides structured error values for the mRE calculator.
//
// Package: error
// Title: mRE Error Handling
// Description: Structured errors with codes, severity and detail maps. The
//              calculator engine reports failed computations (division by
//              zero, invalid input, unparsable operands) as values of this
//              type, collaborators (history store, background loader, config)
//              wrap their failures with it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Calculator error codes, message keys, errors.Is support
//
// Usage:
//
//	err := mreerror.New("division by zero").
//		WithCode(mreerror.CodeDivisionByZero).
//		WithOperation("engine.Equals").
//		WithDetail("dividend", "3")
//
//	if mreerror.HasCode(err, mreerror.CodeDivisionByZero) {
//		// show the localized sentinel text
//	}
package error
