// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     engine
// Description: Arithmetic input/state engine of the calculator
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package engine turns discrete calculator key events into a display
// expression, a result line and memory-register state.
//
// The engine is single-threaded: every call runs to completion and the
// hosting event loop serialises input. It performs no I/O.
//
// Policy:
//   - Operators evaluate strictly left to right: 5 + 3 × 2 = 16.
//   - A digit after "=" starts a new calculation; an operator after "="
//     chains from the result.
//   - Percent is a pure unary transform and never completes a pending
//     operation by itself.
//   - Errors never reset state. A failed division keeps the left operand
//     and operator so the right operand can be corrected.
package engine

import (
	"strings"
)

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the display symbol of the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

// Engine holds the complete calculator state.
type Engine struct {
	current  string
	previous string
	op       Operator

	// awaiting is set when the next digit starts a fresh operand.
	awaiting bool
	decimal  bool
	// entered is set once the current operand holds a value the user
	// supplied after the last operator (typed, recalled or transformed).
	entered bool
	// evaluated keeps "A op B" of the last completed computation.
	evaluated string

	memory    string
	hasMemory bool
}

// New creates an engine in its initial state.
func New() *Engine {
	e := &Engine{memory: "0"}
	e.reset()
	return e
}

func (e *Engine) reset() {
	e.current = "0"
	e.previous = ""
	e.op = OpNone
	e.awaiting = true
	e.decimal = false
	e.entered = false
	e.evaluated = ""
}

// Expression renders the current state as a human-readable line.
func (e *Engine) Expression() string {
	switch {
	case e.op != OpNone && e.entered:
		return e.previous + " " + e.op.String() + " " + e.current
	case e.op != OpNone:
		return e.previous + " " + e.op.String()
	case e.evaluated != "":
		return e.evaluated
	default:
		return e.current
	}
}

// Result returns the current operand text.
func (e *Engine) Result() string {
	return e.current
}

// HasMemory reports whether the memory register holds a stored value.
func (e *Engine) HasMemory() bool {
	return e.hasMemory
}

// Digit appends a decimal digit to the current operand, or starts a new
// operand if the engine awaits one. Non-digits are ignored.
func (e *Engine) Digit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	switch {
	case e.awaiting:
		e.current = string(d)
		e.awaiting = false
		e.decimal = false
	case e.current == "0":
		e.current = string(d)
	case len(e.current) < MaxOperandLength:
		e.current += string(d)
	}
	e.entered = true
	e.evaluated = ""
}

// DecimalPoint adds a decimal point to the current operand. At most one
// point is accepted per operand; a full operand is left untouched.
func (e *Engine) DecimalPoint() {
	switch {
	case e.awaiting:
		e.current = "0."
		e.awaiting = false
	case e.decimal:
		// keep operand
	case len(e.current) >= MaxOperandLength:
		return
	default:
		e.current += "."
	}
	e.decimal = true
	e.entered = true
	e.evaluated = ""
}

// Operator adopts a binary operator. A pending operation with a right
// operand is committed first; if that fails, the error is returned and
// the state is left untouched. Pressing a second operator before any
// right operand replaces the pending one.
func (e *Engine) Operator(op Operator) error {
	if op == OpNone {
		return nil
	}
	switch {
	case e.op != OpNone && e.entered:
		result, err := e.compute()
		if err != nil {
			return err
		}
		e.previous = result
		e.current = result
	case e.op != OpNone:
		// operator replacement
	default:
		e.previous = canonical(e.current)
	}
	e.op = op
	e.awaiting = true
	e.decimal = strings.Contains(e.current, ".")
	e.entered = false
	e.evaluated = ""
	return nil
}

// Equals completes the pending operation and returns the result. Without
// a pending operator or a right operand it returns the current operand
// unchanged.
func (e *Engine) Equals() (string, error) {
	if e.op == OpNone || !e.entered {
		return e.current, nil
	}
	result, err := e.compute()
	if err != nil {
		return "", err
	}
	e.evaluated = e.previous + " " + e.op.String() + " " + canonical(e.current)
	e.current = result
	e.previous = ""
	e.op = OpNone
	e.awaiting = true
	e.decimal = strings.Contains(result, ".")
	e.entered = true
	return result, nil
}

// compute evaluates previous op current without mutating state.
func (e *Engine) compute() (string, error) {
	const operation = "equals"
	a, err := parseOperand(operation, e.previous)
	if err != nil {
		return "", err
	}
	b, err := parseOperand(operation, e.current)
	if err != nil {
		return "", err
	}
	var v float64
	switch e.op {
	case OpAdd:
		v = a + b
	case OpSubtract:
		v = a - b
	case OpMultiply:
		v = a * b
	case OpDivide:
		if b == 0 {
			return "", divisionByZero(operation, e.current)
		}
		v = a / b
	}
	return FormatNumber(v)
}

// ClearAll resets everything except the memory register.
func (e *Engine) ClearAll() string {
	e.reset()
	return e.current
}

// ClearEntry discards the current operand while keeping a pending
// operation, so it can resume with a fresh right operand.
func (e *Engine) ClearEntry() string {
	e.current = "0"
	e.awaiting = true
	e.decimal = false
	e.entered = false
	e.evaluated = ""
	return e.current
}

// Backspace removes the last character of an operand being typed.
// Computed results are not edited.
func (e *Engine) Backspace() string {
	if e.awaiting {
		return e.current
	}
	last := e.current[len(e.current)-1]
	e.current = e.current[:len(e.current)-1]
	if last == '.' {
		e.decimal = false
	}
	if e.current == "" || e.current == "-" {
		e.current = "0"
		e.awaiting = true
		e.decimal = false
		e.entered = false
	}
	e.evaluated = ""
	return e.current
}

// Load replaces the current operand with a value from outside the
// keypad, such as a history entry or the clipboard. The value is
// normalised and treated like a computed result.
func (e *Engine) Load(value string) error {
	v, err := parseOperand("load", strings.TrimSpace(value))
	if err != nil {
		return err
	}
	s, err := FormatNumber(v)
	if err != nil {
		return err
	}
	e.current = s
	e.awaiting = true
	e.decimal = strings.Contains(s, ".")
	e.entered = true
	e.evaluated = ""
	return nil
}

// State is a read-only snapshot of the engine, used by adapters and
// tests.
type State struct {
	Current   string
	Previous  string
	Operator  Operator
	Awaiting  bool
	Decimal   bool
	Memory    string
	HasMemory bool
}

// State returns a snapshot of the engine state.
func (e *Engine) State() State {
	return State{
		Current:   e.current,
		Previous:  e.previous,
		Operator:  e.op,
		Awaiting:  e.awaiting,
		Decimal:   e.decimal,
		Memory:    e.memory,
		HasMemory: e.hasMemory,
	}
}
