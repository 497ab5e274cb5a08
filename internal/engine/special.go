package engine

import (
	"math"
	"strings"
)

// SpecialKind is a unary operation on the current operand.
type SpecialKind int

const (
	Percent SpecialKind = iota + 1
	Negate
	Square
	Sqrt
	Reciprocal
)

var specialNames = map[SpecialKind]string{
	Percent:    "percent",
	Negate:     "negate",
	Square:     "square",
	Sqrt:       "sqrt",
	Reciprocal: "reciprocal",
}

func (k SpecialKind) String() string {
	if s, ok := specialNames[k]; ok {
		return s
	}
	return "unknown"
}

// MemoryKind is a memory-register operation.
type MemoryKind int

const (
	MemoryClear MemoryKind = iota + 1
	MemoryRecall
	MemoryStore
	MemoryAdd
	MemorySubtract
)

var memoryNames = map[MemoryKind]string{
	MemoryClear:    "MC",
	MemoryRecall:   "MR",
	MemoryStore:    "MS",
	MemoryAdd:      "M+",
	MemorySubtract: "M-",
}

func (k MemoryKind) String() string {
	if s, ok := memoryNames[k]; ok {
		return s
	}
	return "unknown"
}

// Special applies a unary operation to the current operand. On failure
// the operand is left unchanged.
//
// Percent depends on the pending operation: with + or - the operand is
// taken as a percentage of the left operand (100 + 10 % gives 100 + 10),
// otherwise it becomes a plain fraction.
func (e *Engine) Special(kind SpecialKind) (string, error) {
	operation := kind.String()
	n, err := parseOperand(operation, e.current)
	if err != nil {
		return "", err
	}

	var v float64
	switch kind {
	case Percent:
		v = n / 100
		if e.op == OpAdd || e.op == OpSubtract {
			prev, err := parseOperand(operation, e.previous)
			if err != nil {
				return "", err
			}
			v = prev * n / 100
		}
	case Negate:
		v = -n
	case Square:
		v = n * n
	case Sqrt:
		if n < 0 {
			return "", invalidInput(operation, e.current)
		}
		v = math.Sqrt(n)
	case Reciprocal:
		if n == 0 {
			return "", divisionByZero(operation, e.current)
		}
		v = 1 / n
	default:
		return "", invalidInput(operation, e.current)
	}

	result, err := FormatNumber(v)
	if err != nil {
		return "", err
	}
	e.current = result
	e.awaiting = true
	e.decimal = strings.Contains(result, ".")
	e.entered = true
	e.evaluated = ""
	return result, nil
}

// Memory applies a memory-register operation. MR returns the recalled
// value, which becomes the current operand; other kinds return "".
func (e *Engine) Memory(kind MemoryKind) (string, error) {
	operation := kind.String()
	switch kind {
	case MemoryClear:
		e.memory = "0"
		e.hasMemory = false
		return "", nil

	case MemoryRecall:
		// exponential values cannot be typed, so they are recalled as
		// results instead of editable input
		e.current = e.memory
		e.awaiting = strings.Contains(e.memory, "e")
		e.decimal = strings.Contains(e.memory, ".")
		e.entered = true
		e.evaluated = ""
		return e.memory, nil

	case MemoryStore:
		n, err := parseOperand(operation, e.current)
		if err != nil {
			return "", err
		}
		s, err := FormatNumber(n)
		if err != nil {
			return "", err
		}
		e.memory = s

	case MemoryAdd, MemorySubtract:
		m, err := parseOperand(operation, e.memory)
		if err != nil {
			return "", err
		}
		n, err := parseOperand(operation, e.current)
		if err != nil {
			return "", err
		}
		if kind == MemorySubtract {
			n = -n
		}
		s, err := FormatNumber(m + n)
		if err != nil {
			return "", err
		}
		e.memory = s

	default:
		return "", invalidInput(operation, "")
	}

	e.hasMemory = true
	e.awaiting = true
	return "", nil
}
