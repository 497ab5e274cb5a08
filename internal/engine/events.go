package engine

import (
	"fmt"
	"strings"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

// EventKind discriminates calculator input events.
type EventKind int

const (
	EventDigit EventKind = iota + 1
	EventDecimal
	EventOperator
	EventEquals
	EventSpecial
	EventMemory
	EventClearAll
	EventClearEntry
	EventBackspace
)

// Event is one user action. Only the field matching Kind is meaningful.
type Event struct {
	Kind     EventKind
	Digit    byte
	Operator Operator
	Special  SpecialKind
	Memory   MemoryKind
}

// DigitEvent returns the event for a digit key.
func DigitEvent(d byte) Event {
	return Event{Kind: EventDigit, Digit: d}
}

// OperatorEvent returns the event for a binary operator key.
func OperatorEvent(op Operator) Event {
	return Event{Kind: EventOperator, Operator: op}
}

// SpecialEvent returns the event for a unary operation key.
func SpecialEvent(k SpecialKind) Event {
	return Event{Kind: EventSpecial, Special: k}
}

// MemoryEvent returns the event for a memory key.
func MemoryEvent(k MemoryKind) Event {
	return Event{Kind: EventMemory, Memory: k}
}

// Events without a payload.
var (
	DecimalEvent    = Event{Kind: EventDecimal}
	EqualsEvent     = Event{Kind: EventEquals}
	ClearAllEvent   = Event{Kind: EventClearAll}
	ClearEntryEvent = Event{Kind: EventClearEntry}
	BackspaceEvent  = Event{Kind: EventBackspace}
)

// symbols maps keypad labels to events. Aliases such as "*" and "/"
// are accepted for keyboard and command-line input.
var symbols = map[string]Event{
	".":   DecimalEvent,
	",":   DecimalEvent,
	"+":   OperatorEvent(OpAdd),
	"-":   OperatorEvent(OpSubtract),
	"×":   OperatorEvent(OpMultiply),
	"*":   OperatorEvent(OpMultiply),
	"x":   OperatorEvent(OpMultiply),
	"÷":   OperatorEvent(OpDivide),
	"/":   OperatorEvent(OpDivide),
	"=":   EqualsEvent,
	"%":   SpecialEvent(Percent),
	"±":   SpecialEvent(Negate),
	"+/-": SpecialEvent(Negate),
	"x²":  SpecialEvent(Square),
	"√":   SpecialEvent(Sqrt),
	"1/x": SpecialEvent(Reciprocal),
	"MC":  MemoryEvent(MemoryClear),
	"MR":  MemoryEvent(MemoryRecall),
	"MS":  MemoryEvent(MemoryStore),
	"M+":  MemoryEvent(MemoryAdd),
	"M-":  MemoryEvent(MemorySubtract),
	"C":   ClearAllEvent,
	"CE":  ClearEntryEvent,
	"⌫":   BackspaceEvent,
}

// ParseSymbol converts a keypad label into an event.
func ParseSymbol(s string) (Event, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return DigitEvent(s[0]), nil
	}
	if ev, ok := symbols[s]; ok {
		return ev, nil
	}
	if ev, ok := symbols[strings.ToUpper(s)]; ok && ev.Kind == EventMemory {
		return ev, nil
	}
	return Event{}, mreerror.Newf("unknown key symbol %q", s).
		WithCode(mreerror.CodeInvalidInput).
		WithOperation("parse_symbol")
}

// Symbol returns the canonical keypad label of the event.
func (ev Event) Symbol() string {
	switch ev.Kind {
	case EventDigit:
		return string(ev.Digit)
	case EventDecimal:
		return "."
	case EventOperator:
		return ev.Operator.String()
	case EventEquals:
		return "="
	case EventSpecial:
		switch ev.Special {
		case Percent:
			return "%"
		case Negate:
			return "±"
		case Square:
			return "x²"
		case Sqrt:
			return "√"
		case Reciprocal:
			return "1/x"
		}
	case EventMemory:
		return ev.Memory.String()
	case EventClearAll:
		return "C"
	case EventClearEntry:
		return "CE"
	case EventBackspace:
		return "⌫"
	}
	return ""
}

func (ev Event) String() string {
	if s := ev.Symbol(); s != "" {
		return s
	}
	return fmt.Sprintf("event(%d)", ev.Kind)
}

// Display is the output of one input event: the expression line, the
// result line and the memory indicator.
type Display struct {
	Expression string
	Result     string
	HasMemory  bool
	// Err is set when the event failed. The state is unchanged.
	Err error
	// Committed is set when the event completed a computation, so the
	// caller can record Expression and Result in the history.
	Committed bool
}

// Apply dispatches an event to the matching engine operation and returns
// the resulting display.
func (e *Engine) Apply(ev Event) Display {
	var (
		err       error
		committed bool
	)
	switch ev.Kind {
	case EventDigit:
		e.Digit(ev.Digit)
	case EventDecimal:
		e.DecimalPoint()
	case EventOperator:
		err = e.Operator(ev.Operator)
	case EventEquals:
		before := e.op != OpNone && e.entered
		_, err = e.Equals()
		committed = before && err == nil
	case EventSpecial:
		_, err = e.Special(ev.Special)
	case EventMemory:
		_, err = e.Memory(ev.Memory)
	case EventClearAll:
		e.ClearAll()
	case EventClearEntry:
		e.ClearEntry()
	case EventBackspace:
		e.Backspace()
	default:
		err = mreerror.Newf("unknown event kind %d", ev.Kind).
			WithCode(mreerror.CodeInvalidInput).
			WithOperation("apply")
	}
	return Display{
		Expression: e.Expression(),
		Result:     e.current,
		HasMemory:  e.hasMemory,
		Err:        err,
		Committed:  committed,
	}
}

// Display returns the display for the current state without applying
// an event.
func (e *Engine) Display() Display {
	return Display{
		Expression: e.Expression(),
		Result:     e.current,
		HasMemory:  e.hasMemory,
	}
}

// IsDivisionByZero reports whether err is a division by zero.
func IsDivisionByZero(err error) bool {
	return mreerror.HasCode(err, mreerror.CodeDivisionByZero)
}

// IsInvalidInput reports whether err is an invalid-input error.
func IsInvalidInput(err error) bool {
	return mreerror.HasCode(err, mreerror.CodeInvalidInput)
}
