package engine

import (
	"testing"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   Event
	}{
		{"7", DigitEvent('7')},
		{".", DecimalEvent},
		{",", DecimalEvent},
		{"+", OperatorEvent(OpAdd)},
		{"-", OperatorEvent(OpSubtract)},
		{"×", OperatorEvent(OpMultiply)},
		{"*", OperatorEvent(OpMultiply)},
		{"÷", OperatorEvent(OpDivide)},
		{"/", OperatorEvent(OpDivide)},
		{"=", EqualsEvent},
		{"%", SpecialEvent(Percent)},
		{"±", SpecialEvent(Negate)},
		{"x²", SpecialEvent(Square)},
		{"√", SpecialEvent(Sqrt)},
		{"1/x", SpecialEvent(Reciprocal)},
		{"MC", MemoryEvent(MemoryClear)},
		{"mr", MemoryEvent(MemoryRecall)},
		{"MS", MemoryEvent(MemoryStore)},
		{"M+", MemoryEvent(MemoryAdd)},
		{"m-", MemoryEvent(MemorySubtract)},
		{"C", ClearAllEvent},
		{"CE", ClearEntryEvent},
		{"⌫", BackspaceEvent},
		{" = ", EqualsEvent},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := ParseSymbol(tt.symbol)
			if err != nil {
				t.Fatalf("ParseSymbol(%q) error = %v", tt.symbol, err)
			}
			if got != tt.want {
				t.Errorf("ParseSymbol(%q) = %+v, want %+v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestParseSymbol_Unknown(t *testing.T) {
	for _, s := range []string{"", "?", "12", "sin"} {
		if _, err := ParseSymbol(s); err == nil {
			t.Errorf("ParseSymbol(%q) expected error", s)
		}
	}
}

func TestEvent_SymbolRoundTrip(t *testing.T) {
	labels := []string{
		"0", "9", ".", "+", "-", "×", "÷", "=", "%", "±", "x²", "√", "1/x",
		"MC", "MR", "MS", "M+", "M-", "C", "CE", "⌫",
	}
	for _, label := range labels {
		ev, err := ParseSymbol(label)
		if err != nil {
			t.Fatalf("ParseSymbol(%q) error = %v", label, err)
		}
		if got := ev.Symbol(); got != label {
			t.Errorf("ParseSymbol(%q).Symbol() = %q", label, got)
		}
	}
}

func TestApply_UnknownEvent(t *testing.T) {
	e := New()
	d := e.Apply(Event{})
	if d.Err == nil {
		t.Error("Apply(Event{}) expected error")
	}
	if d.Result != "0" {
		t.Errorf("Result = %q, want %q", d.Result, "0")
	}
}
