package engine

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxOperandLength caps the operand text to bound the display width.
	MaxOperandLength = 16

	// fractionDigits is the number of decimal places kept for non-integer
	// results before trailing zeros are stripped.
	fractionDigits = 10

	// exponentThreshold is the magnitude from which results switch to
	// exponential notation.
	exponentThreshold = 1e16
)

// FormatNumber renders a computed value for display. Integers have no
// decimal point, other values are rounded to 10 decimal places with
// trailing zeros removed, and values too large or too small for that
// fall back to exponential notation. The output never exceeds
// MaxOperandLength characters.
func FormatNumber(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", overflow("format")
	}
	if v == 0 {
		return "0", nil
	}

	if math.Abs(v) >= exponentThreshold {
		return formatExponent(v), nil
	}

	s := trimFraction(strconv.FormatFloat(v, 'f', fractionDigits, 64))
	if s == "0" || s == "-0" {
		// non-zero but below the fixed-point resolution
		return formatExponent(v), nil
	}
	if len(s) <= MaxOperandLength {
		return s, nil
	}

	intLen := strings.IndexByte(s, '.')
	if intLen < 0 {
		intLen = len(s)
	}
	if frac := MaxOperandLength - intLen - 1; frac > 0 {
		return trimFraction(strconv.FormatFloat(v, 'f', frac, 64)), nil
	}
	if s = strconv.FormatFloat(v, 'f', 0, 64); len(s) <= MaxOperandLength {
		return s, nil
	}
	return formatExponent(v), nil
}

func formatExponent(v float64) string {
	for prec := fractionDigits; prec > 1; prec-- {
		s := strconv.FormatFloat(v, 'g', prec, 64)
		if len(s) <= MaxOperandLength {
			return s
		}
	}
	return strconv.FormatFloat(v, 'g', 1, 64)
}

func trimFraction(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// parseOperand converts operand text to a number. A trailing decimal
// point ("5.") is accepted as typed input.
func parseOperand(operation, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "."), 64)
	if err != nil {
		return 0, parseError(operation, s, err)
	}
	return v, nil
}

// canonical returns the display form of an operand, or the operand
// unchanged if it cannot be parsed.
func canonical(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "."), 64)
	if err != nil {
		return s
	}
	f, err := FormatNumber(v)
	if err != nil {
		return s
	}
	return f
}
