package keymap

// MemoryRow holds the memory buttons shown above the keypad.
var MemoryRow = []string{"MC", "MR", "M+", "M-", "MS"}

// Keypad is the button grid of both front ends, top row first.
var Keypad = [][]string{
	{"%", "CE", "C", "⌫"},
	{"1/x", "x²", "√", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"±", "0", ".", "="},
}

// Rows returns the memory row followed by the keypad rows.
func Rows() [][]string {
	rows := make([][]string, 0, len(Keypad)+1)
	rows = append(rows, MemoryRow)
	return append(rows, Keypad...)
}
