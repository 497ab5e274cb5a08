package gui

import (
	"image"

	"github.com/msto63/mRechner/internal/keymap"
)

// Window metrics in pixels
const (
	DefaultWidth  = 360
	DefaultHeight = 560

	padding       = 10
	gap           = 6
	displayHeight = 96
	memoryHeight  = 30
	statusHeight  = 22
)

// Button is one clickable keypad cell
type Button struct {
	Symbol string
	Rect   image.Rectangle
}

// Layout positions the display and the buttons for a window size
type Layout struct {
	Width   int
	Height  int
	Display image.Rectangle
	Status  image.Rectangle
	Buttons []Button
}

// NewLayout computes the layout for a w×h window. The memory row keeps
// a fixed height; the keypad rows share the remaining space.
func NewLayout(w, h int) Layout {
	l := Layout{Width: w, Height: h}
	inner := image.Rect(padding, padding, w-padding, h-padding)

	l.Display = image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+displayHeight)
	l.Status = image.Rect(inner.Min.X, inner.Max.Y-statusHeight, inner.Max.X, inner.Max.Y)

	y := l.Display.Max.Y + gap
	l.Buttons = append(l.Buttons, row(keymap.MemoryRow, inner.Min.X, inner.Max.X, y, memoryHeight)...)
	y += memoryHeight + gap

	rows := len(keymap.Keypad)
	avail := l.Status.Min.Y - gap - y
	rowHeight := (avail - (rows-1)*gap) / rows
	if rowHeight < 1 {
		rowHeight = 1
	}
	for _, symbols := range keymap.Keypad {
		l.Buttons = append(l.Buttons, row(symbols, inner.Min.X, inner.Max.X, y, rowHeight)...)
		y += rowHeight + gap
	}
	return l
}

// row splits [x0, x1) into equal cells separated by gap
func row(symbols []string, x0, x1, y, height int) []Button {
	n := len(symbols)
	width := (x1 - x0 - (n-1)*gap) / n
	buttons := make([]Button, n)
	for i, s := range symbols {
		x := x0 + i*(width+gap)
		buttons[i] = Button{Symbol: s, Rect: image.Rect(x, y, x+width, y+height)}
	}
	return buttons
}

// HitTest returns the symbol of the button under p
func (l Layout) HitTest(p image.Point) (string, bool) {
	for _, b := range l.Buttons {
		if p.In(b.Rect) {
			return b.Symbol, true
		}
	}
	return "", false
}
