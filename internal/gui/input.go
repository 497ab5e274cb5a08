package gui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// namedKeys are keys without a printable character, named the way the
// keymap expects them
var namedKeys = map[ebiten.Key]string{
	ebiten.KeyEnter:       "enter",
	ebiten.KeyNumpadEnter: "enter",
	ebiten.KeyBackspace:   "backspace",
	ebiten.KeyDelete:      "delete",
	ebiten.KeyEscape:      "esc",
	ebiten.KeyArrowUp:     "up",
	ebiten.KeyArrowDown:   "down",
}

// ctrlKeys are the letters used in ctrl shortcuts
var ctrlKeys = map[ebiten.Key]string{
	ebiten.KeyB: "ctrl+b",
	ebiten.KeyD: "ctrl+d",
	ebiten.KeyE: "ctrl+e",
	ebiten.KeyL: "ctrl+l",
	ebiten.KeyO: "ctrl+o",
	ebiten.KeyP: "ctrl+p",
	ebiten.KeyQ: "ctrl+q",
	ebiten.KeyR: "ctrl+r",
	ebiten.KeyS: "ctrl+s",
	ebiten.KeyV: "ctrl+v",
	ebiten.KeyX: "ctrl+x",
	ebiten.KeyY: "ctrl+y",
}

// keyNames converts one tick of input into keymap key names. Printable
// characters arrive as runes; with ctrl held only the shortcut letters
// count.
func keyNames(chars []rune, pressed []ebiten.Key, ctrl bool) []string {
	var names []string
	for _, k := range pressed {
		if ctrl {
			if name, ok := ctrlKeys[k]; ok {
				names = append(names, name)
			}
			continue
		}
		if name, ok := namedKeys[k]; ok {
			names = append(names, name)
		}
	}
	if ctrl {
		return names
	}
	for _, r := range chars {
		names = append(names, string(r))
	}
	return names
}

// normalizeNumber accepts a decimal comma in pasted text
func normalizeNumber(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
}
