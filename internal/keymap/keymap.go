// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     keymap
// Description: Keyboard key to calculator button mapping with YAML overrides
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package keymap

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/mRechner/internal/engine"
)

// Key names follow Bubble Tea's KeyMsg.String() form ("enter",
// "backspace", "ctrl+l", "+", "7"). The desktop front end translates its
// keys into the same names.
var defaultBindings = map[string]string{
	"0": "0", "1": "1", "2": "2", "3": "3", "4": "4",
	"5": "5", "6": "6", "7": "7", "8": "8", "9": "9",
	".": ".",
	",": ".",

	"+": "+",
	"-": "-",
	"*": "×",
	"x": "×",
	"/": "÷",
	":": "÷",

	"enter": "=",
	"=":     "=",

	"backspace": "⌫",
	"delete":    "CE",
	"esc":       "C",

	"%": "%",
	"^": "x²",
	"r": "√",
	"v": "1/x",
	"n": "±",

	"ctrl+l": "MC",
	"ctrl+r": "MR",
	"ctrl+s": "MS",
	"ctrl+p": "M+",
	"ctrl+o": "M-",
}

// File is the YAML form of key binding overrides
//
//	bindings:
//	  q: C
//	  "ctrl+e": "="
//	unbind:
//	  - r
type File struct {
	Bindings map[string]string `yaml:"bindings"`
	Unbind   []string          `yaml:"unbind"`
}

// Keymap maps key names to button symbols
type Keymap struct {
	bindings map[string]string
}

// Default returns the built-in key bindings
func Default() *Keymap {
	k := &Keymap{bindings: make(map[string]string, len(defaultBindings))}
	for key, symbol := range defaultBindings {
		k.bindings[key] = symbol
	}
	return k
}

// Load returns the default bindings with the overrides from path applied.
// An empty path yields the defaults.
func Load(path string) (*Keymap, error) {
	k := Default()
	if path == "" {
		return k, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse keymap: %w", err)
	}

	if err := k.Apply(f); err != nil {
		return nil, err
	}
	return k, nil
}

// Apply applies overrides. Unbinds are applied before bindings.
func (k *Keymap) Apply(f File) error {
	for _, key := range f.Unbind {
		delete(k.bindings, normalize(key))
	}
	for key, symbol := range f.Bindings {
		if err := k.Bind(key, symbol); err != nil {
			return err
		}
	}
	return nil
}

// Bind maps key to symbol. The symbol must be a known button label.
func (k *Keymap) Bind(key, symbol string) error {
	key = normalize(key)
	if key == "" {
		return fmt.Errorf("empty key name for symbol %q", symbol)
	}
	ev, err := engine.ParseSymbol(symbol)
	if err != nil {
		return fmt.Errorf("invalid binding %q: %w", key, err)
	}
	k.bindings[key] = ev.Symbol()
	return nil
}

// Lookup returns the button symbol bound to key
func (k *Keymap) Lookup(key string) (string, bool) {
	symbol, ok := k.bindings[normalize(key)]
	return symbol, ok
}

// Event returns the engine event bound to key
func (k *Keymap) Event(key string) (engine.Event, bool) {
	symbol, ok := k.Lookup(key)
	if !ok {
		return engine.Event{}, false
	}
	ev, err := engine.ParseSymbol(symbol)
	if err != nil {
		return engine.Event{}, false
	}
	return ev, true
}

// KeysFor returns the sorted key names bound to symbol
func (k *Keymap) KeysFor(symbol string) []string {
	var keys []string
	for key, s := range k.bindings {
		if s == symbol {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Bindings returns a copy of all bindings
func (k *Keymap) Bindings() map[string]string {
	out := make(map[string]string, len(k.bindings))
	for key, symbol := range k.bindings {
		out[key] = symbol
	}
	return out
}

// normalize lower-cases modifier names but keeps single characters, so
// that "X" and "x" stay distinct.
func normalize(key string) string {
	key = strings.TrimSpace(key)
	if len([]rune(key)) <= 1 {
		return key
	}
	return strings.ToLower(key)
}
