// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     calculator
// Description: Styles for the calculator TUI
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package calculator

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mRechner/pkg/core/config"
)

// Color Palette - shared with the other mRE front ends
var (
	ColorAccent = lipgloss.Color("#F59E0B") // Amber
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
	ColorDimmed = lipgloss.Color("#374151") // Dark Gray

	ColorBgPanel   = lipgloss.Color("#1E293B") // Slate 800
	ColorBgKey     = lipgloss.Color("#334155") // Slate 700
	ColorBgPressed = lipgloss.Color("#475569") // Slate 600
	ColorText      = lipgloss.Color("#F9FAFB") // Gray 50
)

// Layout sizes in terminal cells
const (
	keyWidth       = 7
	memoryKeyWidth = 5
	bodyWidth      = 4*keyWidth + 3
	historyWidth   = 30
	historyHeight  = 12
)

// Theme holds the configurable colours
type Theme struct {
	Accent     string
	Foreground string
	Muted      string
	Error      string
}

// DefaultTheme returns the built-in colours
func DefaultTheme() Theme {
	return Theme{
		Accent:     string(ColorAccent),
		Foreground: string(ColorText),
		Muted:      string(ColorMuted),
		Error:      string(ColorError),
	}
}

// ThemeFromConfig takes the colours of the [display] section. Empty
// values keep the defaults.
func ThemeFromConfig(c config.DisplayConfig) Theme {
	t := DefaultTheme()
	if c.Accent != "" {
		t.Accent = c.Accent
	}
	if c.Foreground != "" {
		t.Foreground = c.Foreground
	}
	if c.Muted != "" {
		t.Muted = c.Muted
	}
	if c.Error != "" {
		t.Error = c.Error
	}
	return t
}

// Styles are the lipgloss styles derived from a Theme
type Styles struct {
	Title      lipgloss.Style
	Memory     lipgloss.Style
	Display    lipgloss.Style
	Expression lipgloss.Style
	Result     lipgloss.Style
	Error      lipgloss.Style

	Key         lipgloss.Style
	OperatorKey lipgloss.Style
	FunctionKey lipgloss.Style
	PressedKey  lipgloss.Style
	MemoryKey   lipgloss.Style

	Panel         lipgloss.Style
	PanelTitle    lipgloss.Style
	HistoryItem   lipgloss.Style
	HistoryResult lipgloss.Style
	Selected      lipgloss.Style

	Status lipgloss.Style
	Prompt lipgloss.Style
}

// NewStyles builds the styles for a theme
func NewStyles(t Theme) Styles {
	accent := lipgloss.Color(t.Accent)
	fg := lipgloss.Color(t.Foreground)
	muted := lipgloss.Color(t.Muted)

	key := lipgloss.NewStyle().
		Width(keyWidth).
		Align(lipgloss.Center).
		Foreground(fg).
		Background(ColorBgKey)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Memory: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Display: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Width(bodyWidth - 2).
			Align(lipgloss.Right),
		Expression: lipgloss.NewStyle().
			Foreground(muted),
		Result: lipgloss.NewStyle().
			Foreground(fg).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		Key: key,
		OperatorKey: key.
			Foreground(accent).
			Bold(true),
		FunctionKey: key.
			Background(ColorBgPanel),
		PressedKey: key.
			Foreground(ColorBgPanel).
			Background(accent).
			Bold(true),
		MemoryKey: lipgloss.NewStyle().
			Width(memoryKeyWidth).
			Align(lipgloss.Center).
			Foreground(muted),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		HistoryItem: lipgloss.NewStyle().
			Foreground(muted),
		HistoryResult: lipgloss.NewStyle().
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Foreground(ColorBgPanel).
			Background(accent),

		Status: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Prompt: lipgloss.NewStyle().
			Foreground(accent),
	}
}

// keyStyle picks the style of a keypad button
func (s Styles) keyStyle(symbol string, pressed bool) lipgloss.Style {
	switch {
	case pressed:
		return s.PressedKey
	case isOperator(symbol):
		return s.OperatorKey
	case len(symbol) == 1 && symbol[0] >= '0' && symbol[0] <= '9', symbol == ".":
		return s.Key
	default:
		return s.FunctionKey
	}
}

func isOperator(symbol string) bool {
	switch symbol {
	case "+", "-", "×", "÷", "=":
		return true
	}
	return false
}
