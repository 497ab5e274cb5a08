package calculator

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/msto63/mRechner/internal/i18n"
)

// keyMap holds the application shortcuts. Calculator buttons are
// resolved through the keymap package instead.
type keyMap struct {
	Quit            key.Binding
	Help            key.Binding
	ToggleHistory   key.Binding
	Newer           key.Binding
	Older           key.Binding
	Recall          key.Binding
	ClearHistory    key.Binding
	Copy            key.Binding
	Paste           key.Binding
	Background      key.Binding
	ClearBackground key.Binding
	AlphaDown       key.Binding
	AlphaUp         key.Binding
}

func newKeyMap(tr *i18n.Translator) keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", tr.T("help.quit")),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", tr.T("help.more")),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", tr.T("help.history")),
		),
		Newer: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", ""),
		),
		Older: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", ""),
		),
		Recall: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", tr.T("help.recall")),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", tr.T("help.clear_history")),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", tr.T("help.copy")),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", tr.T("help.paste")),
		),
		Background: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", tr.T("help.background")),
		),
		ClearBackground: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", tr.T("help.clear_background")),
		),
		AlphaDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", tr.T("help.alpha")+" -"),
		),
		AlphaUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", tr.T("help.alpha")+" +"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleHistory, k.Copy, k.Paste, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleHistory, k.Recall, k.ClearHistory},
		{k.Copy, k.Paste},
		{k.Background, k.ClearBackground, k.AlphaDown, k.AlphaUp},
		{k.Help, k.Quit},
	}
}
