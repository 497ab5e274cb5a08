// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     calculator
// Description: Main Bubbletea model for the mRE terminal calculator
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package calculator implements the terminal front end: display, keypad,
// history panel and an optional half-block background image.
package calculator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mRechner/internal/background"
	"github.com/msto63/mRechner/internal/engine"
	"github.com/msto63/mRechner/internal/history"
	"github.com/msto63/mRechner/internal/i18n"
	"github.com/msto63/mRechner/internal/keymap"
	"github.com/msto63/mRechner/internal/settings"
	"github.com/msto63/mRechner/pkg/core/logging"
)

const (
	storeTimeout = 5 * time.Second
	alphaStep    = 10
)

// statusTimeout is how long a status message stays visible
var statusTimeout = 3 * time.Second

// Options configures the calculator model
type Options struct {
	Keymap     *keymap.Keymap
	Store      history.Store
	Background *background.Provider
	Translator *i18n.Translator
	Logger     *logging.Logger
	Theme      Theme

	// BackgroundPath is loaded on start
	BackgroundPath string
	// Watch reloads the background when its file changes
	Watch    bool
	Debounce time.Duration

	ShowHistory bool

	// SettingsPath receives runtime changes (background, alpha, history
	// panel). Empty disables persistence.
	SettingsPath string
}

// Model is the main Bubbletea model for the calculator
type Model struct {
	// State
	width  int
	height int

	engine  *engine.Engine
	display engine.Display
	pressed string
	errText string

	status   string
	statusID int

	// History
	store       history.Store
	entries     []history.Entry // oldest first
	selected    int
	showHistory bool
	historyView viewport.Model

	// Background
	bg             *background.Provider
	backgroundPath string
	watcher        *background.Watcher
	watch          bool
	debounce       time.Duration

	// Components
	prompting bool
	prompt    textinput.Model
	keys      keyMap
	help      help.Model

	keymap       *keymap.Keymap
	tr           *i18n.Translator
	log          *logging.Logger
	theme        Theme
	styles       Styles
	settingsPath string

	copyText  func(string) error
	pasteText func() (string, error)
}

// New creates a calculator model. Missing collaborators get defaults: the
// built-in keymap, an in-memory history and a German translator.
func New(opts Options) Model {
	if opts.Keymap == nil {
		opts.Keymap = keymap.Default()
	}
	if opts.Store == nil {
		opts.Store = history.NewMemoryStore(history.DefaultLimit)
	}
	if opts.Background == nil {
		opts.Background = background.NewProvider()
	}
	if opts.Translator == nil {
		opts.Translator = i18n.MustNew(i18n.DefaultLocale)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Wrap(logging.NewLogger(logging.LoggerConfig{
			ComponentName: "calculator",
			Quiet:         true,
		}))
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = DefaultTheme()
	}

	prompt := textinput.New()
	prompt.Placeholder = opts.Translator.T("label.background_prompt")
	prompt.CharLimit = 512
	prompt.Width = bodyWidth + historyWidth

	h := help.New()
	h.ShowAll = false

	e := engine.New()
	m := Model{
		engine:         e,
		display:        e.Display(),
		store:          opts.Store,
		selected:       -1,
		showHistory:    opts.ShowHistory,
		historyView:    viewport.New(historyWidth, historyHeight),
		bg:             opts.Background,
		backgroundPath: opts.BackgroundPath,
		watch:          opts.Watch,
		debounce:       opts.Debounce,
		prompt:         prompt,
		keys:           newKeyMap(opts.Translator),
		help:           h,
		keymap:         opts.Keymap,
		tr:             opts.Translator,
		log:            opts.Logger,
		theme:          opts.Theme,
		styles:         NewStyles(opts.Theme),
		settingsPath:   opts.SettingsPath,
		copyText:       clipboard.WriteAll,
		pasteText:      clipboard.ReadAll,
	}
	m.updateHistoryView()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadHistory()}
	if m.backgroundPath != "" {
		cmds = append(cmds, m.loadBackground(m.backgroundPath, false))
	}
	return tea.Batch(cmds...)
}

// Close stops the background watcher
func (m Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// Display returns the current engine output
func (m Model) Display() engine.Display {
	return m.display
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.log.Error("Failed to load history", "error", msg.err)
			return m.setStatus(m.tr.ErrorMessage(msg.err))
		}
		m.entries = msg.entries
		m.selected = len(m.entries) - 1
		m.updateHistoryView()
		return m, nil

	case historySavedMsg:
		if msg.err != nil {
			m.log.Error("Failed to save calculation", "error", msg.err)
			return m.setStatus(m.tr.ErrorMessage(msg.err))
		}
		m.log.Debug("Calculation saved", "id", msg.entry.ID, "expression", msg.entry.Expression, "result", msg.entry.Result)
		m, cmd := m.setStatus(m.tr.T("status.history_saved"))
		return m, tea.Batch(cmd, m.loadHistory())

	case historyClearedMsg:
		if msg.err != nil {
			m.log.Error("Failed to clear history", "error", msg.err)
			return m.setStatus(m.tr.ErrorMessage(msg.err))
		}
		m.entries = nil
		m.selected = -1
		m.updateHistoryView()
		m.log.Info("History cleared")
		return m.setStatus(m.tr.T("status.history_cleared"))

	case backgroundLoadedMsg:
		return m.handleBackgroundLoaded(msg)

	case backgroundChangedMsg:
		if msg.watcher != m.watcher {
			return m, nil
		}
		return m, tea.Batch(m.loadBackground(msg.path, true), waitForWatcher(m.watcher))

	case watcherErrMsg:
		if msg.watcher != m.watcher {
			return m, nil
		}
		m.log.Warn("Background watcher error", "error", msg.err)
		return m, waitForWatcher(m.watcher)

	case watcherClosedMsg:
		return m, nil

	case clipboardMsg:
		return m.handleClipboard(msg)

	case settingsSavedMsg:
		if msg.err != nil {
			m.log.Warn("Failed to save settings", "path", m.settingsPath, "error", msg.err)
		}
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input outside the background prompt
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		return m.pasteValue(string(msg.Runes))
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.ToggleHistory):
		m.showHistory = !m.showHistory
		show := m.showHistory
		return m, m.persist(func(s *settings.Settings) { s.ShowHistory = show })

	case key.Matches(msg, m.keys.Newer):
		if m.selected < len(m.entries)-1 {
			m.selected++
			m.updateHistoryView()
		}
		return m, nil

	case key.Matches(msg, m.keys.Older):
		if m.selected > 0 {
			m.selected--
			m.updateHistoryView()
		}
		return m, nil

	case key.Matches(msg, m.keys.Recall):
		return m.recall()

	case key.Matches(msg, m.keys.ClearHistory):
		return m, m.clearHistory()

	case key.Matches(msg, m.keys.Copy):
		text := m.display.Result
		copyText := m.copyText
		return m, func() tea.Msg {
			return clipboardMsg{text: text, err: copyText(text)}
		}

	case key.Matches(msg, m.keys.Paste):
		pasteText := m.pasteText
		return m, func() tea.Msg {
			text, err := pasteText()
			return clipboardMsg{paste: true, text: text, err: err}
		}

	case key.Matches(msg, m.keys.Background):
		m.prompting = true
		m.prompt.SetValue(m.bg.Path())
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.ClearBackground):
		return m.clearBackground()

	case key.Matches(msg, m.keys.AlphaDown):
		return m.changeAlpha(-alphaStep)

	case key.Matches(msg, m.keys.AlphaUp):
		return m.changeAlpha(alphaStep)
	}

	ev, ok := m.keymap.Event(msg.String())
	if !ok {
		return m, nil
	}
	return m.apply(ev)
}

// apply feeds one event to the engine and records completed calculations
func (m Model) apply(ev engine.Event) (tea.Model, tea.Cmd) {
	d := m.engine.Apply(ev)
	m.display = d
	m.pressed = ev.Symbol()

	if d.Err != nil {
		m.errText = m.tr.ErrorMessage(d.Err)
		m.log.Debug("Key rejected", "key", ev.Symbol(), "error", d.Err)
		return m, nil
	}
	m.errText = ""

	if d.Committed {
		return m, m.saveHistory(d.Expression, d.Result)
	}
	return m, nil
}

// handlePromptKey edits the background path prompt
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := expandPath(strings.TrimSpace(m.prompt.Value()))
		m.prompting = false
		m.prompt.Blur()
		if path == "" {
			return m.clearBackground()
		}
		return m, m.loadBackground(path, false)

	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// recall loads the selected history result as the current operand
func (m Model) recall() (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return m, nil
	}
	entry := m.entries[m.selected]
	if err := m.engine.Load(entry.Result); err != nil {
		m.log.Warn("History entry not loadable", "id", entry.ID, "result", entry.Result, "error", err)
		return m.setStatus(m.tr.ErrorMessage(err))
	}
	m.display = m.engine.Display()
	m.errText = ""
	return m.setStatus(m.tr.Value("status.history_recalled", entry.Result))
}

// pasteValue loads a number from the clipboard as the current operand
func (m Model) pasteValue(text string) (tea.Model, tea.Cmd) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if err := m.engine.Load(text); err != nil {
		return m.setStatus(m.tr.T("status.paste_invalid"))
	}
	m.display = m.engine.Display()
	m.errText = ""
	return m.setStatus(m.tr.Value("status.pasted", m.display.Result))
}

func (m Model) handleClipboard(msg clipboardMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("Clipboard unavailable", "error", msg.err)
		return m.setStatus(m.tr.ErrorMessage(msg.err))
	}
	if msg.paste {
		return m.pasteValue(msg.text)
	}
	return m.setStatus(m.tr.Value("status.copied", msg.text))
}

func (m Model) handleBackgroundLoaded(msg backgroundLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Warn("Failed to load background", "path", msg.path, "error", msg.err)
		return m.setStatus(m.tr.ErrorMessage(msg.err))
	}

	if msg.reload {
		m.log.Debug("Background reloaded", "path", msg.path)
		return m.setStatus(m.tr.T("status.background_reloaded"))
	}

	m.log.Info("Background loaded", "path", msg.path)
	m.backgroundPath = msg.path
	path := msg.path
	cmds := []tea.Cmd{m.persist(func(s *settings.Settings) { s.BackgroundPath = path })}

	if m.watch && (m.watcher == nil || m.watcher.Path() != absPath(msg.path)) {
		if m.watcher != nil {
			m.watcher.Close()
			m.watcher = nil
		}
		w, err := background.NewWatcher(msg.path, m.debounce)
		if err != nil {
			m.log.Warn("Cannot watch background", "path", msg.path, "error", err)
		} else {
			m.watcher = w
			cmds = append(cmds, waitForWatcher(w))
		}
	}

	m, cmd := m.setStatus(m.tr.T("status.background_loaded"))
	return m, tea.Batch(append(cmds, cmd)...)
}

func (m Model) clearBackground() (tea.Model, tea.Cmd) {
	m.bg.Clear()
	m.backgroundPath = ""
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	m.log.Info("Background removed")
	m, cmd := m.setStatus(m.tr.T("status.background_cleared"))
	return m, tea.Batch(cmd, m.persist(func(s *settings.Settings) { s.BackgroundPath = "" }))
}

func (m Model) changeAlpha(delta int) (tea.Model, tea.Cmd) {
	m.bg.SetAlpha(m.bg.Alpha() + delta)
	alpha := m.bg.Alpha()
	m, cmd := m.setStatus(m.tr.Value("status.alpha", alpha))
	return m, tea.Batch(cmd, m.persist(func(s *settings.Settings) { s.Alpha = alpha }))
}

// setStatus shows a transient status message
func (m Model) setStatus(text string) (Model, tea.Cmd) {
	m.status = text
	m.statusID++
	id := m.statusID
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// Commands

func (m Model) loadHistory() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entries, err := store.List(ctx)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) saveHistory(expression, result string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entry, err := store.Add(ctx, history.NewEntry(expression, result))
		return historySavedMsg{entry: entry, err: err}
	}
}

func (m Model) clearHistory() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		return historyClearedMsg{err: store.Clear(ctx)}
	}
}

func (m Model) loadBackground(path string, reload bool) tea.Cmd {
	bg := m.bg
	return func() tea.Msg {
		return backgroundLoadedMsg{path: path, reload: reload, err: bg.Load(path)}
	}
}

// persist applies fn to the stored user settings
func (m Model) persist(fn func(*settings.Settings)) tea.Cmd {
	path := m.settingsPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		_, err := settings.Update(path, fn)
		return settingsSavedMsg{err: err}
	}
}

// waitForWatcher blocks until the watcher reports a change or an error
func waitForWatcher(w *background.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events():
			if !ok {
				return watcherClosedMsg{}
			}
			return backgroundChangedMsg{watcher: w, path: path}
		case err, ok := <-w.Errors():
			if !ok {
				return watcherClosedMsg{}
			}
			return watcherErrMsg{watcher: w, err: err}
		}
	}
}

// expandPath resolves ~ and environment variables in a typed path
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
