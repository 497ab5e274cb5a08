package calculator

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mRechner/internal/history"
	"github.com/msto63/mRechner/internal/i18n"
	"github.com/msto63/mRechner/internal/settings"
)

func init() {
	statusTimeout = time.Millisecond
}

func newTestModel(t *testing.T) (Model, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore(history.DefaultLimit)
	m := New(Options{
		Store:        store,
		Translator:   i18n.MustNew("en"),
		ShowHistory:  true,
		SettingsPath: filepath.Join(t.TempDir(), "settings.json"),
	})
	return m, store
}

var keyTypes = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"ctrl+b":    tea.KeyCtrlB,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+q":    tea.KeyCtrlQ,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+v":    tea.KeyCtrlV,
	"ctrl+x":    tea.KeyCtrlX,
	"ctrl+y":    tea.KeyCtrlY,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := keyTypes[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// drain runs cmd and feeds the resulting messages back into the model
// until no commands remain. Status timeouts are dropped so the status
// line can be checked afterwards.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("drain: too many commands")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case clearStatusMsg, nil:
		default:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

// press sends keys and runs all resulting commands
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func TestKeypadInput(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "1", "2", ",", "5", "*", "2")
	d := m.Display()
	if d.Expression != "12.5 × 2" {
		t.Errorf("Expression = %q, want %q", d.Expression, "12.5 × 2")
	}
	if d.Result != "2" {
		t.Errorf("Result = %q, want %q", d.Result, "2")
	}
	if m.pressed != "2" {
		t.Errorf("pressed = %q, want %q", m.pressed, "2")
	}

	m = press(t, m, "backspace", "delete", "esc")
	if d := m.Display(); d.Result != "0" || d.Expression != "" {
		t.Errorf("after clear Display = %+v, want 0 and empty expression", d)
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "7", "q")
	if got := m.Display().Result; got != "7" {
		t.Errorf("Result = %q, want 7", got)
	}
}

func TestEqualsRecordsHistory(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "5", "+", "3", "enter")

	if got := m.Display().Result; got != "8" {
		t.Fatalf("Result = %q, want 8", got)
	}
	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("stored entries = %d, want 1", len(entries))
	}
	if entries[0].Expression != "5 + 3" || entries[0].Result != "8" {
		t.Errorf("entry = %q = %q, want 5 + 3 = 8", entries[0].Expression, entries[0].Result)
	}
	if len(m.entries) != 1 || m.selected != 0 {
		t.Errorf("model entries = %d selected = %d, want 1 and 0", len(m.entries), m.selected)
	}
	if m.status != "Saved to history" {
		t.Errorf("status = %q, want %q", m.status, "Saved to history")
	}

	// a repeated equals without a pending operator records nothing
	m = press(t, m, "enter")
	entries, _ = store.List(context.Background())
	if len(entries) != 1 {
		t.Errorf("stored entries = %d after repeated equals, want 1", len(entries))
	}
}

func TestDivisionByZero(t *testing.T) {
	m, store := newTestModel(t)

	next, _ := m.Update(keyMsg("5"))
	m = next.(Model)
	m = press(t, m, "/", "0")

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	if cmd != nil {
		t.Error("failed equals should not record history")
	}
	if m.errText != "Cannot divide by zero" {
		t.Errorf("errText = %q, want %q", m.errText, "Cannot divide by zero")
	}
	if !strings.Contains(m.View(), "Cannot divide by zero") {
		t.Error("View() does not show the error")
	}
	if entries, _ := store.List(context.Background()); len(entries) != 0 {
		t.Errorf("stored entries = %d, want 0", len(entries))
	}

	m = press(t, m, "2", "enter")
	if m.errText != "" {
		t.Errorf("errText = %q after recovery, want empty", m.errText)
	}
	if got := m.Display().Result; got != "2.5" {
		t.Errorf("Result = %q, want 2.5", got)
	}
}

func TestHistoryRecall(t *testing.T) {
	m, store := newTestModel(t)
	ctx := context.Background()
	for _, e := range []history.Entry{
		history.NewEntry("1 + 1", "2"),
		history.NewEntry("2 × 21", "42"),
	} {
		if _, err := store.Add(ctx, e); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	m = drain(t, m, m.Init())
	if len(m.entries) != 2 || m.selected != 1 {
		t.Fatalf("entries = %d selected = %d, want 2 and 1", len(m.entries), m.selected)
	}

	m = press(t, m, "down", "down", "ctrl+e")
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0", m.selected)
	}
	if got := m.Display().Result; got != "2" {
		t.Errorf("Result = %q after recall, want 2", got)
	}

	m = press(t, m, "up", "ctrl+e", "+", "1", "enter")
	if got := m.Display().Result; got != "43" {
		t.Errorf("Result = %q, want 43", got)
	}
}

func TestClearHistory(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "2", "*", "3", "enter")
	if len(m.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(m.entries))
	}

	m = press(t, m, "ctrl+d")
	if len(m.entries) != 0 || m.selected != -1 {
		t.Errorf("entries = %d selected = %d, want 0 and -1", len(m.entries), m.selected)
	}
	if m.status != "History cleared" {
		t.Errorf("status = %q, want %q", m.status, "History cleared")
	}
	if !strings.Contains(m.View(), "No calculations yet") {
		t.Error("View() does not show the empty history")
	}
}

func TestHistoryStoreError(t *testing.T) {
	m, store := newTestModel(t)
	m.store = failingStore{store}

	m = press(t, m, "1", "+", "1", "enter")
	if m.status != "Error" {
		t.Errorf("status = %q, want %q", m.status, "Error")
	}
	if got := m.Display().Result; got != "2" {
		t.Errorf("Result = %q, want 2", got)
	}
}

type failingStore struct {
	history.Store
}

func (failingStore) Add(context.Context, history.Entry) (history.Entry, error) {
	return history.Entry{}, errors.New("disk full")
}

func TestCopyPaste(t *testing.T) {
	m, _ := newTestModel(t)

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	clip := "12,5"
	m.pasteText = func() (string, error) { return clip, nil }

	m = press(t, m, "4", "2", "ctrl+y")
	if copied != "42" {
		t.Errorf("copied = %q, want 42", copied)
	}
	if m.status != "Copied 42" {
		t.Errorf("status = %q, want %q", m.status, "Copied 42")
	}

	m = press(t, m, "ctrl+v")
	if got := m.Display().Result; got != "12.5" {
		t.Errorf("Result = %q after paste, want 12.5", got)
	}

	clip = "abc"
	m = press(t, m, "ctrl+v")
	if got := m.Display().Result; got != "12.5" {
		t.Errorf("Result = %q after invalid paste, want 12.5", got)
	}
	if m.status != "Clipboard does not hold a number" {
		t.Errorf("status = %q", m.status)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7"), Paste: true})
	m = drain(t, next.(Model), cmd)
	if got := m.Display().Result; got != "7" {
		t.Errorf("Result = %q after bracketed paste, want 7", got)
	}
}

func TestMemoryIndicator(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "9", "ctrl+s")
	if !m.Display().HasMemory {
		t.Fatal("HasMemory = false after MS")
	}
	lines := m.plainLines()
	if !strings.HasSuffix(lines[0], "M") {
		t.Errorf("title line = %q, want memory indicator", lines[0])
	}
}

func TestToggleHistoryPersists(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "tab")
	if m.showHistory {
		t.Error("showHistory = true after toggle")
	}
	s, err := settings.Load(m.settingsPath)
	if err != nil {
		t.Fatalf("settings.Load() error = %v", err)
	}
	if s.ShowHistory {
		t.Error("saved ShowHistory = true, want false")
	}
}

func TestAlpha(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "[", "[")
	if got := m.bg.Alpha(); got != 80 {
		t.Errorf("Alpha() = %d, want 80", got)
	}
	if m.status != "Opacity 80%" {
		t.Errorf("status = %q, want %q", m.status, "Opacity 80%")
	}

	m = press(t, m, "]", "]", "]")
	if got := m.bg.Alpha(); got != 100 {
		t.Errorf("Alpha() = %d, want 100", got)
	}

	s, _ := settings.Load(m.settingsPath)
	if s.Alpha != 100 {
		t.Errorf("saved Alpha = %d, want 100", s.Alpha)
	}
}

func writeImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	path := filepath.Join(dir, "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return path
}

func TestBackground(t *testing.T) {
	m, _ := newTestModel(t)
	path := writeImage(t, t.TempDir())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 70, Height: 20})
	m = next.(Model)

	next, _ = m.Update(keyMsg("ctrl+b"))
	m = next.(Model)
	if !m.prompting {
		t.Fatal("prompting = false after ctrl+b")
	}
	m.prompt.SetValue(path)

	m = press(t, m, "enter")
	if m.prompting {
		t.Error("prompting = true after enter")
	}
	if !m.bg.HasImage() {
		t.Fatalf("HasImage() = false, status = %q", m.status)
	}
	s, _ := settings.Load(m.settingsPath)
	if s.BackgroundPath != path {
		t.Errorf("saved BackgroundPath = %q, want %q", s.BackgroundPath, path)
	}

	view := m.View()
	if !strings.Contains(view, "▀") {
		t.Error("View() has no half blocks with a background")
	}
	if strings.Count(view, "\n") != 19 {
		t.Errorf("View() has %d lines, want 20", strings.Count(view, "\n")+1)
	}

	m = press(t, m, "ctrl+x")
	if m.bg.HasImage() {
		t.Error("HasImage() = true after ctrl+x")
	}
	s, _ = settings.Load(m.settingsPath)
	if s.BackgroundPath != "" {
		t.Errorf("saved BackgroundPath = %q, want empty", s.BackgroundPath)
	}
}

func TestBackgroundLoadError(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(keyMsg("ctrl+b"))
	m = next.(Model)
	m.prompt.SetValue(filepath.Join(t.TempDir(), "missing.png"))
	m = press(t, m, "enter")

	if m.bg.HasImage() {
		t.Error("HasImage() = true for a missing file")
	}
	if m.status == "" {
		t.Error("no status for a failed load")
	}
}

func TestPromptEscape(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(keyMsg("ctrl+b"))
	m = next.(Model)
	m = press(t, m, "esc", "7")
	if m.prompting {
		t.Error("prompting = true after esc")
	}
	if got := m.Display().Result; got != "7" {
		t.Errorf("Result = %q, want 7", got)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("ctrl+q"))
	if cmd == nil {
		t.Fatal("ctrl+q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+q did not quit")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "3", "^")

	view := m.View()
	for _, want := range []string{"meinRECHNER", "9", "History", "√", "MC"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestGermanLabels(t *testing.T) {
	m := New(Options{Translator: i18n.MustNew("de")})
	if !strings.Contains(m.plainHelp(), "Verlauf") {
		t.Errorf("plainHelp() = %q, want German help", m.plainHelp())
	}
	m.showHistory = true
	if !strings.Contains(m.View(), "Noch keine Berechnungen") {
		t.Error("View() does not show the German empty history")
	}
}

func TestPlainLinesWidth(t *testing.T) {
	m, _ := newTestModel(t)
	for i, line := range m.plainLines() {
		if w := len([]rune(line)); w != bodyWidth {
			t.Errorf("line %d width = %d, want %d: %q", i, w, bodyWidth, line)
		}
	}
}
