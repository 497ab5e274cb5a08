package gui

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/msto63/mRechner/internal/history"
	"github.com/msto63/mRechner/internal/i18n"
	"github.com/msto63/mRechner/internal/settings"
)

func newTestGame(t *testing.T) (*Game, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore(history.DefaultLimit)
	g, err := NewGame(Options{
		Store:        store,
		Translator:   i18n.MustNew("en"),
		SettingsPath: filepath.Join(t.TempDir(), "settings.json"),
	})
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return g, store
}

func keys(g *Game, names ...string) {
	for _, n := range names {
		g.HandleKey(n)
	}
}

func click(t *testing.T, g *Game, symbols ...string) {
	t.Helper()
	for _, s := range symbols {
		found := false
		for _, b := range g.layout.Buttons {
			if b.Symbol == s {
				g.Click(image.Pt(b.Rect.Min.X+1, b.Rect.Min.Y+1))
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("no button %q", s)
		}
	}
}

func TestClickComputesAndRecords(t *testing.T) {
	g, store := newTestGame(t)

	click(t, g, "7", "×", "6", "=")
	if got := g.display.Result; got != "42" {
		t.Errorf("Result = %q, want 42", got)
	}
	if g.pressed != "=" {
		t.Errorf("pressed = %q, want =", g.pressed)
	}

	entries, _ := store.List(context.Background())
	if len(entries) != 1 || entries[0].Expression != "7 × 6" {
		t.Fatalf("entries = %+v, want one 7 × 6", entries)
	}
	if len(g.entries) != 1 {
		t.Errorf("cached entries = %d, want 1", len(g.entries))
	}
}

func TestKeyboard(t *testing.T) {
	g, _ := newTestGame(t)

	keys(g, "9", "/", "0", "enter")
	if g.errText != "Cannot divide by zero" {
		t.Errorf("errText = %q, want %q", g.errText, "Cannot divide by zero")
	}

	keys(g, "esc", "4", "^")
	if g.errText != "" || g.display.Result != "16" {
		t.Errorf("errText = %q Result = %q, want empty and 16", g.errText, g.display.Result)
	}

	keys(g, "ctrl+s", "esc")
	if !g.display.HasMemory {
		t.Error("HasMemory = false after MS and clear")
	}
	keys(g, "ctrl+r")
	if g.display.Result != "16" {
		t.Errorf("Result = %q after MR, want 16", g.display.Result)
	}
}

func TestBrowseHistory(t *testing.T) {
	g, _ := newTestGame(t)

	keys(g, "1", "+", "1", "enter", "esc", "2", "*", "5", "enter", "esc")
	if len(g.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(g.entries))
	}

	keys(g, "up")
	if g.display.Result != "10" {
		t.Errorf("Result = %q, want newest result 10", g.display.Result)
	}
	keys(g, "up", "up")
	if g.display.Result != "2" {
		t.Errorf("Result = %q, want oldest result 2", g.display.Result)
	}
	keys(g, "down")
	if g.display.Result != "10" {
		t.Errorf("Result = %q, want 10", g.display.Result)
	}

	keys(g, "ctrl+d")
	if len(g.entries) != 0 {
		t.Errorf("entries = %d after clear, want 0", len(g.entries))
	}
}

func TestClipboard(t *testing.T) {
	g, _ := newTestGame(t)

	var copied string
	g.copyText = func(s string) error {
		copied = s
		return nil
	}
	g.pasteText = func() (string, error) { return " 3,25 ", nil }

	keys(g, "8", "ctrl+y")
	if copied != "8" {
		t.Errorf("copied = %q, want 8", copied)
	}
	keys(g, "ctrl+v")
	if g.display.Result != "3.25" {
		t.Errorf("Result = %q after paste, want 3.25", g.display.Result)
	}

	g.pasteText = func() (string, error) { return "", errors.New("no clipboard") }
	keys(g, "ctrl+v")
	if g.display.Result != "3.25" {
		t.Errorf("Result = %q after failed paste, want 3.25", g.display.Result)
	}
}

func TestAlphaAndQuit(t *testing.T) {
	g, _ := newTestGame(t)

	keys(g, "[", "[", "[")
	if got := g.bg.Alpha(); got != 70 {
		t.Errorf("Alpha() = %d, want 70", got)
	}
	s, _ := settings.Load(g.settingsPath)
	if s.Alpha != 70 {
		t.Errorf("saved Alpha = %d, want 70", s.Alpha)
	}

	keys(g, "ctrl+q")
	if !g.quit {
		t.Error("quit = false after ctrl+q")
	}
}

func TestTickExpires(t *testing.T) {
	g, _ := newTestGame(t)

	keys(g, "5", "ctrl+y")
	for i := 0; i < statusTicks; i++ {
		g.tick()
	}
	if g.pressed != "" || g.status != "" {
		t.Errorf("pressed = %q status = %q after expiry", g.pressed, g.status)
	}
}

func TestLayoutResize(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Layout(500, 700)
	if w != 500 || h != 700 {
		t.Errorf("Layout() = %d, %d", w, h)
	}
	if g.layout.Width != 500 || g.layout.Height != 700 {
		t.Errorf("layout = %dx%d, want 500x700", g.layout.Width, g.layout.Height)
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t)
	keys(g, "1", "2", "3")

	bg := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range bg.Pix {
		bg.Pix[i] = 0xff
	}
	g.bg.SetImage(bg)

	frame := image.NewRGBA(image.Rect(0, 0, DefaultWidth, DefaultHeight))
	g.renderer.Render(frame, g.layout, g.Frame())

	// the white wallpaper shows between the buttons
	if c := frame.RGBAAt(1, 1); c != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("corner pixel = %v, want white", c)
	}
	// buttons are translucent, darker than the wallpaper but not opaque
	b := g.layout.Buttons[len(g.layout.Buttons)-1].Rect
	c := frame.RGBAAt(b.Min.X+1, b.Min.Y+1)
	if c.R == 0xff || c.R == colorKey.R {
		t.Errorf("button pixel = %v, want blended", c)
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name    string
		chars   []rune
		pressed []ebiten.Key
		ctrl    bool
		want    []string
	}{
		{"digits", []rune("12"), nil, false, []string{"1", "2"}},
		{"enter", nil, []ebiten.Key{ebiten.KeyNumpadEnter}, false, []string{"enter"}},
		{"escape and char", []rune("+"), []ebiten.Key{ebiten.KeyEscape}, false, []string{"esc", "+"}},
		{"ctrl shortcut", []rune("s"), []ebiten.Key{ebiten.KeyS, ebiten.KeyControlLeft}, true, []string{"ctrl+s"}},
		{"letter without ctrl", []rune("r"), []ebiten.Key{ebiten.KeyR}, false, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyNames(tt.chars, tt.pressed, tt.ctrl)
			if len(got) != len(tt.want) {
				t.Fatalf("keyNames() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("keyNames()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
