// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     gui
// Description: Desktop window with a translucent keypad over the background
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package gui implements the desktop front end on Ebitengine. Every frame
// is rendered in software into an RGBA image and uploaded to the window.
package gui

import (
	"context"
	"image"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/msto63/mRechner/internal/background"
	"github.com/msto63/mRechner/internal/engine"
	"github.com/msto63/mRechner/internal/history"
	"github.com/msto63/mRechner/internal/i18n"
	"github.com/msto63/mRechner/internal/keymap"
	"github.com/msto63/mRechner/internal/settings"
	"github.com/msto63/mRechner/pkg/core/logging"
)

const (
	tps          = 60
	pressedTicks = tps / 6
	statusTicks  = 3 * tps
	alphaStep    = 10
	storeTimeout = 5 * time.Second
)

// Options configures the desktop calculator
type Options struct {
	Keymap     *keymap.Keymap
	Store      history.Store
	Background *background.Provider
	Translator *i18n.Translator
	Logger     *logging.Logger

	BackgroundPath string
	Watch          bool
	Debounce       time.Duration
	SettingsPath   string
}

// Game implements ebiten.Game
type Game struct {
	engine  *engine.Engine
	display engine.Display
	errText string

	pressed      string
	pressedTicks int
	status       string
	statusTicks  int

	store   history.Store
	entries []history.Entry // oldest first
	recall  int             // index into entries while browsing, -1 otherwise

	bg      *background.Provider
	watcher *background.Watcher

	keymap       *keymap.Keymap
	tr           *i18n.Translator
	log          *logging.Logger
	renderer     *Renderer
	settingsPath string

	layout Layout
	frame  *image.RGBA
	screen *ebiten.Image

	copyText  func(string) error
	pasteText func() (string, error)
	quit      bool
}

// NewGame creates the game. A background that fails to load is logged
// and skipped.
func NewGame(opts Options) (*Game, error) {
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
			ComponentName: "gui",
			Quiet:         true,
		}))
	}

	renderer, err := NewRenderer(opts.Background)
	if err != nil {
		return nil, err
	}

	e := engine.New()
	g := &Game{
		engine:       e,
		display:      e.Display(),
		store:        opts.Store,
		recall:       -1,
		bg:           opts.Background,
		keymap:       opts.Keymap,
		tr:           opts.Translator,
		log:          opts.Logger,
		renderer:     renderer,
		settingsPath: opts.SettingsPath,
		layout:       NewLayout(DefaultWidth, DefaultHeight),
		copyText:     clipboard.WriteAll,
		pasteText:    clipboard.ReadAll,
	}

	if opts.BackgroundPath != "" {
		if err := g.bg.Load(opts.BackgroundPath); err != nil {
			g.log.Warn("Failed to load background", "path", opts.BackgroundPath, "error", err)
		} else if opts.Watch {
			w, err := background.NewWatcher(opts.BackgroundPath, opts.Debounce)
			if err != nil {
				g.log.Warn("Cannot watch background", "path", opts.BackgroundPath, "error", err)
			} else {
				g.watcher = w
			}
		}
	}

	g.loadHistory()
	return g, nil
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(g.tr.T("label.title"))
	ebiten.SetWindowSize(DefaultWidth, DefaultHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	g.log.Info("Window opened", "width", DefaultWidth, "height", DefaultHeight)
	return ebiten.RunGame(g)
}

// Close stops the background watcher
func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

// Update polls input once per tick
func (g *Game) Update() error {
	g.pollWatcher()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	for _, name := range keyNames(ebiten.AppendInputChars(nil), inpututil.AppendJustPressedKeys(nil), ctrl) {
		g.HandleKey(name)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.Click(image.Pt(ebiten.CursorPosition()))
	}

	g.tick()
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the calculator into the window
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.layout.Width, g.layout.Height
	if g.frame == nil || g.frame.Bounds().Dx() != w || g.frame.Bounds().Dy() != h {
		g.frame = image.NewRGBA(image.Rect(0, 0, w, h))
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(w, h)
	}

	g.renderer.Render(g.frame, g.layout, g.Frame())
	g.screen.WritePixels(g.frame.Pix)
	screen.DrawImage(g.screen, nil)
}

// Layout follows the window size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.layout.Width || outsideHeight != g.layout.Height {
		g.layout = NewLayout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Frame returns what the next Draw shows
func (g *Game) Frame() Frame {
	return Frame{
		Display: g.display,
		ErrText: g.errText,
		Memory:  g.tr.T("label.memory"),
		Pressed: g.pressed,
		Status:  g.status,
	}
}

// HandleKey handles one key name in keymap notation
func (g *Game) HandleKey(name string) {
	switch name {
	case "ctrl+q":
		g.quit = true
	case "ctrl+y":
		g.copy()
	case "ctrl+v":
		g.paste()
	case "ctrl+d":
		g.clearHistory()
	case "ctrl+x":
		g.clearBackground()
	case "up":
		g.browse(-1)
	case "down":
		g.browse(1)
	case "[":
		g.changeAlpha(-alphaStep)
	case "]":
		g.changeAlpha(alphaStep)
	default:
		if ev, ok := g.keymap.Event(name); ok {
			g.apply(ev)
		}
	}
}

// Click presses the button under p
func (g *Game) Click(p image.Point) {
	symbol, ok := g.layout.HitTest(p)
	if !ok {
		return
	}
	ev, err := engine.ParseSymbol(symbol)
	if err != nil {
		g.log.Error("Keypad symbol not parsable", "symbol", symbol, "error", err)
		return
	}
	g.apply(ev)
}

func (g *Game) apply(ev engine.Event) {
	d := g.engine.Apply(ev)
	g.display = d
	g.pressed = ev.Symbol()
	g.pressedTicks = pressedTicks
	g.recall = -1

	if d.Err != nil {
		g.errText = g.tr.ErrorMessage(d.Err)
		return
	}
	g.errText = ""
	if d.Committed {
		g.record(d.Expression, d.Result)
	}
}

// record stores a completed calculation
func (g *Game) record(expression, result string) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entry, err := g.store.Add(ctx, history.NewEntry(expression, result))
	if err != nil {
		g.log.Error("Failed to save calculation", "error", err)
		g.setStatus(g.tr.ErrorMessage(err))
		return
	}
	g.log.Debug("Calculation saved", "id", entry.ID, "expression", expression, "result", result)
	g.loadHistory()
}

func (g *Game) loadHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	entries, err := g.store.List(ctx)
	if err != nil {
		g.log.Error("Failed to load history", "error", err)
		return
	}
	g.entries = entries
}

func (g *Game) clearHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := g.store.Clear(ctx); err != nil {
		g.log.Error("Failed to clear history", "error", err)
		g.setStatus(g.tr.ErrorMessage(err))
		return
	}
	g.entries = nil
	g.recall = -1
	g.setStatus(g.tr.T("status.history_cleared"))
}

// browse loads older (-1) or newer (+1) history results into the display
func (g *Game) browse(dir int) {
	if len(g.entries) == 0 {
		return
	}
	i := g.recall
	switch {
	case i < 0 && dir < 0:
		i = len(g.entries) - 1
	case i < 0:
		return
	default:
		i += dir
	}
	if i < 0 || i >= len(g.entries) {
		return
	}

	entry := g.entries[i]
	if err := g.engine.Load(entry.Result); err != nil {
		g.log.Warn("History entry not loadable", "id", entry.ID, "error", err)
		return
	}
	g.recall = i
	g.display = g.engine.Display()
	g.errText = ""
	g.setStatus(entry.Expression + " = " + entry.Result)
}

func (g *Game) copy() {
	if err := g.copyText(g.display.Result); err != nil {
		g.log.Warn("Clipboard unavailable", "error", err)
		g.setStatus(g.tr.ErrorMessage(err))
		return
	}
	g.setStatus(g.tr.Value("status.copied", g.display.Result))
}

func (g *Game) paste() {
	text, err := g.pasteText()
	if err != nil {
		g.log.Warn("Clipboard unavailable", "error", err)
		g.setStatus(g.tr.ErrorMessage(err))
		return
	}
	if err := g.engine.Load(normalizeNumber(text)); err != nil {
		g.setStatus(g.tr.T("status.paste_invalid"))
		return
	}
	g.display = g.engine.Display()
	g.errText = ""
	g.setStatus(g.tr.Value("status.pasted", g.display.Result))
}

func (g *Game) clearBackground() {
	g.bg.Clear()
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}
	g.persist(func(s *settings.Settings) { s.BackgroundPath = "" })
	g.setStatus(g.tr.T("status.background_cleared"))
}

func (g *Game) changeAlpha(delta int) {
	g.bg.SetAlpha(g.bg.Alpha() + delta)
	alpha := g.bg.Alpha()
	g.persist(func(s *settings.Settings) { s.Alpha = alpha })
	g.setStatus(g.tr.Value("status.alpha", alpha))
}

// pollWatcher reloads the background after the file changed
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case _, ok := <-g.watcher.Events():
		if !ok {
			g.watcher = nil
			return
		}
		if err := g.bg.Reload(); err != nil {
			g.log.Warn("Failed to reload background", "error", err)
			return
		}
		g.setStatus(g.tr.T("status.background_reloaded"))
	case err, ok := <-g.watcher.Errors():
		if !ok {
			g.watcher = nil
			return
		}
		g.log.Warn("Background watcher error", "error", err)
	default:
	}
}

func (g *Game) persist(fn func(*settings.Settings)) {
	if g.settingsPath == "" {
		return
	}
	if _, err := settings.Update(g.settingsPath, fn); err != nil {
		g.log.Warn("Failed to save settings", "path", g.settingsPath, "error", err)
	}
}

func (g *Game) setStatus(text string) {
	g.status = text
	g.statusTicks = statusTicks
}

// tick expires the pressed highlight and the status line
func (g *Game) tick() {
	if g.pressedTicks > 0 {
		g.pressedTicks--
		if g.pressedTicks == 0 {
			g.pressed = ""
		}
	}
	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}
}
