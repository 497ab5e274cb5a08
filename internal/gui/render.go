package gui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/msto63/mRechner/internal/background"
	"github.com/msto63/mRechner/internal/engine"
)

// Colours, premultiplied
var (
	colorPanel    = color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xb0}
	colorKey      = color.RGBA{R: 0x26, G: 0x30, B: 0x3f, A: 0xa0}
	colorFunction = color.RGBA{R: 0x17, G: 0x1e, B: 0x29, A: 0xa0}
	colorPressed  = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorText     = color.RGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
	colorMuted    = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	colorAccent   = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	colorError    = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

// labels replaces symbols the Go fonts cannot draw
var labels = map[string]string{
	"⌫": "←",
}

// Frame is everything drawn in one frame
type Frame struct {
	Display engine.Display
	ErrText string
	Memory  string
	Pressed string
	Status  string
}

// Renderer draws frames into an RGBA image
type Renderer struct {
	bg      *background.Provider
	small   font.Face
	regular font.Face
	large   font.Face
}

// NewRenderer loads the fonts
func NewRenderer(bg *background.Provider) (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}

	r := &Renderer{bg: bg}
	if r.small, err = newFace(regular, 13); err != nil {
		return nil, err
	}
	if r.regular, err = newFace(regular, 18); err != nil {
		return nil, err
	}
	if r.large, err = newFace(bold, 34); err != nil {
		return nil, err
	}
	return r, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws the frame for layout l into dst
func (r *Renderer) Render(dst *image.RGBA, l Layout, f Frame) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(background.Base), image.Point{}, draw.Src)
	if img := r.bg.Image(b.Dx(), b.Dy()); img != nil {
		draw.Draw(dst, b, img, img.Bounds().Min, draw.Over)
	}

	// display
	fill(dst, l.Display, colorPanel)
	r.text(dst, r.small, f.Display.Expression, colorMuted, l.Display.Max.X-12, l.Display.Min.Y+28, alignRight)
	result, resultColor, face := f.Display.Result, colorText, r.large
	if f.ErrText != "" {
		result, resultColor, face = f.ErrText, colorError, r.regular
	}
	if font.MeasureString(face, result).Round() > l.Display.Dx()-24 {
		face = r.regular
	}
	r.text(dst, face, result, resultColor, l.Display.Max.X-12, l.Display.Max.Y-16, alignRight)
	if f.Display.HasMemory {
		r.text(dst, r.small, f.Memory, colorAccent, l.Display.Min.X+12, l.Display.Min.Y+28, alignLeft)
	}

	// keypad
	for _, btn := range l.Buttons {
		c, fg := keyColors(btn.Symbol, btn.Symbol == f.Pressed)
		fill(dst, btn.Rect, c)

		label := btn.Symbol
		if s, ok := labels[label]; ok {
			label = s
		}
		face := r.regular
		if btn.Rect.Dy() < 36 {
			face = r.small
		}
		mid := (btn.Rect.Min.X + btn.Rect.Max.X) / 2
		base := (btn.Rect.Min.Y+btn.Rect.Max.Y)/2 + face.Metrics().Ascent.Round()/2 - 1
		r.text(dst, face, label, fg, mid, base, alignCenter)
	}

	if f.Status != "" {
		r.text(dst, r.small, f.Status, colorMuted, l.Status.Min.X, l.Status.Max.Y-6, alignLeft)
	}
}

func keyColors(symbol string, pressed bool) (color.RGBA, color.RGBA) {
	switch {
	case pressed:
		return colorPressed, colorPanel
	case symbol == "=" || symbol == "+" || symbol == "-" || symbol == "×" || symbol == "÷":
		return colorKey, colorAccent
	case len(symbol) == 1 && (symbol[0] >= '0' && symbol[0] <= '9' || symbol == "."):
		return colorKey, colorText
	default:
		return colorFunction, colorText
	}
}

// fill blends a translucent colour over rect
func fill(dst *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

// text draws s with its baseline at y, positioned at x by align
func (r *Renderer) text(dst *image.RGBA, face font.Face, s string, c color.Color, x, y int, align alignment) {
	if s == "" {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	width := d.MeasureString(s).Round()
	switch align {
	case alignCenter:
		x -= width / 2
	case alignRight:
		x -= width
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}
