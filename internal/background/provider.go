// ============================================================================
// meinRECHNER (mRE) - Tischrechner mit Verlauf
// ============================================================================
//
// Package:     background
// Description: Background image loading, cover scaling and translucency
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package background

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"golang.org/x/image/draw"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
)

// DefaultAlpha is the opacity of a freshly loaded background
const DefaultAlpha = 100

// Provider holds the current background image and renders it for a
// requested size. It is safe for concurrent use.
type Provider struct {
	mu    sync.RWMutex
	path  string
	src   image.Image
	alpha int

	// last rendered image, keyed by size and alpha
	cached    *image.RGBA
	cachedKey cacheKey
}

type cacheKey struct {
	w, h, alpha int
}

// NewProvider creates a provider without an image
func NewProvider() *Provider {
	return &Provider{alpha: DefaultAlpha}
}

// Load decodes the image at path and makes it the background.
// On failure the previous background stays in place.
func (p *Provider) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return imageError("open", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return imageError("decode", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return mreerror.New("background image is empty").
			WithCode(mreerror.CodeImageError).
			WithOperation("background.load").
			WithDetail("path", path)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.path = path
	p.src = img
	p.cached = nil
	return nil
}

// SetImage installs an already decoded image
func (p *Provider) SetImage(img image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.path = ""
	p.src = img
	p.cached = nil
}

// Reload decodes the current file again
func (p *Provider) Reload() error {
	path := p.Path()
	if path == "" {
		return nil
	}
	return p.Load(path)
}

// Clear removes the background
func (p *Provider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.path = ""
	p.src = nil
	p.cached = nil
}

// SetAlpha sets the opacity in percent, clamped to 0..100
func (p *Provider) SetAlpha(alpha int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.alpha = clampAlpha(alpha)
}

// Alpha returns the opacity in percent
func (p *Provider) Alpha() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.alpha
}

// Path returns the file of the current background, or ""
func (p *Provider) Path() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.path
}

// HasImage reports whether a background is set
func (p *Provider) HasImage() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.src != nil
}

// Image returns the background scaled to cover w×h, centre-cropped and
// with the alpha applied. It returns nil without a background.
func (p *Provider) Image(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.src == nil {
		return nil
	}
	key := cacheKey{w: w, h: h, alpha: p.alpha}
	if p.cached != nil && p.cachedKey == key {
		return p.cached
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), p.src, CoverRect(p.src.Bounds(), w, h), draw.Src, nil)

	if p.alpha < 100 {
		faded := image.NewRGBA(dst.Bounds())
		mask := image.NewUniform(color.Alpha{A: uint8(p.alpha * 255 / 100)})
		draw.DrawMask(faded, faded.Bounds(), dst, image.Point{}, mask, image.Point{}, draw.Src)
		dst = faded
	}

	p.cached = dst
	p.cachedKey = key
	return dst
}

// CoverRect returns the centred part of src that has the aspect ratio of
// w×h. Scaling it to w×h covers the whole target without distortion.
func CoverRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return src
	}

	// compare sw/sh with w/h without floating point
	if sw*h > w*sh {
		// source is wider: crop left and right
		cw := sh * w / h
		if cw < 1 {
			cw = 1
		}
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}

	// source is taller: crop top and bottom
	ch := sw * h / w
	if ch < 1 {
		ch = 1
	}
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}

func clampAlpha(alpha int) int {
	switch {
	case alpha < 0:
		return 0
	case alpha > 100:
		return 100
	default:
		return alpha
	}
}

func imageError(operation, path string, err error) error {
	return mreerror.Wrap(err, "failed to load background image").
		WithCode(mreerror.CodeImageError).
		WithOperation("background." + operation).
		WithDetail("path", path)
}
