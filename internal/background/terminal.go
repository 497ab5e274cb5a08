package background

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf draws the top pixel in the foreground colour and the bottom
// pixel in the background colour of one terminal cell.
const upperHalf = "▀"

// Base is the colour behind a translucent background
var Base = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}

// CellSize returns the pixel size needed to fill cols×rows terminal
// cells with half blocks.
func CellSize(cols, rows int) (int, int) {
	return cols, rows * 2
}

// RenderHalfBlocks renders img into rows lines of cols cells. img must
// be at least CellSize(cols, rows) large.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	return Compose(img, nil, cols, rows, "", 0)
}

// Compose renders img as a half-block wallpaper and prints the non-space
// runes of lines on top of it. Text cells use fg as foreground and the
// averaged pixel pair, darkened by shade (0..1), as background.
func Compose(img image.Image, lines []string, cols, rows int, fg string, shade float64) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		var text []rune
		if y < len(lines) {
			text = []rune(lines[y])
		}
		for x := 0; x < cols; x++ {
			top := blend(img.At(b.Min.X+x, b.Min.Y+2*y), Base)
			bottom := blend(img.At(b.Min.X+x, b.Min.Y+2*y+1), Base)

			if x < len(text) && text[x] != ' ' {
				bg := darken(average(top, bottom), shade)
				sb.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(fg)).
					Background(lipgloss.Color(Hex(bg))).
					Render(string(text[x])))
				continue
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(Hex(top))).
				Background(lipgloss.Color(Hex(bottom))).
				Render(upperHalf))
		}
		if y < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Hex formats an opaque colour as #rrggbb
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// blend composites a (premultiplied) colour over an opaque base
func blend(c color.Color, base color.RGBA) color.RGBA {
	r, g, bl, a := c.RGBA()
	inv := 0xffff - a
	return color.RGBA{
		R: uint8((r + uint32(base.R)*0x101*inv/0xffff) >> 8),
		G: uint8((g + uint32(base.G)*0x101*inv/0xffff) >> 8),
		B: uint8((bl + uint32(base.B)*0x101*inv/0xffff) >> 8),
		A: 0xff,
	}
}

func average(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 0xff,
	}
}

func darken(c color.RGBA, shade float64) color.RGBA {
	if shade <= 0 {
		return c
	}
	if shade > 1 {
		shade = 1
	}
	f := 1 - shade
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: 0xff,
	}
}
