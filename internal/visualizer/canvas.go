package visualizer

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Surface is a drawable area the renderer paints into.
type Surface interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear()
	FillRect(x, y, w, h int, c colorful.Color, alpha float64)
}

// shadeRamp maps coverage to glyphs; index 0 is an empty cell.
var shadeRamp = []rune(" ░▒▓█")

type cell struct {
	color colorful.Color
	alpha float64
}

// Canvas is a transparent terminal-cell surface. Fills are alpha
// composited, and coverage is drawn with shade glyphs so translucent
// layers stay translucent against the terminal background.
type Canvas struct {
	width   int
	height  int
	cells   []cell
	profile termenv.Profile
}

// NewCanvas creates a canvas using the terminal's color profile.
func NewCanvas(width, height int) *Canvas {
	return newCanvas(width, height, currentColorProfile())
}

func newCanvas(width, height int, p termenv.Profile) *Canvas {
	c := &Canvas{profile: p}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

// Resize reallocates the backing buffer, discarding its contents.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	c.width, c.height = width, height
	if n := width * height; cap(c.cells) >= n {
		c.cells = c.cells[:n]
		c.Clear()
	} else {
		c.cells = make([]cell, n)
	}
}

func (c *Canvas) Clear() {
	clear(c.cells)
}

// FillRect composites a color over the rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	alpha = min(alpha, 1)
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width), min(y+h, c.height)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			cl := &c.cells[cy*c.width+cx]
			if cl.alpha == 0 {
				cl.color = col
			} else {
				cl.color = cl.color.BlendRgb(col, alpha)
			}
			cl.alpha = alpha + cl.alpha*(1-alpha)
		}
	}
}

// At returns the composited color and coverage of a cell.
func (c *Canvas) At(x, y int) (colorful.Color, float64) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return colorful.Color{}, 0
	}
	cl := c.cells[y*c.width+x]
	return cl.color, cl.alpha
}

func shadeFor(alpha float64) rune {
	if alpha <= 0 {
		return shadeRamp[0]
	}
	last := len(shadeRamp) - 1
	idx := int(alpha*float64(last) + 0.5)
	return shadeRamp[min(max(idx, 1), last)]
}

// View renders the canvas as ANSI-colored rows.
func (c *Canvas) View() string {
	var sb strings.Builder
	color := newANSIState(c.profile)
	for row := range c.height {
		if row > 0 {
			color.reset(&sb)
			sb.WriteByte('\n')
		}
		for x := range c.width {
			cl := c.cells[row*c.width+x]
			if cl.alpha <= 0 {
				color.reset(&sb)
				sb.WriteByte(' ')
				continue
			}
			color.set(&sb, cl.color)
			sb.WriteRune(shadeFor(cl.alpha))
		}
	}
	color.reset(&sb)
	return sb.String()
}
