// Package termhost renders particles on a terminal through tcell.
//
// Each terminal cell stands for a CellW x CellH block of particle pixels.
// A particle covering any part of a cell paints that cell's background with
// the particle color blended over what is already there by opacity.
package termhost

import (
	"image"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/pyrate/pkg/particle"
)

// Default cell size: terminal cells are about twice as tall as wide.
const (
	DefaultCellW = 4
	DefaultCellH = 8
)

// imageGlyph marks cells covered by image particles, which a terminal cannot show.
const imageGlyph = '*'

// Canvas implements particle.Canvas on a tcell screen.
type Canvas struct {
	screen       tcell.Screen
	CellW, CellH int
	Background   particle.RGB

	// 本帧每个单元格的合成颜色；终端无法回读颜色，所以在这里累积
	cells map[image.Point]colorful.Color
}

// NewCanvas creates a canvas. Non-positive cell sizes use the defaults.
func NewCanvas(screen tcell.Screen, cellW, cellH int) *Canvas {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	return &Canvas{
		screen: screen,
		CellW:  cellW,
		CellH:  cellH,
		cells:  make(map[image.Point]colorful.Color),
	}
}

// PixelSize returns the drawable area in particle pixels.
func (c *Canvas) PixelSize() (w, h int) {
	cols, rows := c.screen.Size()
	return cols * c.CellW, rows * c.CellH
}

// Clear fills the screen with the background and forgets blended cells.
func (c *Canvas) Clear() {
	c.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(toColorful(c.Background))))
	clear(c.cells)
}

// FillRect blends col over every cell r touches.
func (c *Canvas) FillRect(r image.Rectangle, col particle.RGB, alpha uint8) {
	if alpha == 0 {
		return
	}
	fg := toColorful(col)
	t := float64(alpha) / 255

	c.forEachCell(r, func(p image.Point) {
		under, ok := c.cells[p]
		if !ok {
			under = toColorful(c.Background)
		}
		blended := under.BlendRgb(fg, t).Clamped()
		c.cells[p] = blended
		c.screen.SetContent(p.X, p.Y, ' ', nil, tcell.StyleDefault.Background(toTcell(blended)))
	})
}

// DrawImage marks covered cells with a glyph whose brightness follows alpha.
// The cell background is kept.
func (c *Canvas) DrawImage(_ string, r image.Rectangle, alpha uint8) error {
	if alpha == 0 {
		return nil
	}
	t := float64(alpha) / 255

	c.forEachCell(r, func(p image.Point) {
		under, ok := c.cells[p]
		if !ok {
			under = toColorful(c.Background)
		}
		fg := under.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped()
		style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(under))
		c.screen.SetContent(p.X, p.Y, imageGlyph, nil, style)
	})
	return nil
}

// CellRect converts a pixel rectangle to the cells it touches, clipped to
// the screen.
func (c *Canvas) CellRect(r image.Rectangle) image.Rectangle {
	cols, rows := c.screen.Size()
	cr := image.Rect(
		floorDiv(r.Min.X, c.CellW), floorDiv(r.Min.Y, c.CellH),
		ceilDiv(r.Max.X, c.CellW), ceilDiv(r.Max.Y, c.CellH),
	)
	return cr.Intersect(image.Rect(0, 0, cols, rows))
}

// Blended returns the color composed into a cell this frame.
func (c *Canvas) Blended(x, y int) (particle.RGB, bool) {
	col, ok := c.cells[image.Pt(x, y)]
	if !ok {
		return particle.RGB{}, false
	}
	r, g, b := col.RGB255()
	return particle.RGB{R: r, G: g, B: b}, true
}

func (c *Canvas) forEachCell(r image.Rectangle, fn func(image.Point)) {
	if r.Empty() {
		return
	}
	cr := c.CellRect(r)
	for y := cr.Min.Y; y < cr.Max.Y; y++ {
		for x := cr.Min.X; x < cr.Max.X; x++ {
			fn(image.Pt(x, y))
		}
	}
}

func toColorful(c particle.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

// DrawText writes text starting at cell (x, y) over the background and
// returns the number of columns used. Wide runes take two columns; text past
// the right edge is cut.
func (c *Canvas) DrawText(x, y int, text string, fg particle.RGB) int {
	cols, rows := c.screen.Size()
	if y < 0 || y >= rows {
		return 0
	}
	style := tcell.StyleDefault.
		Foreground(toTcell(toColorful(fg))).
		Background(toTcell(toColorful(c.Background)))

	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col < 0 {
			col += w
			continue
		}
		if col+w > cols {
			break
		}
		c.screen.SetContent(col, y, r, nil, style)
		col += w
	}
	return col - x
}
