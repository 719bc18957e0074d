package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD draws status lines in the top-left corner with the 7x13 bitmap font.
type HUD struct {
	face     *text.GoXFace
	drawOpts text.DrawOptions
	Color    color.Color
}

// NewHUD creates a HUD.
func NewHUD() *HUD {
	return &HUD{
		face:  text.NewGoXFace(basicfont.Face7x13),
		Color: color.White,
	}
}

// LineHeight returns the distance between baselines.
func (h *HUD) LineHeight() float64 {
	return float64(basicfont.Face7x13.Height) + 2
}

// Draw renders lines starting at (8, 8).
func (h *HUD) Draw(screen *ebiten.Image, lines ...string) {
	for i, line := range lines {
		h.drawOpts.GeoM.Reset()
		h.drawOpts.GeoM.Translate(8, 8+float64(i)*h.LineHeight())
		h.drawOpts.ColorScale.Reset()
		h.drawOpts.ColorScale.ScaleWithColor(h.Color)
		text.Draw(screen, line, h.face, &h.drawOpts)
	}
}
