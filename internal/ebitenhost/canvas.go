// Package ebitenhost draws particles and sprites on Ebitengine images.
package ebitenhost

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/pyrate/pkg/particle"
)

// ImageLoader loads an image referenced by a particle shape.
type ImageLoader func(ref string) (*ebiten.Image, error)

// LoadImageFile is the default ImageLoader; ref is a file path.
func LoadImageFile(ref string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", ref, err)
	}
	return img, nil
}

// Canvas implements particle.Canvas on an ebiten image.
//
// Image references are loaded once and cached, including failures, so a
// missing file costs one log line instead of one disk read per frame.
type Canvas struct {
	Target *ebiten.Image
	Loader ImageLoader

	images map[string]*ebiten.Image
	failed map[string]error
}

// NewCanvas creates a canvas. A nil loader means LoadImageFile.
func NewCanvas(loader ImageLoader) *Canvas {
	if loader == nil {
		loader = LoadImageFile
	}
	return &Canvas{
		Loader: loader,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]error),
	}
}

// FillRect draws a filled rectangle with non-premultiplied alpha.
func (c *Canvas) FillRect(r image.Rectangle, col particle.RGB, alpha uint8) {
	if c.Target == nil || r.Empty() || alpha == 0 {
		return
	}
	vector.DrawFilledRect(c.Target,
		float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()),
		color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}, false)
}

// DrawImage stretches the referenced image over r.
func (c *Canvas) DrawImage(ref string, r image.Rectangle, alpha uint8) error {
	if c.Target == nil || r.Empty() {
		return nil
	}
	img, err := c.image(ref)
	if err != nil {
		return err
	}

	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx())/float64(b.Dx()), float64(r.Dy())/float64(b.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleAlpha(float32(alpha) / 255)
	c.Target.DrawImage(img, op)
	return nil
}

// Preload registers an already-loaded image under ref.
func (c *Canvas) Preload(ref string, img *ebiten.Image) {
	c.images[ref] = img
	delete(c.failed, ref)
}

func (c *Canvas) image(ref string) (*ebiten.Image, error) {
	if img, ok := c.images[ref]; ok {
		return img, nil
	}
	if err, ok := c.failed[ref]; ok {
		return nil, err
	}

	img, err := c.Loader(ref)
	if err != nil {
		log.Printf("[Canvas] 加载粒子图片失败 %s: %v", ref, err)
		c.failed[ref] = err
		return nil, err
	}
	c.images[ref] = img
	return img, nil
}

// Blitter implements sprite.Blitter for ebiten frames.
// (X, Y) is the frame's top-left corner.
type Blitter struct {
	Target *ebiten.Image
}

// Blit draws frame at (x, y).
func (b *Blitter) Blit(frame *ebiten.Image, x, y float64) {
	if b.Target == nil || frame == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	b.Target.DrawImage(frame, op)
}
