package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/pyrate/pkg/config"
	"github.com/decker502/pyrate/pkg/sprite"
)

// SliceSheet cuts a sprite sheet into frames, row-major.
// Frames are sub-images sharing the sheet's texture.
func SliceSheet(sheet *ebiten.Image, grid sprite.Grid) ([]*ebiten.Image, error) {
	b := sheet.Bounds()
	rects, err := sprite.GridRects(b.Dx(), b.Dy(), grid)
	if err != nil {
		return nil, err
	}

	frames := make([]*ebiten.Image, len(rects))
	for i, r := range rects {
		frames[i] = sheet.SubImage(r.Add(b.Min)).(*ebiten.Image)
	}
	return frames, nil
}

// Flip returns mirrored copies of frames. With both flags false the input
// slice is returned as is.
func Flip(frames []*ebiten.Image, flipX, flipY bool) []*ebiten.Image {
	if !flipX && !flipY {
		return frames
	}

	out := make([]*ebiten.Image, len(frames))
	for i, f := range frames {
		w, h := f.Bounds().Dx(), f.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		sx, sy := 1.0, 1.0
		if flipX {
			sx = -1
		}
		if flipY {
			sy = -1
		}
		op.GeoM.Scale(sx, sy)
		if flipX {
			op.GeoM.Translate(float64(w), 0)
		}
		if flipY {
			op.GeoM.Translate(0, float64(h))
		}

		dst := ebiten.NewImage(w, h)
		dst.DrawImage(f, op)
		out[i] = dst
	}
	return out
}

// BuildAnimation slices one configured animation from its sheet.
func BuildAnimation(sheet *ebiten.Image, ac config.AnimationConfig) (*sprite.Animation[*ebiten.Image], error) {
	frames, err := SliceSheet(sheet, sprite.Grid{Rows: ac.Rows, Cols: ac.Cols, Frames: ac.FrameCount()})
	if err != nil {
		return nil, err
	}
	frames = Flip(frames, ac.FlipX, ac.FlipY)

	anim, err := sprite.NewAnimation(frames, ac.IsRepeat())
	if err != nil {
		return nil, err
	}
	if ac.Reversed {
		anim = anim.Reversed()
	}
	return anim, nil
}

// BuildSprite loads every animation of a configured sprite. Sheets shared by
// several animations are loaded once. The default animation, if any, is
// not started; the caller owns the clock.
func BuildSprite(sc config.SpriteConfig, load ImageLoader) (*sprite.AnimatedSprite[*ebiten.Image], error) {
	if load == nil {
		load = LoadImageFile
	}
	fps := sc.FPS
	if fps <= 0 {
		fps = sprite.DefaultFPS
	}
	s, err := sprite.NewAnimatedSprite[*ebiten.Image](fps)
	if err != nil {
		return nil, err
	}

	sheets := make(map[string]*ebiten.Image)
	anims := make(map[string]*sprite.Animation[*ebiten.Image], len(sc.Animations))
	for name, ac := range sc.Animations {
		sheet, ok := sheets[ac.Sheet]
		if !ok {
			if sheet, err = load(ac.Sheet); err != nil {
				return nil, fmt.Errorf("failed to build animation %q: %w", name, err)
			}
			sheets[ac.Sheet] = sheet
		}

		anim, err := BuildAnimation(sheet, ac)
		if err != nil {
			return nil, fmt.Errorf("failed to build animation %q: %w", name, err)
		}
		anims[name] = anim
	}
	s.AddAnimations(anims)
	return s, nil
}

// PlaceholderSheet draws a rows x cols sheet of cellW x cellH frames. Each
// frame gets its own hue and a bar whose length grows with the frame index,
// so playback order is visible without real artwork.
func PlaceholderSheet(rows, cols, cellW, cellH int) *ebiten.Image {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	sheet := ebiten.NewImage(cols*cellW, rows*cellH)
	n := rows * cols
	for i := 0; i < n; i++ {
		x := float32((i % cols) * cellW)
		y := float32((i / cols) * cellH)
		c := colorful.Hsv(360*float64(i)/float64(n), 0.6, 0.9).Clamped()
		vector.DrawFilledRect(sheet, x+2, y+2, float32(cellW-4), float32(cellH-4), c, false)
		bar := float32(cellW-8) * float32(i+1) / float32(n)
		vector.DrawFilledRect(sheet, x+4, y+float32(cellH)-10, bar, 4, color.White, false)
	}
	return sheet
}
