package sprite

import (
	"fmt"
	"image"
)

// Grid describes how frames are laid out on a sprite sheet.
// Frames are read row-major: left to right, then top to bottom.
type Grid struct {
	Rows   int
	Cols   int
	Frames int
}

// Validate checks that the grid can hold its frames.
func (g Grid) Validate() error {
	if g.Rows < 1 || g.Cols < 1 {
		return fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidGrid, g.Rows, g.Cols)
	}
	if g.Frames < 1 {
		return fmt.Errorf("%w: frames=%d", ErrInvalidGrid, g.Frames)
	}
	if g.Frames > g.Rows*g.Cols {
		return fmt.Errorf("%w: %d frames do not fit in %dx%d", ErrInvalidGrid, g.Frames, g.Rows, g.Cols)
	}
	return nil
}

// FrameOrigin returns the top-left pixel of frame n on a sheet of the given size.
func (g Grid) FrameOrigin(n, sheetW, sheetH int) (x, y int) {
	col := n % g.Cols
	row := n / g.Cols
	return col * sheetW / g.Cols, row * sheetH / g.Rows
}

// GridRects computes the crop rectangle of every frame on a sheet of
// sheetW x sheetH pixels. Frame size is the sheet size divided by the grid,
// truncated to whole pixels.
func GridRects(sheetW, sheetH int, g Grid) ([]image.Rectangle, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	frameW := sheetW / g.Cols
	frameH := sheetH / g.Rows
	if frameW < 1 || frameH < 1 {
		return nil, fmt.Errorf("%w: %dx%d sheet too small for %dx%d grid", ErrInvalidGrid, sheetW, sheetH, g.Rows, g.Cols)
	}

	rects := make([]image.Rectangle, 0, g.Frames)
	for n := 0; n < g.Frames; n++ {
		x, y := g.FrameOrigin(n, sheetW, sheetH)
		rects = append(rects, image.Rect(x, y, x+frameW, y+frameH))
	}
	return rects, nil
}
