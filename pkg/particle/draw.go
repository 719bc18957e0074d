package particle

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrUnsupportedShape is returned by Draw for primitive tags the core cannot draw.
var ErrUnsupportedShape = errors.New("unsupported particle shape")

// ShapeKind tells primitive shapes from host images.
type ShapeKind int

const (
	ShapePrimitive ShapeKind = iota
	ShapeImage
)

// PrimitiveSquare is the only primitive drawn by the core.
const PrimitiveSquare = "square"

// Shape describes how a particle looks: a primitive tag such as "square", or
// an image reference that only the host knows how to resolve.
type Shape struct {
	Kind ShapeKind
	Name string
}

// Square returns the square primitive shape.
func Square() Shape { return Shape{Kind: ShapePrimitive, Name: PrimitiveSquare} }

// Primitive returns a primitive shape with the given tag.
func Primitive(tag string) Shape { return Shape{Kind: ShapePrimitive, Name: tag} }

// Image returns an image shape referring to ref.
func Image(ref string) Shape { return Shape{Kind: ShapeImage, Name: ref} }

func (s Shape) String() string {
	if s.Kind == ShapeImage {
		return "image:" + s.Name
	}
	return s.Name
}

// Canvas is what a host renderer provides to draw particles on.
//
// Rectangles are in target pixels, already centered on the particle.
// Alpha is the particle opacity scaled to 0-255.
type Canvas interface {
	FillRect(r image.Rectangle, c RGB, alpha uint8)
	DrawImage(ref string, r image.Rectangle, alpha uint8) error
}

// Bounds returns the pixel rectangle the particle covers, centered on (X, Y).
// Width and height are truncated to whole pixels.
func (p *Particle) Bounds() image.Rectangle {
	w := int(p.Width)
	h := int(p.Height)
	x := int(math.Floor(p.X - 0.5*float64(w)))
	y := int(math.Floor(p.Y - 0.5*float64(h)))
	return image.Rect(x, y, x+w, y+h)
}

// Alpha returns the opacity as an 8-bit alpha, clamped to [0,255].
func (p *Particle) Alpha() uint8 {
	a := int(p.Opacity * 255)
	if a < 0 {
		return 0
	}
	if a > 255 {
		return 255
	}
	return uint8(a)
}

// Draw renders the particle on c.
//
// Squares are filled by the core. Image shapes are handed to the host as is.
// Any other primitive draws nothing and returns an error wrapping
// ErrUnsupportedShape; callers are expected to log it and carry on with
// the rest of the frame.
func (p *Particle) Draw(c Canvas) error {
	switch p.Shape.Kind {
	case ShapeImage:
		if err := c.DrawImage(p.Shape.Name, p.Bounds(), p.Alpha()); err != nil {
			return fmt.Errorf("failed to draw particle image %q: %w", p.Shape.Name, err)
		}
		return nil
	case ShapePrimitive:
		if p.Shape.Name == PrimitiveSquare {
			c.FillRect(p.Bounds(), p.Color, p.Alpha())
			return nil
		}
	}
	return fmt.Errorf("unable to draw particle of type %q: %w", p.Shape.String(), ErrUnsupportedShape)
}
