package particle

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorEffect shifts a particle's color from From to To over Duration
// seconds. Blending happens in CIE-Lab space so intermediate colors keep a
// perceptually even brightness.
//
// The color is recomputed from the total elapsed time on every tick, not
// accumulated, so it does not drift with tick length.
type ColorEffect struct {
	From     RGB
	To       RGB
	Duration float64

	// Ease maps linear progress in [0,1] to eased progress. Nil means linear.
	Ease func(t float64) float64

	elapsed float64
}

// NewColorEffect creates a color shift with linear easing.
func NewColorEffect(from, to RGB, duration float64) *ColorEffect {
	return &ColorEffect{From: from, To: to, Duration: duration}
}

// OnApply sets the particle color to From.
func (e *ColorEffect) OnApply(p *Particle) {
	p.Color = e.From
}

// Update advances the blend.
func (e *ColorEffect) Update(p *Particle, dt float64) {
	e.elapsed += dt
	p.Color = e.colorAt(e.elapsed)
}

// Progress returns how far the blend has advanced, in [0,1].
func (e *ColorEffect) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	t := e.elapsed / e.Duration
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (e *ColorEffect) colorAt(elapsed float64) RGB {
	t := 1.0
	if e.Duration > 0 {
		t = elapsed / e.Duration
	}
	if t <= 0 {
		return e.From
	}
	if t >= 1 {
		return e.To
	}
	if e.Ease != nil {
		t = e.Ease(t)
	}
	c := toColorful(e.From).BlendLab(toColorful(e.To), t)
	return fromColorful(c)
}

// Clone implements Behavior. The clone starts the blend from the beginning.
func (e *ColorEffect) Clone() Behavior {
	c := *e
	c.elapsed = 0
	return &c
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
