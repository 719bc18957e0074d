// Package particle provides the particle behavior-composition engine.
//
// A Particle holds its current visual state (position, size, opacity, color)
// and an ordered list of Behaviors. Each tick the behaviors run in the order
// they were attached, mutating the particle in place:
//
//	proto := particle.NewParticle(100, 100, particle.Square(), 20, 20)
//	proto.ApplyBehavior(particle.NewOpacityEffect(1.0, 1.0))
//	proto.ApplyBehavior(particle.NewLinearMotionEffect(0.25, 50, 0))
//
//	p := proto.Create(x, y, now)
//	p.Update(dt)
//	if p.Dead() { ... }
//
// Any particle can act as a prototype: Create copies its visual state and
// clones every behavior, so runtime state never leaks between particles.
package particle

import (
	"time"
)

const (
	// DefaultSize is the width and height (pixels) of a particle when none is given.
	DefaultSize = 10.0

	// DefaultOpacity 默认完全不透明
	DefaultOpacity = 1.0
)

// DefaultColor is the fill color of primitive particles (purple).
var DefaultColor = RGB{R: 160, G: 20, B: 200}

// RGB stores explicit 8-bit color channels, decoupled from any renderer.
type RGB struct {
	R, G, B uint8
}

// Particle is a single particle instance.
//
// Fields are exported so behaviors (and hosts) can read and mutate them
// directly; there is no locking, a particle belongs to one tick at a time.
type Particle struct {
	// Position (像素坐标，粒子中心)
	X, Y float64

	Shape Shape

	// Opacity is meaningful in [0,1]. Behaviors do not clamp it; values <= 0
	// mean the particle is dead under the default death rule.
	Opacity float64
	Color   RGB

	Width  float64
	Height float64

	// CreatedAt is the timestamp passed to Create. Zero for prototypes.
	CreatedAt time.Time
	// Age is the simulated time (seconds) accumulated by Update.
	Age float64

	// Behaviors run in this order every Update.
	Behaviors []Behavior
}

// NewParticle creates a particle with default opacity and color.
// Width or height <= 0 fall back to DefaultSize.
func NewParticle(x, y float64, shape Shape, width, height float64) *Particle {
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	return &Particle{
		X:       x,
		Y:       y,
		Shape:   shape,
		Opacity: DefaultOpacity,
		Color:   DefaultColor,
		Width:   width,
		Height:  height,
	}
}

// Create returns a new particle at (x, y) using p as the prototype.
//
// Shape, size, opacity and color are copied as they currently are on p, so
// values seeded by OnApply when behaviors were attached carry over. Every
// behavior is cloned; OnApply is not run again.
func (p *Particle) Create(x, y float64, now time.Time) *Particle {
	clone := &Particle{
		X:         x,
		Y:         y,
		Shape:     p.Shape,
		Opacity:   p.Opacity,
		Color:     p.Color,
		Width:     p.Width,
		Height:    p.Height,
		CreatedAt: now,
		Behaviors: make([]Behavior, 0, len(p.Behaviors)),
	}
	for _, b := range p.Behaviors {
		clone.Behaviors = append(clone.Behaviors, b.Clone())
	}
	return clone
}

// ApplyBehavior appends b to the behavior list and, if b implements Applier,
// applies its immediate alteration to p. Attach order is significant: an
// OpacityEffect attached after another overwrites its initial opacity.
func (p *Particle) ApplyBehavior(b Behavior) {
	if b == nil {
		return
	}
	p.Behaviors = append(p.Behaviors, b)
	if a, ok := b.(Applier); ok {
		a.OnApply(p)
	}
}

// Update advances the particle by dt seconds.
// Behaviors run strictly in attach order and see each other's mutations.
func (p *Particle) Update(dt float64) {
	p.Age += dt
	for _, b := range p.Behaviors {
		b.Update(p, dt)
	}
}

// Dead reports whether the particle is dead under the default rule (opacity <= 0).
func (p *Particle) Dead() bool {
	return OpacityDeath(p)
}
