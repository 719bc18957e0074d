package particle

import "math"

// Behavior mutates a particle's attributes over time.
//
// Update is called once per tick with the elapsed time in seconds. Clone
// returns an independent copy with the same configuration and fresh runtime
// state; it is how prototypes hand behaviors to spawned particles.
type Behavior interface {
	Update(p *Particle, dt float64)
	Clone() Behavior
}

// Applier is implemented by behaviors that alter the particle immediately
// when they are attached (initial opacity, initial scale).
type Applier interface {
	OnApply(p *Particle)
}

// OpacityEffect fades a particle linearly.
type OpacityEffect struct {
	InitOpacity float64 // 附加时设置的初始透明度
	Decay       float64 // 每秒减少的透明度
}

// NewOpacityEffect creates an opacity effect.
func NewOpacityEffect(initOpacity, decay float64) *OpacityEffect {
	return &OpacityEffect{InitOpacity: initOpacity, Decay: decay}
}

// OnApply overwrites the particle's opacity with InitOpacity.
func (e *OpacityEffect) OnApply(p *Particle) {
	p.Opacity = e.InitOpacity
}

// Update decreases opacity by Decay*dt. The result is not clamped; deciding
// whether the particle is still alive is left to the death rule.
func (e *OpacityEffect) Update(p *Particle, dt float64) {
	p.Opacity -= e.Decay * dt
}

// Clone implements Behavior.
func (e *OpacityEffect) Clone() Behavior {
	c := *e
	return &c
}

// ScaleEffect grows or shrinks a particle proportionally.
//
// Growth compounds continuously: after t seconds the size is
// initial*(1+Growth)^t no matter how t is split into ticks. For Growth in
// (-1, 0) the particle shrinks toward zero without reaching it, so pair it
// with an opacity or minimum-size death rule.
type ScaleEffect struct {
	InitScale float64 // 附加时的缩放倍数
	Growth    float64 // 每秒的比例增长（复利）
}

// NewScaleEffect creates a scale effect.
func NewScaleEffect(initScale, growth float64) *ScaleEffect {
	return &ScaleEffect{InitScale: initScale, Growth: growth}
}

// OnApply multiplies width and height by InitScale.
func (e *ScaleEffect) OnApply(p *Particle) {
	p.Width *= e.InitScale
	p.Height *= e.InitScale
}

// Update multiplies width and height by (1+Growth)^dt.
func (e *ScaleEffect) Update(p *Particle, dt float64) {
	f := e.factor(dt)
	p.Width *= f
	p.Height *= f
}

func (e *ScaleEffect) factor(dt float64) float64 {
	base := 1 + e.Growth
	if base < 0 {
		// Growth below -1 has no real compounding factor; collapse instead of NaN.
		base = 0
	}
	return math.Pow(base, dt)
}

// Clone implements Behavior.
func (e *ScaleEffect) Clone() Behavior {
	c := *e
	return &c
}
