package particle

import "math"

// LinearMotionEffect moves a particle in a straight line with constant
// acceleration.
//
// Direction is a proportion of a full turn counterclockwise from +X:
// 0 is right, 0.25 is +Y, 0.5 is left. Speeds are pixels per second and
// Accel is pixels per second squared.
//
// Displacement per tick uses the average of the speed before and after the
// tick, which is exact for constant acceleration, so results do not depend
// on tick length.
type LinearMotionEffect struct {
	Direction float64
	InitSpeed float64
	Accel     float64

	// ClampAtZero stops the particle when deceleration would take the speed
	// below zero. When false the speed keeps decreasing and the particle
	// reverses direction.
	ClampAtZero bool

	speed float64 // 当前速度（运行时状态）
}

// NewLinearMotionEffect creates a motion effect with the speed set to initSpeed.
func NewLinearMotionEffect(direction, initSpeed, accel float64) *LinearMotionEffect {
	return &LinearMotionEffect{
		Direction: direction,
		InitSpeed: initSpeed,
		Accel:     accel,
		speed:     initSpeed,
	}
}

// Speed returns the current speed.
func (e *LinearMotionEffect) Speed() float64 {
	return e.speed
}

// SetSpeed overrides the current speed.
func (e *LinearMotionEffect) SetSpeed(speed float64) {
	e.speed = speed
}

// Update moves the particle by the trapezoidal displacement for dt.
func (e *LinearMotionEffect) Update(p *Particle, dt float64) {
	oldSpeed := e.speed
	newSpeed := oldSpeed + e.Accel*dt

	var dist float64
	if e.ClampAtZero && newSpeed < 0 {
		// 速度在本帧内降到 0：只走到停止点
		if oldSpeed > 0 && e.Accel < 0 {
			dist = oldSpeed * oldSpeed / (2 * -e.Accel)
		}
		newSpeed = 0
	} else {
		dist = 0.5 * (oldSpeed + newSpeed) * dt
	}
	e.speed = newSpeed

	rad := 2 * math.Pi * e.Direction
	p.X += math.Cos(rad) * dist
	p.Y += math.Sin(rad) * dist
}

// Clone implements Behavior. The clone starts again from InitSpeed.
func (e *LinearMotionEffect) Clone() Behavior {
	c := *e
	c.speed = e.InitSpeed
	return &c
}
