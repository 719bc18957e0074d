package particle

import "math/rand"

// DeathRule decides whether a particle should be removed from the live set.
// Behaviors never remove particles themselves; the host applies a rule.
type DeathRule func(p *Particle) bool

// OpacityDeath is the default rule: a particle dies once its opacity is <= 0.
func OpacityDeath(p *Particle) bool {
	return p.Opacity <= 0
}

// MinSizeDeath kills particles whose width or height has dropped below min.
// Useful with a shrinking ScaleEffect, which never reaches zero on its own.
func MinSizeDeath(min float64) DeathRule {
	return func(p *Particle) bool {
		return p.Width < min || p.Height < min
	}
}

// MaxAgeDeath kills particles older than maxAge seconds.
func MaxAgeDeath(maxAge float64) DeathRule {
	return func(p *Particle) bool {
		return p.Age >= maxAge
	}
}

// AnyDeath combines rules; the particle dies if any of them holds.
// Nil rules are skipped.
func AnyDeath(rules ...DeathRule) DeathRule {
	return func(p *Particle) bool {
		for _, r := range rules {
			if r != nil && r(p) {
				return true
			}
		}
		return false
	}
}

// Range is a closed interval used for per-spawn variation.
type Range struct {
	Min, Max float64
}

// Fixed returns a range holding a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// Sample returns a value in [Min, Max]. Fixed ranges and a nil rng return Min
// without consuming randomness.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Max <= r.Min || rng == nil {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
