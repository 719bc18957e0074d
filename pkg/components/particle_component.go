package components

import (
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/particle"
)

// ParticleComponent attaches a live particle to an entity.
//
// The particle carries its own position, visual state and behavior chain;
// ParticleSystem ticks it and applies the death rule, RenderSystem draws it.
//
// This is a pure data component following ECS principles - it contains no methods.
type ParticleComponent struct {
	Particle *particle.Particle

	// EmitterID 生成该粒子的发射器（0 表示手动生成，不属于任何发射器）
	EmitterID ecs.EntityID
}
