package components

import (
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/particle"
)

// EmitterComponent spawns particles from a prototype at a fixed interval.
//
// The emitter position comes from the entity's PositionComponent; each
// particle spawns at that position plus an offset sampled from OffsetX and
// OffsetY. ParticleSystem processes emitters each frame.
//
// This is a pure data component following ECS principles - it contains no methods.
type EmitterComponent struct {
	// Prototype 粒子原型，每次生成时克隆
	Prototype *particle.Particle

	// Emitter state (发射器状态)
	Active bool    // Whether the emitter is currently spawning particles
	Age    float64 // Time the emitter has been running (seconds)

	// Duration: total time before the emitter stops spawning (seconds, 0 = infinite)
	Duration float64

	// Spawn timing (发射时机)
	SpawnInterval float64 // Seconds between spawns (<= 0 disables interval spawning)
	SpawnTimer    float64 // Time accumulated toward the next spawn

	// Spawn area (发射区域，相对发射器位置的偏移范围)
	OffsetX particle.Range
	OffsetY particle.Range

	// Particle limits
	MaxActive   int // Maximum simultaneously alive particles (0 = unlimited)
	MaxLaunched int // Maximum total particles to launch (0 = unlimited)

	// ParticleLifetime adds a LifetimeComponent to spawned particles (seconds, 0 = none)
	ParticleLifetime float64

	// Particle tracking (粒子追踪)
	ActiveParticles []ecs.EntityID
	TotalLaunched   int
}
