package systems

import (
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/particle"
)

// maxSpawnsPerTick caps interval spawning so a huge dt (window dragged,
// debugger pause) cannot flood the live set in one frame.
const maxSpawnsPerTick = 1000

// parallelThreshold is the particle count below which fan-out is not worth it.
const parallelThreshold = 256

// ParticleSystem manages all particle emitters and individual particles.
//
// The system processes particles in two phases:
//  1. Update all emitters (spawn new particles, check duration limits)
//  2. Update all particles (run behavior chains, apply the death rule)
//
// Dead particles are only marked; the host calls
// EntityManager.RemoveMarkedEntities once per tick after all systems ran.
//
// Time is simulated: the system clock starts at the time given to
// NewParticleSystem and advances by dt on every Update. Particles get their
// CreatedAt from it, so runs are reproducible with a seeded Rand.
type ParticleSystem struct {
	EntityManager *ecs.EntityManager

	// Rand drives spawn offsets. Nil disables jitter (offsets use Range.Min).
	Rand *rand.Rand

	// Death decides when a particle leaves the live set. Nil means
	// particle.OpacityDeath.
	Death particle.DeathRule

	// Workers > 1 runs behavior chains of independent particles in parallel.
	// Particles share no state, so the only requirement is that each chain
	// runs on one goroutine. Death checks stay sequential.
	Workers int

	now time.Time
}

// NewParticleSystem creates a new ParticleSystem instance.
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand, start time.Time) *ParticleSystem {
	return &ParticleSystem{
		EntityManager: em,
		Rand:          rng,
		Death:         particle.OpacityDeath,
		now:           start,
	}
}

// Now returns the simulated time.
func (ps *ParticleSystem) Now() time.Time {
	return ps.now
}

// Update processes all emitters and particles for the current frame.
// dt is the delta time in seconds since the last frame.
func (ps *ParticleSystem) Update(dt float64) {
	ps.now = ps.now.Add(time.Duration(dt * float64(time.Second)))
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

// SpawnAt creates a standalone particle cloned from proto at (x, y).
func (ps *ParticleSystem) SpawnAt(proto *particle.Particle, x, y float64) ecs.EntityID {
	id := ps.EntityManager.CreateEntity()
	ps.EntityManager.AddComponent(id, &components.ParticleComponent{
		Particle: proto.Create(x, y, ps.now),
	})
	return id
}

// Emit spawns up to n particles from an emitter right away, ignoring its
// interval but honoring its limits. It returns how many were spawned.
func (ps *ParticleSystem) Emit(emitterID ecs.EntityID, n int) int {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
	if !ok {
		return 0
	}
	position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, emitterID)
	if !ok {
		return 0
	}

	ps.cleanupDestroyedParticles(emitter)
	spawned := 0
	for i := 0; i < n; i++ {
		if !ps.canSpawn(emitter) {
			break
		}
		ps.spawnParticle(emitterID, emitter, position)
		spawned++
	}
	return spawned
}

// ParticleCount returns the number of particles not yet marked for removal.
func (ps *ParticleSystem) ParticleCount() int {
	count := 0
	ecs.EachLive(ps.EntityManager, func(ecs.EntityID, *components.ParticleComponent) {
		count++
	})
	return count
}

// Clear marks every particle and emitter for removal.
func (ps *ParticleSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](ps.EntityManager) {
		ps.EntityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.EmitterComponent](ps.EntityManager) {
		ps.EntityManager.DestroyEntity(id)
	}
}

// updateEmitters processes all emitter entities, spawning new particles
// and managing emitter lifecycle.
func (ps *ParticleSystem) updateEmitters(dt float64) {
	emitterEntities := ecs.GetEntitiesWith2[
		*components.EmitterComponent,
		*components.PositionComponent,
	](ps.EntityManager)

	for _, emitterID := range emitterEntities {
		if ps.EntityManager.IsMarkedForDestroy(emitterID) {
			continue
		}

		emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}
		position, ok := ecs.GetComponent[*components.PositionComponent](ps.EntityManager, emitterID)
		if !ok {
			continue
		}

		emitter.Age += dt

		// Check duration (0 = infinite)
		if emitter.Duration > 0 && emitter.Age >= emitter.Duration {
			emitter.Active = false
		}

		ps.cleanupDestroyedParticles(emitter)

		if emitter.Active && emitter.Prototype != nil && emitter.SpawnInterval > 0 {
			emitter.SpawnTimer += dt
			spawned := 0
			for emitter.SpawnTimer >= emitter.SpawnInterval {
				emitter.SpawnTimer -= emitter.SpawnInterval
				// 达到上限时丢弃本次发射，而不是累积到之后集中爆发
				if ps.canSpawn(emitter) {
					ps.spawnParticle(emitterID, emitter, position)
				}
				spawned++
				if spawned >= maxSpawnsPerTick {
					emitter.SpawnTimer = 0
					break
				}
			}
		}

		// Auto-cleanup: inactive emitter with no live particles
		if !emitter.Active && len(emitter.ActiveParticles) == 0 {
			ps.EntityManager.DestroyEntity(emitterID)
		}
	}
}

func (ps *ParticleSystem) canSpawn(emitter *components.EmitterComponent) bool {
	if emitter.Prototype == nil {
		return false
	}
	if emitter.MaxActive > 0 && len(emitter.ActiveParticles) >= emitter.MaxActive {
		return false
	}
	if emitter.MaxLaunched > 0 && emitter.TotalLaunched >= emitter.MaxLaunched {
		return false
	}
	return true
}

// spawnParticle creates a new particle entity from the emitter prototype.
func (ps *ParticleSystem) spawnParticle(emitterID ecs.EntityID, emitter *components.EmitterComponent, pos *components.PositionComponent) {
	x := pos.X + emitter.OffsetX.Sample(ps.Rand)
	y := pos.Y + emitter.OffsetY.Sample(ps.Rand)

	id := ps.EntityManager.CreateEntity()
	ps.EntityManager.AddComponent(id, &components.ParticleComponent{
		Particle:  emitter.Prototype.Create(x, y, ps.now),
		EmitterID: emitterID,
	})
	if emitter.ParticleLifetime > 0 {
		ps.EntityManager.AddComponent(id, &components.LifetimeComponent{
			MaxLifetime: emitter.ParticleLifetime,
		})
	}

	emitter.ActiveParticles = append(emitter.ActiveParticles, id)
	emitter.TotalLaunched++
}

// cleanupDestroyedParticles removes dead particle IDs from emitter's active list
func (ps *ParticleSystem) cleanupDestroyedParticles(emitter *components.EmitterComponent) {
	alive := emitter.ActiveParticles[:0]
	for _, id := range emitter.ActiveParticles {
		if ps.EntityManager.IsMarkedForDestroy(id) {
			continue
		}
		if ecs.HasComponent[*components.ParticleComponent](ps.EntityManager, id) {
			alive = append(alive, id)
		}
	}
	emitter.ActiveParticles = alive
}

// updateParticles runs every live particle's behavior chain, then applies
// the death rule.
func (ps *ParticleSystem) updateParticles(dt float64) {
	var live []*particle.Particle
	var liveIDs []ecs.EntityID
	ecs.EachLive(ps.EntityManager, func(id ecs.EntityID, pc *components.ParticleComponent) {
		if pc.Particle == nil {
			return
		}
		live = append(live, pc.Particle)
		liveIDs = append(liveIDs, id)
	})

	if ps.Workers > 1 && len(live) >= parallelThreshold {
		ps.updateParallel(live, dt)
	} else {
		for _, p := range live {
			p.Update(dt)
		}
	}

	death := ps.Death
	if death == nil {
		death = particle.OpacityDeath
	}
	for i, p := range live {
		if death(p) {
			ps.EntityManager.DestroyEntity(liveIDs[i])
		}
	}
}

// updateParallel splits particles into one contiguous chunk per worker.
func (ps *ParticleSystem) updateParallel(live []*particle.Particle, dt float64) {
	var g errgroup.Group
	g.SetLimit(ps.Workers)

	chunk := (len(live) + ps.Workers - 1) / ps.Workers
	for start := 0; start < len(live); start += chunk {
		end := start + chunk
		if end > len(live) {
			end = len(live)
		}
		part := live[start:end]
		g.Go(func() error {
			for _, p := range part {
				p.Update(dt)
			}
			return nil
		})
	}
	_ = g.Wait()
}
