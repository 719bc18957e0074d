package systems

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/particle"
)

var simStart = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

// fadingPrototype 返回一个 0.8 秒淡出的方形粒子原型
func fadingPrototype() *particle.Particle {
	proto := particle.NewParticle(0, 0, particle.Square(), 10, 10)
	proto.ApplyBehavior(particle.NewOpacityEffect(1.0, 1.25))
	return proto
}

// createEmitter 创建带位置的发射器实体
func createEmitter(em *ecs.EntityManager, x, y float64, emitter *components.EmitterComponent) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, emitter)
	return id
}

// step 推进一帧并清理标记删除的实体，模拟宿主循环
func step(em *ecs.EntityManager, ps *ParticleSystem, dt float64) {
	ps.Update(dt)
	em.RemoveMarkedEntities()
}

func TestParticleSystem_SpawnsAtInterval(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	emitterID := createEmitter(em, 100, 50, &components.EmitterComponent{
		Prototype:     fadingPrototype(),
		Active:        true,
		SpawnInterval: 0.25,
	})

	for i := 0; i < 3; i++ {
		step(em, ps, 0.25)
	}

	if got := ps.ParticleCount(); got != 3 {
		t.Errorf("ParticleCount() = %d, want 3", got)
	}
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	if emitter.TotalLaunched != 3 {
		t.Errorf("TotalLaunched = %d, want 3", emitter.TotalLaunched)
	}
	if len(emitter.ActiveParticles) != 3 {
		t.Errorf("len(ActiveParticles) = %d, want 3", len(emitter.ActiveParticles))
	}

	for _, id := range emitter.ActiveParticles {
		pc, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
		if !ok {
			t.Fatalf("particle %d missing ParticleComponent", id)
		}
		if pc.EmitterID != emitterID {
			t.Errorf("EmitterID = %d, want %d", pc.EmitterID, emitterID)
		}
		if pc.Particle.X != 100 || pc.Particle.Y != 50 {
			t.Errorf("spawn position = (%v, %v), want (100, 50)", pc.Particle.X, pc.Particle.Y)
		}
	}
}

func TestParticleSystem_FadedParticlesRemoved(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	id := ps.SpawnAt(fadingPrototype(), 0, 0)

	for i := 0; i < 3; i++ {
		step(em, ps, 0.25)
	}
	if !em.Exists(id) {
		t.Fatal("particle removed at 0.75s, want alive (opacity 0.0625)")
	}

	step(em, ps, 0.25)
	if em.Exists(id) {
		t.Error("particle still exists at 1.0s, want removed")
	}
	if got := ps.ParticleCount(); got != 0 {
		t.Errorf("ParticleCount() = %d, want 0", got)
	}
}

func TestParticleSystem_MaxActive(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	// 不会淡出的粒子
	proto := particle.NewParticle(0, 0, particle.Square(), 10, 10)
	emitterID := createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype:     proto,
		Active:        true,
		SpawnInterval: 0.25,
		MaxActive:     2,
	})

	// 一次大步长：间隔触发 8 次，但只允许 2 个存活
	step(em, ps, 2.0)

	if got := ps.ParticleCount(); got != 2 {
		t.Errorf("ParticleCount() = %d, want 2", got)
	}
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	if emitter.SpawnTimer != 0 {
		t.Errorf("SpawnTimer = %v, want 0 (capped spawns are dropped)", emitter.SpawnTimer)
	}
}

func TestParticleSystem_MaxLaunched(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	emitterID := createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype:     fadingPrototype(),
		Active:        true,
		SpawnInterval: 0.25,
		MaxLaunched:   3,
	})

	for i := 0; i < 20; i++ {
		step(em, ps, 0.25)
	}

	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	if emitter.TotalLaunched != 3 {
		t.Errorf("TotalLaunched = %d, want 3", emitter.TotalLaunched)
	}
}

func TestParticleSystem_EmitterAutoDestroy(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	emitterID := createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype:     fadingPrototype(),
		Active:        true,
		Duration:      0.5,
		SpawnInterval: 0.25,
	})

	// 0.25s 生成一个粒子，0.5s 发射器停止；粒子在 1.0s（第 4 帧）死亡
	for i := 0; i < 4; i++ {
		step(em, ps, 0.25)
		if !em.Exists(emitterID) {
			t.Fatalf("emitter removed after tick %d while its particle was alive", i+1)
		}
	}

	step(em, ps, 0.25)
	if em.Exists(emitterID) {
		t.Error("emitter still exists after its last particle died")
	}
}

func TestParticleSystem_Emit(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	emitterID := createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype: fadingPrototype(),
		Active:    true,
		MaxActive: 5,
	})

	if got := ps.Emit(emitterID, 3); got != 3 {
		t.Errorf("Emit(3) = %d, want 3", got)
	}
	if got := ps.Emit(emitterID, 10); got != 2 {
		t.Errorf("Emit(10) = %d, want 2 (MaxActive)", got)
	}
	if got := ps.Emit(ecs.EntityID(999), 1); got != 0 {
		t.Errorf("Emit(unknown) = %d, want 0", got)
	}

	// SpawnInterval 为 0 时不会自动生成
	step(em, ps, 1.0/60)
	if got := ps.ParticleCount(); got != 5 {
		t.Errorf("ParticleCount() = %d, want 5", got)
	}
}

func TestParticleSystem_OffsetSampling(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, rand.New(rand.NewSource(7)), simStart)

	emitterID := createEmitter(em, 100, 100, &components.EmitterComponent{
		Prototype: particle.NewParticle(0, 0, particle.Square(), 4, 4),
		Active:    true,
		OffsetX:   particle.Range{Min: -10, Max: 10},
		OffsetY:   particle.Fixed(5),
	})
	ps.Emit(emitterID, 50)

	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](em) {
		pc, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
		if pc.Particle.X < 90 || pc.Particle.X > 110 {
			t.Errorf("X = %v, want within [90, 110]", pc.Particle.X)
		}
		if pc.Particle.Y != 105 {
			t.Errorf("Y = %v, want 105", pc.Particle.Y)
		}
	}
}

func TestParticleSystem_SimulatedClock(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	step(em, ps, 0.5)
	id := ps.SpawnAt(fadingPrototype(), 0, 0)

	pc, _ := ecs.GetComponent[*components.ParticleComponent](em, id)
	want := simStart.Add(500 * time.Millisecond)
	if !pc.Particle.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", pc.Particle.CreatedAt, want)
	}
	if !ps.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", ps.Now(), want)
	}
}

func TestParticleSystem_LifetimeComponent(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)
	ls := NewLifetimeSystem(em)

	// 只缩小不淡出的粒子，依靠寿命上限移除
	proto := particle.NewParticle(0, 0, particle.Square(), 10, 10)
	proto.ApplyBehavior(particle.NewScaleEffect(1, -0.5))

	emitterID := createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype:        proto,
		Active:           true,
		ParticleLifetime: 0.5,
	})
	ps.Emit(emitterID, 1)

	for i := 0; i < 4; i++ {
		ps.Update(0.25)
		ls.Update(0.25)
		em.RemoveMarkedEntities()
	}
	if got := ps.ParticleCount(); got != 0 {
		t.Errorf("ParticleCount() = %d, want 0 after lifetime expired", got)
	}
}

func TestParticleSystem_CustomDeathRule(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)
	ps.Death = particle.MaxAgeDeath(0.5)

	proto := particle.NewParticle(0, 0, particle.Square(), 10, 10)
	ps.SpawnAt(proto, 0, 0)

	step(em, ps, 0.25)
	if got := ps.ParticleCount(); got != 1 {
		t.Fatalf("ParticleCount() = %d, want 1", got)
	}
	step(em, ps, 0.25)
	if got := ps.ParticleCount(); got != 0 {
		t.Errorf("ParticleCount() = %d, want 0", got)
	}
}

// TestParticleSystem_ParallelMatchesSequential 并行更新结果应与顺序更新一致
func TestParticleSystem_ParallelMatchesSequential(t *testing.T) {
	build := func(workers int) (*ecs.EntityManager, *ParticleSystem) {
		em := ecs.NewEntityManager()
		ps := NewParticleSystem(em, nil, simStart)
		ps.Workers = workers

		for i := 0; i < 600; i++ {
			proto := particle.NewParticle(0, 0, particle.Square(), 6, 6)
			proto.ApplyBehavior(particle.NewOpacityEffect(1, 0.2))
			proto.ApplyBehavior(particle.NewScaleEffect(1, 0.3))
			proto.ApplyBehavior(particle.NewLinearMotionEffect(float64(i)*0.01, 50, -20))
			ps.SpawnAt(proto, float64(i), 0)
		}
		return em, ps
	}

	emSeq, seq := build(1)
	emPar, par := build(4)
	for i := 0; i < 30; i++ {
		step(emSeq, seq, 1.0/60)
		step(emPar, par, 1.0/60)
	}

	idsSeq := ecs.GetEntitiesWith1[*components.ParticleComponent](emSeq)
	idsPar := ecs.GetEntitiesWith1[*components.ParticleComponent](emPar)
	if len(idsSeq) != len(idsPar) {
		t.Fatalf("particle counts differ: %d vs %d", len(idsSeq), len(idsPar))
	}
	for i := range idsSeq {
		a, _ := ecs.GetComponent[*components.ParticleComponent](emSeq, idsSeq[i])
		b, _ := ecs.GetComponent[*components.ParticleComponent](emPar, idsPar[i])
		if a.Particle.X != b.Particle.X || a.Particle.Y != b.Particle.Y ||
			a.Particle.Width != b.Particle.Width || a.Particle.Opacity != b.Particle.Opacity {
			t.Fatalf("particle %d differs: seq=%+v par=%+v", i, *a.Particle, *b.Particle)
		}
	}
}

func TestParticleSystem_Clear(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	emitterID := createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype:     fadingPrototype(),
		Active:        true,
		SpawnInterval: 0.1,
	})
	ps.Emit(emitterID, 4)
	ps.SpawnAt(fadingPrototype(), 1, 1)

	ps.Clear()
	if got := ps.ParticleCount(); got != 0 {
		t.Errorf("ParticleCount() after Clear = %d, want 0", got)
	}
	em.RemoveMarkedEntities()
	if got := em.EntityCount(); got != 0 {
		t.Errorf("EntityCount() = %d, want 0", got)
	}
}

func TestParticleSystem_HugeDeltaBounded(t *testing.T) {
	em := ecs.NewEntityManager()
	ps := NewParticleSystem(em, nil, simStart)

	createEmitter(em, 0, 0, &components.EmitterComponent{
		Prototype:     particle.NewParticle(0, 0, particle.Square(), 1, 1),
		Active:        true,
		SpawnInterval: 0.001,
	})
	step(em, ps, 3600)

	if got := ps.ParticleCount(); got > maxSpawnsPerTick {
		t.Errorf("ParticleCount() = %d, want <= %d", got, maxSpawnsPerTick)
	}
	if math.IsNaN(ps.Now().Sub(simStart).Seconds()) {
		t.Error("clock became NaN")
	}
}
