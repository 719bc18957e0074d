package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/config"
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/particle"
	"github.com/decker502/pyrate/pkg/systems"
)

// ParticleSceneOptions 粒子场景的启动参数
type ParticleSceneOptions struct {
	Emitter string    // 初始发射器名称，空则使用配置中的第一个
	X, Y    float64   // 发射器位置
	Seed    int64     // 随机种子（0 表示使用当前时间）
	Workers int       // ParticleSystem 并行度
	Start   time.Time // 模拟时钟起点
}

// ParticleScene 持有一个可切换的发射器及其粒子
//
// 场景不依赖任何窗口：ebiten 和终端宿主都只负责输入与绘制目标。
// 每次 Update 的顺序：发射器/粒子 → 寿命 → 清理标记删除的实体。
type ParticleScene struct {
	config *config.EffectsConfig

	entityManager  *ecs.EntityManager
	particleSystem *systems.ParticleSystem
	lifetimeSystem *systems.LifetimeSystem
	renderSystem   *systems.RenderSystem

	emitterNames []string
	current      int
	emitterID    ecs.EntityID
	originX      float64
	originY      float64

	paused bool
}

// NewParticleScene 创建粒子场景并在 (X, Y) 放置初始发射器
func NewParticleScene(cfg *config.EffectsConfig, opts ParticleSceneOptions) (*ParticleScene, error) {
	names := cfg.EmitterNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("effects config has no emitters: %w", config.ErrUnknownEntry)
	}

	current := 0
	if opts.Emitter != "" {
		current = -1
		for i, name := range names {
			if name == opts.Emitter {
				current = i
				break
			}
		}
		if current < 0 {
			return nil, fmt.Errorf("emitter %q: %w", opts.Emitter, config.ErrUnknownEntry)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}

	em := ecs.NewEntityManager()
	ps := systems.NewParticleSystem(em, rand.New(rand.NewSource(seed)), start)
	ps.Workers = opts.Workers

	s := &ParticleScene{
		config:         cfg,
		entityManager:  em,
		particleSystem: ps,
		lifetimeSystem: systems.NewLifetimeSystem(em),
		renderSystem:   systems.NewRenderSystem(em),
		emitterNames:   names,
		current:        current,
		originX:        opts.X,
		originY:        opts.Y,
	}
	if err := s.spawnEmitter(); err != nil {
		return nil, err
	}
	log.Printf("[ParticleScene] 初始化完成: emitter=%s seed=%d workers=%d", s.EmitterName(), seed, opts.Workers)
	return s, nil
}

// Update 推进 dt 秒；暂停时不推进
func (s *ParticleScene) Update(dt float64) {
	if s.paused || dt <= 0 {
		return
	}
	s.particleSystem.Update(dt)
	s.lifetimeSystem.Update(dt)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 把所有粒子画到 canvas 上，返回绘制数量
func (s *ParticleScene) Draw(canvas particle.Canvas) int {
	return s.renderSystem.DrawParticles(canvas)
}

// EmitterName 返回当前发射器名称
func (s *ParticleScene) EmitterName() string {
	return s.emitterNames[s.current]
}

// ParticleCount 返回存活粒子数量
func (s *ParticleScene) ParticleCount() int {
	return s.particleSystem.ParticleCount()
}

// Paused 返回是否暂停
func (s *ParticleScene) Paused() bool {
	return s.paused
}

// TogglePause 切换暂停状态并返回新状态
func (s *ParticleScene) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// NextEmitter 切换到下一个发射器（delta 可为负），已生成的粒子保留
func (s *ParticleScene) NextEmitter(delta int) error {
	n := len(s.emitterNames)
	s.current = ((s.current+delta)%n + n) % n

	if emitter, ok := ecs.GetComponent[*components.EmitterComponent](s.entityManager, s.emitterID); ok {
		// 停止发射，粒子消失后发射器自动销毁
		emitter.Active = false
	}
	return s.spawnEmitter()
}

// MoveEmitter 移动当前发射器
func (s *ParticleScene) MoveEmitter(x, y float64) {
	s.originX, s.originY = x, y
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.emitterID); ok {
		pos.X, pos.Y = x, y
	}
}

// Origin 返回当前发射器位置
func (s *ParticleScene) Origin() (x, y float64) {
	return s.originX, s.originY
}

// Burst 在 (x, y) 一次性发射 n 个当前发射器的粒子，返回实际发射数量
func (s *ParticleScene) Burst(x, y float64, n int) (int, error) {
	emitter, err := s.config.BuildEmitter(s.EmitterName())
	if err != nil {
		return 0, err
	}
	emitter.SpawnInterval = 0
	emitter.MaxActive = 0

	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	s.entityManager.AddComponent(id, emitter)

	spawned := s.particleSystem.Emit(id, n)
	emitter.Active = false
	return spawned, nil
}

// Clear 移除所有粒子和发射器，然后重新放置当前发射器
func (s *ParticleScene) Clear() error {
	s.particleSystem.Clear()
	s.entityManager.RemoveMarkedEntities()
	return s.spawnEmitter()
}

func (s *ParticleScene) spawnEmitter() error {
	name := s.EmitterName()
	emitter, err := s.config.BuildEmitter(name)
	if err != nil {
		return fmt.Errorf("failed to spawn emitter %s: %w", name, err)
	}

	id := s.entityManager.CreateEntity()
	s.entityManager.AddComponent(id, &components.PositionComponent{X: s.originX, Y: s.originY})
	s.entityManager.AddComponent(id, emitter)
	s.emitterID = id
	return nil
}
