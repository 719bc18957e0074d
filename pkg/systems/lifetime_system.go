package systems

import (
	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/ecs"
)

// LifetimeSystem 管理实体的生命周期
//
// 粒子由 ParticleSystem 按死亡规则淘汰；LifetimeComponent 提供一个与透明度无关的
// 硬性寿命上限（发射器配置了 ParticleLifetime 时附加）。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体，返回本帧过期的实体数量
func (s *LifetimeSystem) Update(deltaTime float64) int {
	expired := 0
	ecs.EachLive(s.entityManager, func(id ecs.EntityID, lifetime *components.LifetimeComponent) {
		lifetime.CurrentLifetime += deltaTime

		// MaxLifetime <= 0 表示不限寿命
		if lifetime.MaxLifetime > 0 && lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		if lifetime.IsExpired {
			s.entityManager.DestroyEntity(id)
			expired++
		}
	})
	return expired
}
