package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/particle"
	"github.com/decker502/pyrate/pkg/sprite"
)

// RenderSystem 把粒子和精灵交给宿主提供的绘制目标
//
// 渲染顺序（从底到顶）：精灵 → 粒子。绘制目标由宿主实现：
//   - particle.Canvas: ebiten 屏幕或终端
//   - sprite.Blitter: ebiten 屏幕
//
// 系统本身不依赖任何窗口，测试中可以用记录型实现替代。
type RenderSystem struct {
	entityManager *ecs.EntityManager

	// 绘制失败的形状只记录一次日志，避免每帧刷屏
	reported map[string]bool
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		reported:      make(map[string]bool),
	}
}

// DrawParticles 按实体 ID 顺序绘制所有存活粒子，返回成功绘制的数量
//
// 单个粒子绘制失败（例如不支持的形状）只会跳过该粒子。
func (s *RenderSystem) DrawParticles(canvas particle.Canvas) int {
	drawn := 0
	entities := ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		pc, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !ok || pc.Particle == nil {
			continue
		}

		if err := pc.Particle.Draw(canvas); err != nil {
			key := pc.Particle.Shape.String()
			if !s.reported[key] {
				s.reported[key] = true
				log.Printf("[RenderSystem] 粒子 %d 绘制失败: %v", id, err)
			}
			continue
		}
		drawn++
	}
	return drawn
}

// DrawSprites 绘制 SpriteSystem 本帧选中的精灵图像
func (s *RenderSystem) DrawSprites(b sprite.Blitter[*ebiten.Image]) int {
	drawn := 0
	entities := ecs.GetEntitiesWith1[*components.SpriteComponent](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		sc, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok || sc.Hidden || sc.Current == nil || sc.Sprite == nil {
			continue
		}
		x, y := sc.Sprite.Position()
		b.Blit(sc.Current, x, y)
		drawn++
	}
	return drawn
}
