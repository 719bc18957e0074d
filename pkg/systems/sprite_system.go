package systems

import (
	"fmt"
	"time"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/ecs"
)

// SpriteSystem 每帧为动画精灵选帧
//
// 选帧完全由当前时间决定（见 sprite.FrameIndex），所以系统不保存任何累计状态：
// 同一时刻调用多次结果相同。拥有 PositionComponent 的实体会把位置同步给精灵。
type SpriteSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpriteSystem 创建精灵系统
func NewSpriteSystem(em *ecs.EntityManager) *SpriteSystem {
	return &SpriteSystem{entityManager: em}
}

// Update 为所有精灵写入当前帧
//
// 活动动画不存在时返回错误（包装 sprite.AnimationError），调用方决定是否终止循环。
// 出错的实体之前的实体已经更新。
func (s *SpriteSystem) Update(now time.Time) error {
	entities := ecs.GetEntitiesWith1[*components.SpriteComponent](s.entityManager)

	for _, id := range entities {
		sc, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok || sc.Sprite == nil {
			continue
		}

		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			sc.Sprite.SetPosition(pos.X, pos.Y)
		}

		index, err := sc.Sprite.CurrentFrameIndex(now)
		if err != nil {
			return fmt.Errorf("failed to select frame for sprite entity %d: %w", id, err)
		}
		frame, err := sc.Sprite.CurrentFrame(now)
		if err != nil {
			return fmt.Errorf("failed to select frame for sprite entity %d: %w", id, err)
		}
		sc.Index = index
		sc.Current = frame
	}
	return nil
}
