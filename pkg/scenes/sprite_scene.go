package scenes

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/ecs"
	"github.com/decker502/pyrate/pkg/sprite"
	"github.com/decker502/pyrate/pkg/systems"
)

// SpriteScene 展示一个动画精灵，可以切换动画、暂停和移动
type SpriteScene struct {
	entityManager *ecs.EntityManager
	spriteSystem  *systems.SpriteSystem
	renderSystem  *systems.RenderSystem

	entityID ecs.EntityID
	sprite   *sprite.AnimatedSprite[*ebiten.Image]
	names    []string
	current  int
}

// NewSpriteScene 创建精灵场景并开始播放 start 动画（空则播放第一个）
func NewSpriteScene(s *sprite.AnimatedSprite[*ebiten.Image], start string, x, y float64, now time.Time) (*SpriteScene, error) {
	sorted := s.AnimationNames()
	if len(sorted) == 0 {
		return nil, fmt.Errorf("sprite has no animations: %w", sprite.ErrNoActiveAnimation)
	}

	current := 0
	if start != "" {
		current = sort.SearchStrings(sorted, start)
		if current >= len(sorted) || sorted[current] != start {
			return nil, &sprite.AnimationError{Name: start, Err: sprite.ErrUnknownAnimation}
		}
	}

	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &components.SpriteComponent{Sprite: s})
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})

	scene := &SpriteScene{
		entityManager: em,
		spriteSystem:  systems.NewSpriteSystem(em),
		renderSystem:  systems.NewRenderSystem(em),
		entityID:      id,
		sprite:        s,
		names:         sorted,
		current:       current,
	}
	s.StartAnimation(scene.AnimationName(), now)
	log.Printf("[SpriteScene] 播放动画 %s (fps=%.1f)", scene.AnimationName(), s.FPS())
	return scene, nil
}

// Update 选择当前帧；活动动画无效时返回错误
func (s *SpriteScene) Update(now time.Time) error {
	return s.spriteSystem.Update(now)
}

// Draw 绘制当前帧
func (s *SpriteScene) Draw(b sprite.Blitter[*ebiten.Image]) int {
	return s.renderSystem.DrawSprites(b)
}

// AnimationName 返回当前动画名称
func (s *SpriteScene) AnimationName() string {
	return s.names[s.current]
}

// FrameIndex 返回最近一次 Update 选中的帧索引
func (s *SpriteScene) FrameIndex() int {
	sc, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, s.entityID)
	if !ok {
		return 0
	}
	return sc.Index
}

// NextAnimation 切换动画（delta 可为负）并从第 0 帧开始播放
func (s *SpriteScene) NextAnimation(delta int, now time.Time) {
	n := len(s.names)
	s.current = ((s.current+delta)%n + n) % n
	s.sprite.StartAnimation(s.AnimationName(), now)
}

// TogglePause 切换暂停状态并返回新状态
func (s *SpriteScene) TogglePause(now time.Time) bool {
	if s.sprite.Paused() {
		s.sprite.Resume(now)
	} else {
		s.sprite.Pause(now)
	}
	return s.sprite.Paused()
}

// MoveTo 移动精灵
func (s *SpriteScene) MoveTo(x, y float64) {
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.entityID); ok {
		pos.X, pos.Y = x, y
	}
}
