package components

import (
	"github.com/decker502/pyrate/pkg/sprite"
	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 存储实体的动画精灵以及本帧选中的图像
//
// SpriteSystem 每帧根据当前时间写入 Current 和 Index，RenderSystem 只负责绘制 Current。
type SpriteComponent struct {
	Sprite *sprite.AnimatedSprite[*ebiten.Image]

	Current *ebiten.Image // 当前帧图像（尚未选帧时为 nil）
	Index   int           // 当前帧索引
	Hidden  bool          // 为 true 时跳过绘制
}
