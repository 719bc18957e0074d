package components

// PositionComponent 存储发射器或精灵实体的中心坐标（像素）
//
// 粒子自己携带位置，不使用该组件；发射器以它为生成原点，
// SpriteSystem 每帧把它同步到精灵的绘制中心。
type PositionComponent struct {
	X, Y float64
}
