package components

// LifetimeComponent 管理实体的生命周期
// 用于给粒子设置存活上限：有些行为组合（例如只缩小不淡出）永远不会触发透明度死亡条件
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期
}
