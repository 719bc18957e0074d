package config

import (
	_ "embed"
	"fmt"
)

//go:embed default_effects.yaml
var defaultEffectsYAML []byte

// DefaultEffectsConfig 返回内置的特效配置
//
// 包含经典的 spark 粒子（20px 方块，淡出、缩小、向 +Y 移动）及其 demo 发射器，
// 以及 4 帧的 hydra 精灵（9 fps）。
func DefaultEffectsConfig() (*EffectsConfig, error) {
	cfg, err := ParseEffectsConfig(defaultEffectsYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in effects config: %w", err)
	}
	return cfg, nil
}
