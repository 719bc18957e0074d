package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownEntry 引用了配置中不存在的粒子、发射器或精灵
var ErrUnknownEntry = errors.New("unknown config entry")

// EffectsConfig 定义特效配置文件结构（粒子原型、发射器、精灵）
type EffectsConfig struct {
	Version   string                    `yaml:"version"`
	Particles map[string]ParticleConfig `yaml:"particles"`
	Emitters  map[string]EmitterConfig  `yaml:"emitters"`
	Sprites   map[string]SpriteConfig   `yaml:"sprites"`
}

// ParticleConfig 定义一个粒子原型
type ParticleConfig struct {
	Shape     string           `yaml:"shape"`  // "square" 或 "image:<ref>"，空为 square
	Width     float64          `yaml:"width"`  // <= 0 使用默认尺寸
	Height    float64          `yaml:"height"` // <= 0 使用默认尺寸
	Color     string           `yaml:"color"`  // "#rrggbb" 或 colornames 名称，空为默认颜色
	Behaviors []BehaviorConfig `yaml:"behaviors"`
}

// BehaviorConfig 定义一个行为，按 Type 使用不同字段
//
// 可选字段使用指针，nil 表示使用默认值。
type BehaviorConfig struct {
	Type string `yaml:"type"` // opacity, scale, motion, color

	// opacity
	InitOpacity *float64 `yaml:"init_opacity"` // 默认 DefaultInitOpacity
	Decay       float64  `yaml:"decay"`

	// scale
	InitScale *float64 `yaml:"init_scale"` // 默认 DefaultInitScale
	Growth    float64  `yaml:"growth"`

	// motion
	Direction   float64 `yaml:"direction"` // 整圈比例，0.25 为 +Y
	Speed       float64 `yaml:"speed"`
	Accel       float64 `yaml:"accel"`
	ClampAtZero bool    `yaml:"clamp_at_zero"`

	// color
	From     string  `yaml:"from"` // 空表示使用粒子颜色
	To       string  `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

// EmitterConfig 定义一个发射器
type EmitterConfig struct {
	Particle    string  `yaml:"particle"`     // 引用 particles 中的名称
	Interval    float64 `yaml:"interval"`     // 发射间隔（秒），<= 0 只能手动发射
	OffsetX     string  `yaml:"offset_x"`     // 固定值或 "[min max]"
	OffsetY     string  `yaml:"offset_y"`     // 固定值或 "[min max]"
	MaxActive   int     `yaml:"max_active"`   // 0 = 不限
	MaxLaunched int     `yaml:"max_launched"` // 0 = 不限
	Duration    float64 `yaml:"duration"`     // 0 = 无限
	Lifetime    float64 `yaml:"lifetime"`     // 粒子寿命上限（秒），0 = 无
}

// SpriteConfig 定义一个动画精灵
type SpriteConfig struct {
	FPS        float64                    `yaml:"fps"`     // <= 0 使用 sprite.DefaultFPS
	Default    string                     `yaml:"default"` // 启动时播放的动画
	Animations map[string]AnimationConfig `yaml:"animations"`
}

// AnimationConfig 定义精灵表中的一个动画
type AnimationConfig struct {
	Sheet    string `yaml:"sheet"` // 精灵表图片路径
	Rows     int    `yaml:"rows"`
	Cols     int    `yaml:"cols"`
	Frames   int    `yaml:"frames"` // 0 表示 rows*cols
	Repeat   *bool  `yaml:"repeat"` // nil 表示使用默认值 true
	Reversed bool   `yaml:"reversed"`
	FlipX    bool   `yaml:"flip_x"`
	FlipY    bool   `yaml:"flip_y"`
}

// IsRepeat 返回是否循环播放（默认 true）
func (a AnimationConfig) IsRepeat() bool {
	if a.Repeat == nil {
		return true
	}
	return *a.Repeat
}

// FrameCount 返回帧数（未指定时为 rows*cols）
func (a AnimationConfig) FrameCount() int {
	if a.Frames > 0 {
		return a.Frames
	}
	return a.Rows * a.Cols
}

// ParseEffectsConfig 解析 YAML 特效配置并校验
func ParseEffectsConfig(data []byte) (*EffectsConfig, error) {
	cfg := &EffectsConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse effects config: %w", err)
	}

	if cfg.Version == "" {
		log.Printf("[Config] Warning: effects config has no version field")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEffectsConfig 从文件加载特效配置
func LoadEffectsConfig(path string) (*EffectsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects config %s: %w", path, err)
	}

	cfg, err := ParseEffectsConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load effects config %s: %w", path, err)
	}

	log.Printf("[Config] Loaded effects config %s (version=%s, particles=%d, emitters=%d, sprites=%d)",
		path, cfg.Version, len(cfg.Particles), len(cfg.Emitters), len(cfg.Sprites))
	return cfg, nil
}

// Validate 检查配置的一致性
//
// 按名称排序检查，保证同一份配置每次报告相同的第一个错误。
func (c *EffectsConfig) Validate() error {
	for _, name := range sortedKeys(c.Particles) {
		if err := c.Particles[name].validate(); err != nil {
			return fmt.Errorf("invalid particle %q: %w", name, err)
		}
	}

	for _, name := range sortedKeys(c.Emitters) {
		e := c.Emitters[name]
		if _, ok := c.Particles[e.Particle]; !ok {
			return fmt.Errorf("invalid emitter %q: particle %q: %w", name, e.Particle, ErrUnknownEntry)
		}
		if _, err := ParseRange(e.OffsetX); err != nil {
			return fmt.Errorf("invalid emitter %q offset_x: %w", name, err)
		}
		if _, err := ParseRange(e.OffsetY); err != nil {
			return fmt.Errorf("invalid emitter %q offset_y: %w", name, err)
		}
		if e.MaxActive < 0 || e.MaxLaunched < 0 || e.Duration < 0 || e.Lifetime < 0 {
			return fmt.Errorf("invalid emitter %q: limits must not be negative", name)
		}
	}

	for _, name := range sortedKeys(c.Sprites) {
		if err := c.Sprites[name].validate(); err != nil {
			return fmt.Errorf("invalid sprite %q: %w", name, err)
		}
	}
	return nil
}

func (p ParticleConfig) validate() error {
	if _, err := ParseShape(p.Shape); err != nil {
		return err
	}
	if p.Color != "" {
		if _, err := ParseColor(p.Color); err != nil {
			return err
		}
	}
	for i, b := range p.Behaviors {
		if err := b.validate(); err != nil {
			return fmt.Errorf("behavior %d (%s): %w", i, b.Type, err)
		}
	}
	return nil
}

func (b BehaviorConfig) validate() error {
	switch b.Type {
	case BehaviorOpacity, BehaviorMotion:
		return nil
	case BehaviorScale:
		// growth < -1 会让 (1+growth) 变为负数，尺寸直接塌缩为 0
		if b.Growth < -1 {
			return fmt.Errorf("growth %v is below -1", b.Growth)
		}
		return nil
	case BehaviorColor:
		if b.From != "" {
			if _, err := ParseColor(b.From); err != nil {
				return err
			}
		}
		if _, err := ParseColor(b.To); err != nil {
			return err
		}
		if b.Duration < 0 {
			return fmt.Errorf("duration %v is negative", b.Duration)
		}
		_, err := ParseEase(b.Ease)
		return err
	default:
		return fmt.Errorf("unknown behavior type %q", b.Type)
	}
}

func (s SpriteConfig) validate() error {
	if len(s.Animations) == 0 {
		return errors.New("no animations defined")
	}
	if s.Default != "" {
		if _, ok := s.Animations[s.Default]; !ok {
			return fmt.Errorf("default animation %q: %w", s.Default, ErrUnknownEntry)
		}
	}
	for _, name := range sortedKeys(s.Animations) {
		a := s.Animations[name]
		if a.Sheet == "" {
			return fmt.Errorf("animation %q has no sheet", name)
		}
		if a.Rows <= 0 || a.Cols <= 0 || a.FrameCount() > a.Rows*a.Cols {
			return fmt.Errorf("animation %q has invalid grid %dx%d with %d frames", name, a.Rows, a.Cols, a.FrameCount())
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
