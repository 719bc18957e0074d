package config

import (
	"fmt"

	"github.com/decker502/pyrate/pkg/components"
	"github.com/decker502/pyrate/pkg/particle"
)

// Behavior types recognized in particle configs.
const (
	BehaviorOpacity = "opacity"
	BehaviorScale   = "scale"
	BehaviorMotion  = "motion"
	BehaviorColor   = "color"
)

// Defaults for optional behavior fields.
const (
	DefaultInitOpacity = 0.8
	DefaultInitScale   = 1.0
)

// BuildPrototype 根据配置构建粒子原型
//
// 行为按配置顺序附加，所以后面的 opacity/scale 会覆盖前面设置的初始值。
func (c *EffectsConfig) BuildPrototype(name string) (*particle.Particle, error) {
	pc, ok := c.Particles[name]
	if !ok {
		return nil, fmt.Errorf("particle %q: %w", name, ErrUnknownEntry)
	}

	shape, err := ParseShape(pc.Shape)
	if err != nil {
		return nil, fmt.Errorf("failed to build particle %q: %w", name, err)
	}

	proto := particle.NewParticle(0, 0, shape, pc.Width, pc.Height)
	if pc.Color != "" {
		if proto.Color, err = ParseColor(pc.Color); err != nil {
			return nil, fmt.Errorf("failed to build particle %q: %w", name, err)
		}
	}

	for i, bc := range pc.Behaviors {
		b, err := buildBehavior(bc, proto.Color)
		if err != nil {
			return nil, fmt.Errorf("failed to build particle %q behavior %d: %w", name, i, err)
		}
		proto.ApplyBehavior(b)
	}
	return proto, nil
}

func buildBehavior(bc BehaviorConfig, base particle.RGB) (particle.Behavior, error) {
	switch bc.Type {
	case BehaviorOpacity:
		return particle.NewOpacityEffect(floatOr(bc.InitOpacity, DefaultInitOpacity), bc.Decay), nil

	case BehaviorScale:
		return particle.NewScaleEffect(floatOr(bc.InitScale, DefaultInitScale), bc.Growth), nil

	case BehaviorMotion:
		m := particle.NewLinearMotionEffect(bc.Direction, bc.Speed, bc.Accel)
		m.ClampAtZero = bc.ClampAtZero
		return m, nil

	case BehaviorColor:
		from := base
		if bc.From != "" {
			c, err := ParseColor(bc.From)
			if err != nil {
				return nil, err
			}
			from = c
		}
		to, err := ParseColor(bc.To)
		if err != nil {
			return nil, err
		}
		ease, err := ParseEase(bc.Ease)
		if err != nil {
			return nil, err
		}
		e := particle.NewColorEffect(from, to, bc.Duration)
		e.Ease = ease
		return e, nil

	default:
		return nil, fmt.Errorf("unknown behavior type %q", bc.Type)
	}
}

// BuildEmitter 根据配置构建发射器组件
//
// 返回的组件已激活；调用方负责创建实体并附加 PositionComponent。
func (c *EffectsConfig) BuildEmitter(name string) (*components.EmitterComponent, error) {
	ec, ok := c.Emitters[name]
	if !ok {
		return nil, fmt.Errorf("emitter %q: %w", name, ErrUnknownEntry)
	}

	proto, err := c.BuildPrototype(ec.Particle)
	if err != nil {
		return nil, fmt.Errorf("failed to build emitter %q: %w", name, err)
	}
	offsetX, err := ParseRange(ec.OffsetX)
	if err != nil {
		return nil, fmt.Errorf("failed to build emitter %q: %w", name, err)
	}
	offsetY, err := ParseRange(ec.OffsetY)
	if err != nil {
		return nil, fmt.Errorf("failed to build emitter %q: %w", name, err)
	}

	return &components.EmitterComponent{
		Prototype:        proto,
		Active:           true,
		Duration:         ec.Duration,
		SpawnInterval:    ec.Interval,
		OffsetX:          offsetX,
		OffsetY:          offsetY,
		MaxActive:        ec.MaxActive,
		MaxLaunched:      ec.MaxLaunched,
		ParticleLifetime: ec.Lifetime,
	}, nil
}

// Sprite 返回精灵配置
func (c *EffectsConfig) Sprite(name string) (SpriteConfig, error) {
	sc, ok := c.Sprites[name]
	if !ok {
		return SpriteConfig{}, fmt.Errorf("sprite %q: %w", name, ErrUnknownEntry)
	}
	return sc, nil
}

// EmitterNames 返回所有发射器名称（已排序）
func (c *EffectsConfig) EmitterNames() []string {
	return sortedKeys(c.Emitters)
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
