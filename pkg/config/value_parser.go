package config

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/decker502/pyrate/pkg/particle"
	"github.com/decker502/pyrate/pkg/utils"
)

// ParseRange 解析数值或范围字符串
// 支持的格式：
//   - 空字符串: 0
//   - 固定值: "50" → [50, 50]
//   - 范围: "[-50 50]" → [-50, 50]（最小值和最大值颠倒时自动交换）
func ParseRange(s string) (particle.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return particle.Fixed(0), nil
	}

	if !strings.HasPrefix(s, "[") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return particle.Range{}, fmt.Errorf("failed to parse value %q: %w", s, err)
		}
		return particle.Fixed(v), nil
	}

	if !strings.HasSuffix(s, "]") {
		return particle.Range{}, fmt.Errorf("failed to parse range %q: missing ']'", s)
	}
	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	if len(parts) != 2 {
		return particle.Range{}, fmt.Errorf("failed to parse range %q: want two values", s)
	}

	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return particle.Range{}, fmt.Errorf("failed to parse range %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return particle.Range{}, fmt.Errorf("failed to parse range %q: %w", s, err)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return particle.Range{Min: lo, Max: hi}, nil
}

// ParseColor 解析颜色：十六进制 "#rgb"/"#rrggbb" 或 SVG 颜色名（如 "orange"）
func ParseColor(s string) (particle.RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return particle.RGB{}, fmt.Errorf("failed to parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return particle.RGB{R: r, G: g, B: b}, nil
	}

	named, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return particle.RGB{}, fmt.Errorf("failed to parse color %q: not a hex value or known color name", s)
	}
	return particle.RGB{R: named.R, G: named.G, B: named.B}, nil
}

// ParseEase 解析缓动名称（空名称为线性）
func ParseEase(name string) (utils.EasingFunc, error) {
	return utils.LookupEasing(name)
}

// ParseShape 解析粒子形状："square"（默认）或 "image:<ref>"
func ParseShape(s string) (particle.Shape, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == particle.PrimitiveSquare:
		return particle.Square(), nil
	case strings.HasPrefix(s, "image:"):
		ref := strings.TrimSpace(strings.TrimPrefix(s, "image:"))
		if ref == "" {
			return particle.Shape{}, fmt.Errorf("image shape %q has no reference", s)
		}
		return particle.Image(ref), nil
	default:
		return particle.Shape{}, fmt.Errorf("shape %q: %w", s, particle.ErrUnsupportedShape)
	}
}
