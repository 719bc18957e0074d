package utils

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Easing Functions (缓动函数)
//
// 颜色渐变等随时间插值的效果通过缓动函数控制进度曲线。
// 所有函数接受进度 t ∈ [0, 1]，返回值在端点处满足 f(0)=0、f(1)=1。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性（匀速）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInCubic 三次方缓入：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出：f(t) = 1 - (1-t)³
// 开始快，结束慢
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutExpo 指数缓出：f(t) = 1 - 2^(-10t)，t=1 时精确返回 1
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easings 配置文件中可用的缓动名称
var easings = map[string]EasingFunc{
	"linear":       EaseLinear,
	"in-quad":      EaseInQuad,
	"out-quad":     EaseOutQuad,
	"in-cubic":     EaseInCubic,
	"out-cubic":    EaseOutCubic,
	"in-out-cubic": EaseInOutCubic,
	"out-expo":     EaseOutExpo,
}

// LookupEasing 按名称查找缓动函数（不区分大小写，下划线等同于连字符）
// 空名称返回线性缓动。
func LookupEasing(name string) (EasingFunc, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == "" {
		return EaseLinear, nil
	}
	if fn, ok := easings[key]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown easing %q (available: %s)", name, strings.Join(EasingNames(), ", "))
}

// EasingNames 返回所有已注册的缓动名称（已排序）
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
