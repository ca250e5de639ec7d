package progress

import (
	"math"
	"sort"
)

// Easing Functions (缓动函数)
//
// 激活窗口在线性映射之后可以再套一条缓动曲线，让动画起止更柔和。
// 所有曲线都满足：f(0)=0，f(1)=1，在 [0, 1] 上单调不减，
// 因此套用缓动后激活值仍然落在 [0, 1] 内，窗口的边界性质不变。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型，输入输出均为 [0, 1]
type EasingFunc func(t float64) float64

// 缓动名称常量（配置文件中使用的字符串）
const (
	EaseLinear     = "linear"
	EaseInQuad     = "inQuad"
	EaseOutQuad    = "outQuad"
	EaseInCubic    = "inCubic"
	EaseOutCubic   = "outCubic"
	EaseInOutCubic = "inOutCubic"
	EaseSmoothstep = "smoothstep"
)

var easings = map[string]EasingFunc{
	EaseLinear:     linear,
	EaseInQuad:     inQuad,
	EaseOutQuad:    outQuad,
	EaseInCubic:    inCubic,
	EaseOutCubic:   outCubic,
	EaseInOutCubic: inOutCubic,
	EaseSmoothstep: smoothstep,
}

// LookupEasing 根据名称查找缓动函数
// 空字符串视为 linear
func LookupEasing(name string) (EasingFunc, bool) {
	if name == "" {
		return linear, true
	}
	fn, ok := easings[name]
	return fn, ok
}

// EasingNames 返回所有已注册的缓动名称（按字母排序）
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// linear 线性（无缓动）
func linear(t float64) float64 {
	return t
}

// inQuad 二次方缓入：f(t) = t²
func inQuad(t float64) float64 {
	return t * t
}

// outQuad 二次方缓出：f(t) = 1 - (1-t)²
func outQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// inCubic 三次方缓入：f(t) = t³
func inCubic(t float64) float64 {
	return t * t * t
}

// outCubic 三次方缓出：f(t) = 1 - (1-t)³
func outCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// inOutCubic 三次方缓入缓出
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func inOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// smoothstep Hermite 平滑：f(t) = t²(3 - 2t)
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]，NaN 视为 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}
