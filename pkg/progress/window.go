// Package progress 将滚动进度（0..1）映射为各个效果的激活值。
//
// 每个效果都有一个独立的激活窗口 {Start, Length}，激活值定义为
//
//	clamp((progress - Start) / Length, 0, 1)
//
// 再按窗口配置的缓动曲线变换。本包全部为纯函数，不保存任何状态，
// 因此进度来回拖动（倒退、越界）时结果只取决于当前进度值。
package progress

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidWindow 窗口参数非法（长度不为正或含非有限值）
	ErrInvalidWindow = errors.New("invalid activation window")
	// ErrUnknownEasing 缓动名称未注册
	ErrUnknownEasing = errors.New("unknown easing")
)

// Window 激活窗口
//
// 构造后不可变，只能通过 NewWindow 创建以保证 Length > 0。
type Window struct {
	Start  float64
	Length float64
	Easing string

	ease EasingFunc
}

// NewWindow 创建激活窗口
//
// 参数:
//   - start: 窗口起点（进度值）
//   - length: 窗口长度，必须 > 0
//   - easing: 缓动名称，空字符串为 linear
//
// 返回:
//   - Window: 校验通过的窗口
//   - error: 参数非法时返回 ErrInvalidWindow / ErrUnknownEasing
func NewWindow(start, length float64, easing string) (Window, error) {
	if math.IsNaN(start) || math.IsInf(start, 0) {
		return Window{}, fmt.Errorf("%w: start %v is not finite", ErrInvalidWindow, start)
	}
	if math.IsNaN(length) || math.IsInf(length, 0) || length <= 0 {
		return Window{}, fmt.Errorf("%w: length must be > 0, got %v", ErrInvalidWindow, length)
	}
	fn, ok := LookupEasing(easing)
	if !ok {
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownEasing, easing)
	}
	if easing == "" {
		easing = EaseLinear
	}
	return Window{Start: start, Length: length, Easing: easing, ease: fn}, nil
}

// MustWindow 与 NewWindow 相同，参数非法时 panic（仅用于常量默认值）
func MustWindow(start, length float64, easing string) Window {
	w, err := NewWindow(start, length, easing)
	if err != nil {
		panic(err)
	}
	return w
}

// Activation 计算进度在窗口内的激活值，结果总在 [0, 1]
//
// 进度低于 Start 时恰好为 0，达到 Start+Length 及以上时恰好为 1。
// 零值 Window（未经 NewWindow 构造）长度为 0，按阶跃处理，不会除零。
func Activation(p float64, w Window) float64 {
	if w.Length <= 0 {
		if p >= w.Start {
			return 1
		}
		return 0
	}
	if math.IsNaN(p) || p <= w.Start {
		return 0
	}
	if p >= w.End() {
		return 1
	}
	a := Clamp01((p - w.Start) / w.Length)
	if w.ease != nil {
		a = Clamp01(w.ease(a))
	}
	return a
}

// Activation 方法形式，等价于 Activation(p, w)
func (w Window) Activation(p float64) float64 {
	return Activation(p, w)
}

// End 返回窗口终点 Start+Length
func (w Window) End() float64 {
	return w.Start + w.Length
}

// Active 进度是否已进入窗口（p >= Start）
func (w Window) Active(p float64) bool {
	return p >= w.Start
}

// Saturated 进度是否已越过窗口终点（激活值恒为 1）
func (w Window) Saturated(p float64) bool {
	return p >= w.End()
}

// Delayed 返回起点后移 d 的同长度窗口（用于标签的逐个延迟）
func (w Window) Delayed(d float64) Window {
	w.Start += d
	return w
}

// String 便于日志输出
func (w Window) String() string {
	return fmt.Sprintf("[%.3f, +%.3f %s]", w.Start, w.Length, w.Easing)
}
