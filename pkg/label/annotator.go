// Package label 计算浮动矿物标签的可见度与变换。
//
// 每个标签的可见度是基础标签窗口按自身 delay 后移后的激活值。标签没有
// 进入/退出动画状态机，只有一个逐帧的阈值门：进度未到达 Start+delay 时
// 标签不会被输出，也不计算变换。
package label

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/progress"
)

// Marker 标签定义
type Marker struct {
	Name   string
	Anchor mgl64.Vec3
	Delay  float64
	Window progress.Window
}

// State 一个已显现标签的帧状态
type State struct {
	Name       string
	Visibility float64
	Position   mgl64.Vec3
	RotationY  float64

	HaloOpacity float64
	CoreOpacity float64
	TextOpacity float64
}

// Annotator 标签计算器（构造后只读）
type Annotator struct {
	cfg     config.LabelsConfig
	markers []Marker
}

// New 创建标签计算器
//
// 参数:
//   - base: 基础标签窗口（delay 为 0 时的窗口）
//   - cfg: 标签配置
func New(base progress.Window, cfg config.LabelsConfig) *Annotator {
	markers := make([]Marker, len(cfg.Items))
	for i, item := range cfg.Items {
		markers[i] = Marker{
			Name:   item.Name,
			Anchor: item.Anchor,
			Delay:  item.Delay,
			Window: base.Delayed(item.Delay),
		}
	}
	return &Annotator{cfg: cfg, markers: markers}
}

// Markers 返回全部标签定义（只读）
func (a *Annotator) Markers() []Marker {
	return a.markers
}

// Annotate 计算当前帧已显现的标签，追加到 dst[:0]
//
// 参数:
//   - dst: 输出缓冲（复用底层数组）
//   - p: 原始进度
//   - t: 经过时间（秒）
//
// 返回:
//   - []State: 只包含 p >= Start+delay 的标签，按配置顺序
func (a *Annotator) Annotate(dst []State, p, t float64) []State {
	dst = dst[:0]
	if math.IsNaN(p) {
		return dst
	}
	if t < 0 {
		t = 0
	}
	cfg := a.cfg
	spin := math.Sin(t*cfg.SpinFreq) * cfg.SpinAmp

	for _, m := range a.markers {
		if !m.Window.Active(p) {
			continue
		}
		v := m.Window.Activation(p)
		bob := math.Sin(t*cfg.BobFreq+m.Delay*cfg.PhaseScale) * cfg.BobAmp
		pos := m.Anchor.Add(mgl64.Vec3{0, bob, 0}).Add(cfg.Drift.Mul(progress.Clamp01(p)))

		dst = append(dst, State{
			Name:        m.Name,
			Visibility:  v,
			Position:    pos,
			RotationY:   spin,
			HaloOpacity: cfg.HaloOpacity * v,
			CoreOpacity: cfg.CoreOpacity * v,
			TextOpacity: v,
		})
	}
	return dst
}
