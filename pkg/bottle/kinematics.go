// Package bottle 根据激活值计算瓶盖与水位的运动学状态。
//
// 所有公式都是闭式的：输入激活值先截断到 [0,1]，因此进度越界不会让瓶盖转过
// 或抬过配置的最大值，顶部水段也不会缩到下限以下。
package bottle

import (
	"math"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/progress"
)

// CapState 瓶盖状态
type CapState struct {
	// Rotation 绕 Y 轴的累计旋转（弧度），随激活值单调不减
	Rotation float64
	// Lift 相对拧紧位置的抬升高度，>= 0
	Lift float64
	// Y 瓶盖节点的高度（CapBaseHeight + Lift）
	Y float64
}

// State 一帧的瓶体状态
type State struct {
	Cap CapState
	// WaterDrop 当前水位下降量
	WaterDrop float64
	// TopScale 顶部水段的竖直缩放，范围 [FloorScale, 1]
	TopScale float64
	// GroupY 水体组的竖直偏移
	GroupY float64
	// SurfaceY 水面标记高度
	SurfaceY float64
}

// IdleMotion 与进度无关的待机浮动
type IdleMotion struct {
	OffsetY   float64
	RotationY float64
}

// Kinematics 瓶体运动学计算器（只读配置，无状态）
type Kinematics struct {
	cfg config.BottleConfig
}

// New 创建运动学计算器
func New(cfg config.BottleConfig) *Kinematics {
	return &Kinematics{cfg: cfg}
}

// Config 返回构造时的配置
func (k *Kinematics) Config() config.BottleConfig {
	return k.cfg
}

// Compute 根据瓶盖激活值与水位激活值计算瓶体状态
//
// 参数:
//   - aCap: 拧盖窗口的激活值
//   - aDrop: 水位下降窗口的激活值
//
// 返回:
//   - State: 瓶盖旋转/抬升、水位下降、顶部水段缩放、水面高度
func (k *Kinematics) Compute(aCap, aDrop float64) State {
	aCap = progress.Clamp01(aCap)
	aDrop = progress.Clamp01(aDrop)

	lift := aCap * k.cfg.MaxLift
	drop := aDrop * k.cfg.MaxDrop

	return State{
		Cap: CapState{
			Rotation: aCap * k.cfg.TwistTurns * 2 * math.Pi,
			Lift:     lift,
			Y:        k.cfg.CapBaseHeight + lift,
		},
		WaterDrop: drop,
		TopScale:  math.Max(k.cfg.FloorScale, 1-drop*k.cfg.DropToScale),
		GroupY:    k.cfg.WaterBaseY - drop*k.cfg.GroupDropFactor,
		SurfaceY:  k.cfg.SurfaceHeight - drop*k.cfg.SurfaceDropFactor,
	}
}

// FillScales 将每个水段的竖直缩放写入 dst（复用底层数组）
//
// 只有最后一段（顶部）随水位缩放，其余保持 1。
func (k *Kinematics) FillScales(dst []float64, s State) []float64 {
	dst = dst[:0]
	n := len(k.cfg.FillSegments)
	for i := 0; i < n; i++ {
		if i == n-1 {
			dst = append(dst, s.TopScale)
			continue
		}
		dst = append(dst, 1)
	}
	return dst
}

// Idle 计算时间驱动的上下浮动与左右摆动
func (k *Kinematics) Idle(t float64) IdleMotion {
	idle := k.cfg.Idle
	return IdleMotion{
		OffsetY:   idle.BaseY + math.Sin(t*idle.BobFreq)*idle.BobAmp,
		RotationY: math.Sin(t*idle.SwayFreq) * idle.SwayAmp,
	}
}
