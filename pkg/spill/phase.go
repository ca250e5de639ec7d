// Package spill 计算溢出效果的粒子变换：连续水柱、飞向镜头的水滴池、水雾、
// 飞溅冲击以及环境气泡。
//
// 随机性只出现在 Seed* 初始化函数中，逐帧更新是对种子数组的纯映射：
// 位置总是由 (原点, 速度, 相位, 时间, 强度) 直接算出，从不增量积分，
// 因此来回拖动进度不会累积误差。
package spill

import (
	"math"
	"math/rand"

	"github.com/decker502/bottlefx/pkg/config"
)

// Phase 效果状态
type Phase int

const (
	// Idle 强度 <= 0，不渲染
	Idle Phase = iota
	// Active 强度 > 0
	Active
)

// PhaseOf 根据强度返回效果状态（可逆，没有终止态）
func PhaseOf(intensity float64) Phase {
	if intensity > 0 {
		return Active
	}
	return Idle
}

// String 返回状态名
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// randomInRange 返回 [r.Min, r.Max) 内的随机数，区间退化时返回 Min
func randomInRange(rng *rand.Rand, r config.Range) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// cycle 循环时间 mod(t, period)，结果在 [0, period)
func cycle(t, period float64) float64 {
	m := math.Mod(t, period)
	if m < 0 {
		m += period
	}
	return m
}

// clampTime 负的经过时间按 0 处理
func clampTime(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	return t
}
