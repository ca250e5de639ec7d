package spill

import (
	"math/rand"

	"github.com/decker502/bottlefx/pkg/config"
)

// Frame 溢出引擎一帧的输出
//
// 切片属于 Engine，下一次 Update 会覆盖其内容。
type Frame struct {
	Intensity       float64
	SplashIntensity float64
	Phase           Phase
	SplashPhase     Phase

	Streams  []StreamState
	Droplets []DropletState
	Mist     MistState
	Splash   SplashState
	Bubbles  []Particle
}

// Engine 溢出粒子引擎
//
// 持有各粒子池的种子（构造时生成一次）和输出缓冲。不是并发安全的：
// 粒子池只由所属 Engine 在 Update 中原地改写。
type Engine struct {
	spill  config.SpillConfig
	splash config.SplashConfig
	fizz   config.FizzConfig

	droplets    []Droplet
	splashDrops []SplashDrop
	bubbles     []Bubble

	frame Frame
}

// NewEngine 创建溢出引擎并初始化所有粒子池
//
// 参数:
//   - rng: 随机源，只在这里使用
//   - spill: 水柱/水滴/水雾配置
//   - splash: 飞溅冲击配置
//   - fizz: 环境气泡配置
func NewEngine(rng *rand.Rand, spill config.SpillConfig, splash config.SplashConfig, fizz config.FizzConfig) *Engine {
	e := &Engine{
		spill:       spill,
		splash:      splash,
		fizz:        fizz,
		droplets:    SeedDroplets(rng, spill.Droplets),
		splashDrops: SeedSplashDrops(rng, splash.Drops),
		bubbles:     SeedBubbles(rng, fizz),
	}
	e.frame.Streams = make([]StreamState, 0, len(spill.Streams))
	e.frame.Droplets = make([]DropletState, len(e.droplets))
	e.frame.Bubbles = make([]Particle, len(e.bubbles))
	return e
}

// Droplets 返回水滴池种子（只读）
func (e *Engine) Droplets() []Droplet {
	return e.droplets
}

// SplashDrops 返回飞溅水滴种子（只读）
func (e *Engine) SplashDrops() []SplashDrop {
	return e.splashDrops
}

// Bubbles 返回气泡种子（只读）
func (e *Engine) Bubbles() []Bubble {
	return e.bubbles
}

// Update 计算一帧
//
// 参数:
//   - t: 经过时间（秒）
//   - intensity: 溢出强度（spill 窗口激活值）
//   - splashIntensity: 飞溅强度（splash 窗口激活值）
//   - p: 原始进度（用于气泡活跃度）
//
// 返回:
//   - *Frame: 引擎内部缓冲，下一次 Update 前有效
func (e *Engine) Update(t, intensity, splashIntensity, p float64) *Frame {
	f := &e.frame
	f.Intensity = intensity
	f.SplashIntensity = splashIntensity
	f.Phase = PhaseOf(intensity)
	f.SplashPhase = PhaseOf(splashIntensity)

	f.Streams = UpdateStreams(f.Streams, e.spill.Streams, t, intensity)
	f.Droplets = UpdateDroplets(f.Droplets, e.droplets, e.spill.Droplets, t, intensity)
	f.Mist = UpdateMist(e.spill.Mist, intensity)
	UpdateSplash(&f.Splash, e.splashDrops, e.splash, t, splashIntensity)
	f.Bubbles = UpdateBubbles(f.Bubbles, e.bubbles, e.fizz, t, p)
	return f
}
