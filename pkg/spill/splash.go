package spill

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
)

// SplashDrop 飞溅环上一个大水滴的种子参数
type SplashDrop struct {
	Angle   float64
	Radius  float64
	Size    float64
	ZOffset float64
}

// SeedSplashDrops 初始化飞溅水滴：角度均匀分布，半径/尺寸/深度随机
func SeedSplashDrops(rng *rand.Rand, cfg config.SplashDropConfig) []SplashDrop {
	drops := make([]SplashDrop, cfg.Count)
	for i := range drops {
		drops[i] = SplashDrop{
			Angle:   float64(i) / float64(cfg.Count) * 2 * math.Pi,
			Radius:  randomInRange(rng, cfg.Radius),
			Size:    randomInRange(rng, cfg.Size),
			ZOffset: randomInRange(rng, cfg.ZOffset),
		}
	}
	return drops
}

// Particle 局部坐标下的一个粒子（飞溅水滴、屏幕水珠）
type Particle struct {
	Position mgl64.Vec3
	Scale    float64
	Opacity  float64
}

// RingState 冲击圆环
type RingState struct {
	Inner    float64
	Outer    float64
	Scale    float64
	Opacity  float64
	Material string
}

// SplashState 飞溅冲击的帧状态
//
// Drops 位于以 Center 为原点、绕 Z 轴摆动 SwayZ 的组内；
// Rings 与 Screen 位于以 ImpactAt 为原点的组内。
type SplashState struct {
	Visible  bool
	Center   mgl64.Vec3
	SwayZ    float64
	ImpactAt mgl64.Vec3
	Drops    []Particle
	Rings    []RingState
	Screen   []Particle
}

// UpdateSplash 计算飞溅冲击状态，复用 dst 中的切片
//
// 参数:
//   - dst: 上一帧的状态（切片会被复用）
//   - drops: SeedSplashDrops 生成的种子
//   - cfg: 飞溅配置
//   - t: 经过时间（秒）
//   - s: 飞溅强度
func UpdateSplash(dst *SplashState, drops []SplashDrop, cfg config.SplashConfig, t, s float64) {
	dst.Center = cfg.Drops.Center
	dst.ImpactAt = cfg.ImpactAt
	dst.Drops = dst.Drops[:0]
	dst.Rings = dst.Rings[:0]
	dst.Screen = dst.Screen[:0]
	dst.SwayZ = 0
	dst.Visible = PhaseOf(s) == Active
	if !dst.Visible {
		return
	}

	t = clampTime(t)
	dst.SwayZ = math.Sin(t*cfg.SwayFreq) * cfg.SwayAmp

	dc := cfg.Drops
	for _, d := range drops {
		sin, cos := math.Sincos(d.Angle)
		dst.Drops = append(dst.Drops, Particle{
			Position: mgl64.Vec3{
				cos * d.Radius * s,
				sin * d.Radius * s * dc.Squash,
				d.ZOffset * s * dc.DepthFactor,
			},
			Scale:   d.Size * s,
			Opacity: 1,
		})
	}

	for _, r := range cfg.Rings {
		dst.Rings = append(dst.Rings, RingState{
			Inner:    r.Inner,
			Outer:    r.Outer,
			Scale:    s * r.ScaleFactor,
			Opacity:  r.Opacity * s,
			Material: r.Material,
		})
	}

	sd := cfg.ScreenDrops
	for i := 0; i < sd.Count; i++ {
		angle := float64(i) / float64(sd.Count) * 2 * math.Pi
		dist := sd.BaseDist + float64(i%sd.DistCycle)*sd.DistStep
		sin, cos := math.Sincos(angle)
		dst.Screen = append(dst.Screen, Particle{
			Position: mgl64.Vec3{cos * dist * s, sin * dist * s * sd.Squash, sd.Z},
			Scale:    sd.BaseScale + float64(i%sd.ScaleCycle)*sd.ScaleStep,
			Opacity:  sd.Opacity * s,
		})
	}
}
