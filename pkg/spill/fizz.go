package spill

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/progress"
)

// Bubble 环境气泡的种子参数
type Bubble struct {
	Start  mgl64.Vec3
	Speed  float64
	Offset float64
	Size   float64
}

// SeedBubbles 在以 (0, CenterY, 0) 为中心、HalfExtent 为半边长的盒子里撒气泡
func SeedBubbles(rng *rand.Rand, cfg config.FizzConfig) []Bubble {
	bubbles := make([]Bubble, cfg.Count)
	he := cfg.HalfExtent
	for i := range bubbles {
		bubbles[i] = Bubble{
			Start: mgl64.Vec3{
				(rng.Float64()*2 - 1) * he[0],
				cfg.CenterY + (rng.Float64()*2-1)*he[1],
				(rng.Float64()*2 - 1) * he[2],
			},
			Speed:  randomInRange(rng, cfg.Speed),
			Offset: rng.Float64() * 2 * math.Pi,
			Size:   randomInRange(rng, cfg.Size),
		}
	}
	return bubbles
}

// UpdateBubbles 原地计算所有气泡的帧状态
//
// 气泡在 [Floor, Floor+Span) 内循环上升并左右晃动，进度越大晃动越剧烈、
// 气泡越大。与溢出强度无关，始终可见。
func UpdateBubbles(dst []Particle, bubbles []Bubble, cfg config.FizzConfig, t, p float64) []Particle {
	if cap(dst) < len(bubbles) {
		dst = make([]Particle, len(bubbles))
	}
	dst = dst[:len(bubbles)]

	t = clampTime(t)
	p = progress.Clamp01(p)
	activity := 1 + p*cfg.ActivityGain
	grow := 1 + p*cfg.ScaleGain

	for i, b := range bubbles {
		y := cycle(b.Start[1]+t*b.Speed, cfg.Span) + cfg.Floor
		wx := math.Sin(t*cfg.WobbleFreqX+b.Offset) * cfg.WobbleAmp
		wz := math.Cos(t*cfg.WobbleFreqZ+b.Offset) * cfg.WobbleAmp
		dst[i] = Particle{
			Position: mgl64.Vec3{
				b.Start[0] + wx*activity,
				y * activity,
				b.Start[2] + wz*activity,
			},
			Scale:   b.Size * grow,
			Opacity: 1,
		}
	}
	return dst
}
