package spill

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
)

// StreamState 一条水柱的帧状态
//
// 水柱是单位高度的锥台，Scale.Y 为长度，Scale.Z 为时间驱动的伸缩。
type StreamState struct {
	Name         string
	Position     mgl64.Vec3
	Rotation     mgl64.Vec3
	Scale        mgl64.Vec3
	RadiusTop    float64
	RadiusBottom float64
	Opacity      float64
	Material     string
	Visible      bool
}

// UpdateStreams 计算所有水柱的状态，写入 dst（复用底层数组）
//
// 参数:
//   - dst: 输出缓冲
//   - streams: 水柱配置
//   - t: 经过时间（秒），负值按 0 处理
//   - intensity: 溢出强度
func UpdateStreams(dst []StreamState, streams []config.StreamConfig, t, intensity float64) []StreamState {
	dst = dst[:0]
	t = clampTime(t)
	visible := PhaseOf(intensity) == Active
	for _, sc := range streams {
		st := StreamState{
			Name:         sc.Name,
			RadiusTop:    sc.RadiusTop,
			RadiusBottom: sc.RadiusBottom,
			Material:     sc.Material,
			Visible:      visible,
		}
		if !visible {
			dst = append(dst, st)
			continue
		}

		tilt := sc.TiltX
		stretch := 1.0
		if sc.Wobble {
			tilt -= math.Sin(t*sc.WobbleFreq) * sc.WobbleAmp
			stretch += math.Sin(t*sc.StretchFreq) * sc.StretchAmp
		}
		st.Position = sc.Base.Add(mgl64.Vec3{0, 0, sc.ZPerIntensity * intensity})
		st.Rotation = mgl64.Vec3{tilt, sc.Yaw, 0}
		st.Scale = mgl64.Vec3{1, sc.LengthPerIntensity * intensity, stretch}
		st.Opacity = sc.OpacityPerIntensity * intensity
		dst = append(dst, st)
	}
	return dst
}

// MistState 水雾的帧状态
type MistState struct {
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Radius   float64
	Opacity  float64
	Material string
	Visible  bool
}

// UpdateMist 计算水雾状态：随强度前移、放大、变浓
func UpdateMist(cfg config.MistConfig, intensity float64) MistState {
	m := MistState{Radius: cfg.Radius, Material: cfg.Material}
	if PhaseOf(intensity) != Active {
		return m
	}
	m.Visible = true
	m.Position = cfg.Base.Add(mgl64.Vec3{0, 0, cfg.ZPerIntensity * intensity})
	m.Scale = cfg.ScalePerIntensity.Mul(intensity)
	m.Opacity = cfg.OpacityPerIntensity * intensity
	return m
}
