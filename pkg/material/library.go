// Package material 将声明式材质配置解析为渲染器可用的着色参数。
package material

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/bottlefx/pkg/config"
)

// ErrInvalidMaterial 材质参数非法（颜色格式错误或系数越界）
var ErrInvalidMaterial = errors.New("invalid material")

// Material 解析后的材质
type Material struct {
	Name     string
	Color    colorful.Color
	Emissive colorful.Color
	// HasEmissive 配置中是否声明了自发光颜色
	HasEmissive bool

	Opacity           float64
	Metalness         float64
	Roughness         float64
	Transmission      float64
	Thickness         float64
	IOR               float64
	Clearcoat         float64
	EnvMapIntensity   float64
	EmissiveIntensity float64

	Transparent bool
	Additive    bool
	DoubleSided bool
	BackSide    bool
}

// NRGBA 返回乘以额外透明度后的非预乘颜色
//
// 自发光材质按 EmissiveIntensity 向自发光颜色混合，供二维预览近似着色。
func (m Material) NRGBA(opacity float64) color.NRGBA {
	c := m.Color
	if m.HasEmissive && m.EmissiveIntensity > 0 {
		c = c.BlendRgb(m.Emissive, math.Min(1, m.EmissiveIntensity*0.5)).Clamped()
	}
	r, g, b := c.RGB255()
	a := clamp01(m.Opacity * opacity)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

// Library 材质库（构造后只读）
type Library struct {
	materials map[string]Material
}

// NewLibrary 解析并校验全部材质
//
// 参数:
//   - cfgs: 材质名到配置的映射
//
// 返回:
//   - *Library: 材质库
//   - error: 任一材质非法时返回包装了 ErrInvalidMaterial 的错误（按名称顺序报告第一个）
func NewLibrary(cfgs map[string]config.MaterialConfig) (*Library, error) {
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		names = append(names, name)
	}
	sort.Strings(names)

	lib := &Library{materials: make(map[string]Material, len(cfgs))}
	for _, name := range names {
		m, err := parse(name, cfgs[name])
		if err != nil {
			return nil, err
		}
		lib.materials[name] = m
	}
	return lib, nil
}

func parse(name string, mc config.MaterialConfig) (Material, error) {
	c, err := colorful.Hex(mc.Color)
	if err != nil {
		return Material{}, fmt.Errorf("%w: %s: color %q: %v", ErrInvalidMaterial, name, mc.Color, err)
	}
	m := Material{
		Name:              name,
		Color:             c,
		Opacity:           mc.Opacity,
		Metalness:         mc.Metalness,
		Roughness:         mc.Roughness,
		Transmission:      mc.Transmission,
		Thickness:         mc.Thickness,
		IOR:               mc.IOR,
		Clearcoat:         mc.Clearcoat,
		EnvMapIntensity:   mc.EnvMapIntensity,
		EmissiveIntensity: mc.EmissiveIntensity,
		Transparent:       mc.Transparent,
		Additive:          mc.Additive,
		DoubleSided:       mc.DoubleSided,
		BackSide:          mc.BackSide,
	}
	if mc.Emissive != "" {
		e, err := colorful.Hex(mc.Emissive)
		if err != nil {
			return Material{}, fmt.Errorf("%w: %s: emissive %q: %v", ErrInvalidMaterial, name, mc.Emissive, err)
		}
		m.Emissive = e
		m.HasEmissive = true
	}

	unit := []struct {
		field string
		v     float64
	}{
		{"opacity", m.Opacity},
		{"metalness", m.Metalness},
		{"roughness", m.Roughness},
		{"transmission", m.Transmission},
		{"clearcoat", m.Clearcoat},
	}
	for _, u := range unit {
		if !(u.v >= 0 && u.v <= 1) {
			return Material{}, fmt.Errorf("%w: %s: %s must be in [0, 1], got %v", ErrInvalidMaterial, name, u.field, u.v)
		}
	}
	nonNeg := []struct {
		field string
		v     float64
	}{
		{"thickness", m.Thickness},
		{"envMapIntensity", m.EnvMapIntensity},
		{"emissiveIntensity", m.EmissiveIntensity},
	}
	for _, u := range nonNeg {
		if !(u.v >= 0) || math.IsInf(u.v, 0) {
			return Material{}, fmt.Errorf("%w: %s: %s must be >= 0, got %v", ErrInvalidMaterial, name, u.field, u.v)
		}
	}
	if m.IOR != 0 && !(m.IOR >= 1) {
		return Material{}, fmt.Errorf("%w: %s: ior must be >= 1, got %v", ErrInvalidMaterial, name, m.IOR)
	}
	return m, nil
}

// Get 按名称查找材质
func (l *Library) Get(name string) (Material, bool) {
	m, ok := l.materials[name]
	return m, ok
}

// Names 返回所有材质名（排序）
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 材质数量
func (l *Library) Len() int {
	return len(l.materials)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
