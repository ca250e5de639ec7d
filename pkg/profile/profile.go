// Package profile 生成瓶身的旋转剖面与网格。
//
// 剖面是一条 (半径, 高度) 折线/二次曲线组成的路径，从瓶底外沿走到瓶口，
// 采样后绕 Y 轴旋转得到闭合网格。剖面与滚动进度无关，场景构造时生成一次后缓存。
package profile

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
)

// ErrInvalidProfile 剖面配置非法（高度不递增、零长段、负半径等）
var ErrInvalidProfile = errors.New("invalid profile")

// SegmentKind 控制段类型
type SegmentKind string

const (
	KindLine SegmentKind = "line"
	KindQuad SegmentKind = "quad"
)

// Point 剖面上的点
type Point struct {
	Radius float64
	Height float64
}

// Segment 控制段：从上一段终点到 To，Quad 带一个控制点
type Segment struct {
	Kind    SegmentKind
	Control Point
	To      Point
}

// Profile 不可变的旋转剖面
type Profile struct {
	start          Point
	segments       []Segment
	points         []Point
	curveDivisions int
	mesh           *Mesh
}

// Bounds 剖面包围范围
type Bounds struct {
	MinHeight float64
	MaxHeight float64
	MaxRadius float64
}

// Build 根据配置构建剖面并生成旋转网格
//
// 任何几何问题都在这里直接拒绝，不会生成退化网格。
//
// 参数:
//   - cfg: 剖面配置（起点、控制段、采样精度、角向细分）
//
// 返回:
//   - *Profile: 构建完成的剖面（含网格）
//   - error: 配置非法时返回包装了 ErrInvalidProfile 的错误
func Build(cfg config.ProfileConfig) (*Profile, error) {
	if cfg.CurveDivisions < 1 {
		return nil, fmt.Errorf("%w: curveDivisions must be >= 1, got %d", ErrInvalidProfile, cfg.CurveDivisions)
	}
	if cfg.RadialSegments < 3 {
		return nil, fmt.Errorf("%w: radialSegments must be >= 3, got %d", ErrInvalidProfile, cfg.RadialSegments)
	}
	if len(cfg.Segments) == 0 {
		return nil, fmt.Errorf("%w: no segments", ErrInvalidProfile)
	}

	start := Point{Radius: cfg.Start[0], Height: cfg.Start[1]}
	if err := checkWallPoint(start); err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidProfile, err)
	}

	segments := make([]Segment, 0, len(cfg.Segments))
	from := start
	for i, sc := range cfg.Segments {
		seg := Segment{
			Kind:    SegmentKind(sc.Kind),
			Control: Point{Radius: sc.Control[0], Height: sc.Control[1]},
			To:      Point{Radius: sc.To[0], Height: sc.To[1]},
		}
		if err := checkSegment(from, seg); err != nil {
			return nil, fmt.Errorf("%w: segment %d: %v", ErrInvalidProfile, i, err)
		}
		segments = append(segments, seg)
		from = seg.To
	}

	p := &Profile{
		start:          start,
		segments:       segments,
		curveDivisions: cfg.CurveDivisions,
	}
	p.points = p.sample()

	for i := 1; i < len(p.points); i++ {
		if !(p.points[i].Height > p.points[i-1].Height) {
			return nil, fmt.Errorf("%w: sampled heights not increasing at point %d", ErrInvalidProfile, i)
		}
	}

	p.mesh = revolve(p.points, cfg.RadialSegments, cfg.CloseBottom, cfg.CloseTop)
	return p, nil
}

func checkWallPoint(pt Point) error {
	if !finite(pt.Radius) || !finite(pt.Height) {
		return fmt.Errorf("non-finite point (%v, %v)", pt.Radius, pt.Height)
	}
	if pt.Radius <= 0 {
		return fmt.Errorf("wall radius must be > 0, got %v", pt.Radius)
	}
	return nil
}

func checkSegment(from Point, seg Segment) error {
	if err := checkWallPoint(seg.To); err != nil {
		return err
	}
	if !(seg.To.Height > from.Height) {
		return fmt.Errorf("height must strictly increase (%.4f -> %.4f)", from.Height, seg.To.Height)
	}
	switch seg.Kind {
	case KindLine:
	case KindQuad:
		c := seg.Control
		if !finite(c.Radius) || !finite(c.Height) || c.Radius < 0 {
			return fmt.Errorf("invalid control point (%v, %v)", c.Radius, c.Height)
		}
		if c.Height < from.Height || c.Height > seg.To.Height {
			return fmt.Errorf("control height %.4f outside [%.4f, %.4f]", c.Height, from.Height, seg.To.Height)
		}
	default:
		return fmt.Errorf("unknown segment kind %q", seg.Kind)
	}
	return nil
}

// sample 按固定精度采样：直线只取终点，二次曲线取 curveDivisions 个等参数点
func (p *Profile) sample() []Point {
	points := make([]Point, 0, len(p.segments)*p.curveDivisions+1)
	points = append(points, p.start)
	from := p.start
	for _, seg := range p.segments {
		switch seg.Kind {
		case KindLine:
			points = appendDistinct(points, seg.To)
		case KindQuad:
			for k := 1; k <= p.curveDivisions; k++ {
				t := float64(k) / float64(p.curveDivisions)
				points = appendDistinct(points, quadAt(from, seg.Control, seg.To, t))
			}
		}
		from = seg.To
	}
	return points
}

func appendDistinct(points []Point, pt Point) []Point {
	last := points[len(points)-1]
	if math.Abs(last.Radius-pt.Radius) < 1e-12 && math.Abs(last.Height-pt.Height) < 1e-12 {
		return points
	}
	return append(points, pt)
}

// quadAt 二次贝塞尔：(1-t)²P0 + 2(1-t)tC + t²P1
func quadAt(p0, c, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		Radius: u*u*p0.Radius + 2*u*t*c.Radius + t*t*p1.Radius,
		Height: u*u*p0.Height + 2*u*t*c.Height + t*t*p1.Height,
	}
}

// Points 返回采样点（副本）
func (p *Profile) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// Segments 返回控制段（副本）
func (p *Profile) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Mesh 返回缓存的旋转网格
func (p *Profile) Mesh() *Mesh {
	return p.mesh
}

// Bounds 返回剖面的高度范围与最大半径
func (p *Profile) Bounds() Bounds {
	b := Bounds{
		MinHeight: p.points[0].Height,
		MaxHeight: p.points[len(p.points)-1].Height,
	}
	for _, pt := range p.points {
		b.MaxRadius = math.Max(b.MaxRadius, pt.Radius)
	}
	return b
}

// RadiusAt 在采样折线上插值求高度 h 处的半径，超出范围取端点半径
func (p *Profile) RadiusAt(h float64) float64 {
	pts := p.points
	if h <= pts[0].Height {
		return pts[0].Radius
	}
	if h >= pts[len(pts)-1].Height {
		return pts[len(pts)-1].Radius
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].Height >= h })
	a, b := pts[i-1], pts[i]
	t := (h - a.Height) / (b.Height - a.Height)
	return a.Radius + (b.Radius-a.Radius)*t
}

// Outline 返回 φ=0 截面上的 (x=半径, y=高度) 点，供二维预览使用
func (p *Profile) Outline() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(p.points))
	for i, pt := range p.points {
		out[i] = mgl64.Vec2{pt.Radius, pt.Height}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
