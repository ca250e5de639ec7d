package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
)

func mustBuild(t *testing.T, cfg config.ProfileConfig) *Profile {
	t.Helper()
	p, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	return p
}

// TestBuild_Default 默认剖面可以构建，采样高度严格递增
func TestBuild_Default(t *testing.T) {
	cfg := config.DefaultProfileConfig()
	p := mustBuild(t, cfg)

	pts := p.Points()
	if len(pts) < 100 {
		t.Fatalf("sampled points = %d, want >= 100", len(pts))
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Height <= pts[i-1].Height {
			t.Fatalf("height not strictly increasing at %d: %v -> %v", i, pts[i-1].Height, pts[i].Height)
		}
	}

	b := p.Bounds()
	if b.MinHeight != 0 || math.Abs(b.MaxHeight-3.44) > 1e-12 {
		t.Errorf("Bounds heights = [%v, %v], want [0, 3.44]", b.MinHeight, b.MaxHeight)
	}
	if b.MaxRadius < 0.36 || b.MaxRadius > 0.40 {
		t.Errorf("MaxRadius = %v, want within body radius range", b.MaxRadius)
	}
	if got := len(p.Segments()); got != len(cfg.Segments) {
		t.Errorf("Segments() len = %d, want %d", got, len(cfg.Segments))
	}
}

// TestBuild_Sampling 直线贡献 1 个点，二次曲线贡献 CurveDivisions 个点
func TestBuild_Sampling(t *testing.T) {
	cfg := config.ProfileConfig{
		Start: mgl64.Vec2{1, 0},
		Segments: []config.SegmentConfig{
			{Kind: "line", To: mgl64.Vec2{1, 1}},
			{Kind: "quad", Control: mgl64.Vec2{2, 1.5}, To: mgl64.Vec2{1, 2}},
		},
		CurveDivisions: 10,
		RadialSegments: 8,
	}
	p := mustBuild(t, cfg)
	pts := p.Points()
	if len(pts) != 1+1+10 {
		t.Fatalf("points = %d, want 12", len(pts))
	}
	mid := pts[1+5]
	// B(0.5) = 0.25*P0 + 0.5*C + 0.25*P1
	if math.Abs(mid.Radius-1.5) > 1e-12 || math.Abs(mid.Height-1.5) > 1e-12 {
		t.Errorf("quad midpoint = %+v, want (1.5, 1.5)", mid)
	}
	last := pts[len(pts)-1]
	if last.Radius != 1 || last.Height != 2 {
		t.Errorf("last point = %+v, want segment end", last)
	}
}

// TestBuild_Invalid 畸形剖面在构建时直接拒绝
func TestBuild_Invalid(t *testing.T) {
	base := func() config.ProfileConfig {
		return config.ProfileConfig{
			Start: mgl64.Vec2{0.3, 0},
			Segments: []config.SegmentConfig{
				{Kind: "line", To: mgl64.Vec2{0.3, 1}},
				{Kind: "quad", Control: mgl64.Vec2{0.4, 1.5}, To: mgl64.Vec2{0.2, 2}},
			},
			CurveDivisions: 20,
			RadialSegments: 16,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *config.ProfileConfig)
	}{
		{"没有控制段", func(c *config.ProfileConfig) { c.Segments = nil }},
		{"高度不递增", func(c *config.ProfileConfig) { c.Segments[1].To = mgl64.Vec2{0.2, 0.5} }},
		{"零长段", func(c *config.ProfileConfig) { c.Segments[0].To = mgl64.Vec2{0.3, 0} }},
		{"水平段", func(c *config.ProfileConfig) { c.Segments[0].To = mgl64.Vec2{0.5, 0} }},
		{"负半径", func(c *config.ProfileConfig) { c.Segments[0].To = mgl64.Vec2{-0.1, 1} }},
		{"起点半径为零", func(c *config.ProfileConfig) { c.Start = mgl64.Vec2{0, 0} }},
		{"控制点高度越界", func(c *config.ProfileConfig) { c.Segments[1].Control = mgl64.Vec2{0.4, 2.5} }},
		{"控制点 NaN", func(c *config.ProfileConfig) { c.Segments[1].Control = mgl64.Vec2{math.NaN(), 1.5} }},
		{"未知段类型", func(c *config.ProfileConfig) { c.Segments[0].Kind = "arc" }},
		{"采样精度为零", func(c *config.ProfileConfig) { c.CurveDivisions = 0 }},
		{"角向细分过少", func(c *config.ProfileConfig) { c.RadialSegments = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			p, err := Build(cfg)
			if !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("Build() error = %v, want ErrInvalidProfile", err)
			}
			if p != nil {
				t.Error("Build() returned a profile alongside an error")
			}
		})
	}
}

// TestMesh_Closed 封底封顶后每条边恰好被两个三角形共享
func TestMesh_Closed(t *testing.T) {
	cfg := config.DefaultProfileConfig()
	cfg.CurveDivisions = 12
	cfg.RadialSegments = 24
	m := mustBuild(t, cfg).Mesh()

	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Positions) != len(m.Normals) {
		t.Fatalf("positions %d != normals %d", len(m.Positions), len(m.Normals))
	}

	type edge struct{ a, b uint32 }
	count := make(map[edge]int)
	for i := 0; i < len(m.Indices); i += 3 {
		tri := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			t.Fatalf("degenerate triangle %v", tri)
		}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			count[edge{a, b}]++
		}
	}
	for e, n := range count {
		if n != 2 {
			t.Fatalf("edge %v shared by %d triangles, want 2", e, n)
		}
	}

	wantTris := (m.Rings-1)*m.RadialSegments*2 + 2*m.RadialSegments
	if m.TriangleCount() != wantTris {
		t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), wantTris)
	}
}

// TestMesh_OpenEnds 不封口时上下两圈边各只属于一个三角形
func TestMesh_OpenEnds(t *testing.T) {
	cfg := config.DefaultProfileConfig()
	cfg.CurveDivisions = 4
	cfg.RadialSegments = 8
	cfg.CloseBottom = false
	cfg.CloseTop = false
	m := mustBuild(t, cfg).Mesh()

	if len(m.Positions) != m.Rings*m.RadialSegments {
		t.Errorf("positions = %d, want %d", len(m.Positions), m.Rings*m.RadialSegments)
	}
	if m.TriangleCount() != (m.Rings-1)*m.RadialSegments*2 {
		t.Errorf("TriangleCount = %d", m.TriangleCount())
	}
}

// TestMesh_Winding 侧面三角形法向朝外
func TestMesh_Winding(t *testing.T) {
	cfg := config.ProfileConfig{
		Start:          mgl64.Vec2{1, 0},
		Segments:       []config.SegmentConfig{{Kind: "line", To: mgl64.Vec2{1, 1}}},
		CurveDivisions: 1,
		RadialSegments: 12,
		CloseBottom:    true,
		CloseTop:       true,
	}
	m := mustBuild(t, cfg).Mesh()

	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Positions[m.Indices[i]]
		b := m.Positions[m.Indices[i+1]]
		c := m.Positions[m.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		// 质心相对圆柱中心（0, 0.5, 0）的方向应与面法向同侧
		out := centroid.Sub(mgl64.Vec3{0, 0.5, 0})
		if n.Dot(out) <= 0 {
			t.Fatalf("triangle %d faces inward: normal %v centroid %v", i/3, n, centroid)
		}
	}

	// 直壁圆柱侧面法线为纯径向
	nrm := m.Normals[3]
	pos := m.Positions[3]
	radial := mgl64.Vec3{pos[0], 0, pos[2]}.Normalize()
	if !nrm.ApproxEqualThreshold(radial, 1e-9) {
		t.Errorf("side normal = %v, want %v", nrm, radial)
	}
}

// TestRadiusAt 在采样折线上插值
func TestRadiusAt(t *testing.T) {
	cfg := config.ProfileConfig{
		Start: mgl64.Vec2{1, 0},
		Segments: []config.SegmentConfig{
			{Kind: "line", To: mgl64.Vec2{2, 1}},
			{Kind: "line", To: mgl64.Vec2{2, 3}},
		},
		CurveDivisions: 1,
		RadialSegments: 3,
	}
	p := mustBuild(t, cfg)

	tests := []struct {
		h    float64
		want float64
	}{
		{-1, 1},
		{0, 1},
		{0.5, 1.5},
		{1, 2},
		{2, 2},
		{9, 2},
	}
	for _, tt := range tests {
		if got := p.RadiusAt(tt.h); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("RadiusAt(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}

	outline := p.Outline()
	if len(outline) != 3 || outline[1] != (mgl64.Vec2{2, 1}) {
		t.Errorf("Outline() = %v", outline)
	}
}
