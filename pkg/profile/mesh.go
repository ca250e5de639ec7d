package profile

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh 旋转网格（索引三角形）
//
// 顶点布局：剖面第 j 个采样点、第 i 个角向分段的顶点索引为 j*RadialSegments+i，
// 接缝处共享顶点；封底/封顶各追加一个中心顶点。三角形从外侧看为逆时针。
type Mesh struct {
	Positions      []mgl64.Vec3
	Normals        []mgl64.Vec3
	Indices        []uint32
	Rings          int
	RadialSegments int
}

// TriangleCount 三角形数量
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// revolve 将采样点绕 Y 轴旋转一周
func revolve(points []Point, segments int, closeBottom, closeTop bool) *Mesh {
	rings := len(points)
	m := &Mesh{
		Positions:      make([]mgl64.Vec3, 0, rings*segments+2),
		Normals:        make([]mgl64.Vec3, 0, rings*segments+2),
		Indices:        make([]uint32, 0, (rings-1)*segments*6+segments*6),
		Rings:          rings,
		RadialSegments: segments,
	}

	sin := make([]float64, segments)
	cos := make([]float64, segments)
	for i := 0; i < segments; i++ {
		phi := float64(i) / float64(segments) * 2 * math.Pi
		sin[i], cos[i] = math.Sincos(phi)
	}

	for j, pt := range points {
		nr, nh := profileNormal(points, j)
		for i := 0; i < segments; i++ {
			m.Positions = append(m.Positions, mgl64.Vec3{pt.Radius * sin[i], pt.Height, pt.Radius * cos[i]})
			m.Normals = append(m.Normals, mgl64.Vec3{nr * sin[i], nh, nr * cos[i]})
		}
	}

	idx := func(j, i int) uint32 {
		return uint32(j*segments + i%segments)
	}
	for j := 0; j < rings-1; j++ {
		for i := 0; i < segments; i++ {
			a, b := idx(j, i), idx(j, i+1)
			c, d := idx(j+1, i+1), idx(j+1, i)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}

	if closeBottom {
		center := uint32(len(m.Positions))
		m.Positions = append(m.Positions, mgl64.Vec3{0, points[0].Height, 0})
		m.Normals = append(m.Normals, mgl64.Vec3{0, -1, 0})
		for i := 0; i < segments; i++ {
			m.Indices = append(m.Indices, center, idx(0, i+1), idx(0, i))
		}
	}
	if closeTop {
		top := rings - 1
		center := uint32(len(m.Positions))
		m.Positions = append(m.Positions, mgl64.Vec3{0, points[top].Height, 0})
		m.Normals = append(m.Normals, mgl64.Vec3{0, 1, 0})
		for i := 0; i < segments; i++ {
			m.Indices = append(m.Indices, center, idx(top, i), idx(top, i+1))
		}
	}
	return m
}

// profileNormal 采样点 j 处剖面的外法线 (径向分量, 竖直分量)，切线取相邻两点的中心差分
func profileNormal(points []Point, j int) (float64, float64) {
	prev, next := j-1, j+1
	if prev < 0 {
		prev = 0
	}
	if next >= len(points) {
		next = len(points) - 1
	}
	dr := points[next].Radius - points[prev].Radius
	dh := points[next].Height - points[prev].Height
	l := math.Hypot(dr, dh)
	if l == 0 {
		return 1, 0
	}
	return dh / l, -dr / l
}
