package app

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/bottlefx/pkg/material"
	"github.com/decker502/bottlefx/pkg/scene"
)

// projector 正交投影：先绕 Y 轴旋转观察角，再丢弃 Z
type projector struct {
	rot    mgl64.Mat4
	ppu    float64 // 每个世界单位对应的像素
	cx, cy float64 // 世界原点在屏幕上的位置
}

func newProjector(yaw, ppu, cx, cy float64) projector {
	return projector{rot: mgl64.HomogRotate3DY(yaw), ppu: ppu, cx: cx, cy: cy}
}

// project 世界坐标 -> 屏幕坐标（Y 轴向下）
func (p projector) project(v mgl64.Vec3) (float32, float32) {
	r := p.rot.Mul4x1(v.Vec4(1))
	return float32(p.cx + r[0]*p.ppu), float32(p.cy - r[1]*p.ppu)
}

// worldTransforms 逐个累乘父节点矩阵，得到每个节点的世界矩阵
//
// 依赖节点列表中父节点在前的顺序。
func worldTransforms(nodes []scene.Node, dst map[string]mgl64.Mat4) map[string]mgl64.Mat4 {
	if dst == nil {
		dst = make(map[string]mgl64.Mat4, len(nodes))
	}
	for _, n := range nodes {
		local := n.Transform.Matrix()
		if parent, ok := dst[n.Parent]; ok && n.Parent != "" {
			dst[n.Name] = parent.Mul4(local)
		} else {
			dst[n.Name] = local
		}
	}
	return dst
}

// axisScale 矩阵第 col 列的长度（该轴上的缩放）
func axisScale(m mgl64.Mat4, col int) float64 {
	return m.Col(col).Vec3().Len()
}

func transformPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(1)).Vec3()
}

// nodeColor 材质颜色，透明度取节点的最终不透明度
func nodeColor(m material.Material, opacity float64) color.NRGBA {
	c := m.NRGBA(1)
	c.A = uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
	return c
}

// renderer 把场景节点画成二维线框预览
type renderer struct {
	proj    projector
	outline []mgl64.Vec2
	mats    *material.Library
	world   map[string]mgl64.Mat4
}

func (r *renderer) draw(screen *ebiten.Image, nodes []scene.Node, showProfile bool) {
	r.world = worldTransforms(nodes, r.world)
	for _, n := range nodes {
		if !n.Visible || n.Opacity <= 0 {
			continue
		}
		m := r.world[n.Name]
		var clr color.Color = color.White
		if mat, ok := r.mats.Get(n.Material); ok {
			clr = nodeColor(mat, n.Opacity)
		}

		switch n.Shape.Kind {
		case scene.ShapeLathe:
			if showProfile {
				r.drawLathe(screen, m, clr)
			}
		case scene.ShapeCylinder:
			r.drawCylinder(screen, m, n.Shape.Dims, clr)
		case scene.ShapeSphere, scene.ShapeHemisphere:
			x, y := r.proj.project(transformPoint(m, mgl64.Vec3{}))
			radius := n.Shape.Dims[0] * axisScale(m, 0) * r.proj.ppu
			if radius >= 0.5 {
				vector.DrawFilledCircle(screen, x, y, float32(radius), clr, true)
			}
		case scene.ShapeRing:
			x, y := r.proj.project(transformPoint(m, mgl64.Vec3{}))
			scale := axisScale(m, 0) * r.proj.ppu
			vector.StrokeCircle(screen, x, y, float32(n.Shape.Dims[1]*scale), 1, clr, true)
			vector.StrokeCircle(screen, x, y, float32(n.Shape.Dims[0]*scale), 1, clr, true)
		case scene.ShapeBox:
			h := n.Shape.Dims[1] / 2
			x0, y0 := r.proj.project(transformPoint(m, mgl64.Vec3{0, -h, 0}))
			x1, y1 := r.proj.project(transformPoint(m, mgl64.Vec3{0, h, 0}))
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		case scene.ShapeText:
			x, y := r.proj.project(transformPoint(m, mgl64.Vec3{}))
			ebitenutil.DebugPrintAt(screen, n.Text, int(x)-4, int(y)-8)
		}
	}
}

// drawLathe 画旋转体两侧的剖面轮廓
func (r *renderer) drawLathe(screen *ebiten.Image, m mgl64.Mat4, clr color.Color) {
	for _, side := range [2]float64{1, -1} {
		for i := 1; i < len(r.outline); i++ {
			a, b := r.outline[i-1], r.outline[i]
			x0, y0 := r.proj.project(transformPoint(m, mgl64.Vec3{a[0] * side, a[1], 0}))
			x1, y1 := r.proj.project(transformPoint(m, mgl64.Vec3{b[0] * side, b[1], 0}))
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		}
	}
}

// drawCylinder 画圆台的侧面梯形
func (r *renderer) drawCylinder(screen *ebiten.Image, m mgl64.Mat4, dims [3]float64, clr color.Color) {
	rt, rb, h := dims[0], dims[1], dims[2]/2
	corners := [4]mgl64.Vec3{{-rb, -h, 0}, {rb, -h, 0}, {rt, h, 0}, {-rt, h, 0}}
	var xs, ys [4]float32
	for i, c := range corners {
		xs[i], ys[i] = r.proj.project(transformPoint(m, c))
	}
	for i := range corners {
		j := (i + 1) % len(corners)
		vector.StrokeLine(screen, xs[i], ys[i], xs[j], ys[j], 1, clr, true)
	}
}
