package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind 节点几何图元
type ShapeKind string

const (
	// ShapeGroup 只有变换的分组节点
	ShapeGroup ShapeKind = "group"
	// ShapeLathe 旋转剖面网格（Scene.Profile().Mesh()）
	ShapeLathe ShapeKind = "lathe"
	// ShapeCylinder Dims = {radiusTop, radiusBottom, height}
	ShapeCylinder ShapeKind = "cylinder"
	// ShapeSphere Dims = {radius}
	ShapeSphere ShapeKind = "sphere"
	// ShapeHemisphere 上半球，Dims = {radius}
	ShapeHemisphere ShapeKind = "hemisphere"
	// ShapeRing 平面圆环，Dims = {inner, outer}
	ShapeRing ShapeKind = "ring"
	// ShapeBox Dims = {width, height, depth}
	ShapeBox ShapeKind = "box"
	// ShapeText 文字，Dims = {fontSize}，内容见 Node.Text
	ShapeText ShapeKind = "text"
)

// Shape 声明式几何描述，由外部渲染器解释
type Shape struct {
	Kind ShapeKind
	Dims [3]float64
}

// Transform 相对父节点的变换，Rotation 为 XYZ 顺序的欧拉角（弧度）
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
}

// Quat 返回旋转的四元数形式
func (t Transform) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(t.Rotation[0], t.Rotation[1], t.Rotation[2], mgl64.XYZ)
}

// Matrix 返回局部变换矩阵 T*R*S
func (t Transform) Matrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	sc := mgl64.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return tr.Mul4(t.Quat().Mat4()).Mul4(sc)
}

// Node 交给渲染器的一个场景节点
//
// Parent 为空表示根节点；父节点总是排在子节点之前。
type Node struct {
	Name      string
	Parent    string
	Shape     Shape
	Transform Transform
	Material  string
	Text      string
	// Opacity 本帧最终不透明度
	Opacity float64
	Visible bool
}

func unitScale() mgl64.Vec3 {
	return mgl64.Vec3{1, 1, 1}
}

func uniform(s float64) mgl64.Vec3 {
	return mgl64.Vec3{s, s, s}
}
