package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
)

// 节点名称（根节点与固定节点）
const (
	NodeBottle       = "bottle"
	NodeBottleInner  = "bottle/inner"
	NodeWater        = "water"
	NodeWaterSurface = "water/surface"
	NodeCap          = "cap"
	NodeCapBody      = "cap/body"
	NodeCapTop       = "cap/top"
	NodeCapRing      = "cap/ring"
	NodeSpillMist    = "spill/mist"
	NodeSplash       = "splash"
	NodeImpact       = "impact"
	NodeFizz         = "fizz"
)

// 瓶盖与标签的固定几何
var (
	capBodyShape  = Shape{Kind: ShapeCylinder, Dims: [3]float64{0.22, 0.20, 0.28}}
	capTopShape   = Shape{Kind: ShapeHemisphere, Dims: [3]float64{0.20}}
	capRidgeShape = Shape{Kind: ShapeBox, Dims: [3]float64{0.015, 0.24, 0.012}}
	capRingShape  = Shape{Kind: ShapeCylinder, Dims: [3]float64{0.19, 0.21, 0.08}}

	labelHaloShape = Shape{Kind: ShapeSphere, Dims: [3]float64{0.25}}
	labelCoreShape = Shape{Kind: ShapeSphere, Dims: [3]float64{0.15}}
	labelTextShape = Shape{Kind: ShapeText, Dims: [3]float64{0.15}}
)

const (
	capTopY       = 0.14
	capRingY      = -0.18
	innerScale    = 0.97
	labelTextZ    = 0.3
	groupMaterial = ""
)

type labelNames struct {
	group, halo, core, text string
}

// nodeNames 预先生成的节点名，避免逐帧格式化字符串
type nodeNames struct {
	segments    []string
	bands       []string
	ridges      []string
	streams     []string
	droplets    []string
	splashDrops []string
	rings       []string
	screen      []string
	bubbles     []string
	labels      map[string]labelNames
}

func indexNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s/%d", prefix, i)
	}
	return names
}

func newNodeNames(cfg *config.SceneConfig) nodeNames {
	n := nodeNames{
		segments:    indexNames("water/segment", len(cfg.Bottle.FillSegments)),
		ridges:      indexNames("cap/ridge", cfg.Bottle.CapRidges),
		streams:     indexNames("spill/stream", len(cfg.Spill.Streams)),
		droplets:    indexNames("spill/droplet", cfg.Spill.Droplets.Count),
		splashDrops: indexNames("splash/drop", cfg.Splash.Drops.Count),
		rings:       indexNames("splash/ring", len(cfg.Splash.Rings)),
		screen:      indexNames("splash/screen", cfg.Splash.ScreenDrops.Count),
		bubbles:     indexNames("fizz", cfg.Fizz.Count),
		labels:      make(map[string]labelNames, len(cfg.Labels.Items)),
	}
	for _, b := range cfg.Bottle.Bands {
		n.bands = append(n.bands, "bottle/band/"+b.Name)
	}
	for _, item := range cfg.Labels.Items {
		base := "label/" + item.Name
		n.labels[item.Name] = labelNames{
			group: base,
			halo:  base + "/halo",
			core:  base + "/core",
			text:  base + "/text",
		}
	}
	return n
}

// buildNodes 将一帧的状态展平为节点列表，追加到 dst
func (s *Scene) buildNodes(dst []Node, out *FrameOutputs) []Node {
	dst = s.appendBottle(dst, out)
	dst = s.appendSpill(dst, out)
	dst = s.appendSplash(dst, out)
	dst = s.appendFizz(dst, out)
	dst = s.appendLabels(dst, out)
	return dst
}

func (s *Scene) appendBottle(dst []Node, out *FrameOutputs) []Node {
	bc := s.cfg.Bottle
	st := out.Bottle

	dst = append(dst,
		Node{
			Name:  NodeBottle,
			Shape: Shape{Kind: ShapeLathe},
			Transform: Transform{
				Position: mgl64.Vec3{0, out.Idle.OffsetY, 0},
				Rotation: mgl64.Vec3{0, out.Idle.RotationY, 0},
				Scale:    uniform(bc.Scale),
			},
			Material: "plastic",
			Opacity:  s.opacity["plastic"],
			Visible:  true,
		},
		Node{
			Name:      NodeBottleInner,
			Parent:    NodeBottle,
			Shape:     Shape{Kind: ShapeLathe},
			Transform: Transform{Scale: mgl64.Vec3{innerScale, 1, innerScale}},
			Material:  "plasticInner",
			Opacity:   s.opacity["plasticInner"],
			Visible:   true,
		},
		Node{
			Name:      NodeWater,
			Parent:    NodeBottle,
			Shape:     Shape{Kind: ShapeGroup},
			Transform: Transform{Position: mgl64.Vec3{0, st.GroupY, 0}, Scale: unitScale()},
			Material:  groupMaterial,
			Opacity:   1,
			Visible:   true,
		},
	)

	for i, seg := range bc.FillSegments {
		dst = append(dst, Node{
			Name:   s.names.segments[i],
			Parent: NodeWater,
			Shape:  Shape{Kind: ShapeCylinder, Dims: [3]float64{seg.TopRadius, seg.BaseRadius, seg.Height}},
			Transform: Transform{
				Position: mgl64.Vec3{0, seg.YOffset, 0},
				Scale:    mgl64.Vec3{1, out.FillScales[i], 1},
			},
			Material: "water",
			Opacity:  s.opacity["water"],
			Visible:  true,
		})
	}
	dst = append(dst, Node{
		Name:      NodeWaterSurface,
		Parent:    NodeWater,
		Shape:     Shape{Kind: ShapeHemisphere, Dims: [3]float64{bc.SurfaceRadius}},
		Transform: Transform{Position: mgl64.Vec3{0, st.SurfaceY, 0}, Scale: unitScale()},
		Material:  "water",
		Opacity:   s.opacity["water"],
		Visible:   true,
	})

	dst = append(dst,
		Node{
			Name:   NodeCap,
			Parent: NodeBottle,
			Shape:  Shape{Kind: ShapeGroup},
			Transform: Transform{
				Position: mgl64.Vec3{0, st.Cap.Y, 0},
				Rotation: mgl64.Vec3{0, st.Cap.Rotation, 0},
				Scale:    unitScale(),
			},
			Material: groupMaterial,
			Opacity:  1,
			Visible:  true,
		},
		Node{
			Name:      NodeCapBody,
			Parent:    NodeCap,
			Shape:     capBodyShape,
			Transform: Transform{Scale: unitScale()},
			Material:  "cap",
			Opacity:   s.opacity["cap"],
			Visible:   true,
		},
		Node{
			Name:      NodeCapTop,
			Parent:    NodeCap,
			Shape:     capTopShape,
			Transform: Transform{Position: mgl64.Vec3{0, capTopY, 0}, Scale: unitScale()},
			Material:  "cap",
			Opacity:   s.opacity["cap"],
			Visible:   true,
		},
	)
	for i, name := range s.names.ridges {
		theta := float64(i) / float64(bc.CapRidges) * 2 * math.Pi
		sin, cos := math.Sincos(theta)
		dst = append(dst, Node{
			Name:   name,
			Parent: NodeCap,
			Shape:  capRidgeShape,
			Transform: Transform{
				Position: mgl64.Vec3{sin * bc.CapRadius, 0, cos * bc.CapRadius},
				Rotation: mgl64.Vec3{0, theta, 0},
				Scale:    unitScale(),
			},
			Material: "cap",
			Opacity:  s.opacity["cap"],
			Visible:  true,
		})
	}
	dst = append(dst, Node{
		Name:      NodeCapRing,
		Parent:    NodeCap,
		Shape:     capRingShape,
		Transform: Transform{Position: mgl64.Vec3{0, capRingY, 0}, Scale: unitScale()},
		Material:  "capRing",
		Opacity:   s.opacity["capRing"],
		Visible:   true,
	})

	for i, b := range bc.Bands {
		dst = append(dst, Node{
			Name:      s.names.bands[i],
			Parent:    NodeBottle,
			Shape:     Shape{Kind: ShapeCylinder, Dims: [3]float64{b.Radius, b.Radius, b.Height}},
			Transform: Transform{Position: mgl64.Vec3{0, b.Y, 0}, Scale: unitScale()},
			Material:  b.Material,
			Opacity:   s.opacity[b.Material],
			Visible:   true,
		})
	}
	return dst
}

func (s *Scene) appendSpill(dst []Node, out *FrameOutputs) []Node {
	f := out.Spill
	for i, st := range f.Streams {
		dst = append(dst, Node{
			Name:  s.names.streams[i],
			Shape: Shape{Kind: ShapeCylinder, Dims: [3]float64{st.RadiusTop, st.RadiusBottom, 1}},
			Transform: Transform{
				Position: st.Position,
				Rotation: st.Rotation,
				Scale:    st.Scale,
			},
			Material: st.Material,
			Opacity:  st.Opacity,
			Visible:  st.Visible,
		})
	}

	dc := s.cfg.Spill.Droplets
	for i, d := range f.Droplets {
		dst = append(dst, Node{
			Name:      s.names.droplets[i],
			Shape:     Shape{Kind: ShapeSphere, Dims: [3]float64{1}},
			Transform: Transform{Position: d.Position, Scale: uniform(d.Scale)},
			Material:  dc.Material,
			Opacity:   s.opacity[dc.Material],
			Visible:   d.Visible,
		})
	}

	m := f.Mist
	dst = append(dst, Node{
		Name:      NodeSpillMist,
		Shape:     Shape{Kind: ShapeSphere, Dims: [3]float64{m.Radius}},
		Transform: Transform{Position: m.Position, Scale: m.Scale},
		Material:  m.Material,
		Opacity:   m.Opacity,
		Visible:   m.Visible,
	})
	return dst
}

func (s *Scene) appendSplash(dst []Node, out *FrameOutputs) []Node {
	sp := &out.Spill.Splash
	cfg := s.cfg.Splash

	dst = append(dst, Node{
		Name:  NodeSplash,
		Shape: Shape{Kind: ShapeGroup},
		Transform: Transform{
			Position: cfg.Drops.Center,
			Rotation: mgl64.Vec3{0, 0, sp.SwayZ},
			Scale:    unitScale(),
		},
		Opacity: 1,
		Visible: sp.Visible,
	})
	for i, name := range s.names.splashDrops {
		n := Node{
			Name:     name,
			Parent:   NodeSplash,
			Shape:    Shape{Kind: ShapeSphere, Dims: [3]float64{1}},
			Material: cfg.Drops.Material,
			Opacity:  s.opacity[cfg.Drops.Material],
		}
		if sp.Visible {
			p := sp.Drops[i]
			n.Transform = Transform{Position: p.Position, Scale: uniform(p.Scale)}
			n.Visible = true
		}
		dst = append(dst, n)
	}

	dst = append(dst, Node{
		Name:      NodeImpact,
		Shape:     Shape{Kind: ShapeGroup},
		Transform: Transform{Position: cfg.ImpactAt, Scale: unitScale()},
		Opacity:   1,
		Visible:   sp.Visible,
	})
	for i, name := range s.names.rings {
		rc := cfg.Rings[i]
		n := Node{
			Name:     name,
			Parent:   NodeImpact,
			Shape:    Shape{Kind: ShapeRing, Dims: [3]float64{rc.Inner, rc.Outer}},
			Material: rc.Material,
		}
		if sp.Visible {
			r := sp.Rings[i]
			n.Transform = Transform{Scale: uniform(r.Scale)}
			n.Opacity = r.Opacity
			n.Visible = true
		}
		dst = append(dst, n)
	}
	for i, name := range s.names.screen {
		n := Node{
			Name:     name,
			Parent:   NodeImpact,
			Shape:    Shape{Kind: ShapeSphere, Dims: [3]float64{1}},
			Material: cfg.ScreenDrops.Material,
		}
		if sp.Visible {
			p := sp.Screen[i]
			n.Transform = Transform{Position: p.Position, Scale: uniform(p.Scale)}
			n.Opacity = p.Opacity
			n.Visible = true
		}
		dst = append(dst, n)
	}
	return dst
}

func (s *Scene) appendFizz(dst []Node, out *FrameOutputs) []Node {
	mat := s.cfg.Fizz.Material
	for i, b := range out.Spill.Bubbles {
		dst = append(dst, Node{
			Name:      s.names.bubbles[i],
			Shape:     Shape{Kind: ShapeSphere, Dims: [3]float64{1}},
			Transform: Transform{Position: b.Position, Scale: uniform(b.Scale)},
			Material:  mat,
			Opacity:   s.opacity[mat],
			Visible:   true,
		})
	}
	return dst
}

func (s *Scene) appendLabels(dst []Node, out *FrameOutputs) []Node {
	lc := s.cfg.Labels
	for _, l := range out.Labels {
		names := s.names.labels[l.Name]
		dst = append(dst,
			Node{
				Name:   names.group,
				Parent: NodeBottle,
				Shape:  Shape{Kind: ShapeGroup},
				Transform: Transform{
					Position: l.Position,
					Rotation: mgl64.Vec3{0, l.RotationY, 0},
					Scale:    unitScale(),
				},
				Opacity: l.Visibility,
				Visible: true,
			},
			Node{
				Name:      names.halo,
				Parent:    names.group,
				Shape:     labelHaloShape,
				Transform: Transform{Scale: unitScale()},
				Material:  lc.HaloMaterial,
				Opacity:   l.HaloOpacity,
				Visible:   true,
			},
			Node{
				Name:      names.core,
				Parent:    names.group,
				Shape:     labelCoreShape,
				Transform: Transform{Scale: unitScale()},
				Material:  lc.CoreMaterial,
				Opacity:   l.CoreOpacity,
				Visible:   true,
			},
			Node{
				Name:      names.text,
				Parent:    names.group,
				Shape:     labelTextShape,
				Transform: Transform{Position: mgl64.Vec3{0, 0, labelTextZ}, Scale: unitScale()},
				Material:  lc.TextMaterial,
				Text:      l.Name,
				Opacity:   l.TextOpacity,
				Visible:   true,
			},
		)
	}
	return dst
}
