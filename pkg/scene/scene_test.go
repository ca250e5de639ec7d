package scene

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/material"
	"github.com/decker502/bottlefx/pkg/profile"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(config.DefaultSceneConfig(), rand.New(rand.NewSource(1234)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func snapshot(out FrameOutputs) []Node {
	return append([]Node(nil), out.Nodes()...)
}

func countVisible(nodes []Node, prefix string) int {
	n := 0
	for _, node := range nodes {
		if strings.HasPrefix(node.Name, prefix) && node.Visible {
			n++
		}
	}
	return n
}

// TestScene_Scenarios 典型进度下的整体状态
func TestScene_Scenarios(t *testing.T) {
	s := newTestScene(t)

	t.Run("progress=0", func(t *testing.T) {
		out := s.Update(FrameContext{Progress: 0, Elapsed: 2})
		if out.Bottle.Cap.Rotation != 0 || out.Bottle.Cap.Lift != 0 {
			t.Errorf("cap should be untwisted: %+v", out.Bottle.Cap)
		}
		if out.Bottle.TopScale != 1 || out.Bottle.WaterDrop != 0 {
			t.Errorf("water should be full: %+v", out.Bottle)
		}
		nodes := out.Nodes()
		if n := countVisible(nodes, "spill/"); n != 0 {
			t.Errorf("%d spill nodes visible at progress 0", n)
		}
		if n := countVisible(nodes, "splash/"); n != 0 {
			t.Errorf("%d splash nodes visible at progress 0", n)
		}
		if len(out.Labels) != 0 || countVisible(nodes, "label/") != 0 {
			t.Errorf("labels materialized at progress 0: %d", len(out.Labels))
		}
	})

	t.Run("progress=0.5", func(t *testing.T) {
		out := s.Update(FrameContext{Progress: 0.5, Elapsed: 2})
		if math.Abs(out.Bottle.Cap.Rotation-6*math.Pi) > 1e-12 || math.Abs(out.Bottle.Cap.Lift-1.5) > 1e-12 {
			t.Errorf("cap should be fully twisted and lifted: %+v", out.Bottle.Cap)
		}
		if out.Bottle.TopScale >= 1 || out.Bottle.TopScale <= 0.1 {
			t.Errorf("water should be partially dropped: scale=%v", out.Bottle.TopScale)
		}
		if out.Activations.Spill <= 0 {
			t.Errorf("spill intensity = %v, want > 0", out.Activations.Spill)
		}
		if n, ok := out.Node("spill/stream/0"); !ok || !n.Visible {
			t.Errorf("main stream not visible: %+v", n)
		}
		if countVisible(out.Nodes(), "spill/droplet/") == 0 {
			t.Error("no droplets visible")
		}
		if len(out.Labels) == 0 || out.Labels[0].Name != "B12" {
			t.Errorf("earliest label should be visible, got %d labels", len(out.Labels))
		}
		if _, ok := out.Node("label/B12/text"); !ok {
			t.Error("label/B12/text node missing")
		}
	})

	t.Run("progress=1", func(t *testing.T) {
		out := s.Update(FrameContext{Progress: 1, Elapsed: 2})
		a := out.Activations
		if a.CapTwist != 1 || a.WaterDrop != 1 || a.Spill != 1 || a.Splash != 1 {
			t.Errorf("activations not saturated: %+v", a)
		}
		if n := countVisible(out.Nodes(), "splash/screen/"); n != 12 {
			t.Errorf("visible screen drops = %d, want 12", n)
		}
		ring, _ := out.Node("splash/ring/0")
		if math.Abs(ring.Opacity-0.4) > 1e-12 {
			t.Errorf("impact ring opacity = %v, want 0.4", ring.Opacity)
		}
		if len(out.Labels) != 6 {
			t.Errorf("labels = %d, want 6", len(out.Labels))
		}
		for _, l := range out.Labels {
			if l.Visibility != 1 {
				t.Errorf("label %s visibility = %v, want 1", l.Name, l.Visibility)
			}
		}
	})
}

// TestScene_Idempotent 相同输入两次调用逐位相同
func TestScene_Idempotent(t *testing.T) {
	s := newTestScene(t)

	ctx := FrameContext{Progress: 0.47, Elapsed: 5.25}
	first := snapshot(s.Update(ctx))
	s.Update(FrameContext{Progress: 0.9, Elapsed: 1})
	second := snapshot(s.Update(ctx))

	if !reflect.DeepEqual(first, second) {
		t.Fatal("Update is not idempotent for equal (progress, elapsed)")
	}
}

// TestScene_Reversal 进度倒退时逐点复现正向状态
func TestScene_Reversal(t *testing.T) {
	s := newTestScene(t)

	const steps = 40
	const elapsed = 3.5
	forward := make([][]Node, steps+1)
	for i := 0; i <= steps; i++ {
		forward[i] = snapshot(s.Update(FrameContext{Progress: float64(i) / steps, Elapsed: elapsed}))
	}
	for i := steps; i >= 0; i-- {
		got := snapshot(s.Update(FrameContext{Progress: float64(i) / steps, Elapsed: elapsed}))
		if !reflect.DeepEqual(got, forward[i]) {
			t.Fatalf("reverse pass differs at progress %v", float64(i)/steps)
		}
	}
}

// TestScene_SameSeed 相同种子的两个场景输出一致
func TestScene_SameSeed(t *testing.T) {
	cfg := config.DefaultSceneConfig()
	cfg.Seed = 77
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	b, err := New(config.DefaultSceneConfig(), rand.New(rand.NewSource(77)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Seed() != 77 {
		t.Errorf("Seed() = %d, want 77", a.Seed())
	}

	ctx := FrameContext{Progress: 0.8, Elapsed: 7}
	if !reflect.DeepEqual(snapshot(a.Update(ctx)), snapshot(b.Update(ctx))) {
		t.Error("scenes with the same seed differ")
	}
}

// TestScene_NegativeElapsed 负时间按 0 处理
func TestScene_NegativeElapsed(t *testing.T) {
	s := newTestScene(t)
	neg := snapshot(s.Update(FrameContext{Progress: 0.6, Elapsed: -3}))
	zero := snapshot(s.Update(FrameContext{Progress: 0.6, Elapsed: 0}))
	if !reflect.DeepEqual(neg, zero) {
		t.Error("negative elapsed time not clamped")
	}
}

// TestScene_OutOfRangeProgress 进度越界时状态与边界一致
func TestScene_OutOfRangeProgress(t *testing.T) {
	s := newTestScene(t)

	over := s.Update(FrameContext{Progress: 4, Elapsed: 1})
	if over.Bottle.TopScale < s.Config().Bottle.FloorScale {
		t.Errorf("TopScale %v below floor", over.Bottle.TopScale)
	}
	if over.Bottle.Cap.Rotation != s.Update(FrameContext{Progress: 1, Elapsed: 1}).Bottle.Cap.Rotation {
		t.Error("cap rotated past its maximum")
	}

	under := s.Update(FrameContext{Progress: -2, Elapsed: 1})
	if under.Bottle.Cap.Rotation != 0 || len(under.Labels) != 0 {
		t.Errorf("negative progress state = %+v", under.Bottle)
	}

	nan := s.Update(FrameContext{Progress: math.NaN(), Elapsed: 1})
	if nan.Activations.Spill != 0 || len(nan.Labels) != 0 {
		t.Errorf("NaN progress should be idle: %+v", nan.Activations)
	}
}

// TestScene_NodeHierarchy 节点名唯一，父节点总在子节点之前
func TestScene_NodeHierarchy(t *testing.T) {
	s := newTestScene(t)
	nodes := s.Update(FrameContext{Progress: 1, Elapsed: 0.5}).Nodes()

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.Name] {
			t.Fatalf("duplicate node name %q", n.Name)
		}
		if n.Parent != "" && !seen[n.Parent] {
			t.Fatalf("node %q appears before its parent %q", n.Name, n.Parent)
		}
		seen[n.Name] = true
	}

	cfg := s.Config()
	want := []string{
		NodeBottle, NodeBottleInner, NodeWater, NodeWaterSurface,
		NodeCap, NodeCapBody, NodeCapTop, NodeCapRing,
		"water/segment/3", "cap/ridge/19", "bottle/band/brand",
		"spill/stream/1", "spill/droplet/39", NodeSpillMist,
		NodeSplash, "splash/drop/24", NodeImpact, "splash/ring/1", "splash/screen/11",
		"fizz/49", "label/Na", "label/Na/halo",
	}
	for _, name := range want {
		if !seen[name] {
			t.Errorf("node %q missing", name)
		}
	}

	fixed := 1 + 1 + 1 + len(cfg.Bottle.FillSegments) + 1 + 4 + cfg.Bottle.CapRidges + len(cfg.Bottle.Bands)
	spill := len(cfg.Spill.Streams) + cfg.Spill.Droplets.Count + 1
	splash := 2 + cfg.Splash.Drops.Count + len(cfg.Splash.Rings) + cfg.Splash.ScreenDrops.Count
	labels := 4 * len(cfg.Labels.Items)
	if total := fixed + spill + splash + cfg.Fizz.Count + labels; len(nodes) != total {
		t.Errorf("node count = %d, want %d", len(nodes), total)
	}
}

// TestScene_Materials 每个节点引用的材质都存在
func TestScene_Materials(t *testing.T) {
	s := newTestScene(t)
	for _, n := range s.Update(FrameContext{Progress: 1, Elapsed: 1}).Nodes() {
		if n.Material == "" {
			continue
		}
		if _, ok := s.Materials().Get(n.Material); !ok {
			t.Errorf("node %q references unknown material %q", n.Name, n.Material)
		}
		if n.Opacity < 0 || n.Opacity > 1 {
			t.Errorf("node %q opacity %v out of range", n.Name, n.Opacity)
		}
	}
}

// TestScene_CapNode 瓶盖节点的变换
func TestScene_CapNode(t *testing.T) {
	s := newTestScene(t)
	out := s.Update(FrameContext{Progress: 0.1, Elapsed: 0})

	cp, ok := out.Node(NodeCap)
	if !ok {
		t.Fatal("cap node missing")
	}
	// 拧盖窗口 [0, 0.2]，进度 0.1 时激活值 0.5
	if math.Abs(cp.Transform.Rotation[1]-3*math.Pi) > 1e-9 {
		t.Errorf("cap rotation = %v, want 3π", cp.Transform.Rotation[1])
	}
	if math.Abs(cp.Transform.Position[1]-(3.44+0.75)) > 1e-9 {
		t.Errorf("cap y = %v, want 4.19", cp.Transform.Position[1])
	}

	seg, _ := out.Node("water/segment/3")
	if seg.Transform.Scale[1] != 1 {
		t.Errorf("top segment scaled before the drop window: %v", seg.Transform.Scale)
	}
}

// TestNew_InvalidConfig 构造阶段拒绝非法配置
func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.SceneConfig)
		wantErr error
	}{
		{
			name:    "窗口长度为零",
			mutate:  func(c *config.SceneConfig) { c.Windows.Spill.Length = 0 },
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "剖面高度不递增",
			mutate: func(c *config.SceneConfig) {
				c.Profile.Segments[1].To = mgl64.Vec2{0.36, 0.01}
			},
			wantErr: profile.ErrInvalidProfile,
		},
		{
			name: "颜色格式错误",
			mutate: func(c *config.SceneConfig) {
				m := c.Materials["water"]
				m.Color = "water"
				c.Materials["water"] = m
			},
			wantErr: material.ErrInvalidMaterial,
		},
		{
			name:    "材质缺失",
			mutate:  func(c *config.SceneConfig) { delete(c.Materials, "fizz") },
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultSceneConfig()
			tt.mutate(cfg)
			s, err := New(cfg, rand.New(rand.NewSource(1)))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if s != nil {
				t.Error("New() returned a scene alongside an error")
			}
		})
	}
}

// TestTransform_Matrix 变换矩阵与逐步应用一致
func TestTransform_Matrix(t *testing.T) {
	tr := Transform{
		Position: mgl64.Vec3{1, 2, 3},
		Rotation: mgl64.Vec3{0, math.Pi / 2, 0},
		Scale:    mgl64.Vec3{2, 2, 2},
	}
	p := tr.Matrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	// (1,0,0) 缩放到 (2,0,0)，绕 Y 转 90° 得到 (0,0,-2)，再平移
	want := mgl64.Vec3{1, 2, 1}
	if !p.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("Matrix() applied = %v, want %v", p, want)
	}
}
