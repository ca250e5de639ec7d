// Package scene 把进度映射、瓶体运动学、溢出粒子和标签组合成一帧的输出。
//
// Scene 是与渲染运行时无关的逐帧更新入口：
//
//	out := sc.Update(scene.FrameContext{Progress: p, Elapsed: t})
//	for _, n := range out.Nodes() { ... }
//
// 每帧的结果只取决于 (Progress, Elapsed) 和构造时的一次性随机种子，
// 同样的输入总是得到逐位相同的输出。
package scene

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/bottlefx/pkg/bottle"
	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/label"
	"github.com/decker502/bottlefx/pkg/material"
	"github.com/decker502/bottlefx/pkg/profile"
	"github.com/decker502/bottlefx/pkg/progress"
	"github.com/decker502/bottlefx/pkg/spill"
)

// FrameContext 一帧的输入
type FrameContext struct {
	// Progress 滚动进度，允许越界
	Progress float64
	// Elapsed 场景经过时间（秒），负值按 0 处理
	Elapsed float64
}

// FrameOutputs 一帧的输出
//
// 切片引用 Scene 内部缓冲，下一次 Update 前有效。
type FrameOutputs struct {
	Progress    float64
	Elapsed     float64
	Activations progress.Activations
	Bottle      bottle.State
	Idle        bottle.IdleMotion
	FillScales  []float64
	Spill       *spill.Frame
	Labels      []label.State

	nodes []Node
}

// Nodes 返回展平后的场景节点列表（父节点在前）
func (f FrameOutputs) Nodes() []Node {
	return f.nodes
}

// Node 按名称查找节点
func (f FrameOutputs) Node(name string) (Node, bool) {
	for _, n := range f.nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Scene 瓶子场景
//
// 不是并发安全的：Update 会原地改写粒子缓冲。不同 Scene 之间相互独立。
type Scene struct {
	cfg       *config.SceneConfig
	windows   progress.Windows
	profile   *profile.Profile
	materials *material.Library
	kin       *bottle.Kinematics
	spill     *spill.Engine
	labels    *label.Annotator
	seed      int64

	names   nodeNames
	opacity map[string]float64

	out        FrameOutputs
	fillScales []float64
	labelBuf   []label.State
	nodes      []Node
}

// New 创建场景
//
// 所有可能失败的步骤（窗口校验、剖面构建、材质解析、粒子池初始化）都在这里完成，
// 之后的 Update 不会失败。
//
// 参数:
//   - cfg: 场景配置，nil 时使用 DefaultSceneConfig
//   - rng: 粒子池随机源，nil 时按 cfg.Seed 创建（Seed 为 0 则取当前时间）
//
// 返回:
//   - *Scene: 场景
//   - error: 配置非法时返回错误
func New(cfg *config.SceneConfig, rng *rand.Rand) (*Scene, error) {
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	windows, err := progress.NewWindows(cfg.Windows)
	if err != nil {
		return nil, fmt.Errorf("failed to build windows: %w", err)
	}

	prof, err := profile.Build(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to build bottle profile: %w", err)
	}

	lib, err := material.NewLibrary(cfg.Materials)
	if err != nil {
		return nil, fmt.Errorf("failed to build materials: %w", err)
	}

	seed := cfg.Seed
	if rng == nil {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	s := &Scene{
		cfg:       cfg,
		windows:   windows,
		profile:   prof,
		materials: lib,
		kin:       bottle.New(cfg.Bottle),
		spill:     spill.NewEngine(rng, cfg.Spill, cfg.Splash, cfg.Fizz),
		labels:    label.New(windows.Label, cfg.Labels),
		seed:      seed,
		opacity:   make(map[string]float64, lib.Len()),
	}
	for _, name := range lib.Names() {
		m, _ := lib.Get(name)
		s.opacity[name] = m.Opacity
	}
	s.names = newNodeNames(cfg)

	mesh := prof.Mesh()
	log.Printf("[Scene] Profile: %d samples, %d vertices, %d triangles",
		len(prof.Points()), len(mesh.Positions), mesh.TriangleCount())
	log.Printf("[Scene] Pools: %d droplets, %d splash drops, %d bubbles, %d labels (seed=%d)",
		len(s.spill.Droplets()), len(s.spill.SplashDrops()), len(s.spill.Bubbles()), len(cfg.Labels.Items), seed)
	return s, nil
}

// Config 返回场景配置（只读）
func (s *Scene) Config() *config.SceneConfig {
	return s.cfg
}

// Windows 返回激活窗口
func (s *Scene) Windows() progress.Windows {
	return s.windows
}

// Profile 返回缓存的瓶身剖面
func (s *Scene) Profile() *profile.Profile {
	return s.profile
}

// Materials 返回材质库
func (s *Scene) Materials() *material.Library {
	return s.materials
}

// Seed 返回构造时使用的随机种子（外部传入 rng 时为配置值）
func (s *Scene) Seed() int64 {
	return s.seed
}

// Update 计算一帧
//
// 先求全部激活值，再分别计算瓶体、溢出与标签（三者互不依赖），最后展平为节点列表。
func (s *Scene) Update(ctx FrameContext) FrameOutputs {
	t := ctx.Elapsed
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	p := ctx.Progress

	act := s.windows.Evaluate(p)

	state := s.kin.Compute(act.CapTwist, act.WaterDrop)
	idle := s.kin.Idle(t)
	s.fillScales = s.kin.FillScales(s.fillScales, state)

	frame := s.spill.Update(t, act.Spill, act.Splash, p)
	s.labelBuf = s.labels.Annotate(s.labelBuf, p, t)

	s.out = FrameOutputs{
		Progress:    p,
		Elapsed:     t,
		Activations: act,
		Bottle:      state,
		Idle:        idle,
		FillScales:  s.fillScales,
		Spill:       frame,
		Labels:      s.labelBuf,
	}
	s.nodes = s.buildNodes(s.nodes[:0], &s.out)
	s.out.nodes = s.nodes
	return s.out
}
