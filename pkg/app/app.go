// Package app 提供瓶子场景的交互式预览器
//
// 预览器用 Ebitengine 画出场景节点的二维线框投影，用滚轮或方向键模拟页面滚动进度。
// main.go 负责解析命令行参数并调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/embedded"
	"github.com/decker502/bottlefx/pkg/scene"
)

// 窗口尺寸与投影参数
const (
	WindowWidth  = 1024
	WindowHeight = 768

	pixelsPerUnit = 110.0
	originX       = WindowWidth * 0.42
	originY       = WindowHeight * 0.82
	frameTime     = 1.0 / 60.0
	keyStep       = 0.01
)

var backgroundColor = color.NRGBA{R: 0x0b, G: 0x12, B: 0x20, A: 0xff}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ScenePath 场景配置文件路径，为空则使用嵌入的 data/scene.yaml
	ScenePath string
	// Seed 覆盖配置中的随机种子（0 表示不覆盖）
	Seed int64
	// Progress 初始进度
	Progress float64
}

// App 预览器，实现 ebiten.Game 接口
type App struct {
	scene    *scene.Scene
	store    *PrefsStore
	scroller *Scroller
	render   *renderer
	elapsed  float64
	paused   bool
	out      scene.FrameOutputs
	verbose  bool
}

// LoadSceneConfig 按路径或嵌入资源加载场景配置
func LoadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		return config.LoadSceneConfig(path)
	}
	data, err := embedded.ReadFile(embedded.SceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene config: %w", err)
	}
	return config.ParseSceneConfig(data)
}

// NewApp 创建并初始化预览器
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneCfg, err := LoadSceneConfig(cfg.ScenePath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	if cfg.Seed != 0 {
		sceneCfg.Seed = cfg.Seed
	}

	var rng *rand.Rand
	if sceneCfg.Seed != 0 {
		rng = rand.New(rand.NewSource(sceneCfg.Seed))
	}
	sc, err := scene.New(sceneCfg, rng)
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	// 偏好存储失败时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: "bottlefx"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (prefs will not persist)", err)
		gdataManager = nil
	}
	store := NewPrefsStore(gdataManager)
	prefs := store.Prefs()

	scroller := NewScroller(prefs)
	scroller.Jump(cfg.Progress)

	a := &App{
		scene:    sc,
		store:    store,
		scroller: scroller,
		render: &renderer{
			proj:    newProjector(prefs.ViewYaw, pixelsPerUnit, originX, originY),
			outline: sc.Profile().Outline(),
			mats:    sc.Materials(),
		},
		verbose: cfg.Verbose,
	}
	a.out = sc.Update(scene.FrameContext{Progress: scroller.Progress})
	log.Printf("[App] Scene ready: windows spill=%s splash=%s", sc.Windows().Spill, sc.Windows().Splash)
	return a, nil
}

// Update 处理输入并计算一帧
func (a *App) Update() error {
	prefs := a.store.Prefs()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		if err := a.store.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.scroller.Auto = !a.scroller.Auto
		prefs.AutoScroll = a.scroller.Auto
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		prefs.ShowHUD = !prefs.ShowHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		prefs.ShowProfile = !prefs.ShowProfile
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.paused = !a.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		a.scroller.Jump(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		a.scroller.Jump(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := a.store.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// 滚轮向下滚动 = 进度增加
	_, wy := ebiten.Wheel()
	wheel := -wy
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		wheel += keyStep / a.scroller.Step
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		wheel -= keyStep / a.scroller.Step
	}

	p := a.scroller.Advance(frameTime, wheel)
	if !a.paused {
		a.elapsed += frameTime
	}
	a.out = a.scene.Update(scene.FrameContext{Progress: p, Elapsed: a.elapsed})
	return nil
}

// Draw 绘制一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	prefs := a.store.Prefs()
	a.render.draw(screen, a.out.Nodes(), prefs.ShowProfile)
	if prefs.ShowHUD {
		ebitenutil.DebugPrintAt(screen, a.hud(), 10, 10)
	}
}

// hud 状态文本
func (a *App) hud() string {
	out := a.out
	act := out.Activations
	var b strings.Builder
	fmt.Fprintf(&b, "progress %.3f  t=%.1fs  fps %.0f\n", out.Progress, out.Elapsed, ebiten.ActualFPS())
	fmt.Fprintf(&b, "cap %.2f  drop %.2f  spill %.2f (%s)  splash %.2f (%s)\n",
		act.CapTwist, act.WaterDrop, act.Spill, out.Spill.Phase, act.Splash, out.Spill.SplashPhase)
	fmt.Fprintf(&b, "water scale %.2f  surface y %.2f\n", out.Bottle.TopScale, out.Bottle.SurfaceY)
	names := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		names = append(names, fmt.Sprintf("%s(%.2f)", l.Name, l.Visibility))
	}
	fmt.Fprintf(&b, "labels: %s\n", strings.Join(names, " "))
	auto := "off"
	if a.scroller.Auto {
		auto = "on"
	}
	fmt.Fprintf(&b, "\nwheel/up/down scroll  A auto(%s)  space pause  H hud  O outline  S save  Esc quit", auto)
	return b.String()
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
