package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 场景配置校验失败
var ErrInvalidConfig = errors.New("invalid scene config")

// SceneConfig 瓶子场景配置
//
// 所有数值在构造场景时读取一次，运行期间不可修改。
// YAML 中省略的字段保留 DefaultSceneConfig 的默认值。
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	// Seed 粒子池随机种子，0 表示每次启动随机
	Seed int64 `yaml:"seed"`

	Windows   WindowsConfig             `yaml:"windows"`
	Profile   ProfileConfig             `yaml:"profile"`
	Bottle    BottleConfig              `yaml:"bottle"`
	Spill     SpillConfig               `yaml:"spill"`
	Splash    SplashConfig              `yaml:"splash"`
	Fizz      FizzConfig                `yaml:"fizz"`
	Labels    LabelsConfig              `yaml:"labels"`
	Materials map[string]MaterialConfig `yaml:"materials"`
}

// WindowConfig 单个激活窗口 {start, length}
type WindowConfig struct {
	Start  float64 `yaml:"start"`
	Length float64 `yaml:"length"`
	// Easing 缓动名称（linear/inQuad/outQuad/inCubic/outCubic/inOutCubic/smoothstep），空为 linear
	Easing string `yaml:"easing,omitempty"`
}

// WindowsConfig 各效果的激活窗口
type WindowsConfig struct {
	CapTwist  WindowConfig `yaml:"capTwist"`
	WaterDrop WindowConfig `yaml:"waterDrop"`
	Spill     WindowConfig `yaml:"spill"`
	Splash    WindowConfig `yaml:"splash"`
	Label     WindowConfig `yaml:"label"`
}

// Range 随机取值范围 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SegmentConfig 剖面控制段
//
// 点坐标为 (半径, 高度)。Kind 为 "line" 时忽略 Control。
type SegmentConfig struct {
	Kind    string     `yaml:"kind"`
	Control mgl64.Vec2 `yaml:"control,omitempty"`
	To      mgl64.Vec2 `yaml:"to"`
}

// ProfileConfig 瓶身旋转剖面
type ProfileConfig struct {
	Start    mgl64.Vec2      `yaml:"start"`
	Segments []SegmentConfig `yaml:"segments"`
	// CurveDivisions 每条二次曲线的采样段数
	CurveDivisions int `yaml:"curveDivisions"`
	// RadialSegments 绕 Y 轴旋转的角向细分数
	RadialSegments int  `yaml:"radialSegments"`
	CloseBottom    bool `yaml:"closeBottom"`
	CloseTop       bool `yaml:"closeTop"`
}

// FillSegmentConfig 瓶内水体的一段圆台
//
// 列表按从下到上排列，最后一段为顶部水段，受水位下降缩放。
type FillSegmentConfig struct {
	BaseRadius float64 `yaml:"baseRadius"`
	TopRadius  float64 `yaml:"topRadius"`
	Height     float64 `yaml:"height"`
	YOffset    float64 `yaml:"yOffset"`
}

// BandConfig 瓶身标签圆环（静态装饰）
type BandConfig struct {
	Name     string  `yaml:"name"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Height   float64 `yaml:"height"`
	Material string  `yaml:"material"`
}

// IdleConfig 与进度无关的待机浮动
type IdleConfig struct {
	BaseY    float64 `yaml:"baseY"`
	BobAmp   float64 `yaml:"bobAmp"`
	BobFreq  float64 `yaml:"bobFreq"`
	SwayAmp  float64 `yaml:"swayAmp"`
	SwayFreq float64 `yaml:"swayFreq"`
}

// BottleConfig 瓶体运动学参数
type BottleConfig struct {
	Scale float64 `yaml:"scale"`

	// 瓶盖
	TwistTurns    float64 `yaml:"twistTurns"`
	MaxLift       float64 `yaml:"maxLift"`
	CapBaseHeight float64 `yaml:"capBaseHeight"`
	CapRadius     float64 `yaml:"capRadius"`
	CapRidges     int     `yaml:"capRidges"`

	// 水位
	MaxDrop           float64             `yaml:"maxDrop"`
	DropToScale       float64             `yaml:"dropToScale"`
	FloorScale        float64             `yaml:"floorScale"`
	WaterBaseY        float64             `yaml:"waterBaseY"`
	GroupDropFactor   float64             `yaml:"groupDropFactor"`
	SurfaceHeight     float64             `yaml:"surfaceHeight"`
	SurfaceDropFactor float64             `yaml:"surfaceDropFactor"`
	SurfaceRadius     float64             `yaml:"surfaceRadius"`
	FillSegments      []FillSegmentConfig `yaml:"fillSegments"`

	Bands []BandConfig `yaml:"bands"`
	Idle  IdleConfig   `yaml:"idle"`
}

// StreamConfig 连续水柱
type StreamConfig struct {
	Name                string     `yaml:"name"`
	Base                mgl64.Vec3 `yaml:"base"`
	ZPerIntensity       float64    `yaml:"zPerIntensity"`
	LengthPerIntensity  float64    `yaml:"lengthPerIntensity"`
	OpacityPerIntensity float64    `yaml:"opacityPerIntensity"`
	RadiusTop           float64    `yaml:"radiusTop"`
	RadiusBottom        float64    `yaml:"radiusBottom"`
	TiltX               float64    `yaml:"tiltX"`
	Yaw                 float64    `yaml:"yaw"`
	Wobble              bool       `yaml:"wobble"`
	WobbleAmp           float64    `yaml:"wobbleAmp"`
	WobbleFreq          float64    `yaml:"wobbleFreq"`
	StretchAmp          float64    `yaml:"stretchAmp"`
	StretchFreq         float64    `yaml:"stretchFreq"`
	Material            string     `yaml:"material"`
}

// DropletConfig 飞向镜头的水滴池
type DropletConfig struct {
	Count        int     `yaml:"count"`
	OriginRadius float64 `yaml:"originRadius"`
	OriginY      Range   `yaml:"originY"`
	OriginZ      float64 `yaml:"originZ"`
	Spread       Range   `yaml:"spread"`
	VelocityY    Range   `yaml:"velocityY"`
	VelocityZ    Range   `yaml:"velocityZ"`
	Size         Range   `yaml:"size"`
	Phase        Range   `yaml:"phase"`
	Rate         float64 `yaml:"rate"`
	Period       float64 `yaml:"period"`
	Gravity      float64 `yaml:"gravity"`
	DepthBoost   float64 `yaml:"depthBoost"`
	DepthScale   float64 `yaml:"depthScale"`
	Material     string  `yaml:"material"`
}

// MistConfig 水雾
type MistConfig struct {
	Base                mgl64.Vec3 `yaml:"base"`
	ZPerIntensity       float64    `yaml:"zPerIntensity"`
	ScalePerIntensity   mgl64.Vec3 `yaml:"scalePerIntensity"`
	OpacityPerIntensity float64    `yaml:"opacityPerIntensity"`
	Radius              float64    `yaml:"radius"`
	Material            string     `yaml:"material"`
}

// SpillConfig 溢出效果（水柱 + 水滴 + 水雾）
type SpillConfig struct {
	Streams  []StreamConfig `yaml:"streams"`
	Droplets DropletConfig  `yaml:"droplets"`
	Mist     MistConfig     `yaml:"mist"`
}

// SplashDropConfig 飞溅环上的大水滴
type SplashDropConfig struct {
	Count       int        `yaml:"count"`
	Center      mgl64.Vec3 `yaml:"center"`
	Radius      Range      `yaml:"radius"`
	Size        Range      `yaml:"size"`
	ZOffset     Range      `yaml:"zOffset"`
	Squash      float64    `yaml:"squash"`
	DepthFactor float64    `yaml:"depthFactor"`
	Material    string     `yaml:"material"`
}

// RingConfig 冲击波纹圆环
type RingConfig struct {
	Inner       float64 `yaml:"inner"`
	Outer       float64 `yaml:"outer"`
	ScaleFactor float64 `yaml:"scaleFactor"`
	Opacity     float64 `yaml:"opacity"`
	Material    string  `yaml:"material"`
}

// ScreenDropConfig 贴在"屏幕"上的水珠
type ScreenDropConfig struct {
	Count      int     `yaml:"count"`
	BaseDist   float64 `yaml:"baseDist"`
	DistStep   float64 `yaml:"distStep"`
	DistCycle  int     `yaml:"distCycle"`
	BaseScale  float64 `yaml:"baseScale"`
	ScaleStep  float64 `yaml:"scaleStep"`
	ScaleCycle int     `yaml:"scaleCycle"`
	Squash     float64 `yaml:"squash"`
	Z          float64 `yaml:"z"`
	Opacity    float64 `yaml:"opacity"`
	Material   string  `yaml:"material"`
}

// SplashConfig 飞溅冲击（独立窗口）
type SplashConfig struct {
	Drops       SplashDropConfig `yaml:"drops"`
	SwayAmp     float64          `yaml:"swayAmp"`
	SwayFreq    float64          `yaml:"swayFreq"`
	ImpactAt    mgl64.Vec3       `yaml:"impactAt"`
	Rings       []RingConfig     `yaml:"rings"`
	ScreenDrops ScreenDropConfig `yaml:"screenDrops"`
}

// FizzConfig 环境气泡
type FizzConfig struct {
	Count        int        `yaml:"count"`
	HalfExtent   mgl64.Vec3 `yaml:"halfExtent"`
	CenterY      float64    `yaml:"centerY"`
	Speed        Range      `yaml:"speed"`
	Size         Range      `yaml:"size"`
	Span         float64    `yaml:"span"`
	Floor        float64    `yaml:"floor"`
	WobbleAmp    float64    `yaml:"wobbleAmp"`
	WobbleFreqX  float64    `yaml:"wobbleFreqX"`
	WobbleFreqZ  float64    `yaml:"wobbleFreqZ"`
	ActivityGain float64    `yaml:"activityGain"`
	ScaleGain    float64    `yaml:"scaleGain"`
	Material     string     `yaml:"material"`
}

// LabelConfig 单个矿物标签
type LabelConfig struct {
	Name   string     `yaml:"name"`
	Anchor mgl64.Vec3 `yaml:"anchor"`
	Delay  float64    `yaml:"delay"`
}

// LabelsConfig 浮动标签
type LabelsConfig struct {
	BobAmp       float64       `yaml:"bobAmp"`
	BobFreq      float64       `yaml:"bobFreq"`
	PhaseScale   float64       `yaml:"phaseScale"`
	SpinAmp      float64       `yaml:"spinAmp"`
	SpinFreq     float64       `yaml:"spinFreq"`
	HaloOpacity  float64       `yaml:"haloOpacity"`
	CoreOpacity  float64       `yaml:"coreOpacity"`
	Drift        mgl64.Vec3    `yaml:"drift"`
	HaloMaterial string        `yaml:"haloMaterial"`
	CoreMaterial string        `yaml:"coreMaterial"`
	TextMaterial string        `yaml:"textMaterial"`
	Items        []LabelConfig `yaml:"items"`
}

// MaterialConfig 材质参数（声明式，渲染器负责解释）
type MaterialConfig struct {
	Color             string  `yaml:"color"`
	Opacity           float64 `yaml:"opacity"`
	Transparent       bool    `yaml:"transparent,omitempty"`
	Metalness         float64 `yaml:"metalness,omitempty"`
	Roughness         float64 `yaml:"roughness,omitempty"`
	Transmission      float64 `yaml:"transmission,omitempty"`
	Thickness         float64 `yaml:"thickness,omitempty"`
	IOR               float64 `yaml:"ior,omitempty"`
	Clearcoat         float64 `yaml:"clearcoat,omitempty"`
	EnvMapIntensity   float64 `yaml:"envMapIntensity,omitempty"`
	Emissive          string  `yaml:"emissive,omitempty"`
	EmissiveIntensity float64 `yaml:"emissiveIntensity,omitempty"`
	Additive          bool    `yaml:"additive,omitempty"`
	DoubleSided       bool    `yaml:"doubleSided,omitempty"`
	BackSide          bool    `yaml:"backSide,omitempty"`
}

// LoadSceneConfig 加载场景配置
//
// 从指定路径读取 YAML，覆盖到默认配置之上后校验。
//
// 参数:
//   - path: 配置文件路径（如 "data/scene.yaml"）
//
// 返回:
//   - *SceneConfig: 加载成功后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 从 YAML 字节解析场景配置
//
// 省略的字段沿用默认值；列表字段（如 segments、items）出现时整体替换。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 只做数值层面的检查；剖面几何（高度单调、无零长段）由 profile.Build 负责，
// 颜色格式由 material.NewLibrary 负责。
func (c *SceneConfig) Validate() error {
	windows := []struct {
		name string
		w    WindowConfig
	}{
		{"capTwist", c.Windows.CapTwist},
		{"waterDrop", c.Windows.WaterDrop},
		{"spill", c.Windows.Spill},
		{"splash", c.Windows.Splash},
		{"label", c.Windows.Label},
	}
	for _, w := range windows {
		if !(w.w.Length > 0) || !finite(w.w.Start) || !finite(w.w.Length) {
			return fmt.Errorf("%w: window %s length must be > 0, got %v", ErrInvalidConfig, w.name, w.w.Length)
		}
	}

	if err := c.Bottle.validate(); err != nil {
		return err
	}
	if err := c.Spill.validate(); err != nil {
		return err
	}
	if err := c.Splash.validate(); err != nil {
		return err
	}
	if err := c.Fizz.validate(); err != nil {
		return err
	}
	if err := c.Labels.validate(); err != nil {
		return err
	}

	for _, name := range c.ReferencedMaterials() {
		if _, ok := c.Materials[name]; !ok {
			return fmt.Errorf("%w: material %q is referenced but not defined", ErrInvalidConfig, name)
		}
	}
	return nil
}

func (b *BottleConfig) validate() error {
	if b.Scale <= 0 {
		return fmt.Errorf("%w: bottle scale must be > 0, got %v", ErrInvalidConfig, b.Scale)
	}
	if b.TwistTurns < 0 || b.MaxLift < 0 || b.MaxDrop < 0 || b.DropToScale < 0 {
		return fmt.Errorf("%w: bottle twistTurns/maxLift/maxDrop/dropToScale must be >= 0", ErrInvalidConfig)
	}
	if b.FloorScale <= 0 || b.FloorScale > 1 {
		return fmt.Errorf("%w: bottle floorScale must be in (0, 1], got %v", ErrInvalidConfig, b.FloorScale)
	}
	if len(b.FillSegments) == 0 {
		return fmt.Errorf("%w: bottle needs at least one fill segment", ErrInvalidConfig)
	}
	for i, s := range b.FillSegments {
		if s.Height <= 0 || s.BaseRadius <= 0 || s.TopRadius <= 0 {
			return fmt.Errorf("%w: fill segment %d must have positive height and radii", ErrInvalidConfig, i)
		}
	}
	if b.CapRidges < 0 {
		return fmt.Errorf("%w: capRidges must be >= 0, got %d", ErrInvalidConfig, b.CapRidges)
	}
	return nil
}

func (s *SpillConfig) validate() error {
	d := s.Droplets
	if d.Count < 0 {
		return fmt.Errorf("%w: droplet count must be >= 0, got %d", ErrInvalidConfig, d.Count)
	}
	if d.Period <= 0 {
		return fmt.Errorf("%w: droplet period must be > 0, got %v", ErrInvalidConfig, d.Period)
	}
	ranges := map[string]Range{
		"originY":   d.OriginY,
		"spread":    d.Spread,
		"velocityY": d.VelocityY,
		"velocityZ": d.VelocityZ,
		"size":      d.Size,
		"phase":     d.Phase,
	}
	for name, r := range ranges {
		if err := r.validate("droplets." + name); err != nil {
			return err
		}
	}
	for i, st := range s.Streams {
		if st.Name == "" {
			return fmt.Errorf("%w: stream %d has no name", ErrInvalidConfig, i)
		}
	}
	return nil
}

func (s *SplashConfig) validate() error {
	if s.Drops.Count < 0 {
		return fmt.Errorf("%w: splash drop count must be >= 0, got %d", ErrInvalidConfig, s.Drops.Count)
	}
	for name, r := range map[string]Range{"radius": s.Drops.Radius, "size": s.Drops.Size, "zOffset": s.Drops.ZOffset} {
		if err := r.validate("splash.drops." + name); err != nil {
			return err
		}
	}
	for i, r := range s.Rings {
		if r.Inner < 0 || r.Outer <= r.Inner {
			return fmt.Errorf("%w: splash ring %d needs 0 <= inner < outer", ErrInvalidConfig, i)
		}
	}
	sd := s.ScreenDrops
	if sd.Count < 0 || sd.DistCycle <= 0 || sd.ScaleCycle <= 0 {
		return fmt.Errorf("%w: screen drops need count >= 0 and positive cycles", ErrInvalidConfig)
	}
	return nil
}

func (f *FizzConfig) validate() error {
	if f.Count < 0 {
		return fmt.Errorf("%w: fizz count must be >= 0, got %d", ErrInvalidConfig, f.Count)
	}
	if f.Span <= 0 {
		return fmt.Errorf("%w: fizz span must be > 0, got %v", ErrInvalidConfig, f.Span)
	}
	if err := f.Speed.validate("fizz.speed"); err != nil {
		return err
	}
	return f.Size.validate("fizz.size")
}

func (l *LabelsConfig) validate() error {
	seen := make(map[string]bool, len(l.Items))
	for i, item := range l.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: label %d has no name", ErrInvalidConfig, i)
		}
		if seen[item.Name] {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidConfig, item.Name)
		}
		seen[item.Name] = true
		if item.Delay < 0 {
			return fmt.Errorf("%w: label %q delay must be >= 0, got %v", ErrInvalidConfig, item.Name, item.Delay)
		}
	}
	return nil
}

func (r Range) validate(name string) error {
	if !finite(r.Min) || !finite(r.Max) || r.Min > r.Max {
		return fmt.Errorf("%w: range %s invalid: min(%.3f) > max(%.3f)", ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}

// ReferencedMaterials 返回配置中引用的全部材质名（去重，保持首次出现顺序）
func (c *SceneConfig) ReferencedMaterials() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range FixedMaterials {
		add(name)
	}
	for _, b := range c.Bottle.Bands {
		add(b.Material)
	}
	for _, s := range c.Spill.Streams {
		add(s.Material)
	}
	add(c.Spill.Droplets.Material)
	add(c.Spill.Mist.Material)
	add(c.Splash.Drops.Material)
	for _, r := range c.Splash.Rings {
		add(r.Material)
	}
	add(c.Splash.ScreenDrops.Material)
	add(c.Fizz.Material)
	add(c.Labels.HaloMaterial)
	add(c.Labels.CoreMaterial)
	add(c.Labels.TextMaterial)
	return names
}

// FixedMaterials 场景节点固定使用的材质名
var FixedMaterials = []string{"plastic", "plasticInner", "water", "cap", "capRing"}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
