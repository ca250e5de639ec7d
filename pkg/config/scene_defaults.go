package config

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSceneConfig 返回默认场景配置
//
// 时间窗口与粒子参数取自溢出效果的单一版本（水柱起点 0.2、飞溅起点 0.35），
// 剖面为 3.44 高的塑料水瓶。每次调用返回新的实例，可以放心修改。
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Seed: 0,
		Windows: WindowsConfig{
			CapTwist:  WindowConfig{Start: 0, Length: 0.2},
			WaterDrop: WindowConfig{Start: 0.2, Length: 0.5},
			Spill:     WindowConfig{Start: 0.2, Length: 0.35},
			Splash:    WindowConfig{Start: 0.35, Length: 0.3},
			Label:     WindowConfig{Start: 0.3, Length: 0.15},
		},
		Profile:   DefaultProfileConfig(),
		Bottle:    defaultBottleConfig(),
		Spill:     defaultSpillConfig(),
		Splash:    defaultSplashConfig(),
		Fizz:      defaultFizzConfig(),
		Labels:    defaultLabelsConfig(),
		Materials: defaultMaterials(),
	}
}

// DefaultProfileConfig 默认瓶身剖面（从瓶底到瓶口）
func DefaultProfileConfig() ProfileConfig {
	line := func(r, h float64) SegmentConfig {
		return SegmentConfig{Kind: "line", To: mgl64.Vec2{r, h}}
	}
	quad := func(cr, ch, r, h float64) SegmentConfig {
		return SegmentConfig{Kind: "quad", Control: mgl64.Vec2{cr, ch}, To: mgl64.Vec2{r, h}}
	}
	return ProfileConfig{
		Start: mgl64.Vec2{0.32, 0},
		Segments: []SegmentConfig{
			// 瓶底圆角
			quad(0.35, 0.03, 0.35, 0.08),
			// 防滑棱
			line(0.36, 0.15),
			line(0.34, 0.18),
			line(0.36, 0.22),
			line(0.34, 0.26),
			line(0.36, 0.30),
			// 瓶身（轻微沙漏形）
			quad(0.38, 0.5, 0.36, 0.8),
			quad(0.34, 1.0, 0.36, 1.2),
			quad(0.38, 1.5, 0.38, 1.8),
			quad(0.40, 2.2, 0.38, 2.5),
			// 肩部
			quad(0.35, 2.7, 0.28, 2.85),
			// 瓶颈收窄
			quad(0.22, 3.0, 0.18, 3.15),
			// 螺纹
			line(0.19, 3.2),
			line(0.17, 3.22),
			line(0.19, 3.25),
			line(0.17, 3.28),
			line(0.19, 3.32),
			// 瓶口唇边
			line(0.20, 3.38),
			quad(0.20, 3.42, 0.18, 3.44),
		},
		CurveDivisions: 100,
		RadialSegments: 64,
		CloseBottom:    true,
		CloseTop:       true,
	}
}

func defaultBottleConfig() BottleConfig {
	return BottleConfig{
		Scale:         0.85,
		TwistTurns:    3,
		MaxLift:       1.5,
		CapBaseHeight: 3.44,
		CapRadius:     0.215,
		CapRidges:     20,

		MaxDrop:           0.3,
		DropToScale:       1,
		FloorScale:        0.1,
		WaterBaseY:        0.1,
		GroupDropFactor:   0.5,
		SurfaceHeight:     2.6,
		SurfaceDropFactor: 0.8,
		SurfaceRadius:     0.30,
		FillSegments: []FillSegmentConfig{
			{BaseRadius: 0.30, TopRadius: 0.32, Height: 0.7, YOffset: 0.4},
			{BaseRadius: 0.32, TopRadius: 0.33, Height: 0.9, YOffset: 1.0},
			{BaseRadius: 0.33, TopRadius: 0.34, Height: 0.8, YOffset: 1.7},
			{BaseRadius: 0.34, TopRadius: 0.32, Height: 0.6, YOffset: 2.3},
		},

		Bands: []BandConfig{
			{Name: "wrap", Y: 1.4, Radius: 0.375, Height: 1.4, Material: "label"},
			{Name: "brand", Y: 1.5, Radius: 0.38, Height: 0.4, Material: "labelBrand"},
			{Name: "mountain", Y: 1.2, Radius: 0.378, Height: 0.15, Material: "labelMountain"},
			{Name: "minerals", Y: 0.85, Radius: 0.376, Height: 0.2, Material: "labelMinerals"},
		},
		Idle: IdleConfig{
			BaseY:    -0.5,
			BobAmp:   0.03,
			BobFreq:  0.5,
			SwayAmp:  0.03,
			SwayFreq: 0.3,
		},
	}
}

func defaultSpillConfig() SpillConfig {
	return SpillConfig{
		Streams: []StreamConfig{
			{
				Name:                "main",
				Base:                mgl64.Vec3{0, 2.8, 0},
				ZPerIntensity:       2,
				LengthPerIntensity:  3,
				OpacityPerIntensity: 0.75,
				RadiusTop:           0.06,
				RadiusBottom:        0.12,
				TiltX:               math.Pi/2 - 0.4,
				Wobble:              true,
				WobbleAmp:           0.05,
				WobbleFreq:          3,
				StretchAmp:          0.1,
				StretchFreq:         5,
				Material:            "stream",
			},
			{
				Name:                "secondary",
				Base:                mgl64.Vec3{0.05, 2.75, 0},
				ZPerIntensity:       1.8,
				LengthPerIntensity:  2.5,
				OpacityPerIntensity: 0.6,
				RadiusTop:           0.04,
				RadiusBottom:        0.08,
				TiltX:               math.Pi/2 - 0.35,
				Yaw:                 0.1,
				Material:            "streamSecondary",
			},
		},
		Droplets: DropletConfig{
			Count:        40,
			OriginRadius: 0.1,
			OriginY:      Range{Min: 2.8, Max: 3.1},
			OriginZ:      0.5,
			Spread:       Range{Min: 0.3, Max: 0.7},
			VelocityY:    Range{Min: 0.5, Max: 1.3},
			VelocityZ:    Range{Min: 1.5, Max: 3.5},
			Size:         Range{Min: 0.04, Max: 0.10},
			Phase:        Range{Min: 0, Max: 3},
			Rate:         0.8,
			Period:       4,
			Gravity:      1,
			DepthBoost:   1.5,
			DepthScale:   0.15,
			Material:     "droplet",
		},
		Mist: MistConfig{
			Base:                mgl64.Vec3{0, 2.2, 2},
			ZPerIntensity:       2,
			ScalePerIntensity:   mgl64.Vec3{1.5, 1.2, 0.5},
			OpacityPerIntensity: 0.25,
			Radius:              0.8,
			Material:            "mist",
		},
	}
}

func defaultSplashConfig() SplashConfig {
	return SplashConfig{
		Drops: SplashDropConfig{
			Count:       25,
			Center:      mgl64.Vec3{0, 1.5, 5},
			Radius:      Range{Min: 0.3, Max: 0.8},
			Size:        Range{Min: 0.08, Max: 0.20},
			ZOffset:     Range{Min: 4, Max: 6},
			Squash:      0.8,
			DepthFactor: 0.3,
			Material:    "splashDrop",
		},
		SwayAmp:  0.02,
		SwayFreq: 2,
		ImpactAt: mgl64.Vec3{0, 1.5, 6},
		Rings: []RingConfig{
			{Inner: 0.2, Outer: 0.8, ScaleFactor: 1, Opacity: 0.4, Material: "impactRing"},
			{Inner: 0.8, Outer: 1.2, ScaleFactor: 1.5, Opacity: 0.2, Material: "impactRipple"},
		},
		ScreenDrops: ScreenDropConfig{
			Count:      12,
			BaseDist:   0.4,
			DistStep:   0.3,
			DistCycle:  3,
			BaseScale:  0.08,
			ScaleStep:  0.02,
			ScaleCycle: 4,
			Squash:     0.7,
			Z:          0.1,
			Opacity:    0.9,
			Material:   "screenDrop",
		},
	}
}

func defaultFizzConfig() FizzConfig {
	return FizzConfig{
		Count:        50,
		HalfExtent:   mgl64.Vec3{2, 3, 2},
		CenterY:      1,
		Speed:        Range{Min: 0.2, Max: 0.6},
		Size:         Range{Min: 0.03, Max: 0.11},
		Span:         8,
		Floor:        -2,
		WobbleAmp:    0.15,
		WobbleFreqX:  1.5,
		WobbleFreqZ:  1.8,
		ActivityGain: 0.5,
		ScaleGain:    0.3,
		Material:     "fizz",
	}
}

func defaultLabelsConfig() LabelsConfig {
	return LabelsConfig{
		BobAmp:       0.1,
		BobFreq:      2,
		PhaseScale:   10,
		SpinAmp:      0.2,
		SpinFreq:     0.5,
		HaloOpacity:  0.3,
		CoreOpacity:  0.8,
		HaloMaterial: "labelHalo",
		CoreMaterial: "labelCore",
		TextMaterial: "labelText",
		Items: []LabelConfig{
			{Name: "B12", Anchor: mgl64.Vec3{-1.2, 2.0, 0.5}, Delay: 0},
			{Name: "Ca", Anchor: mgl64.Vec3{1.3, 1.8, 0.3}, Delay: 0.05},
			{Name: "Mg", Anchor: mgl64.Vec3{-1.0, 1.2, 0.8}, Delay: 0.1},
			{Name: "K", Anchor: mgl64.Vec3{1.1, 1.0, 0.6}, Delay: 0.15},
			{Name: "Zn", Anchor: mgl64.Vec3{-0.8, 0.5, 0.9}, Delay: 0.2},
			{Name: "Na", Anchor: mgl64.Vec3{0.9, 0.3, 0.7}, Delay: 0.25},
		},
	}
}

func defaultMaterials() map[string]MaterialConfig {
	return map[string]MaterialConfig{
		"plastic": {
			Color: "#e8f4f8", Opacity: 0.85, Transparent: true,
			Roughness: 0.1, Transmission: 0.92, Thickness: 0.3, IOR: 1.45,
			Clearcoat: 0.8, EnvMapIntensity: 1.5,
		},
		"plasticInner": {Color: "#d0f0ff", Opacity: 0.2, Transparent: true, BackSide: true},
		"water": {
			Color: "#a8e6ff", Opacity: 1,
			Transmission: 0.95, Thickness: 2, IOR: 1.33, Clearcoat: 0.5,
		},
		"cap":           {Color: "#0088cc", Opacity: 1, Metalness: 0.1, Roughness: 0.4},
		"capRing":       {Color: "#006699", Opacity: 1, Roughness: 0.5},
		"label":         {Color: "#0077be", Opacity: 0.95, Transparent: true, Metalness: 0.05, Roughness: 0.5},
		"labelBrand":    {Color: "#ffffff", Opacity: 1, Metalness: 0.1, Roughness: 0.5},
		"labelMountain": {Color: "#e0f4ff", Opacity: 1, Metalness: 0.1, Roughness: 0.4},
		"labelMinerals": {Color: "#00aadd", Opacity: 1, Metalness: 0.2, Roughness: 0.3},
		"stream": {
			Color: "#38bdf8", Opacity: 1, Transparent: true, DoubleSided: true,
			Transmission: 0.85, Thickness: 1, IOR: 1.33,
		},
		"streamSecondary": {
			Color: "#7dd3fc", Opacity: 1, Transparent: true, DoubleSided: true,
			Transmission: 0.9, Thickness: 0.8, IOR: 1.33,
		},
		"droplet": {
			Color: "#7dd3fc", Opacity: 0.85, Transparent: true,
			Transmission: 0.95, Thickness: 0.5, IOR: 1.33, EnvMapIntensity: 2,
		},
		"mist": {
			Color: "#e0f2fe", Opacity: 1, Transparent: true,
			Roughness: 0.5, Transmission: 0.7, Thickness: 0.3,
		},
		"splashDrop": {
			Color: "#7dd3fc", Opacity: 0.8, Transparent: true,
			Transmission: 0.92, Thickness: 0.4, IOR: 1.33, EnvMapIntensity: 2.5,
		},
		"impactRing":   {Color: "#7dd3fc", Opacity: 1, Transparent: true, Additive: true, DoubleSided: true},
		"impactRipple": {Color: "#38bdf8", Opacity: 1, Transparent: true, Additive: true, DoubleSided: true},
		"screenDrop": {
			Color: "#7dd3fc", Opacity: 1, Transparent: true,
			Transmission: 0.95, Thickness: 0.3,
		},
		"fizz": {
			Color: "#a8e6ff", Opacity: 0.5, Transparent: true,
			Transmission: 0.9, Thickness: 0.1, EnvMapIntensity: 1,
		},
		"labelHalo": {
			Color: "#00d4ff", Opacity: 1, Transparent: true, Roughness: 0.1,
			Emissive: "#00d4ff", EmissiveIntensity: 0.5,
		},
		"labelCore": {
			Color: "#ffffff", Opacity: 1, Transparent: true,
			Emissive: "#00d4ff", EmissiveIntensity: 1,
		},
		"labelText": {Color: "#ffffff", Opacity: 1, Transparent: true},
	}
}
