package spill

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/bottlefx/pkg/config"
)

// Droplet 水滴池中一个槽位的种子参数（初始化后不可变）
type Droplet struct {
	Origin   mgl64.Vec3
	Velocity mgl64.Vec3
	Size     float64
	Phase    float64
}

// DropletState 一个水滴的帧状态
type DropletState struct {
	Position mgl64.Vec3
	// Scale 统一缩放（已乘以水滴尺寸）
	Scale   float64
	Visible bool
}

// SeedDroplets 初始化水滴池
//
// 每个水滴从瓶口附近的小圆上出发，水平方向沿出发角散开，朝 +Z（镜头）飞行。
// 这是整个溢出效果中唯一使用随机数的地方。
//
// 参数:
//   - rng: 随机源
//   - cfg: 水滴池配置
//
// 返回:
//   - []Droplet: Count 个种子参数
func SeedDroplets(rng *rand.Rand, cfg config.DropletConfig) []Droplet {
	pool := make([]Droplet, cfg.Count)
	for i := range pool {
		angle := rng.Float64() * 2 * math.Pi
		spread := randomInRange(rng, cfg.Spread)
		sin, cos := math.Sincos(angle)
		pool[i] = Droplet{
			Origin: mgl64.Vec3{
				cos * cfg.OriginRadius,
				randomInRange(rng, cfg.OriginY),
				sin*cfg.OriginRadius + cfg.OriginZ,
			},
			Velocity: mgl64.Vec3{
				cos * spread,
				randomInRange(rng, cfg.VelocityY),
				randomInRange(rng, cfg.VelocityZ),
			},
			Size:  randomInRange(rng, cfg.Size),
			Phase: randomInRange(rng, cfg.Phase),
		}
	}
	return pool
}

// DropletAt 计算单个水滴在时间 t、强度 intensity 下的位置与缩放
//
// t' = mod(t*Rate + Phase, Period)，周期内位置对时间连续，只在回绕处跳变。
func DropletAt(d Droplet, cfg config.DropletConfig, t, intensity float64) DropletState {
	tc := cycle(clampTime(t)*cfg.Rate+d.Phase, cfg.Period)
	pos := mgl64.Vec3{
		d.Origin[0] + d.Velocity[0]*tc*intensity,
		d.Origin[1] + d.Velocity[1]*tc*intensity - 0.5*cfg.Gravity*tc*tc,
		d.Origin[2] + d.Velocity[2]*tc*intensity*cfg.DepthBoost,
	}
	grow := math.Max(0, (1+(pos[2]-d.Origin[2])*cfg.DepthScale)*intensity)
	return DropletState{
		Position: pos,
		Scale:    grow * d.Size,
		Visible:  grow > 0,
	}
}

// UpdateDroplets 原地更新整个水滴池的帧状态
//
// dst 长度不足时重新分配。强度 <= 0 时所有水滴隐藏，不计算变换。
func UpdateDroplets(dst []DropletState, pool []Droplet, cfg config.DropletConfig, t, intensity float64) []DropletState {
	if cap(dst) < len(pool) {
		dst = make([]DropletState, len(pool))
	}
	dst = dst[:len(pool)]
	if PhaseOf(intensity) != Active {
		for i := range dst {
			dst[i] = DropletState{}
		}
		return dst
	}
	for i, d := range pool {
		dst[i] = DropletAt(d, cfg, t, intensity)
	}
	return dst
}
