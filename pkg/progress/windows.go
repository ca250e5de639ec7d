package progress

import (
	"fmt"

	"github.com/decker502/bottlefx/pkg/config"
)

// Windows 场景中所有命名激活窗口
//
// 各窗口相互独立，可以重叠。
type Windows struct {
	CapTwist  Window // 瓶盖拧开
	WaterDrop Window // 水位下降
	Spill     Window // 水流喷出
	Splash    Window // 飞溅冲击（晚于 Spill）
	Label     Window // 标签基准窗口，每个标签再按 delay 后移
}

// Activations 一帧内所有效果的激活值
//
// 映射器在每帧最先求值，下游（瓶体运动学、粒子、标签）只读取这里的结果。
type Activations struct {
	Progress  float64 // 原始进度（未截断，标签漂移等效果直接使用）
	CapTwist  float64
	WaterDrop float64
	Spill     float64
	Splash    float64
}

// NewWindows 根据配置构造全部窗口
//
// 任何一个窗口非法都会返回错误，错误信息带窗口名称。
func NewWindows(cfg config.WindowsConfig) (Windows, error) {
	var ws Windows
	entries := []struct {
		name string
		src  config.WindowConfig
		dst  *Window
	}{
		{"capTwist", cfg.CapTwist, &ws.CapTwist},
		{"waterDrop", cfg.WaterDrop, &ws.WaterDrop},
		{"spill", cfg.Spill, &ws.Spill},
		{"splash", cfg.Splash, &ws.Splash},
		{"label", cfg.Label, &ws.Label},
	}
	for _, e := range entries {
		w, err := NewWindow(e.src.Start, e.src.Length, e.src.Easing)
		if err != nil {
			return Windows{}, fmt.Errorf("window %s: %w", e.name, err)
		}
		*e.dst = w
	}
	return ws, nil
}

// Evaluate 计算进度 p 下所有窗口的激活值
func (ws Windows) Evaluate(p float64) Activations {
	return Activations{
		Progress:  p,
		CapTwist:  ws.CapTwist.Activation(p),
		WaterDrop: ws.WaterDrop.Activation(p),
		Spill:     ws.Spill.Activation(p),
		Splash:    ws.Splash.Activation(p),
	}
}
