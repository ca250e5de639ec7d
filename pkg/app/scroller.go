package app

import (
	"github.com/decker502/bottlefx/pkg/progress"
)

// Scroller 把滚轮、按键和自动滚动转换成 [0, 1] 内的进度
//
// 自动滚动在两端之间往返。
type Scroller struct {
	Progress float64
	Auto     bool
	Speed    float64
	Step     float64

	dir float64
}

// NewScroller 按偏好创建滚动器
func NewScroller(p *ViewerPrefs) *Scroller {
	s := &Scroller{
		Auto:  p.AutoScroll,
		Speed: p.ScrollSpeed,
		Step:  p.WheelStep,
		dir:   1,
	}
	if s.Step <= 0 {
		s.Step = DefaultPrefs().WheelStep
	}
	return s
}

// Advance 推进一帧
//
// 参数:
//   - dt: 帧时长（秒）
//   - wheel: 本帧滚轮增量（向下为正，单位为格）
//
// 返回:
//   - float64: 新的进度
func (s *Scroller) Advance(dt, wheel float64) float64 {
	if wheel != 0 {
		// 手动滚动时暂停自动滚动
		s.Auto = false
		s.Progress = progress.Clamp01(s.Progress + wheel*s.Step)
		return s.Progress
	}
	if !s.Auto {
		return s.Progress
	}

	if s.dir == 0 {
		s.dir = 1
	}
	next := s.Progress + s.dir*s.Speed*dt
	switch {
	case next >= 1:
		next = 1
		s.dir = -1
	case next <= 0:
		next = 0
		s.dir = 1
	}
	s.Progress = next
	return s.Progress
}

// Jump 直接设置进度
func (s *Scroller) Jump(p float64) {
	s.Progress = progress.Clamp01(p)
}
