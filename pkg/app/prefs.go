package app

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerPrefs 预览器偏好设置
type ViewerPrefs struct {
	AutoScroll  bool    `yaml:"autoScroll"`  // 启动时自动滚动
	ScrollSpeed float64 `yaml:"scrollSpeed"` // 自动滚动速度（进度/秒）
	WheelStep   float64 `yaml:"wheelStep"`   // 滚轮每格的进度增量
	ShowHUD     bool    `yaml:"showHUD"`     // 显示状态信息
	ShowProfile bool    `yaml:"showProfile"` // 显示瓶身剖面轮廓
	ViewYaw     float64 `yaml:"viewYaw"`     // 观察角（弧度，绕 Y 轴）
}

// DefaultPrefs 返回默认偏好
func DefaultPrefs() *ViewerPrefs {
	return &ViewerPrefs{
		AutoScroll:  false,
		ScrollSpeed: 0.1,
		WheelStep:   0.02,
		ShowHUD:     true,
		ShowProfile: true,
		ViewYaw:     -0.6,
	}
}

// 存储路径常量
const (
	prefsObject   = "viewer"
	prefsProperty = "prefs"
)

// PrefsStore 偏好的加载与保存
type PrefsStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	prefs        *ViewerPrefs
}

// NewPrefsStore 创建偏好存储并尝试加载已保存的偏好
//
// 参数:
//   - gdataManager: gdata 存储管理器，可为 nil
//
// 返回:
//   - *PrefsStore: 偏好存储（加载失败时使用默认值）
func NewPrefsStore(gdataManager *gdata.Manager) *PrefsStore {
	ps := &PrefsStore{
		gdataManager: gdataManager,
		prefs:        DefaultPrefs(),
	}
	if err := ps.Load(); err != nil {
		log.Printf("[Prefs] Warning: %v (using defaults)", err)
	}
	return ps
}

// Load 从 gdata 加载偏好
func (ps *PrefsStore) Load() error {
	if ps.gdataManager == nil || !ps.gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		ps.prefs = DefaultPrefs()
		return nil
	}

	data, err := ps.gdataManager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		ps.prefs = DefaultPrefs()
		return fmt.Errorf("failed to load viewer prefs: %w", err)
	}

	// 旧版本缺少的字段保持默认
	loaded := DefaultPrefs()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		ps.prefs = DefaultPrefs()
		return fmt.Errorf("failed to unmarshal viewer prefs: %w", err)
	}
	ps.prefs = loaded
	log.Printf("[Prefs] Loaded: autoScroll=%v speed=%.3f", loaded.AutoScroll, loaded.ScrollSpeed)
	return nil
}

// Save 保存偏好，降级模式下直接返回 nil
func (ps *PrefsStore) Save() error {
	if ps.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(ps.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal viewer prefs: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save viewer prefs: %w", err)
	}
	log.Printf("[Prefs] Saved")
	return nil
}

// Prefs 返回当前偏好（可直接修改，Save 后持久化）
func (ps *PrefsStore) Prefs() *ViewerPrefs {
	return ps.prefs
}

// Persistent 是否可以持久化
func (ps *PrefsStore) Persistent() bool {
	return ps.gdataManager != nil
}
