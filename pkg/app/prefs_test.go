package app

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// TestDefaultPrefs 测试默认偏好
func TestDefaultPrefs(t *testing.T) {
	p := DefaultPrefs()
	if p.AutoScroll {
		t.Error("AutoScroll: got true, want false")
	}
	if p.ScrollSpeed <= 0 || p.WheelStep <= 0 {
		t.Errorf("speed/step must be positive: %+v", p)
	}
	if !p.ShowHUD || !p.ShowProfile {
		t.Errorf("HUD and outline should be on by default: %+v", p)
	}
}

// TestPrefsStoreNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestPrefsStoreNilGdata(t *testing.T) {
	ps := NewPrefsStore(nil)
	if ps.Persistent() {
		t.Error("Persistent() = true without a gdata manager")
	}

	ps.Prefs().ScrollSpeed = 0.5
	if err := ps.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got %v", err)
	}
	if err := ps.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got %v", err)
	}
	if ps.Prefs().ScrollSpeed != DefaultPrefs().ScrollSpeed {
		t.Errorf("degraded Load() should reset to defaults, got %v", ps.Prefs().ScrollSpeed)
	}
}

// TestPrefsStoreRoundTrip 测试保存后重新加载
func TestPrefsStoreRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gdataManager, err := gdata.Open(gdata.Config{AppName: "test_bottlefx_prefs"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	ps := NewPrefsStore(gdataManager)
	if !ps.Persistent() {
		t.Fatal("Persistent() = false with a gdata manager")
	}
	ps.Prefs().AutoScroll = true
	ps.Prefs().ScrollSpeed = 0.25
	ps.Prefs().ShowHUD = false
	if err := ps.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewPrefsStore(gdataManager)
	got := reloaded.Prefs()
	if !got.AutoScroll || got.ScrollSpeed != 0.25 || got.ShowHUD {
		t.Errorf("reloaded prefs = %+v", got)
	}
	if got.WheelStep != DefaultPrefs().WheelStep {
		t.Errorf("WheelStep = %v, want default", got.WheelStep)
	}
}
