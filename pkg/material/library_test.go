package material

import (
	"errors"
	"testing"

	"github.com/decker502/bottlefx/pkg/config"
)

// TestNewLibrary_Defaults 默认材质全部合法
func TestNewLibrary_Defaults(t *testing.T) {
	cfg := config.DefaultSceneConfig()
	lib, err := NewLibrary(cfg.Materials)
	if err != nil {
		t.Fatalf("NewLibrary() error: %v", err)
	}
	if lib.Len() != len(cfg.Materials) {
		t.Errorf("Len() = %d, want %d", lib.Len(), len(cfg.Materials))
	}
	for _, name := range cfg.ReferencedMaterials() {
		if _, ok := lib.Get(name); !ok {
			t.Errorf("referenced material %q missing", name)
		}
	}

	water, _ := lib.Get("water")
	if got := water.Color.Hex(); got != "#a8e6ff" {
		t.Errorf("water color = %s, want #a8e6ff", got)
	}
	if water.IOR != 1.33 || water.Transmission != 0.95 {
		t.Errorf("water params = %+v", water)
	}

	core, _ := lib.Get("labelCore")
	if !core.HasEmissive || core.Emissive.Hex() != "#00d4ff" {
		t.Errorf("labelCore emissive = %v (%v)", core.Emissive.Hex(), core.HasEmissive)
	}

	names := lib.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

// TestNewLibrary_Invalid 非法材质被拒绝
func TestNewLibrary_Invalid(t *testing.T) {
	tests := []struct {
		name string
		mc   config.MaterialConfig
	}{
		{"颜色格式错误", config.MaterialConfig{Color: "blue", Opacity: 1}},
		{"缺少井号", config.MaterialConfig{Color: "0088cc", Opacity: 1}},
		{"透明度越界", config.MaterialConfig{Color: "#0088cc", Opacity: 1.5}},
		{"粗糙度为负", config.MaterialConfig{Color: "#0088cc", Opacity: 1, Roughness: -0.1}},
		{"厚度为负", config.MaterialConfig{Color: "#0088cc", Opacity: 1, Thickness: -1}},
		{"折射率小于 1", config.MaterialConfig{Color: "#0088cc", Opacity: 1, IOR: 0.5}},
		{"自发光颜色错误", config.MaterialConfig{Color: "#0088cc", Opacity: 1, Emissive: "#zzzzzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLibrary(map[string]config.MaterialConfig{"m": tt.mc})
			if !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("NewLibrary() error = %v, want ErrInvalidMaterial", err)
			}
		})
	}
}

// TestMaterial_NRGBA 预览颜色带透明度
func TestMaterial_NRGBA(t *testing.T) {
	lib, err := NewLibrary(map[string]config.MaterialConfig{
		"cap":  {Color: "#0088cc", Opacity: 1},
		"mist": {Color: "#ffffff", Opacity: 0.5},
	})
	if err != nil {
		t.Fatalf("NewLibrary() error: %v", err)
	}

	capMat, _ := lib.Get("cap")
	c := capMat.NRGBA(1)
	if c.R != 0x00 || c.G != 0x88 || c.B != 0xcc || c.A != 255 {
		t.Errorf("cap NRGBA = %+v", c)
	}

	mist, _ := lib.Get("mist")
	if a := mist.NRGBA(0.5).A; a != 64 {
		t.Errorf("mist alpha = %d, want 64", a)
	}
	if a := mist.NRGBA(-1).A; a != 0 {
		t.Errorf("negative opacity alpha = %d, want 0", a)
	}
	if a := mist.NRGBA(10).A; a != 255 {
		t.Errorf("overflow opacity alpha = %d, want 255", a)
	}
}
