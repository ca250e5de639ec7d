package main

import (
	"math/rand"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/decker502/bottlefx/pkg/config"
	"github.com/decker502/bottlefx/pkg/scene"
)

func newScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.New(config.DefaultSceneConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("scene.New() error: %v", err)
	}
	return sc
}

// TestSampleCurves 曲线端点与单调性
func TestSampleCurves(t *testing.T) {
	curves := sampleCurves(newScene(t), 41)
	if len(curves) != 4+6 {
		t.Fatalf("curves = %d, want 10", len(curves))
	}
	for _, c := range curves {
		if len(c.Values) != 41 {
			t.Fatalf("%s: %d samples", c.Name, len(c.Values))
		}
		if c.Values[0] != 0 {
			t.Errorf("%s starts at %v", c.Name, c.Values[0])
		}
		if c.Values[len(c.Values)-1] != 1 {
			t.Errorf("%s ends at %v", c.Name, c.Values[len(c.Values)-1])
		}
		for i := 1; i < len(c.Values); i++ {
			if c.Values[i] < c.Values[i-1] {
				t.Fatalf("%s decreases at sample %d", c.Name, i)
			}
		}
	}
	if curves[4].Name != "label B12" || curves[9].Window.Start != curves[4].Window.Start+0.25 {
		t.Errorf("label curves = %s %v / %s %v", curves[4].Name, curves[4].Window, curves[9].Name, curves[9].Window)
	}
}

// TestRenderReport 报告包含每条主曲线
func TestRenderReport(t *testing.T) {
	report := renderReport(newScene(t), 30)
	for _, want := range []string{"Scroll timeline", "capTwist", "waterDrop", "spill", "splash", "label Na"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

// TestDumpFrame 帧导出只包含可见节点
func TestDumpFrame(t *testing.T) {
	sc := newScene(t)

	tests := []struct {
		name       string
		progress   float64
		wantLabels int
		wantSpill  string
	}{
		{name: "静止", progress: 0, wantLabels: 0, wantSpill: "idle"},
		{name: "喷出", progress: 0.42, wantLabels: 3, wantSpill: "active"},
		{name: "结束", progress: 1, wantLabels: 6, wantSpill: "active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := dumpFrame(sc.Update(scene.FrameContext{Progress: tt.progress, Elapsed: 1}))
			if err != nil {
				t.Fatalf("dumpFrame() error: %v", err)
			}
			var got frameDump
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("dump is not valid YAML: %v", err)
			}
			if len(got.Labels) != tt.wantLabels {
				t.Errorf("labels = %v, want %d", got.Labels, tt.wantLabels)
			}
			if got.SpillPhase != tt.wantSpill {
				t.Errorf("spillPhase = %q, want %q", got.SpillPhase, tt.wantSpill)
			}
			for _, n := range got.Nodes {
				if strings.HasPrefix(n.Name, "splash/") && tt.progress < 0.35 {
					t.Errorf("hidden splash node %q exported", n.Name)
				}
			}
		})
	}
}
