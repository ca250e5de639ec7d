package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"gopkg.in/yaml.v3"

	"github.com/decker502/bottlefx/pkg/progress"
	"github.com/decker502/bottlefx/pkg/scene"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// curve 一条激活曲线
type curve struct {
	Name   string
	Window progress.Window
	Values []float64
}

// sampleCurves 在 [0, 1] 上均匀采样所有窗口（含每个标签的后移窗口）
func sampleCurves(sc *scene.Scene, samples int) []curve {
	if samples < 2 {
		samples = 2
	}
	ws := sc.Windows()
	curves := []curve{
		{Name: "capTwist", Window: ws.CapTwist},
		{Name: "waterDrop", Window: ws.WaterDrop},
		{Name: "spill", Window: ws.Spill},
		{Name: "splash", Window: ws.Splash},
	}
	for _, item := range sc.Config().Labels.Items {
		curves = append(curves, curve{Name: "label " + item.Name, Window: ws.Label.Delayed(item.Delay)})
	}

	for i := range curves {
		values := make([]float64, samples)
		for k := range values {
			values[k] = curves[i].Window.Activation(float64(k) / float64(samples-1))
		}
		curves[i].Values = values
	}
	return curves
}

// renderReport 生成时间线报告：窗口表格加上每条曲线的 ASCII 图
func renderReport(sc *scene.Scene, samples int) string {
	curves := sampleCurves(sc, samples)

	var table strings.Builder
	for _, c := range curves {
		table.WriteString(labelStyle.Render(c.Name))
		table.WriteString(valueStyle.Render(fmt.Sprintf("%.3f → %.3f  %s", c.Window.Start, c.Window.End(), easingName(c.Window))))
		table.WriteString("\n")
	}

	mesh := sc.Profile().Mesh()
	bounds := sc.Profile().Bounds()
	var info strings.Builder
	fmt.Fprintf(&info, "profile   %d samples, %d triangles\n", len(sc.Profile().Points()), mesh.TriangleCount())
	fmt.Fprintf(&info, "height    %.2f → %.2f, max radius %.2f\n", bounds.MinHeight, bounds.MaxHeight, bounds.MaxRadius)
	fmt.Fprintf(&info, "materials %d", sc.Materials().Len())

	parts := []string{
		headerStyle.Render("Scroll timeline"),
		panelStyle.Render(strings.TrimRight(table.String(), "\n")),
		panelStyle.Render(info.String()),
	}
	for _, c := range curves[:4] {
		chart := asciigraph.Plot(c.Values,
			asciigraph.Height(5),
			asciigraph.Width(samples),
			asciigraph.Precision(2),
			asciigraph.Caption(c.Name+" "+c.Window.String()))
		parts = append(parts, graphStyle.Render(chart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func easingName(w progress.Window) string {
	if w.Easing == "" {
		return "linear"
	}
	return w.Easing
}

// nodeDump 节点的 YAML 形式
type nodeDump struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent,omitempty"`
	Shape    string     `yaml:"shape"`
	Position mgl64.Vec3 `yaml:"position,flow"`
	Rotation mgl64.Vec3 `yaml:"rotation,flow"`
	Scale    mgl64.Vec3 `yaml:"scale,flow"`
	Material string     `yaml:"material,omitempty"`
	Text     string     `yaml:"text,omitempty"`
	Opacity  float64    `yaml:"opacity"`
}

// frameDump 一帧的 YAML 形式（只包含可见节点）
type frameDump struct {
	Progress    float64            `yaml:"progress"`
	Elapsed     float64            `yaml:"elapsed"`
	Activations map[string]float64 `yaml:"activations"`
	SpillPhase  string             `yaml:"spillPhase"`
	SplashPhase string             `yaml:"splashPhase"`
	Labels      []string           `yaml:"labels,flow"`
	Nodes       []nodeDump         `yaml:"nodes"`
}

// dumpFrame 把一帧序列化为 YAML
func dumpFrame(out scene.FrameOutputs) ([]byte, error) {
	a := out.Activations
	d := frameDump{
		Progress: out.Progress,
		Elapsed:  out.Elapsed,
		Activations: map[string]float64{
			"capTwist":  a.CapTwist,
			"waterDrop": a.WaterDrop,
			"spill":     a.Spill,
			"splash":    a.Splash,
		},
		SpillPhase:  out.Spill.Phase.String(),
		SplashPhase: out.Spill.SplashPhase.String(),
		Labels:      []string{},
	}
	for _, l := range out.Labels {
		d.Labels = append(d.Labels, l.Name)
	}
	for _, n := range out.Nodes() {
		if !n.Visible {
			continue
		}
		d.Nodes = append(d.Nodes, nodeDump{
			Name:     n.Name,
			Parent:   n.Parent,
			Shape:    string(n.Shape.Kind),
			Position: n.Transform.Position,
			Rotation: n.Transform.Rotation,
			Scale:    n.Transform.Scale,
			Material: n.Material,
			Text:     n.Text,
			Opacity:  n.Opacity,
		})
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frame: %w", err)
	}
	return data, nil
}
