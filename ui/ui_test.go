package ui

import (
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/assets"
	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/demo"
)

func newPanels(t *testing.T) *Panels {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return NewPanels(cfg)
}

func TestPanels_MeasureBounds(t *testing.T) {
	p := newPanels(t)
	p.Measure(View{Demo: demo.Box})

	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"main panel", 20, 20, true},
		{"right of panels", 500, 20, false},
		{"between panels", 20, 100, false},
		{"box panel", 20, 200, true},
		{"below box panel", 20, 260, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPanels_DemoPanelFollowsView(t *testing.T) {
	p := newPanels(t)

	p.Measure(View{Demo: demo.Box})
	if len(p.rects) != 2 {
		t.Fatalf("expected main and box panels, got %d", len(p.rects))
	}
	box := p.rects[1].Height

	p.Measure(View{Demo: demo.Planets})
	if len(p.rects) != 2 || p.rects[1].Height <= box {
		t.Errorf("planet panel should be taller than the box panel: %v", p.rects)
	}

	p.Measure(View{})
	if len(p.rects) != 1 {
		t.Errorf("no demo panel without a demo, got %d panels", len(p.rects))
	}
}

func TestPlanetForm_BodyConfig(t *testing.T) {
	f := PlanetForm{
		Color:    [3]float32{300, 128.7, -5},
		Position: [3]float32{1, 2, 3},
		Velocity: [3]float32{0, -1, 0},
		Mass:     50,
		Size:     0.5,
	}
	bc := f.BodyConfig()

	if bc.Model != assets.Sphere {
		t.Errorf("Model = %q", bc.Model)
	}
	if bc.Color != (config.RGB{255, 128, 0}) {
		t.Errorf("Color = %v, want clamped {255 128 0}", bc.Color)
	}
	if bc.Position.R3() != (r3.Vec{X: 1, Y: 2, Z: 3}) || bc.Velocity.R3() != (r3.Vec{Y: -1}) {
		t.Errorf("unexpected vectors %v %v", bc.Position, bc.Velocity)
	}
	if bc.Mass != 50 || bc.Size != 0.5 {
		t.Errorf("Mass/Size = %v/%v", bc.Mass, bc.Size)
	}
}

func TestPanels_ModelConfigAndBox(t *testing.T) {
	p := newPanels(t)
	names := assets.Names()

	p.Model.Model = len(names) + 1
	if got := p.ModelConfig().Model; got != names[1] {
		t.Errorf("Model = %q, want %q (index wraps)", got, names[1])
	}

	p.Box = BoxForm{Size: 12.6, Balls: 7.4}
	size, balls := p.BoxSize()
	if size != 13 || balls != 7 {
		t.Errorf("BoxSize = %d, %d, want 13, 7", size, balls)
	}
}

func TestOSDLines(t *testing.T) {
	lines := OSDLines(OSDData{
		FPS:         60,
		FrameTime:   16 * time.Millisecond,
		Position:    r3.Vec{X: 1, Y: 2, Z: 3},
		FieldOfView: 600,
		Walking:     true,
		Editing:     true,
	})
	text := strings.Join(lines, "\n")

	for _, want := range []string{"FPS 60", "Position (1.00, 2.00, 3.00)", "FOV 600", "Mode walk (editing)"} {
		if !strings.Contains(text, want) {
			t.Errorf("OSD missing %q:\n%s", want, text)
		}
	}
}
