package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/demo"
	"github.com/pthm-cable/wireframe/scene"
	"github.com/pthm-cable/wireframe/ui"
)

func defaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := New(defaults(t), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestHeadlessRunWritesOutput(t *testing.T) {
	base := t.TempDir()
	g := newGame(t, Options{Seed: 1, Demo: demo.Box, RunID: "run", OutputDir: base})

	for i := 0; i < 400; i++ {
		g.UpdateHeadless(0.016)
	}
	if g.Frame() != 400 {
		t.Errorf("Frame = %d, want 400", g.Frame())
	}
	g.Unload()

	dir := filepath.Join(base, "run")
	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// 400 frames of 0.016s is one full 5s window plus the partial window
	// flushed by Unload.
	if len(lines) != 3 {
		t.Errorf("stats.csv has %d lines, want 3:\n%s", len(lines), data)
	}
	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestHeadlessRunIsDeterministic(t *testing.T) {
	run := func() uint64 {
		g := newGame(t, Options{Seed: 7, Demo: demo.Box})
		defer g.Unload()
		for i := 0; i < 200; i++ {
			g.UpdateHeadless(0.016)
		}
		return g.Scene().Digest()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed gave digests %x and %x", a, b)
	}
}

func TestNewRejectsUnknownDemo(t *testing.T) {
	if _, err := New(defaults(t), Options{Demo: "nope"}); err == nil {
		t.Error("expected an error for an unknown demo")
	}
}

func TestConfigReloadAppliesTuning(t *testing.T) {
	reload := make(chan *config.Config, 1)
	g := newGame(t, Options{Demo: demo.Planets, Reload: reload})
	defer g.Unload()

	cfg := defaults(t)
	cfg.Camera.FieldOfView = 900
	cfg.Physics.MaxStep = 0.01
	reload <- cfg

	g.UpdateHeadless(0.016)

	if g.camera.FieldOfView != 900 {
		t.Errorf("FieldOfView = %v, want 900", g.camera.FieldOfView)
	}
	p := g.scene.Params()
	if p.MaxStep != 0.01 {
		t.Errorf("MaxStep = %v, want 0.01", p.MaxStep)
	}
	if !p.Gravitation {
		t.Error("reload must keep the demo's gravitation setting")
	}
	if g.collector.SimTime() != 0 {
		t.Error("a 0.016s step should be skipped with max_step 0.01")
	}
	if config.Cfg() != cfg {
		t.Error("reload should replace the global config")
	}
}

func TestPanelActions(t *testing.T) {
	g := newGame(t, Options{Demo: demo.Models})
	defer g.Unload()
	maxModels := g.cfg.Scene.MaxModels

	for i := 0; i < maxModels+2; i++ {
		g.handleActions(ui.Actions{CreateModel: true})
	}
	if got := g.scene.Counts().Props; got != maxModels {
		t.Errorf("Props = %d, want the limit %d", got, maxModels)
	}

	g.handleActions(ui.Actions{RemoveModels: true})
	if got := g.scene.Counts(); got != (scene.Counts{}) {
		t.Errorf("counts after Remove all = %+v", got)
	}

	g.handleActions(ui.Actions{Demo: demo.Planets})
	g.handleActions(ui.Actions{CreatePlanet: true})
	if got := g.scene.Counts().Bodies; got != 6 {
		t.Errorf("Bodies = %d, want sun + 4 planets + 1", got)
	}
	g.handleActions(ui.Actions{ResetPlanets: true})
	if got := g.scene.Counts().Bodies; got != 1 {
		t.Errorf("Bodies after reset = %d, want the sun only", got)
	}

	g.panels.Box = ui.BoxForm{Size: 10, Balls: 8}
	g.handleActions(ui.Actions{RerunBox: true})
	if got := g.scene.Counts(); got.Bodies != 8 || got.Planes != 6 {
		t.Errorf("box counts = %+v, want 8 bodies and 6 planes", got)
	}

	g.handleActions(ui.Actions{ToggleOSD: true})
	g.handleActions(ui.Actions{ToggleFloor: true})
	g.handleActions(ui.Actions{ToggleWalk: true})
	if !g.showOSD || !g.showFloor || !g.controls.Walking() {
		t.Error("toggles should flip OSD, floor and walk mode")
	}
}
