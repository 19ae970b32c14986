// Package game wires the scene, camera, controls and UI into the frame loop.
// Windowed runs poll raylib for input and draw; headless runs only step the
// physics and record telemetry.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/camera"
	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/controls"
	"github.com/pthm-cable/wireframe/demo"
	"github.com/pthm-cable/wireframe/physics"
	"github.com/pthm-cable/wireframe/renderer"
	"github.com/pthm-cable/wireframe/scene"
	"github.com/pthm-cable/wireframe/telemetry"
	"github.com/pthm-cable/wireframe/ui"
)

// Options holds game initialization parameters.
type Options struct {
	Seed      int64
	Demo      demo.Kind // empty = config default
	RunID     string
	OutputDir string // empty = no CSV output
	LogStats  bool

	// Reload delivers configs from config.Watch. May be nil.
	Reload <-chan *config.Config
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	scene    *scene.Scene
	builder  *demo.Builder
	camera   *camera.Camera
	controls *controls.Controller

	// Drawing
	wire      *renderer.Wireframe
	ui        *ui.Renderer
	panels    *ui.Panels
	floor     *physics.Plane // drawn only, never collided with
	showOSD   bool
	showFloor bool
	uiDrag    bool // left button went down over a panel

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	reload <-chan *config.Config
}

// New creates a game with the demo from opts loaded. It does not touch the
// window, so it is safe to call in headless runs.
func New(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		scene:     scene.New(physics.DefaultParams()),
		camera:    newCamera(cfg),
		ui:        ui.NewRenderer(),
		panels:    ui.NewPanels(cfg),
		collector: telemetry.NewCollector(opts.RunID, cfg.Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:  opts.LogStats,
		reload:    opts.Reload,
	}
	g.builder = demo.NewBuilder(cfg, g.rng)
	g.controls = controls.New(g.camera, g.scene, cfg)
	g.wire = renderer.NewWireframe(g.camera, renderer.Screen{Thickness: float32(cfg.Screen.LineThickness)})
	g.floor = newFloor(cfg)

	output, err := telemetry.NewOutputManager(opts.OutputDir, opts.RunID)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}
	g.output = output

	kind := opts.Demo
	if kind == "" {
		kind = demo.Kind(cfg.Demos.Default)
	}
	if err := g.LoadDemo(kind); err != nil {
		output.Close()
		return nil, err
	}
	return g, nil
}

func newCamera(cfg *config.Config) *camera.Camera {
	c := cfg.Camera
	return camera.New(camera.Options{
		Position:         c.Position.R3(),
		Rotation:         cfg.Derived.InitialRotation,
		MaxVerticalAngle: c.MaxVerticalAngle,
		TurnSpeed:        c.TurnSpeed,
		MoveSpeed:        c.MoveSpeed,
		MouseSensitivity: c.MouseSensitivity,
		FieldOfView:      c.FieldOfView,
		ZoomBase:         c.ZoomBase,
		Width:            cfg.Screen.Width,
		Height:           cfg.Screen.Height,
	})
}

func newFloor(cfg *config.Config) *physics.Plane {
	s := cfg.Scene
	return physics.NewPlane(r3.Vec{Y: s.FloorHeight}, r3.Vec{Y: 1}, s.FloorColor.RGBA(), s.FloorSize)
}

// LoadDemo replaces the scene with the named demo.
func (g *Game) LoadDemo(kind demo.Kind) error {
	g.controls.Release()
	if err := g.builder.Load(g.scene, kind); err != nil {
		return fmt.Errorf("loading %s demo: %w", kind, err)
	}
	c := g.scene.Counts()
	slog.Info("demo loaded", "demo", kind, "bodies", c.Bodies, "planes", c.Planes, "models", c.Props)
	return nil
}

// Scene returns the simulated scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Frame returns the number of frames simulated so far.
func (g *Game) Frame() int32 {
	return g.collector.Frame()
}

// UpdateHeadless advances the simulation by dt without reading input.
func (g *Game) UpdateHeadless(dt float64) {
	g.perf.StartTick()
	g.drainReloads()

	g.perf.StartPhase(telemetry.PhasePhysics)
	report := g.scene.Step(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.record(report, dt)
	g.perf.EndTick()
}

// record feeds a step report to telemetry and flushes completed windows.
func (g *Game) record(report physics.StepReport, dt float64) {
	if report.Skipped {
		slog.Debug("physics step skipped", "dt", dt, "max_step", g.scene.Params().MaxStep)
	}
	g.collector.Record(report, dt)
	if g.collector.ShouldFlush() {
		g.flushTelemetry()
	}
}

func (g *Game) flushTelemetry() {
	stats := g.collector.Flush(g.scene)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if err := g.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// drainReloads applies every config delivered since the last frame.
func (g *Game) drainReloads() {
	for {
		select {
		case cfg := <-g.reload:
			if cfg == nil {
				return
			}
			g.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig swaps in a reloaded config. Tuning takes effect immediately;
// the scene itself is only rebuilt on the next demo load.
func (g *Game) applyConfig(cfg *config.Config) {
	config.Set(cfg)
	g.cfg = cfg
	g.builder.SetConfig(cfg)
	g.controls.SetConfig(cfg)
	g.panels.SetConfig(cfg)
	g.floor = newFloor(cfg)

	c := cfg.Camera
	g.camera.MaxVerticalAngle = c.MaxVerticalAngle
	g.camera.TurnSpeed = c.TurnSpeed
	g.camera.MoveSpeed = c.MoveSpeed
	g.camera.MouseSensitivity = c.MouseSensitivity
	g.camera.FieldOfView = c.FieldOfView
	g.camera.ZoomBase = c.ZoomBase
	g.camera.SetRotation(g.camera.Rotation())

	p := g.scene.Params()
	p.G = cfg.Physics.GravitationalConstant
	p.Elasticity = cfg.Physics.Elasticity
	p.MaxStep = cfg.Physics.MaxStep
	g.scene.SetParams(p)

	g.wire = renderer.NewWireframe(g.camera, renderer.Screen{Thickness: float32(cfg.Screen.LineThickness)})
	slog.Info("config applied", "fov", c.FieldOfView, "max_step", p.MaxStep)
}

// handleActions carries out what the panels asked for.
func (g *Game) handleActions(act ui.Actions) {
	switch {
	case act.Demo != "":
		g.logError("loading demo", g.LoadDemo(act.Demo))
	case act.ToggleWalk:
		g.controls.SetWalking(!g.controls.Walking())
	case act.ToggleOSD:
		g.showOSD = !g.showOSD
	case act.ToggleFloor:
		g.showFloor = !g.showFloor
	case act.CreatePlanet:
		_, err := g.builder.CreatePlanet(g.scene, g.panels.Planet.BodyConfig())
		g.logError("creating planet", err)
	case act.ResetPlanets:
		g.controls.Release()
		g.logError("resetting planets", g.builder.ResetPlanets(g.scene))
	case act.CreateModel:
		err := g.builder.AddModel(g.scene, g.panels.ModelConfig())
		if errors.Is(err, demo.ErrTooManyModels) {
			slog.Warn("model not added", "reason", err, "max_models", g.cfg.Scene.MaxModels)
			return
		}
		g.logError("adding model", err)
	case act.RemoveModels:
		g.controls.Release()
		g.scene.ClearProps()
	case act.RerunBox:
		size, balls := g.panels.BoxSize()
		g.controls.Release()
		g.logError("rebuilding box", g.builder.LoadBox(g.scene, size, balls))
	}
}

func (g *Game) logError(what string, err error) {
	if err != nil {
		slog.Error(what+" failed", "error", err)
	}
}

// Unload flushes the last partial window and closes the output files.
func (g *Game) Unload() {
	if g.collector.Pending() {
		g.flushTelemetry()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
