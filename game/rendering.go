package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/telemetry"
	"github.com/pthm-cable/wireframe/ui"
)

var heldColor = rl.Yellow

// Update runs input, physics and telemetry for one windowed frame.
func (g *Game) Update() {
	g.perf.StartTick()
	g.drainReloads()
	dt := float64(rl.GetFrameTime())

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput(dt)

	g.perf.StartPhase(telemetry.PhasePhysics)
	report := g.scene.Step(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.record(report, dt)
}

// Draw renders the frame and then carries out any panel actions.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseDraw)
	g.perf.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(g.cfg.Screen.Background.RGBA())

	if g.showFloor {
		g.wire.Draw(g.floor.Mesh)
	}
	held, editing := g.controls.Held()
	g.scene.Each(func(_ ecs.Entity, m *mesh.Mesh) {
		if editing && m == held {
			g.wire.DrawColored(m, heldColor)
			return
		}
		g.wire.Draw(m)
	})

	act := g.panels.Draw(ui.View{
		Demo:    g.builder.Current(),
		Walking: g.controls.Walking(),
		OSD:     g.showOSD,
		Floor:   g.showFloor,
	})
	if g.showOSD {
		g.ui.DrawOSD(int32(rl.GetScreenWidth()), g.osdData(editing))
	}
	g.ui.DrawHelp(int32(rl.GetScreenHeight()), helpText)

	rl.EndDrawing()
	g.perf.EndTick()

	g.handleActions(act)
}

func (g *Game) osdData(editing bool) ui.OSDData {
	return ui.OSDData{
		FPS:         rl.GetFPS(),
		FrameTime:   time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)),
		Position:    g.camera.Position,
		Rotation:    g.camera.Rotation(),
		FieldOfView: g.camera.FieldOfView,
		Forward:     g.camera.Forward(),
		Right:       g.camera.Right(),
		Up:          g.camera.Up(),
		Walking:     g.controls.Walking(),
		Editing:     editing,
		Counts:      g.scene.Counts(),
		SimTime:     g.collector.SimTime(),
	}
}
