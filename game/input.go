package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/wireframe/controls"
	"github.com/pthm-cable/wireframe/demo"
)

const helpText = "WASD move  space/shift up/down  arrows turn  left drag look  right drag grab  " +
	"middle drag spin  wheel zoom  =/- fov  1/2/3 demos  tab walk  O osd  F floor"

// handleInput processes keyboard shortcuts and hands the rest of the frame's
// input to the controller.
func (g *Game) handleInput(dt float64) {
	g.handleResize()

	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree} {
		if rl.IsKeyPressed(key) && i < len(demo.Kinds) {
			g.logError("loading demo", g.LoadDemo(demo.Kinds[i]))
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.SetWalking(!g.controls.Walking())
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.showOSD = !g.showOSD
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.showFloor = !g.showFloor
	}

	g.controls.Apply(g.pollInput(), dt)
}

// handleResize propagates window size changes to the camera.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if cw, ch := g.camera.Viewport(); w == cw && h == ch {
		return
	}
	g.camera.Resize(w, h)
}

// pollInput snapshots the keyboard and mouse for the controller.
func (g *Game) pollInput() controls.Input {
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()

	overUI := g.panels.Contains(mouse.X, mouse.Y)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.uiDrag = overUI
	}
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.uiDrag = false
	}

	in := controls.Input{
		Keys: controls.Keys{
			Forward:   rl.IsKeyDown(rl.KeyW),
			Back:      rl.IsKeyDown(rl.KeyS),
			Left:      rl.IsKeyDown(rl.KeyA),
			Right:     rl.IsKeyDown(rl.KeyD),
			Up:        rl.IsKeyDown(rl.KeySpace),
			Down:      rl.IsKeyDown(rl.KeyLeftShift),
			TurnUp:    rl.IsKeyDown(rl.KeyUp),
			TurnDown:  rl.IsKeyDown(rl.KeyDown),
			TurnLeft:  rl.IsKeyDown(rl.KeyLeft),
			TurnRight: rl.IsKeyDown(rl.KeyRight),
		},
		Jump:       rl.IsKeyPressed(rl.KeySpace),
		Mouse:      r2.Vec{X: float64(mouse.X), Y: float64(mouse.Y)},
		MouseDelta: r2.Vec{X: float64(delta.X), Y: float64(delta.Y)},
		Wheel:      float64(rl.GetMouseWheelMove()),
		Look:       rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Grab:       rl.IsMouseButtonDown(rl.MouseButtonRight),
		Spin:       rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		OverUI:     overUI || g.uiDrag,
	}
	if rl.IsKeyPressed(rl.KeyEqual) {
		in.ZoomSteps++
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		in.ZoomSteps--
	}
	return in
}
