package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/scene"
)

// OSDData is what the on-screen display shows.
type OSDData struct {
	FPS       int32
	FrameTime time.Duration

	Position    r3.Vec
	Rotation    r2.Vec // yaw, pitch
	FieldOfView float64

	Forward, Right, Up r3.Vec

	Walking bool
	Editing bool
	Counts  scene.Counts
	SimTime float64
}

// OSDLines formats d one fact per line.
func OSDLines(d OSDData) []string {
	mode := "fly"
	if d.Walking {
		mode = "walk"
	}
	if d.Editing {
		mode += " (editing)"
	}
	return []string{
		fmt.Sprintf("FPS %d  frame %s", d.FPS, d.FrameTime.Round(10*time.Microsecond)),
		"Position " + formatVec(d.Position),
		fmt.Sprintf("Yaw %.2f  pitch %.2f", d.Rotation.X, d.Rotation.Y),
		fmt.Sprintf("FOV %.0f", d.FieldOfView),
		"Forward " + formatVec(d.Forward),
		"Right   " + formatVec(d.Right),
		"Up      " + formatVec(d.Up),
		"Mode " + mode,
		fmt.Sprintf("Bodies %d  planes %d  models %d", d.Counts.Bodies, d.Counts.Planes, d.Counts.Props),
		fmt.Sprintf("Sim time %.1fs", d.SimTime),
	}
}

func formatVec(v r3.Vec) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// DrawOSD draws the display in the top-right corner of a screen of the given
// width.
func (r *Renderer) DrawOSD(screenWidth int32, d OSDData) {
	lines := OSDLines(d)
	const width = 300
	pad := r.Theme.Padding
	x := screenWidth - width - pad
	height := int32(len(lines))*r.Theme.LineHeight + 2*pad
	r.DrawPanel(rl.Rectangle{X: float32(x), Y: float32(pad), Width: width, Height: float32(height)})
	r.DrawLines(x+pad, 2*pad, lines)
}

// DrawHelp draws the key legend along the bottom of the screen.
func (r *Renderer) DrawHelp(screenHeight int32, help string) {
	rl.DrawText(help, r.Theme.Padding, screenHeight-r.Theme.LineHeight-r.Theme.Padding, r.Theme.FontSize, r.Theme.HelpColor)
}
