package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Screen draws lines into the current raylib frame.
type Screen struct {
	// Thickness in pixels. Values at or below 1 use the plain line routine.
	Thickness float32
}

// DrawLine implements LineDrawer.
func (s Screen) DrawLine(a, b r2.Vec, c color.RGBA) {
	start := rl.NewVector2(float32(a.X), float32(a.Y))
	end := rl.NewVector2(float32(b.X), float32(b.Y))
	if s.Thickness <= 1 {
		rl.DrawLineV(start, end, c)
		return
	}
	rl.DrawLineEx(start, end, s.Thickness, c)
}
