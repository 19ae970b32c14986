// Package camera provides the perspective camera that projects world points
// onto the screen.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/vecmath"
)

// DefaultZoomBase is the per-step factor applied by Zoom.
const DefaultZoomBase = 1.1

// Camera looks down its local -Z axis from Position, turned by yaw about the
// world Y axis and by pitch above/below the horizon.
type Camera struct {
	Position r3.Vec

	// MaxVerticalAngle clamps pitch to keep the basis away from the poles.
	MaxVerticalAngle float64
	TurnSpeed        float64 // radians per second for key turns
	MoveSpeed        float64 // units per second
	MouseSensitivity float64 // radians per second per pixel of drag
	FieldOfView      float64 // projection scale in pixels
	ZoomBase         float64

	// yaw, pitch. Only changed through setRotation so the basis is never stale.
	rotation r2.Vec

	forward, right, up r3.Vec

	width, height int
	center        r2.Vec
	margin        r2.Vec
	offscreen     r2.Vec
}

// Options holds the camera's construction parameters.
type Options struct {
	Position         r3.Vec
	Rotation         r2.Vec // yaw, pitch
	MaxVerticalAngle float64
	TurnSpeed        float64
	MoveSpeed        float64
	MouseSensitivity float64
	FieldOfView      float64
	ZoomBase         float64 // DefaultZoomBase when zero
	Width, Height    int
}

// New creates a camera for a width×height viewport.
func New(opts Options) *Camera {
	c := &Camera{
		Position:         opts.Position,
		MaxVerticalAngle: opts.MaxVerticalAngle,
		TurnSpeed:        opts.TurnSpeed,
		MoveSpeed:        opts.MoveSpeed,
		MouseSensitivity: opts.MouseSensitivity,
		FieldOfView:      opts.FieldOfView,
		ZoomBase:         opts.ZoomBase,
	}
	if c.ZoomBase == 0 {
		c.ZoomBase = DefaultZoomBase
	}
	c.Resize(opts.Width, opts.Height)
	c.setRotation(opts.Rotation)
	return c
}

// Resize changes the viewport. The margin is a quarter of each dimension.
func (c *Camera) Resize(width, height int) {
	c.width, c.height = width, height
	c.center = r2.Vec{X: float64(width / 2), Y: float64(height / 2)}
	c.margin = r2.Vec{X: float64(width / 4), Y: float64(height / 4)}
	c.offscreen = r2.Vec{X: -c.margin.X - 1, Y: -c.margin.Y - 1}
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (width, height int) {
	return c.width, c.height
}

// Center returns the viewport centre.
func (c *Camera) Center() r2.Vec {
	return c.center
}

// Update moves the camera by move·MoveSpeed·dt and turns it by
// delta·speed·dt, where speed is MouseSensitivity for pointer drags and
// TurnSpeed otherwise.
func (c *Camera) Update(move r3.Vec, delta r2.Vec, pointerDrag bool, dt float64) {
	if !vecmath.IsZero(move) {
		c.Position = r3.Add(c.Position, r3.Scale(c.MoveSpeed*dt, move))
	}
	if delta.X != 0 || delta.Y != 0 {
		speed := c.TurnSpeed
		if pointerDrag {
			speed = c.MouseSensitivity
		}
		c.setRotation(r2.Add(c.rotation, r2.Scale(speed*dt, delta)))
	}
}

// Zoom scales the field of view by ZoomBase^scale.
func (c *Camera) Zoom(scale float64) {
	c.FieldOfView *= math.Pow(c.ZoomBase, scale)
}

// Rotation returns (yaw, pitch).
func (c *Camera) Rotation() r2.Vec {
	return c.rotation
}

// SetRotation sets (yaw, pitch), clamping pitch.
func (c *Camera) SetRotation(rot r2.Vec) {
	c.setRotation(rot)
}

func (c *Camera) setRotation(rot r2.Vec) {
	if math.Abs(rot.Y) > c.MaxVerticalAngle {
		rot.Y = math.Copysign(c.MaxVerticalAngle, rot.Y)
	}
	c.rotation = rot
	c.computeBasis()
}

func (c *Camera) computeBasis() {
	yaw, pitch := c.rotation.X, c.rotation.Y
	c.forward = vecmath.Unit(r3.Vec{X: math.Sin(yaw), Y: math.Sin(pitch), Z: -math.Cos(yaw)})
	// Unit length by construction; deliberately not renormalized.
	c.right = r3.Vec{X: math.Cos(yaw), Y: 0, Z: math.Sin(yaw)}
	c.up = vecmath.Unit(r3.Cross(c.right, c.forward))
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vec { return c.forward }

// Right returns the horizontal right vector.
func (c *Camera) Right() r3.Vec { return c.right }

// Up returns the unit up vector.
func (c *Camera) Up() r3.Vec { return c.up }

// Transform projects a world point to screen coordinates. Points at or behind
// the camera map to Offscreen.
func (c *Camera) Transform(p r3.Vec) r2.Vec {
	rel := r3.Sub(p, c.Position)
	x, y, z := rel.X, rel.Y, rel.Z
	x, z = vecmath.Rotate2D(x, z, c.rotation.X)
	y, z = vecmath.Rotate2D(y, z, c.rotation.Y)
	if z >= 0 {
		return c.offscreen
	}
	s := c.FieldOfView / z
	return r2.Vec{X: c.center.X - x*s, Y: c.center.Y + y*s}
}

// Offscreen is the point Transform returns for anything it cannot project.
// It always fails InBounds.
func (c *Camera) Offscreen() r2.Vec {
	return c.offscreen
}

// InBounds reports whether p lies within the viewport grown by the margin on
// every side, edges included.
func (c *Camera) InBounds(p r2.Vec) bool {
	return p.X >= -c.margin.X && p.X <= float64(c.width)+c.margin.X &&
		p.Y >= -c.margin.Y && p.Y <= float64(c.height)+c.margin.Y
}

// Distance returns the distance from the camera to p.
func (c *Camera) Distance(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, c.Position))
}
