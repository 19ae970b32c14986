// Package controls turns a per-frame snapshot of keyboard and mouse state into
// camera motion, walk mode and object editing. It never talks to the window
// directly, so everything here runs headless.
package controls

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/camera"
	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/scene"
)

// Keys holds the movement keys held this frame.
type Keys struct {
	Forward, Back bool // W, S
	Left, Right   bool // A, D
	Up, Down      bool // space, shift (ignored in walk mode)

	TurnUp, TurnDown, TurnLeft, TurnRight bool // arrow keys
}

// Input is everything the controller reads for one frame. Mouse coordinates
// are in screen pixels with y growing downwards.
type Input struct {
	Keys

	Jump      bool    // space pressed this frame
	ZoomSteps float64 // +1 per zoom-in press, -1 per zoom-out press

	Mouse      r2.Vec
	MouseDelta r2.Vec
	Wheel      float64

	Look bool // left button held
	Grab bool // right button held
	Spin bool // middle button held

	// OverUI suppresses mouse look and picking while the pointer is on a panel.
	OverUI bool
}

// Controller applies Input to a camera and a scene.
type Controller struct {
	cam   *camera.Camera
	scene *scene.Scene

	walk        config.WalkConfig
	edit        config.EditConfig
	keyZoomStep float64

	walking  bool
	velocity r3.Vec // camera velocity in walk mode

	grabbing bool
	held     ecs.Entity
	heldMesh *mesh.Mesh
	heldDist float64
}

// New creates a controller for cam and s.
func New(cam *camera.Camera, s *scene.Scene, cfg *config.Config) *Controller {
	c := &Controller{cam: cam, scene: s}
	c.SetConfig(cfg)
	return c
}

// SetConfig replaces the walk, edit and zoom settings.
func (c *Controller) SetConfig(cfg *config.Config) {
	c.walk = cfg.Walk
	c.edit = cfg.Edit
	c.keyZoomStep = cfg.Camera.KeyZoomStep
}

// Walking reports whether walk mode is on.
func (c *Controller) Walking() bool {
	return c.walking
}

// SetWalking turns walk mode on or off. Leaving walk mode drops any vertical
// velocity picked up from jumping or falling.
func (c *Controller) SetWalking(on bool) {
	if c.walking == on {
		return
	}
	c.walking = on
	c.velocity = r3.Vec{}
}

// Held returns the mesh being edited, if any.
func (c *Controller) Held() (*mesh.Mesh, bool) {
	if !c.grabbing {
		return nil, false
	}
	return c.heldMesh, true
}

// Release ends edit mode. The held body, if any, keeps its velocity.
func (c *Controller) Release() {
	if !c.grabbing {
		return
	}
	if b := c.scene.Body(c.held); b != nil {
		b.Held = false
	}
	c.grabbing = false
	c.heldMesh = nil
}

// Apply processes one frame of input.
func (c *Controller) Apply(in Input, dt float64) {
	if c.grabbing && !c.scene.Alive(c.held) {
		c.grabbing = false
		c.heldMesh = nil
	}

	c.cam.Update(c.moveVector(in.Keys), turnVector(in.Keys), false, dt)
	if c.walking {
		c.applyWalk(in.Jump, dt)
	}

	if in.Look && !c.grabbing && !in.OverUI {
		c.cam.Update(r3.Vec{}, r2.Vec{X: in.MouseDelta.X, Y: -in.MouseDelta.Y}, true, dt)
	}

	c.applyEdit(in, dt)

	if in.Wheel != 0 {
		if c.grabbing {
			step := in.Wheel * c.heldDist * c.edit.TranslationSpeed * c.edit.ScrollSpeed
			c.heldMesh.Position = r3.Add(c.heldMesh.Position, r3.Scale(step, c.cam.Forward()))
		} else if !in.OverUI {
			c.cam.Zoom(in.Wheel)
		}
	}
	if in.ZoomSteps != 0 {
		c.cam.Zoom(in.ZoomSteps * c.keyZoomStep)
	}
}

func (c *Controller) moveVector(k Keys) r3.Vec {
	fwd := c.cam.Forward()
	fwd.Y = 0
	right := c.cam.Right()

	var move r3.Vec
	if k.Forward {
		move = r3.Add(move, fwd)
	}
	if k.Back {
		move = r3.Sub(move, fwd)
	}
	if k.Right {
		move = r3.Add(move, right)
	}
	if k.Left {
		move = r3.Sub(move, right)
	}
	if !c.walking {
		if k.Up {
			move.Y++
		}
		if k.Down {
			move.Y--
		}
	}
	return move
}

func turnVector(k Keys) r2.Vec {
	var turn r2.Vec
	if k.TurnUp {
		turn.Y++
	}
	if k.TurnDown {
		turn.Y--
	}
	if k.TurnLeft {
		turn.X--
	}
	if k.TurnRight {
		turn.X++
	}
	return turn
}

func (c *Controller) applyWalk(jump bool, dt float64) {
	ground := c.walk.FloorHeight + c.walk.PlayerHeight
	pos := c.cam.Position
	onGround := pos.Y <= ground

	if jump && onGround {
		c.velocity.Y += c.walk.JumpSpeed
	}
	if pos.Y > ground || c.velocity.Y > 0 {
		c.velocity.Y += c.walk.Gravity * dt
		pos = r3.Add(pos, r3.Scale(dt, c.velocity))
	}
	if pos.Y < ground {
		pos.Y = ground
		c.velocity.Y = 0
	}
	c.cam.Position = pos
}

func (c *Controller) applyEdit(in Input, dt float64) {
	if !in.Grab {
		c.Release()
		return
	}
	if !c.grabbing {
		if in.OverUI {
			return
		}
		if !c.grab(in.Mouse) {
			return
		}
	}

	// Screen y grows downwards; the camera's up does not.
	dx, dy := in.MouseDelta.X, -in.MouseDelta.Y
	body := c.scene.Body(c.held)

	if in.Spin {
		if dx == 0 && dy == 0 {
			return
		}
		rot := r3.Scale(c.edit.RotationSpeed, r3.Sub(r3.Scale(dx, c.cam.Up()), r3.Scale(dy, c.cam.Right())))
		c.heldMesh.Rotate(rot)
		if body != nil && dt > 0 {
			body.AngularVelocity = r3.Scale(1/dt, rot)
		}
		return
	}

	change := r3.Add(r3.Scale(dx, c.cam.Right()), r3.Scale(dy, c.cam.Up()))
	change = r3.Scale(c.heldDist*c.edit.TranslationSpeed, change)
	c.heldMesh.Position = r3.Add(c.heldMesh.Position, change)
	if body != nil {
		if math.Hypot(dx, dy) > c.edit.MinDrag && dt > 0 {
			body.Velocity = r3.Scale(1/dt, change)
		} else {
			body.Velocity = r3.Vec{}
		}
	}
}

// grab picks the model whose projected centre is nearest the pointer, within
// a radius that shrinks with distance.
func (c *Controller) grab(pointer r2.Vec) bool {
	best := math.Inf(1)
	found := false
	c.scene.Each(func(e ecs.Entity, m *mesh.Mesh) {
		if c.scene.IsBoundary(e) {
			return
		}
		p := c.cam.Transform(m.Position)
		if !c.cam.InBounds(p) {
			return
		}
		dist := c.cam.Distance(m.Position)
		if dist <= 0 {
			return
		}
		d := r2.Norm(r2.Sub(pointer, p))
		if d < c.edit.GrabRange/dist && d < best {
			best = d
			found = true
			c.held = e
			c.heldMesh = m
			c.heldDist = dist
		}
	})
	if !found {
		return false
	}
	c.grabbing = true
	if b := c.scene.Body(c.held); b != nil {
		b.Held = true
	}
	slog.Debug("grabbed model", "distance", c.heldDist, "position", c.heldMesh.Position)
	return true
}
