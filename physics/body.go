// Package physics is a small rigid-body sandbox: bodies are wireframe meshes
// treated as spheres of their average vertex radius, with pairwise
// gravitation, elastic collisions and finite collision planes.
package physics

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
)

// Body is a mesh with mass and motion state.
type Body struct {
	*mesh.Mesh

	Mass            float64
	Velocity        r3.Vec
	Acceleration    r3.Vec
	AngularVelocity r3.Vec // axis-angle per second
	Force           r3.Vec // accumulated during a step, cleared after integration

	// Radius is the bounding-sphere radius used for every interaction.
	// Fixed at construction.
	Radius float64

	// Held bodies are skipped by integration (they are being dragged).
	Held bool
}

// NewBody wraps m as a physics body. The radius is computed once here.
func NewBody(m *mesh.Mesh, mass float64, velocity, angularVelocity r3.Vec) *Body {
	return &Body{
		Mesh:            m,
		Mass:            mass,
		Velocity:        velocity,
		AngularVelocity: angularVelocity,
		Radius:          AverageRadius(m.Vertices),
	}
}

// AverageRadius is the mean distance of the vertices from the local origin.
func AverageRadius(vertices []r3.Vec) float64 {
	if len(vertices) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vertices {
		sum += r3.Norm(v)
	}
	return sum / float64(len(vertices))
}

// Update advances the body by dt with semi-implicit Euler, then spins it by
// its angular velocity.
func (b *Body) Update(dt float64) {
	if b.Mass > 0 {
		b.Acceleration = r3.Scale(1/b.Mass, b.Force)
	} else {
		// Massless bodies ignore forces and drift at their current velocity.
		b.Acceleration = r3.Vec{}
	}
	b.Velocity = r3.Add(b.Velocity, r3.Scale(dt, b.Acceleration))
	b.Position = r3.Add(b.Position, r3.Scale(dt, b.Velocity))
	b.Rotate(r3.Scale(dt, b.AngularVelocity))
}

// GravitateWith adds the mutual attraction of b and other to both force
// accumulators. Overlapping bodies do not attract.
func (b *Body) GravitateWith(other *Body, g float64) {
	d := r3.Sub(other.Position, b.Position)
	dist := r3.Norm(d)
	if dist < b.Radius+other.Radius || dist == 0 {
		return
	}
	f := r3.Scale(g*b.Mass*other.Mass/(dist*dist*dist), d)
	b.Force = r3.Add(b.Force, f)
	other.Force = r3.Sub(other.Force, f)
}

// KineticEnergy returns ½mv².
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r3.Norm2(b.Velocity)
}

// Momentum returns mv.
func (b *Body) Momentum() r3.Vec {
	return r3.Scale(b.Mass, b.Velocity)
}

// Speed returns |v|.
func (b *Body) Speed() float64 {
	return r3.Norm(b.Velocity)
}
