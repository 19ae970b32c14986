package physics

import "gonum.org/v1/gonum/spatial/r3"

// Default tuning.
const (
	DefaultG          = 0.002
	DefaultElasticity = 1.0
	DefaultMaxStep    = 0.2
)

// Params controls a simulation step.
type Params struct {
	G           float64 // gravitational constant
	Elasticity  float64 // 1 keeps kinetic energy in body collisions
	MaxStep     float64 // steps with a larger dt are skipped entirely
	Gravitation bool    // pairwise attraction on/off
}

// DefaultParams returns the standard tuning with gravitation off.
func DefaultParams() Params {
	return Params{
		G:          DefaultG,
		Elasticity: DefaultElasticity,
		MaxStep:    DefaultMaxStep,
	}
}

// StepReport summarizes what a step did.
type StepReport struct {
	Skipped          bool
	BodyCollisions   int
	PlaneCollisions  int
	IntegratedBodies int
}

// Step advances the bodies by dt: gravitation over unique pairs, body-body
// collisions, body-plane collisions, integration of every body not held, and
// finally clearing every force accumulator.
func Step(bodies []*Body, planes []*Plane, dt float64, p Params) StepReport {
	var rep StepReport
	if dt > p.MaxStep || dt <= 0 {
		rep.Skipped = true
		return rep
	}

	if p.Gravitation {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				bodies[i].GravitateWith(bodies[j], p.G)
			}
		}
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].CollideWith(bodies[j], p.Elasticity) {
				rep.BodyCollisions++
			}
		}
	}

	for _, b := range bodies {
		for _, pl := range planes {
			if b.CollideWith(pl, p.Elasticity) {
				rep.PlaneCollisions++
			}
		}
	}

	for _, b := range bodies {
		if !b.Held {
			b.Update(dt)
			rep.IntegratedBodies++
		}
		b.Force = r3.Vec{}
	}
	return rep
}
