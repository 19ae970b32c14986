// Package demo builds the built-in scenes: orbiting planets, a gallery of
// static models and a box of bouncing balls.
package demo

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/assets"
	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/physics"
	"github.com/pthm-cable/wireframe/scene"
)

// Kind names a demo.
type Kind string

const (
	Planets Kind = "planets"
	Models  Kind = "models"
	Box     Kind = "box"
)

// Kinds lists every demo in menu order.
var Kinds = []Kind{Models, Planets, Box}

// ErrTooManyModels is returned by AddModel when the scene is full.
var ErrTooManyModels = errors.New("model limit reached")

// Builder populates a scene with demos.
type Builder struct {
	cfg *config.Config
	rng *rand.Rand

	current Kind
	sun     ecs.Entity
}

// NewBuilder creates a builder drawing demo parameters from cfg.
func NewBuilder(cfg *config.Config, rng *rand.Rand) *Builder {
	return &Builder{cfg: cfg, rng: rng}
}

// SetConfig swaps the config used by later builds.
func (b *Builder) SetConfig(cfg *config.Config) {
	b.cfg = cfg
}

// Current returns the demo loaded last.
func (b *Builder) Current() Kind {
	return b.current
}

// Load clears s and builds the named demo into it.
func (b *Builder) Load(s *scene.Scene, kind Kind) error {
	switch kind {
	case Planets:
		return b.LoadPlanets(s)
	case Models:
		return b.LoadModels(s)
	case Box:
		return b.LoadBox(s, b.cfg.Demos.Box.Size, b.cfg.Demos.Box.Balls)
	}
	return fmt.Errorf("unknown demo %q", kind)
}

// physicsParams maps config onto step parameters.
func (b *Builder) physicsParams(gravitation bool) physics.Params {
	p := b.cfg.Physics
	return physics.Params{
		G:           p.GravitationalConstant,
		Elasticity:  p.Elasticity,
		MaxStep:     p.MaxStep,
		Gravitation: gravitation,
	}
}

// NewBody builds a body from its config.
func NewBody(bc config.BodyConfig) (*physics.Body, error) {
	m, err := assets.LoadMesh(bc.Model, bc.Size, bc.Color.RGBA(), bc.Position.R3())
	if err != nil {
		return nil, err
	}
	return physics.NewBody(m, bc.Mass, bc.Velocity.R3(), bc.AngularVelocity.R3()), nil
}

// LoadPlanets builds the orbital demo: a heavy spinning sun and the configured
// planets, with gravitation on.
func (b *Builder) LoadPlanets(s *scene.Scene) error {
	s.Clear()
	s.SetParams(b.physicsParams(true))
	b.current = Planets

	if err := b.addSun(s); err != nil {
		return err
	}
	for i, pc := range b.cfg.Demos.Planets.Planets {
		if _, err := b.CreatePlanet(s, pc); err != nil {
			return fmt.Errorf("planet %d: %w", i, err)
		}
	}
	return nil
}

func (b *Builder) addSun(s *scene.Scene) error {
	sun, err := NewBody(b.cfg.Demos.Planets.Sun)
	if err != nil {
		return fmt.Errorf("sun: %w", err)
	}
	b.sun = s.AddBody(sun)
	return nil
}

// CreatePlanet adds one body to the scene.
func (b *Builder) CreatePlanet(s *scene.Scene, pc config.BodyConfig) (ecs.Entity, error) {
	body, err := NewBody(pc)
	if err != nil {
		return ecs.Entity{}, err
	}
	return s.AddBody(body), nil
}

// ResetPlanets empties the scene except for a fresh sun.
func (b *Builder) ResetPlanets(s *scene.Scene) error {
	s.Clear()
	return b.addSun(s)
}

// Sun returns the sun entity of the planets demo.
func (b *Builder) Sun() ecs.Entity {
	return b.sun
}

// LoadModels builds the static model gallery.
func (b *Builder) LoadModels(s *scene.Scene) error {
	s.Clear()
	s.SetParams(b.physicsParams(false))
	b.current = Models

	for _, mc := range b.cfg.Demos.Models {
		if err := b.AddModel(s, mc); err != nil {
			return err
		}
	}
	return nil
}

// AddModel adds a static model unless the scene already holds the maximum.
func (b *Builder) AddModel(s *scene.Scene, mc config.ModelConfig) error {
	if s.Counts().Props >= b.cfg.Scene.MaxModels {
		return ErrTooManyModels
	}
	m, err := assets.LoadMesh(mc.Model, mc.Size, mc.Color.RGBA(), mc.Position.R3())
	if err != nil {
		return err
	}
	s.AddModel(mc.Model, m)
	return nil
}

// LoadBox builds a closed box of edge size with balls random spheres
// bouncing inside.
func (b *Builder) LoadBox(s *scene.Scene, size, balls int) error {
	s.Clear()
	s.SetParams(b.physicsParams(false))
	b.current = Box

	bc := b.cfg.Demos.Box
	offset, grid := config.BoxWalls(size)
	walls := []struct{ pos, normal r3.Vec }{
		{r3.Vec{Y: -offset}, r3.Vec{Y: 1}},
		{r3.Vec{Y: offset}, r3.Vec{Y: -1}},
		{r3.Vec{X: offset}, r3.Vec{X: -1}},
		{r3.Vec{X: -offset}, r3.Vec{X: 1}},
		{r3.Vec{Z: offset}, r3.Vec{Z: -1}},
		{r3.Vec{Z: -offset}, r3.Vec{Z: 1}},
	}
	for _, w := range walls {
		s.AddPlane(physics.NewPlane(w.pos, w.normal, bc.WallColor.RGBA(), grid))
	}

	posBound := 0.4 * float64(size)
	velBound := 1.5 * posBound
	for i := 0; i < balls; i++ {
		body, err := NewBody(config.BodyConfig{
			Model:           bc.Model,
			Color:           config.RGB{b.channel(), b.channel(), b.channel()},
			Mass:            b.between(bc.MinMass, bc.MaxMass),
			Size:            b.between(bc.MinBallSize, bc.MaxBallSize) * float64(size) / 20,
			Position:        b.vec(posBound),
			Velocity:        b.vec(velBound),
			AngularVelocity: b.vec(bc.MaxSpin),
		})
		if err != nil {
			return fmt.Errorf("ball %d: %w", i, err)
		}
		s.AddBody(body)
	}
	return nil
}

func (b *Builder) between(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}

func (b *Builder) vec(bound float64) config.Vec3 {
	return config.Vec3{b.between(-bound, bound), b.between(-bound, bound), b.between(-bound, bound)}
}

func (b *Builder) channel() uint8 {
	return uint8(100 + b.rng.Intn(156))
}
