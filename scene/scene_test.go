package scene

import (
	"image/color"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/physics"
)

func ball(pos, vel r3.Vec) *physics.Body {
	vertices := []r3.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	m := mesh.New(vertices, []mesh.Edge{{U: 0, V: 1}}, color.RGBA{A: 255}, pos)
	return physics.NewBody(m, 10, vel, r3.Vec{})
}

func TestAddAndRemove(t *testing.T) {
	s := New(physics.DefaultParams())

	b := s.AddBody(ball(r3.Vec{}, r3.Vec{}))
	p := s.AddPlane(physics.NewPlane(r3.Vec{Y: -2}, r3.Vec{Y: 1}, color.RGBA{}, 4))
	m := s.AddModel("cube", mesh.New([]r3.Vec{{}}, nil, color.RGBA{}, r3.Vec{}))

	assert.Equal(t, Counts{Bodies: 1, Planes: 1, Props: 1}, s.Counts())
	assert.Len(t, s.Bodies(), 1)
	assert.Len(t, s.Planes(), 1)

	drawn := 0
	s.Each(func(ecs.Entity, *mesh.Mesh) { drawn++ })
	assert.Equal(t, 3, drawn)

	require.NotNil(t, s.Body(b))
	assert.Nil(t, s.Body(p), "planes are not bodies")
	assert.True(t, s.IsBoundary(p))
	assert.False(t, s.IsBoundary(b))

	s.Remove(m)
	s.Remove(m)
	assert.False(t, s.Alive(m))
	assert.Equal(t, 2, s.Counts().Total())

	s.Clear()
	assert.Equal(t, 0, s.Counts().Total())
	assert.Nil(t, s.Body(b))
}

func TestClearPropsKeepsBodies(t *testing.T) {
	s := New(physics.DefaultParams())
	s.AddBody(ball(r3.Vec{}, r3.Vec{}))
	s.AddModel("a", mesh.New(nil, nil, color.RGBA{}, r3.Vec{}))
	s.AddModel("b", mesh.New(nil, nil, color.RGBA{}, r3.Vec{}))

	s.ClearProps()

	assert.Equal(t, Counts{Bodies: 1}, s.Counts())
}

func TestStepUsesParams(t *testing.T) {
	s := New(physics.DefaultParams())
	a := ball(r3.Vec{}, r3.Vec{})
	b := ball(r3.Vec{X: 10}, r3.Vec{})
	s.AddBody(a)
	s.AddBody(b)

	s.Step(0.1)
	assert.Equal(t, r3.Vec{}, a.Velocity, "gravitation is off by default")

	p := s.Params()
	p.Gravitation = true
	s.SetParams(p)
	rep := s.Step(0.1)

	assert.False(t, rep.Skipped)
	assert.Greater(t, a.Velocity.X, 0.0)
	assert.Less(t, b.Velocity.X, 0.0)

	rep = s.Step(1)
	assert.True(t, rep.Skipped)
}

func TestDigest(t *testing.T) {
	build := func() *Scene {
		s := New(physics.DefaultParams())
		s.AddBody(ball(r3.Vec{}, r3.Vec{X: 1}))
		s.AddBody(ball(r3.Vec{X: 5}, r3.Vec{X: -1}))
		return s
	}
	a, b := build(), build()
	assert.Equal(t, a.Digest(), b.Digest())

	a.Step(0.1)
	assert.NotEqual(t, a.Digest(), b.Digest())
	b.Step(0.1)
	assert.Equal(t, a.Digest(), b.Digest())
}
