// Package scene owns the set of objects in the world. Membership lives in an
// ark ECS world; the physics step and the renderer read it through filters.
package scene

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/physics"
)

// Scene holds the world's meshes, bodies and planes.
type Scene struct {
	world *ecs.World

	bodyMapper  *ecs.Map2[Model, Dynamic]
	planeMapper *ecs.Map2[Model, Boundary]
	propMapper  *ecs.Map2[Model, Prop]
	dynamicMap  *ecs.Map[Dynamic]
	boundaryMap *ecs.Map[Boundary]

	modelFilter ecs.Filter1[Model]
	bodyFilter  ecs.Filter1[Dynamic]
	planeFilter ecs.Filter1[Boundary]
	propFilter  ecs.Filter1[Prop]

	params physics.Params

	// Reused between steps.
	bodyBuf  []*physics.Body
	planeBuf []*physics.Plane
}

// New creates an empty scene simulated with params.
func New(params physics.Params) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:       world,
		bodyMapper:  ecs.NewMap2[Model, Dynamic](world),
		planeMapper: ecs.NewMap2[Model, Boundary](world),
		propMapper:  ecs.NewMap2[Model, Prop](world),
		dynamicMap:  ecs.NewMap[Dynamic](world),
		boundaryMap: ecs.NewMap[Boundary](world),
		modelFilter: *ecs.NewFilter1[Model](world),
		bodyFilter:  *ecs.NewFilter1[Dynamic](world),
		planeFilter: *ecs.NewFilter1[Boundary](world),
		propFilter:  *ecs.NewFilter1[Prop](world),
		params:      params,
	}
}

// Params returns the physics parameters.
func (s *Scene) Params() physics.Params {
	return s.params
}

// SetParams replaces the physics parameters.
func (s *Scene) SetParams(p physics.Params) {
	s.params = p
}

// AddBody adds a physics body.
func (s *Scene) AddBody(b *physics.Body) ecs.Entity {
	return s.bodyMapper.NewEntity(&Model{Mesh: b.Mesh}, &Dynamic{Body: b})
}

// AddPlane adds a collision plane.
func (s *Scene) AddPlane(p *physics.Plane) ecs.Entity {
	return s.planeMapper.NewEntity(&Model{Mesh: p.Mesh}, &Boundary{Plane: p})
}

// AddModel adds a mesh that is drawn but not simulated.
func (s *Scene) AddModel(name string, m *mesh.Mesh) ecs.Entity {
	return s.propMapper.NewEntity(&Model{Mesh: m}, &Prop{Name: name})
}

// Remove deletes e. Removing a dead entity is a no-op.
func (s *Scene) Remove(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.world.RemoveEntity(e)
}

// Alive reports whether e is still in the scene.
func (s *Scene) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Body returns the body of e, or nil if e is not a live body.
func (s *Scene) Body(e ecs.Entity) *physics.Body {
	if !s.world.Alive(e) || !s.dynamicMap.Has(e) {
		return nil
	}
	return s.dynamicMap.Get(e).Body
}

// Clear removes every entity.
func (s *Scene) Clear() {
	var doomed []ecs.Entity
	query := s.modelFilter.Query()
	for query.Next() {
		doomed = append(doomed, query.Entity())
	}
	s.removeEntities(doomed)
}

// ClearProps removes every model added with AddModel.
func (s *Scene) ClearProps() {
	var doomed []ecs.Entity
	query := s.propFilter.Query()
	for query.Next() {
		doomed = append(doomed, query.Entity())
	}
	s.removeEntities(doomed)
}

// Entities cannot be removed while a query is open, so callers collect first.
func (s *Scene) removeEntities(doomed []ecs.Entity) {
	for _, e := range doomed {
		s.world.RemoveEntity(e)
	}
}

// Counts holds the number of entities of each kind.
type Counts struct {
	Bodies, Planes, Props int
}

// Total is the number of entities.
func (c Counts) Total() int {
	return c.Bodies + c.Planes + c.Props
}

// Counts tallies the scene.
func (s *Scene) Counts() Counts {
	var c Counts
	bq := s.bodyFilter.Query()
	for bq.Next() {
		c.Bodies++
	}
	pq := s.planeFilter.Query()
	for pq.Next() {
		c.Planes++
	}
	mq := s.propFilter.Query()
	for mq.Next() {
		c.Props++
	}
	return c
}

// Bodies returns every body. The slice is reused by the next call.
func (s *Scene) Bodies() []*physics.Body {
	s.bodyBuf = s.bodyBuf[:0]
	query := s.bodyFilter.Query()
	for query.Next() {
		d := query.Get()
		s.bodyBuf = append(s.bodyBuf, d.Body)
	}
	return s.bodyBuf
}

// Planes returns every plane. The slice is reused by the next call.
func (s *Scene) Planes() []*physics.Plane {
	s.planeBuf = s.planeBuf[:0]
	query := s.planeFilter.Query()
	for query.Next() {
		b := query.Get()
		s.planeBuf = append(s.planeBuf, b.Plane)
	}
	return s.planeBuf
}

// Each calls fn for every drawable entity. fn must not add or remove
// entities.
func (s *Scene) Each(fn func(e ecs.Entity, m *mesh.Mesh)) {
	query := s.modelFilter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get().Mesh)
	}
}

// Step advances every body by dt. See physics.Step.
func (s *Scene) Step(dt float64) physics.StepReport {
	return physics.Step(s.Bodies(), s.Planes(), dt, s.params)
}

// Digest fingerprints the position, velocity and first vertex of every body.
// Two runs with the same seed and inputs produce the same digest.
func (s *Scene) Digest() uint64 {
	h := xxhash.New()
	var buf [8]byte
	write := func(v r3.Vec) {
		for _, f := range [3]float64{v.X, v.Y, v.Z} {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
			_, _ = h.Write(buf[:])
		}
	}
	for _, b := range s.Bodies() {
		write(b.Position)
		write(b.Velocity)
		if len(b.Vertices) > 0 {
			write(b.Vertices[0])
		}
	}
	return h.Sum64()
}

// IsBoundary reports whether e is a collision plane.
func (s *Scene) IsBoundary(e ecs.Entity) bool {
	return s.world.Alive(e) && s.boundaryMap.Has(e)
}
