package scene

import (
	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/physics"
)

// Model is carried by every drawable entity.
type Model struct {
	Mesh *mesh.Mesh
}

// Dynamic marks an entity simulated as a physics body.
type Dynamic struct {
	Body *physics.Body
}

// Boundary marks an entity that bodies collide with.
type Boundary struct {
	Plane *physics.Plane
}

// Prop marks a free-standing model that takes no part in physics.
type Prop struct {
	Name string
}
