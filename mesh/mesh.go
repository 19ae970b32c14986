// Package mesh defines the wireframe model shared by every drawable object:
// a centroid-relative vertex list, a deduplicated edge list, a color and a
// world position.
package mesh

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/vecmath"
)

// Edge joins two vertex indices. Edges are unordered: {U,V} equals {V,U}.
type Edge struct {
	U, V int
}

// Same reports whether e and o join the same pair of vertices.
func (e Edge) Same(o Edge) bool {
	return (e.U == o.U && e.V == o.V) || (e.U == o.V && e.V == o.U)
}

// Mesh is a wireframe model. Vertices are relative to the mesh's own centroid
// and Position places that centroid in the world.
type Mesh struct {
	Position r3.Vec
	Color    color.RGBA
	Vertices []r3.Vec
	Edges    []Edge
}

// New builds a mesh from explicit vertices and edges. The vertices are used
// as given; duplicate and invalid edges are dropped.
func New(vertices []r3.Vec, edges []Edge, c color.RGBA, position r3.Vec) *Mesh {
	return &Mesh{
		Position: position,
		Color:    c,
		Vertices: vertices,
		Edges:    dedupEdges(len(vertices), edges),
	}
}

// FromFaces builds a mesh from raw vertices and 0-based face index lists.
// Every face side becomes an edge (including the closing side), then vertices
// are shifted by minus their centroid and scaled by size.
func FromFaces(vertices []r3.Vec, faces [][]int, size float64, c color.RGBA, position r3.Vec) *Mesh {
	var sides []Edge
	for _, f := range faces {
		if len(f) < 2 {
			continue
		}
		for i := 0; i < len(f)-1; i++ {
			sides = append(sides, Edge{f[i], f[i+1]})
		}
		sides = append(sides, Edge{f[len(f)-1], f[0]})
	}

	m := &Mesh{
		Position: position,
		Color:    c,
		Vertices: make([]r3.Vec, len(vertices)),
		Edges:    dedupEdges(len(vertices), sides),
	}
	copy(m.Vertices, vertices)
	m.center(size)
	return m
}

// dedupEdges keeps the first occurrence of every unordered pair, in order,
// and drops degenerate or out-of-range edges.
func dedupEdges(n int, edges []Edge) []Edge {
	seen := make(map[Edge]struct{}, len(edges))
	out := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if e.U == e.V || e.U < 0 || e.V < 0 || e.U >= n || e.V >= n {
			continue
		}
		key := e
		if key.U > key.V {
			key.U, key.V = key.V, key.U
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// center translates vertices by -centroid and scales them. It runs once,
// at construction.
func (m *Mesh) center(size float64) {
	if len(m.Vertices) == 0 {
		return
	}
	c := vecmath.Centroid(m.Vertices)
	for i, v := range m.Vertices {
		m.Vertices[i] = r3.Scale(size, r3.Sub(v, c))
	}
}

// Rotate bakes the axis-angle rotation into every vertex. Position is not
// affected. Repeated calls accumulate floating point drift.
func (m *Mesh) Rotate(axisAngle r3.Vec) {
	rot, ok := vecmath.RotationMatrix(axisAngle)
	if !ok {
		return
	}
	for i, v := range m.Vertices {
		m.Vertices[i] = rot.MulVec(v)
	}
}

// WorldVertex returns vertex i in world coordinates.
func (m *Mesh) WorldVertex(i int) r3.Vec {
	return r3.Add(m.Vertices[i], m.Position)
}
