// Package renderer draws meshes as projected line segments.
package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
)

// Projector maps world points to the screen. *camera.Camera implements it.
type Projector interface {
	Transform(p r3.Vec) r2.Vec
	InBounds(p r2.Vec) bool
}

// LineDrawer draws one screen-space segment.
type LineDrawer interface {
	DrawLine(a, b r2.Vec, c color.RGBA)
}

// Wireframe projects meshes and hands visible edges to a LineDrawer. It keeps
// a scratch buffer so steady-state drawing does not allocate.
type Wireframe struct {
	proj    Projector
	out     LineDrawer
	scratch []r2.Vec
}

// NewWireframe creates a wireframe renderer.
func NewWireframe(proj Projector, out LineDrawer) *Wireframe {
	return &Wireframe{proj: proj, out: out}
}

// Draw projects m and draws every edge whose two endpoints are in bounds. It
// returns the number of segments drawn.
func (w *Wireframe) Draw(m *mesh.Mesh) int {
	return w.DrawColored(m, m.Color)
}

// DrawColored is Draw with an explicit color, used for highlighting.
func (w *Wireframe) DrawColored(m *mesh.Mesh, c color.RGBA) int {
	if cap(w.scratch) < len(m.Vertices) {
		w.scratch = make([]r2.Vec, len(m.Vertices))
	}
	screen := w.scratch[:len(m.Vertices)]
	for i := range m.Vertices {
		screen[i] = w.proj.Transform(m.WorldVertex(i))
	}

	drawn := 0
	for _, e := range m.Edges {
		a, b := screen[e.U], screen[e.V]
		if w.proj.InBounds(a) && w.proj.InBounds(b) {
			w.out.DrawLine(a, b, c)
			drawn++
		}
	}
	return drawn
}

// DrawMesh is a one-off Draw without a reusable buffer.
func DrawMesh(proj Projector, m *mesh.Mesh, out LineDrawer) int {
	return NewWireframe(proj, out).Draw(m)
}
