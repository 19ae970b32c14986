package physics

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/vecmath"
)

// MinPlaneSize is the smallest grid a plane can be built with.
const MinPlaneSize = 2

var worldUp = r3.Vec{Y: 1}

// Plane is a finite square grid acting as a collision boundary.
type Plane struct {
	*mesh.Mesh

	Normal r3.Vec
	Size   int

	// U and V span the plane. They are the images of the local X and Z axes.
	U, V r3.Vec
}

// NewPlane builds a size×size grid of unit spacing centred on position and
// turned so it faces normal.
func NewPlane(position, normal r3.Vec, c color.RGBA, size int) *Plane {
	if size < MinPlaneSize {
		size = MinPlaneSize
	}
	n := vecmath.Unit(normal)
	if vecmath.IsZero(n) {
		n = worldUp
	}

	half := float64(size-1) / 2
	vertices := make([]r3.Vec, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			vertices = append(vertices, r3.Vec{X: float64(row) - half, Z: float64(col) - half})
		}
	}

	edges := make([]mesh.Edge, 0, 2*size*(size-1))
	for col := 0; col < size; col++ {
		for row := 0; row < size-1; row++ {
			edges = append(edges, mesh.Edge{U: col + size*row, V: col + size*(row+1)})
		}
	}
	for start := 0; start < size*size; start += size {
		for col := 0; col < size-1; col++ {
			edges = append(edges, mesh.Edge{U: start + col, V: start + col + 1})
		}
	}

	p := &Plane{
		Mesh:   mesh.New(vertices, edges, c, position),
		Normal: n,
		Size:   size,
		U:      r3.Vec{X: 1},
		V:      r3.Vec{Z: 1},
	}
	p.turnTo(n)
	return p
}

// turnTo rotates the grid, which starts out facing +Y, towards n.
func (p *Plane) turnTo(n r3.Vec) {
	var axisAngle r3.Vec
	axis := r3.Cross(worldUp, n)
	if r3.Norm(axis) < 1e-9 {
		if r3.Dot(n, worldUp) > 0 {
			return
		}
		axisAngle = r3.Vec{X: math.Pi}
	} else {
		angle := math.Acos(math.Max(-1, math.Min(1, r3.Dot(n, worldUp))))
		axisAngle = r3.Scale(angle, r3.Unit(axis))
	}
	p.Rotate(axisAngle)
	p.U = vecmath.RotateVector(p.U, axisAngle)
	p.V = vecmath.RotateVector(p.V, axisAngle)
}

// SignedDistance is the distance of point from the infinite plane, positive on
// the side the normal points to.
func (p *Plane) SignedDistance(point r3.Vec) float64 {
	return r3.Dot(r3.Sub(point, p.Position), p.Normal)
}

// Footprint returns the in-plane coordinates of point's projection, relative
// to the plane's centre.
func (p *Plane) Footprint(point r3.Vec) (a, b float64) {
	rel := r3.Sub(point, p.Position)
	return r3.Dot(rel, p.U), r3.Dot(rel, p.V)
}

// Contains reports whether the in-plane coordinates fall inside the square.
func (p *Plane) Contains(a, b float64) bool {
	half := float64(p.Size) / 2
	return math.Abs(a) <= half && math.Abs(b) <= half
}
