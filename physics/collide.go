package physics

import "gonum.org/v1/gonum/spatial/r3"

// Collidable is anything a body can collide with: another *Body or a *Plane.
// The set is closed.
type Collidable interface {
	collideBody(b *Body, elasticity float64) bool
}

var (
	_ Collidable = (*Body)(nil)
	_ Collidable = (*Plane)(nil)
)

// CollideWith resolves a collision between b and target, changing velocities
// (and, for planes, b's position). It reports whether a collision was
// resolved.
func (b *Body) CollideWith(target Collidable, elasticity float64) bool {
	return target.collideBody(b, elasticity)
}

// collideBody resolves other hitting b. Only approaching pairs are resolved
// so that bodies still overlapping after a bounce separate instead of
// sticking.
func (b *Body) collideBody(other *Body, elasticity float64) bool {
	if other == b {
		return false
	}
	d := r3.Sub(other.Position, b.Position)
	dist := r3.Norm(d)
	if dist > other.Radius+b.Radius || dist < 1e-12 {
		return false
	}
	if r3.Dot(r3.Sub(other.Velocity, b.Velocity), d) >= 0 {
		return false
	}
	total := other.Mass + b.Mass
	if total <= 0 {
		return false
	}

	// 1-D elastic exchange along the line of centres; the perpendicular
	// components pass through.
	t := r3.Scale(1/dist, d)
	u1 := r3.Dot(other.Velocity, t)
	u2 := r3.Dot(b.Velocity, t)
	perp1 := r3.Sub(other.Velocity, r3.Scale(u1, t))
	perp2 := r3.Sub(b.Velocity, r3.Scale(u2, t))

	v1 := (u1*(other.Mass-b.Mass) + 2*b.Mass*u2) / total
	v2 := (u2*(b.Mass-other.Mass) + 2*other.Mass*u1) / total

	other.Velocity = r3.Scale(elasticity, r3.Add(perp1, r3.Scale(v1, t)))
	b.Velocity = r3.Scale(elasticity, r3.Add(perp2, r3.Scale(v2, t)))
	return true
}

// collideBody bounces b off the plane: the normal velocity component flips
// and b is placed exactly one radius in front of the surface. Bodies that
// tunneled behind the plane within its footprint are brought back the same
// way. Bodies already moving out along the normal are left alone.
func (p *Plane) collideBody(b *Body, _ float64) bool {
	dist := p.SignedDistance(b.Position)
	if dist > b.Radius {
		return false
	}
	if !p.Contains(p.Footprint(b.Position)) {
		return false
	}
	vn := r3.Dot(b.Velocity, p.Normal)
	if vn >= 0 {
		return false
	}

	b.Velocity = r3.Sub(b.Velocity, r3.Scale(2*vn, p.Normal))
	projected := r3.Sub(b.Position, r3.Scale(dist, p.Normal))
	b.Position = r3.Add(projected, r3.Scale(b.Radius, p.Normal))
	return true
}
