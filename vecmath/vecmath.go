// Package vecmath holds the rotation helpers shared by the camera, meshes and
// physics bodies. Vectors are gonum r3/r2 values.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the magnitude below which an axis-angle vector is treated as
// "no rotation".
const Epsilon = 1e-12

// RotateVector rotates v by the axis-angle vector axisAngle: the direction is
// the axis and the length is the angle in radians. A zero axis-angle returns v
// unchanged.
func RotateVector(v, axisAngle r3.Vec) r3.Vec {
	m, ok := RotationMatrix(axisAngle)
	if !ok {
		return v
	}
	return m.MulVec(v)
}

// RotationMatrix builds the Rodrigues matrix I + sinθ·K + (1-cosθ)·K² for the
// axis-angle vector. ok is false for a zero rotation.
func RotationMatrix(axisAngle r3.Vec) (m *r3.Mat, ok bool) {
	angle := r3.Norm(axisAngle)
	if angle < Epsilon {
		return nil, false
	}
	k := r3.Skew(r3.Scale(1/angle, axisAngle))

	k2 := r3.NewMat(nil)
	k2.Mul(k, k)

	sk := r3.NewMat(nil)
	sk.Scale(math.Sin(angle), k)
	k2.Scale(1-math.Cos(angle), k2)

	m = r3.NewMat(nil)
	m.Add(r3.Eye(), sk)
	m.Add(m, k2)
	return m, true
}

// Rotate2D rotates the coordinate pair (c0, c1) by angle.
func Rotate2D(c0, c1, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return c0*cos + c1*sin, c1*cos - c0*sin
}

// Unit returns v normalized, or the zero vector when v has no length.
func Unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < Epsilon {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// IsZero reports whether every component of v is zero.
func IsZero(v r3.Vec) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Centroid returns the arithmetic mean of pts, or the zero vector for none.
func Centroid(pts []r3.Vec) r3.Vec {
	if len(pts) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range pts {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(pts)), sum)
}
