// Package kinematics holds the vector math shared by the planner and
// runtime packages: unit vectors, Euclidean length, and the angular-jerk
// estimator's 3-axis delta (spec.md §3, §4.2).
package kinematics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tinygcore/motion/internal/types"
)

// Sub returns a - b.
func Sub(a, b types.Vector) types.Vector {
	var out types.Vector
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// Add returns a + b.
func Add(a, b types.Vector) types.Vector {
	var out types.Vector
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// Scale returns v scaled by s.
func Scale(v types.Vector, s float64) types.Vector {
	var out types.Vector
	for i := range out {
		out[i] = v[i] * s
	}
	return out
}

// Length returns the Euclidean length of v across all axes
// (gonum/floats.Norm under the hood — spec.md §4.2: "L = ‖target −
// position‖ (Euclidean over all axes)").
func Length(v types.Vector) float64 {
	return floats.Norm(v[:], 2)
}

// Unit returns v divided by length, the caller's precomputed length of
// v. If length is not positive, the zero vector is returned.
func Unit(v types.Vector, length float64) types.Vector {
	if length <= 0 {
		return types.Vector{}
	}
	var out types.Vector
	for i := range out {
		out[i] = v[i] / length
	}
	return out
}

// IsUnit reports whether v has unit length within tolerance (spec.md §3
// invariant: "|unit_vec| = 1 within ROUNDING_ERROR").
func IsUnit(v types.Vector, tolerance float64) bool {
	return math.Abs(Length(v)-1) <= tolerance
}

// AngularJerkDelta computes the 3-axis (X, Y, Z) direction-change vector
// used by the junction planner's angular-jerk estimate. Per spec.md §9
// Open Questions, the A axis (index 3) is deliberately excluded — a
// preserved behavior, not an oversight.
func AngularJerkDelta(unitVec, prevUnitVec types.Vector) r3.Vec {
	cur := r3.Vec{X: unitVec[0], Y: unitVec[1], Z: unitVec[2]}
	prev := r3.Vec{X: prevUnitVec[0], Y: prevUnitVec[1], Z: prevUnitVec[2]}
	return r3.Sub(cur, prev)
}

// AngularJerkEstimate computes J = (‖Δ_xyz‖ / 2) · min(1,
// previousVelocity / maxVelocity), a value in [0,1] (spec.md §4.2).
func AngularJerkEstimate(unitVec, prevUnitVec types.Vector, previousVelocity, maxVelocity float64) float64 {
	delta := AngularJerkDelta(unitVec, prevUnitVec)
	velocityFactor := previousVelocity / maxVelocity
	if velocityFactor > 1 {
		velocityFactor = 1
	}
	if velocityFactor < 0 {
		velocityFactor = 0
	}
	return (r3.Norm(delta) / 2) * velocityFactor
}

// Dot returns the dot product of a and b across all axes.
func Dot(a, b types.Vector) float64 {
	return floats.Dot(a[:], b[:])
}
