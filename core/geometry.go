package core

import "math"

// EarthRadiusKm is the mean Earth radius used for the simple propagation
// geometry in the scenario layer (kilometres).
const EarthRadiusKm = 6371.0

// Vec3 is an ECEF-style position vector in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// HasLineOfSight checks whether the straight segment between transmitter and
// receiver clears the Earth sphere. A blocked path means the transmission
// never reaches the receiver and no signal is scheduled for it.
//
// All positions are ECEF in kilometres.
func HasLineOfSight(tx, rx Vec3) bool {
	v := rx.Sub(tx)
	a := v.Dot(v)
	if a == 0 {
		// Same point: outside Earth counts as clear, inside as blocked.
		return tx.Dot(tx) > EarthRadiusKm*EarthRadiusKm
	}

	// Closest point on the segment to the Earth's centre (origin):
	// t* minimises |tx + t v|^2 over t ∈ [0, 1].
	t := -tx.Dot(v) / a
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := Vec3{
		X: tx.X + v.X*t,
		Y: tx.Y + v.Y*t,
		Z: tx.Z + v.Z*t,
	}
	return closest.Dot(closest) > EarthRadiusKm*EarthRadiusKm
}
