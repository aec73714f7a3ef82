package core

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// MotionModel yields a transmitter's position for a given simulation time.
// The scenario layer samples it at a transmission's start to derive the
// propagation distance feeding the free-space attenuation layer.
type MotionModel interface {
	PositionKm(simTime time.Time) Vec3
}

// StaticMotion pins a transmitter to a fixed ECEF position (ground stations,
// test fixtures).
type StaticMotion struct {
	Pos Vec3
}

// PositionKm returns the fixed position regardless of time.
func (m StaticMotion) PositionKm(time.Time) Vec3 { return m.Pos }

// OrbitalSGP4Motion propagates a transmitter along a TLE-described orbit
// using SGP4, for scenarios with satellite interferers sweeping over a
// ground receiver.
type OrbitalSGP4Motion struct {
	sat satellite.Satellite
}

// NewOrbitalMotionFromTLE constructs an orbital motion model from TLE lines.
func NewOrbitalMotionFromTLE(line1, line2 string) *OrbitalSGP4Motion {
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &OrbitalSGP4Motion{sat: sat}
}

// PositionKm propagates the satellite to simTime and returns its ECEF
// position in kilometres.
func (m *OrbitalSGP4Motion) PositionKm(simTime time.Time) Vec3 {
	year, month, day := simTime.Date()
	hour, min, sec := simTime.Clock()

	posECI, _ := satellite.Propagate(m.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
}
