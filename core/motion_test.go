package core

import (
	"testing"
	"time"
)

// ISS TLE from 2021-10-02; the propagation epoch below matches it.
const (
	issTLE1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	issTLE2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

func TestStaticMotionIgnoresTime(t *testing.T) {
	pos := Vec3{X: EarthRadiusKm, Y: 12, Z: -3}
	m := StaticMotion{Pos: pos}

	if m.PositionKm(time.Now()) != pos || m.PositionKm(time.Unix(0, 0)) != pos {
		t.Fatalf("static motion must return its fixed position")
	}
}

func TestOrbitalMotionStaysInLowEarthOrbit(t *testing.T) {
	m := NewOrbitalMotionFromTLE(issTLE1, issTLE2)
	epoch := time.Date(2021, 10, 2, 14, 0, 0, 0, time.UTC)

	pos := m.PositionKm(epoch)
	alt := pos.Norm() - EarthRadiusKm
	if alt < 300 || alt > 600 {
		t.Fatalf("ISS altitude = %v km, expected a low Earth orbit", alt)
	}
}

func TestOrbitalMotionMovesOverTime(t *testing.T) {
	m := NewOrbitalMotionFromTLE(issTLE1, issTLE2)
	epoch := time.Date(2021, 10, 2, 14, 0, 0, 0, time.UTC)

	p0 := m.PositionKm(epoch)
	p1 := m.PositionKm(epoch.Add(5 * time.Minute))

	// ~7.7 km/s orbital speed: five minutes covers a couple thousand km.
	if d := p0.DistanceTo(p1); d < 1000 {
		t.Fatalf("satellite moved only %v km in five minutes", d)
	}
}
