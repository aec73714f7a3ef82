package core

import (
	"math"
	"testing"
)

func TestFlatFadeHalvesPowerAtThreeDB(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 2)
	s := NewSignalWithValues(sp, 0, []float64{10, 4})

	FlatFade{LossDB: 3}.ApplyTo(s)

	if got := s.At(0); math.Abs(got-5.01) > 0.01 {
		t.Fatalf("3 dB on 10 W = %v, want ~5.01", got)
	}
	if got := s.At(1); math.Abs(got-2.004) > 0.01 {
		t.Fatalf("3 dB on 4 W = %v, want ~2.0", got)
	}
}

func TestFreeSpacePathLossGrowsWithDistance(t *testing.T) {
	sp := NewUniformSpectrum(12e9, 1e6, 1)

	near := NewSignalWithValues(sp, 0, []float64{1})
	far := NewSignalWithValues(sp, 0, []float64{1})
	FreeSpacePathLoss{DistanceKm: 500}.ApplyTo(near)
	FreeSpacePathLoss{DistanceKm: 2000}.ApplyTo(far)

	if near.At(0) <= far.At(0) {
		t.Fatalf("path loss must grow with distance: near=%v far=%v", near.At(0), far.At(0))
	}
	// Inverse-square law: 4x the distance costs a factor of 16 in power.
	ratio := near.At(0) / far.At(0)
	if math.Abs(ratio-16) > 1e-6 {
		t.Fatalf("4x distance power ratio = %v, want 16", ratio)
	}
}

func TestFreeSpacePathLossGrowsWithFrequency(t *testing.T) {
	sp := NewUniformSpectrum(10e9, 10e9, 2) // bins at 10 and 20 GHz
	s := NewSignalWithValues(sp, 0, []float64{1, 1})

	FreeSpacePathLoss{DistanceKm: 1000}.ApplyTo(s)

	if s.At(1) >= s.At(0) {
		t.Fatalf("higher bin should lose more: 10 GHz=%v 20 GHz=%v", s.At(0), s.At(1))
	}
}

func TestFsplDBMatchesReferencePoint(t *testing.T) {
	// 92.45 + 20 log10(1000) + 20 log10(12) = 92.45 + 60 + 21.58
	got := fsplDB(1000, 12)
	if math.Abs(got-174.03) > 0.01 {
		t.Fatalf("fsplDB(1000 km, 12 GHz) = %v, want ~174.03", got)
	}
}
