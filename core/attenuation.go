package core

import "math"

// AttenuationModel is one analogue processing layer that reduces a signal's
// power levels in place. Models are applied in a fixed order via
// Signal.ApplyAttenuationLayer, at most once each per signal.
type AttenuationModel interface {
	// Name identifies the model for logging and scenario files.
	Name() string
	// ApplyTo mutates s's power levels over its data range.
	ApplyTo(s *Signal)
}

// FlatFade attenuates every occupied bin by a constant loss in dB, e.g. a
// cable loss, obstacle shadowing margin or polarisation mismatch.
type FlatFade struct {
	LossDB float64
}

func (f FlatFade) Name() string { return "flat-fade" }

func (f FlatFade) ApplyTo(s *Signal) {
	factor := math.Pow(10, -f.LossDB/10)
	for i := s.DataStart(); i < s.DataEnd(); i++ {
		s.SetAt(i, s.At(i)*factor)
	}
}

// FreeSpacePathLoss attenuates each occupied bin by the free-space path loss
// for the bin's centre frequency at the given distance. Frequency-dependent:
// higher bins lose more.
type FreeSpacePathLoss struct {
	DistanceKm float64
}

func (f FreeSpacePathLoss) Name() string { return "free-space-path-loss" }

func (f FreeSpacePathLoss) ApplyTo(s *Signal) {
	d := f.DistanceKm
	if d < 1 {
		d = 1
	}
	sp := s.Spectrum()
	for i := s.DataStart(); i < s.DataEnd(); i++ {
		fGHz := sp.FreqHz(i) / 1e9
		lossDB := fsplDB(d, fGHz)
		s.SetAt(i, s.At(i)*math.Pow(10, -lossDB/10))
	}
}

// fsplDB is the free-space path loss in dB for a distance in kilometres and
// a frequency in GHz: 92.45 + 20 log10(d_km) + 20 log10(f_GHz).
func fsplDB(distanceKm, fGHz float64) float64 {
	if fGHz <= 0 {
		fGHz = 10 // generic Ku/Ka-like fallback
	}
	return 92.45 + 20*math.Log10(distanceKm) + 20*math.Log10(fGHz)
}
