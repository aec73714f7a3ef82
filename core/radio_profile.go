package core

import "math"

// FrequencyBand represents a simple [min,max] GHz band.
type FrequencyBand struct {
	MinGHz float64 `json:"MinGHz"`
	MaxGHz float64 `json:"MaxGHz"`
}

// Contains reports whether the bin frequency lies inside the band.
func (b FrequencyBand) Contains(freqHz float64) bool {
	fGHz := freqHz / 1e9
	return fGHz >= b.MinGHz && fGHz <= b.MaxGHz
}

// RadioProfile describes the RF characteristics of a family of transmitters.
// The scenario layer uses it to seed per-bin received power for generated
// transmissions and to derive the receiver noise floor handed to the SINR
// query.
type RadioProfile struct {
	ID   string `json:"ID"`
	Name string `json:"Name"`

	Band FrequencyBand `json:"Band"`

	// TxPowerDBw, GainTxDBi and GainRxDBi feed the link-budget estimate.
	// Zero values fall back to conservative defaults.
	TxPowerDBw float64 `json:"TxPowerDBw,omitempty"`
	GainTxDBi  float64 `json:"GainTxDBi,omitempty"`
	GainRxDBi  float64 `json:"GainRxDBi,omitempty"`

	// NoiseFigureDB raises the receiver noise floor above the -120 dBW
	// baseline.
	NoiseFigureDB float64 `json:"NoiseFigureDB,omitempty"`

	// MaxRangeKm is a hard connectivity cutoff; 0 = unlimited.
	MaxRangeKm float64 `json:"MaxRangeKm,omitempty"`
}

// IsCompatible returns true if the frequency bands overlap at all.
func (p *RadioProfile) IsCompatible(other *RadioProfile) bool {
	return !(p.Band.MaxGHz < other.Band.MinGHz || p.Band.MinGHz > other.Band.MaxGHz)
}

// ReceivedPowerW estimates the received power in watts at the given distance
// for one bin frequency, using a free-space link budget. The constants are
// deliberately conservative: the point is a monotonic distance/power
// relationship for scenarios, not an engineering-grade budget.
func (p *RadioProfile) ReceivedPowerW(distanceKm, freqHz float64) float64 {
	if p.MaxRangeKm > 0 && distanceKm > p.MaxRangeKm {
		return 0
	}
	if distanceKm < 1 {
		distanceKm = 1
	}

	pt := p.TxPowerDBw
	if pt == 0 {
		pt = 40
	}
	gt := p.GainTxDBi
	if gt == 0 {
		gt = 30
	}
	gr := p.GainRxDBi
	if gr == 0 {
		gr = 30
	}

	prDBW := pt + gt + gr - fsplDB(distanceKm, freqHz/1e9)
	return DBWToWatts(prDBW)
}

// NoiseFloorW returns the receiver noise floor in watts: a fixed -120 dBW
// baseline raised by the profile's noise figure.
func (p *RadioProfile) NoiseFloorW() float64 {
	return DBWToWatts(-120.0 + p.NoiseFigureDB)
}

// DBWToWatts converts a power level in dBW to watts.
func DBWToWatts(dbw float64) float64 {
	return math.Pow(10, dbw/10)
}

// WattsToDBW converts a power level in watts to dBW. Zero or negative input
// maps to -Inf.
func WattsToDBW(w float64) float64 {
	if w <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(w)
}
