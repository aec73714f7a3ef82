package core

import (
	"fmt"
	"time"
)

// Signal is one received transmission: per-bin power levels (watts) over a
// shared Spectrum, bounded by a reception interval. Power is non-zero only
// inside the data range [DataStart, DataEnd), the sub-range of the spectrum
// the transmission actually occupies.
//
// A signal counts as in flight at instant t iff
// receptionStart <= t < receptionEnd (half-open).
//
// Signals carry an ordered list of attenuation models that have not yet been
// applied to the power levels. Applying a layer mutates the signal in place;
// callers must guarantee exclusive access to a Signal for the duration of any
// query that triggers attenuation.
type Signal struct {
	// id is a human-readable label for logging and scenario files; it has
	// no semantic weight in any query.
	id string

	spectrum *Spectrum
	values   []float64

	dataStart int
	dataEnd   int

	receptionStart time.Time
	receptionEnd   time.Time

	// groupID identifies the logical transmission this signal belongs to.
	// Retransmissions and replicas share a group ID and are never summed as
	// mutual interference.
	groupID string

	attenuation        []AttenuationModel
	attenuationApplied int
}

// NewSignal returns an empty signal over the given spectrum, with zero power
// everywhere and an empty data range. Used as the accumulator shape for
// interference sweeps.
func NewSignal(spectrum *Spectrum) *Signal {
	return &Signal{
		spectrum: spectrum,
		values:   make([]float64, spectrum.Len()),
	}
}

// NewSignalWithValues returns a signal whose power levels are values placed
// at bins [dataStart, dataStart+len(values)).
func NewSignalWithValues(spectrum *Spectrum, dataStart int, values []float64) *Signal {
	if dataStart < 0 || dataStart+len(values) > spectrum.Len() {
		panic(fmt.Sprintf("core: signal data range [%d,%d) outside spectrum of %d bins",
			dataStart, dataStart+len(values), spectrum.Len()))
	}
	s := NewSignal(spectrum)
	copy(s.values[dataStart:], values)
	s.dataStart = dataStart
	s.dataEnd = dataStart + len(values)
	return s
}

// ID returns the signal's label.
func (s *Signal) ID() string { return s.id }

// SetID assigns a label used in logs and scenario summaries.
func (s *Signal) SetID(id string) { s.id = id }

// Spectrum returns the spectrum this signal is defined over.
func (s *Signal) Spectrum() *Spectrum { return s.spectrum }

// DataStart returns the first bin index the signal occupies.
func (s *Signal) DataStart() int { return s.dataStart }

// DataEnd returns one past the last bin index the signal occupies.
func (s *Signal) DataEnd() int { return s.dataEnd }

// At returns the power level (watts) at bin i.
func (s *Signal) At(i int) float64 { return s.values[i] }

// SetAt stores a power level at bin i, growing the data range to cover it.
func (s *Signal) SetAt(i int, v float64) {
	s.values[i] = v
	s.growDataRange(i, i+1)
}

// ReceptionStart returns the start of the reception interval.
func (s *Signal) ReceptionStart() time.Time { return s.receptionStart }

// ReceptionEnd returns the (exclusive) end of the reception interval.
func (s *Signal) ReceptionEnd() time.Time { return s.receptionEnd }

// SetReceptionInterval sets the reception window. start must not be after end.
func (s *Signal) SetReceptionInterval(start, end time.Time) {
	if start.After(end) {
		panic(fmt.Sprintf("core: reception start %v after end %v", start, end))
	}
	s.receptionStart = start
	s.receptionEnd = end
}

// GroupID returns the transmission-group identifier.
func (s *Signal) GroupID() string { return s.groupID }

// SetGroupID assigns the transmission-group identifier. Callers must give
// distinct groups to independent transmissions; only retransmissions of the
// same logical transmission may share one.
func (s *Signal) SetGroupID(id string) { s.groupID = id }

// InFlightAt reports whether the signal is being received at instant t,
// using half-open interval semantics.
func (s *Signal) InFlightAt(t time.Time) bool {
	return !s.receptionStart.After(t) && s.receptionEnd.After(t)
}

// AddSignal adds other's power levels into s, elementwise over other's data
// range. Both signals must share the same spectrum.
func (s *Signal) AddSignal(other *Signal) {
	s.assertSameSpectrum(other)
	for i := other.dataStart; i < other.dataEnd; i++ {
		s.values[i] += other.values[i]
	}
	s.growDataRange(other.dataStart, other.dataEnd)
}

// SubSignal subtracts other's power levels from s, elementwise over other's
// data range.
func (s *Signal) SubSignal(other *Signal) {
	s.assertSameSpectrum(other)
	for i := other.dataStart; i < other.dataEnd; i++ {
		s.values[i] -= other.values[i]
	}
	s.growDataRange(other.dataStart, other.dataEnd)
}

// Max returns the largest power level inside the data range, or 0 when the
// signal has no data.
func (s *Signal) Max() float64 {
	if s.dataStart >= s.dataEnd {
		return 0
	}
	max := s.values[s.dataStart]
	for i := s.dataStart + 1; i < s.dataEnd; i++ {
		if s.values[i] > max {
			max = s.values[i]
		}
	}
	return max
}

// DataMin returns the smallest power level inside the data range, or 0 when
// the signal has no data.
func (s *Signal) DataMin() float64 {
	if s.dataStart >= s.dataEnd {
		return 0
	}
	min := s.values[s.dataStart]
	for i := s.dataStart + 1; i < s.dataEnd; i++ {
		if s.values[i] < min {
			min = s.values[i]
		}
	}
	return min
}

// AddAttenuation appends an attenuation model to the pending list. Models are
// applied in the order they were added.
func (s *Signal) AddAttenuation(m AttenuationModel) {
	s.attenuation = append(s.attenuation, m)
}

// AttenuationLayerCount returns the total number of attenuation layers this
// signal carries, applied or not.
func (s *Signal) AttenuationLayerCount() int { return len(s.attenuation) }

// AttenuationLayersApplied returns how many layers have been applied so far.
func (s *Signal) AttenuationLayersApplied() int { return s.attenuationApplied }

// ApplyAttenuationLayer applies attenuation layer index to the power levels.
// A layer already applied is skipped, making repeated application idempotent.
// Layers must be applied in order.
func (s *Signal) ApplyAttenuationLayer(index int) {
	if index < s.attenuationApplied {
		return
	}
	if index != s.attenuationApplied {
		panic(fmt.Sprintf("core: attenuation layer %d applied out of order (next is %d)",
			index, s.attenuationApplied))
	}
	s.attenuation[index].ApplyTo(s)
	s.attenuationApplied++
}

// ApplyAllAttenuation applies every remaining attenuation layer. Idempotent.
func (s *Signal) ApplyAllAttenuation() {
	for i := s.attenuationApplied; i < len(s.attenuation); i++ {
		s.ApplyAttenuationLayer(i)
	}
}

func (s *Signal) growDataRange(start, end int) {
	if start >= end {
		return
	}
	if s.dataStart >= s.dataEnd {
		s.dataStart, s.dataEnd = start, end
		return
	}
	if start < s.dataStart {
		s.dataStart = start
	}
	if end > s.dataEnd {
		s.dataEnd = end
	}
}

func (s *Signal) assertSameSpectrum(other *Signal) {
	if !s.spectrum.SameAs(other.spectrum) {
		panic("core: signals combined across different spectra")
	}
}
