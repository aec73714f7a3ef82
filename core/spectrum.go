package core

import "sort"

// Spectrum is the ordered, fixed set of frequency bins that signals are
// defined over. All signals combined within one query must share the same
// Spectrum; combining signals from different spectra is a programming error.
//
// Bin frequencies are centre frequencies in Hz, strictly ascending.
type Spectrum struct {
	freqsHz []float64
}

// NewSpectrum builds a spectrum from the given centre frequencies. The input
// is copied, sorted ascending and de-duplicated.
func NewSpectrum(freqsHz []float64) *Spectrum {
	fs := make([]float64, len(freqsHz))
	copy(fs, freqsHz)
	sort.Float64s(fs)

	out := fs[:0]
	for i, f := range fs {
		if i == 0 || f != fs[i-1] {
			out = append(out, f)
		}
	}
	return &Spectrum{freqsHz: out}
}

// NewUniformSpectrum builds a spectrum of count bins starting at startHz with
// a constant bin spacing of stepHz.
func NewUniformSpectrum(startHz, stepHz float64, count int) *Spectrum {
	fs := make([]float64, count)
	for i := range fs {
		fs[i] = startHz + float64(i)*stepHz
	}
	return &Spectrum{freqsHz: fs}
}

// Len returns the number of frequency bins.
func (s *Spectrum) Len() int { return len(s.freqsHz) }

// FreqHz returns the centre frequency of bin i.
func (s *Spectrum) FreqHz(i int) float64 { return s.freqsHz[i] }

// IndexOf returns the bin index whose centre frequency equals freqHz, or -1
// if no bin matches exactly.
func (s *Spectrum) IndexOf(freqHz float64) int {
	i := sort.SearchFloat64s(s.freqsHz, freqHz)
	if i < len(s.freqsHz) && s.freqsHz[i] == freqHz {
		return i
	}
	return -1
}

// SameAs reports whether two spectra describe the same set of bins. Two
// spectra compare equal if they are the same object or have identical bin
// frequencies.
func (s *Spectrum) SameAs(other *Spectrum) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.freqsHz) != len(other.freqsHz) {
		return false
	}
	for i, f := range s.freqsHz {
		if other.freqsHz[i] != f {
			return false
		}
	}
	return true
}
