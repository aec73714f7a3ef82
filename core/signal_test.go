package core

import (
	"math"
	"testing"
)

func TestSignalDataRangeGrowsOnAdd(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 6)

	acc := NewSignal(sp)
	if acc.DataStart() != acc.DataEnd() {
		t.Fatalf("fresh signal should have an empty data range")
	}

	a := NewSignalWithValues(sp, 1, []float64{2, 2})
	b := NewSignalWithValues(sp, 4, []float64{3})
	acc.AddSignal(a)
	acc.AddSignal(b)

	if acc.DataStart() != 1 || acc.DataEnd() != 5 {
		t.Fatalf("data range = [%d,%d), want [1,5)", acc.DataStart(), acc.DataEnd())
	}
	if acc.At(1) != 2 || acc.At(4) != 3 {
		t.Fatalf("unexpected accumulator values: %v %v", acc.At(1), acc.At(4))
	}
}

func TestSignalAddThenSubRestoresValues(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 3)
	acc := NewSignal(sp)
	s := NewSignalWithValues(sp, 0, []float64{1.5, 2.5, 3.5})

	acc.AddSignal(s)
	acc.AddSignal(s)
	acc.SubSignal(s)

	for i := 0; i < 3; i++ {
		if got := acc.At(i); got != s.At(i) {
			t.Fatalf("At(%d) = %v, want %v", i, got, s.At(i))
		}
	}
}

func TestSignalMaxAndDataMin(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 5)
	s := NewSignalWithValues(sp, 1, []float64{4, 1, 7})

	if got := s.Max(); got != 7 {
		t.Fatalf("Max() = %v, want 7", got)
	}
	if got := s.DataMin(); got != 1 {
		t.Fatalf("DataMin() = %v, want 1", got)
	}

	empty := NewSignal(sp)
	if empty.Max() != 0 || empty.DataMin() != 0 {
		t.Fatalf("empty signal extrema should be 0, got %v/%v", empty.Max(), empty.DataMin())
	}
}

func TestSignalInFlightAtIsHalfOpen(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := testSignal(sp, "g", 2, 8, 0, 1)

	if s.InFlightAt(at(1.999)) {
		t.Fatalf("signal should not be in flight before reception start")
	}
	if !s.InFlightAt(at(2)) {
		t.Fatalf("signal should be in flight at reception start")
	}
	if !s.InFlightAt(at(7.999)) {
		t.Fatalf("signal should be in flight just before reception end")
	}
	if s.InFlightAt(at(8)) {
		t.Fatalf("signal should not be in flight at reception end (half-open)")
	}
}

func TestSignalReceptionIntervalRejectsReversedWindow(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := NewSignal(sp)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for start after end")
		}
	}()
	s.SetReceptionInterval(at(5), at(1))
}

func TestSignalSpectrumMismatchPanics(t *testing.T) {
	a := NewSignal(NewUniformSpectrum(1e9, 1e6, 2))
	b := NewSignal(NewUniformSpectrum(2e9, 1e6, 2))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when combining signals across spectra")
		}
	}()
	a.AddSignal(b)
}

func TestSignalAttenuationLayersAreIdempotent(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := NewSignalWithValues(sp, 0, []float64{10})
	s.AddAttenuation(FlatFade{LossDB: 10})
	s.AddAttenuation(FlatFade{LossDB: 10})

	s.ApplyAttenuationLayer(0)
	s.ApplyAttenuationLayer(0) // repeat is a no-op
	if got := s.At(0); math.Abs(got-1) > 1e-9 {
		t.Fatalf("after one 10 dB layer, At(0) = %v, want 1", got)
	}

	s.ApplyAllAttenuation()
	s.ApplyAllAttenuation() // repeat is a no-op
	if got := s.At(0); math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("after both layers, At(0) = %v, want 0.1", got)
	}
	if got := s.AttenuationLayersApplied(); got != 2 {
		t.Fatalf("AttenuationLayersApplied() = %d, want 2", got)
	}
}

func TestSignalAttenuationOutOfOrderPanics(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := NewSignalWithValues(sp, 0, []float64{10})
	s.AddAttenuation(FlatFade{LossDB: 3})
	s.AddAttenuation(FlatFade{LossDB: 3})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when skipping a layer")
		}
	}()
	s.ApplyAttenuationLayer(1)
}
