package core

import "testing"

// Two signals on a 1-bin spectrum: A carries 5 W over [0,10), B carries 3 W
// over [5,15). The overlap [5,10) carries 8 W, which is the global maximum
// over the full window.
func TestGlobalMaxOverlappingSignals(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	a := testSignal(sp, "a", 0, 10, 0, 5)
	b := testSignal(sp, "b", 5, 15, 0, 3)

	if got := GlobalMax(at(0), at(15), []*Signal{a, b}); got != 8 {
		t.Fatalf("GlobalMax = %v, want 8", got)
	}
}

func TestGlobalMaxEmptyFrameSet(t *testing.T) {
	if got := GlobalMax(at(0), at(10), nil); got != 0 {
		t.Fatalf("GlobalMax(empty) = %v, want 0", got)
	}
}

func TestGlobalMaxNoSignalInWindow(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := testSignal(sp, "a", 20, 30, 0, 5)

	if got := GlobalMax(at(0), at(10), []*Signal{s}); got != 0 {
		t.Fatalf("GlobalMax = %v, want 0 when nothing is in flight", got)
	}
}

func TestGlobalMaxSingleSignalEqualsItsPeak(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 3)
	s := testSignal(sp, "a", 0, 10, 0, 2, 9, 4)

	if got := GlobalMax(at(0), at(10), []*Signal{s}); got != 9 {
		t.Fatalf("GlobalMax = %v, want the signal's own peak 9", got)
	}
}

// A signal already in flight at the window start must seed the accumulator
// even though its start event lies outside the window.
func TestGlobalMaxSeedsSignalsActiveAtWindowStart(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := testSignal(sp, "a", 0, 10, 0, 5)

	if got := GlobalMax(at(4), at(6), []*Signal{s}); got != 5 {
		t.Fatalf("GlobalMax = %v, want 5 from the already-active signal", got)
	}
}

// A handoff at t=5 (A ends exactly when B starts) must never sample the
// intermediate state: both changes apply before the measurement, so the
// combined level never reads 8.
func TestGlobalMaxCoalescesSimultaneousChanges(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	a := testSignal(sp, "a", 0, 5, 0, 5)
	b := testSignal(sp, "b", 5, 10, 0, 3)

	if got := GlobalMax(at(0), at(10), []*Signal{a, b}); got != 5 {
		t.Fatalf("GlobalMax = %v, want 5 (simultaneous start/end must coalesce)", got)
	}
}

// Disjoint receptions never combine: the extremum over the union window is
// the larger of the two individual peaks.
func TestGlobalMaxDisjointSignalsDoNotCombine(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	a := testSignal(sp, "a", 0, 4, 0, 5)
	b := testSignal(sp, "b", 6, 10, 0, 3)

	if got := GlobalMax(at(0), at(10), []*Signal{a, b}); got != 5 {
		t.Fatalf("GlobalMax = %v, want 5", got)
	}
}
