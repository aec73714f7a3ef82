package core

import "testing"

func TestCalculateChangesSkipsNonOverlappingSignals(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	before := testSignal(sp, "a", 0, 2, 0, 1)
	after := testSignal(sp, "b", 10, 12, 0, 1)

	changes := calculateChanges(at(4), at(8), []*Signal{before, after}, nil)
	if len(changes) != 0 {
		t.Fatalf("expected no changes for non-overlapping signals, got %d", len(changes))
	}
}

func TestCalculateChangesClipsEndingsPastWindow(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	spanning := testSignal(sp, "a", 0, 20, 0, 1)

	changes := calculateChanges(at(4), at(8), []*Signal{spanning}, nil)
	if len(changes) != 1 {
		t.Fatalf("expected only the starting change, got %d changes", len(changes))
	}
	if changes[0].kind != changeStarting || !changes[0].at.Equal(at(0)) {
		t.Fatalf("unexpected change: kind=%v at=%v", changes[0].kind, changes[0].at)
	}
}

func TestCalculateChangesIncludesEndingInsideWindow(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	s := testSignal(sp, "a", 2, 6, 0, 1)

	changes := calculateChanges(at(0), at(10), []*Signal{s}, nil)
	if len(changes) != 2 {
		t.Fatalf("expected start and end changes, got %d", len(changes))
	}
}

func TestCalculateChangesPointQueryCountsStartingSignal(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	startsNow := testSignal(sp, "a", 5, 9, 0, 1)

	changes := calculateChanges(at(5), at(5), []*Signal{startsNow}, nil)
	if len(changes) != 1 || changes[0].kind != changeStarting {
		t.Fatalf("point query should see the signal starting at that instant, got %+v", changes)
	}
}

func TestCalculateChangesExcludesDesignatedSignal(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	a := testSignal(sp, "a", 0, 10, 0, 1)
	b := testSignal(sp, "b", 0, 10, 0, 1)

	changes := calculateChanges(at(0), at(10), []*Signal{a, b}, a)
	for _, c := range changes {
		if c.signal == a {
			t.Fatalf("excluded signal produced a change event")
		}
	}
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes from the remaining signal, got %d", len(changes))
	}
}
