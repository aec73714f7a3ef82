package core

import "testing"

// Overlapping interferers from distinct groups stack: the envelope carries
// their combined power in the bins where both are in flight.
func TestMaxInterferenceStacksOverlappingInterferers(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 2)
	ref := testSignal(sp, "ref", 0, 10, 0, 1, 1)
	a := testSignal(sp, "a", 0, 8, 0, 5, 2)
	b := testSignal(sp, "b", 4, 10, 0, 3, 4)

	env := maxInterference(at(0), at(10), ref, []*Signal{a, b})
	if env.At(0) != 8 || env.At(1) != 6 {
		t.Fatalf("envelope = [%v %v], want [8 6]", env.At(0), env.At(1))
	}
}

// Replicas sharing a group with each other, but not with the reference, are
// still independent interferers and stack at full combined value.
func TestMaxInterferenceSumsReplicasOfForeignGroup(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	ref := testSignal(sp, "ref", 0, 10, 0, 1)
	replicaA := testSignal(sp, "foreign", 0, 10, 0, 5)
	replicaB := testSignal(sp, "foreign", 2, 8, 0, 3)

	env := maxInterference(at(0), at(10), ref, []*Signal{replicaA, replicaB})
	if env.At(0) != 8 {
		t.Fatalf("envelope = %v, want 8 from both replicas of the foreign group", env.At(0))
	}
}

func TestMaxInterferenceSkipsReferenceGroup(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	ref := testSignal(sp, "grp", 0, 10, 0, 1)
	retransmission := testSignal(sp, "grp", 2, 8, 0, 9)
	other := testSignal(sp, "other", 2, 8, 0, 3)

	env := maxInterference(at(0), at(10), ref, []*Signal{retransmission, other})
	if env.At(0) != 3 {
		t.Fatalf("envelope = %v, want 3 with the same-group retransmission excluded", env.At(0))
	}
}

// Interferers whose receptions never overlap must not stack: the earlier one
// is evicted when the sweep reaches the later start.
func TestMaxInterferenceEvictsEndedInterferers(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	ref := testSignal(sp, "ref", 0, 10, 0, 1)
	a := testSignal(sp, "a", 0, 4, 0, 5)
	b := testSignal(sp, "b", 6, 10, 0, 3)

	env := maxInterference(at(0), at(10), ref, []*Signal{a, b})
	if env.At(0) != 5 {
		t.Fatalf("envelope = %v, want 5 (disjoint interferers must not sum)", env.At(0))
	}
}

func TestMaxInterferenceIgnoresInterferersOutsideWindow(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	ref := testSignal(sp, "ref", 0, 10, 0, 1)
	before := testSignal(sp, "a", -5, 0, 0, 9)
	after := testSignal(sp, "b", 12, 20, 0, 9)

	env := maxInterference(at(0), at(10), ref, []*Signal{before, after})
	if env.At(0) != 0 {
		t.Fatalf("envelope = %v, want 0 with no interferer inside the window", env.At(0))
	}
}

func TestMaxInterferenceEmptyInterferers(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 2)
	ref := testSignal(sp, "ref", 0, 10, 0, 1, 1)

	env := maxInterference(at(0), at(10), ref, nil)
	if env.At(0) != 0 || env.At(1) != 0 {
		t.Fatalf("envelope over no interferers should be flat zero, got [%v %v]", env.At(0), env.At(1))
	}
}

func TestMaxInterferencePanicsOnUnsortedInterferers(t *testing.T) {
	sp := NewUniformSpectrum(1e9, 1e6, 1)
	ref := testSignal(sp, "ref", 0, 10, 0, 1)
	late := testSignal(sp, "a", 6, 10, 0, 3)
	early := testSignal(sp, "b", 0, 4, 0, 5)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for interferers out of reception-start order")
		}
	}()
	maxInterference(at(0), at(10), ref, []*Signal{late, early})
}
