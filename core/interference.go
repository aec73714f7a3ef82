package core

import "time"

// Interference sweep over a query window.
//
// All three queries share the same event-driven shape: list the change events
// inside the window, order them by time, seed the running total with every
// signal already in flight at the window start, then walk the remaining
// events. The combined interference is only measured once all events sharing
// a timestamp have been applied; a start and an end at the same instant must
// cancel before anything is sampled. This grouping is a correctness
// invariant, not a sort-stability artifact.

// GlobalMax returns the maximum combined interference power observed at any
// bin and any instant within [start, end]. Returns 0 when frames is empty or
// nothing is in flight during the window.
func GlobalMax(start, end time.Time, frames []*Signal) float64 {
	if len(frames) == 0 {
		return 0
	}
	changes := calculateChanges(start, end, frames, nil)
	if len(changes) == 0 {
		return 0
	}
	sortChangesByTime(changes)

	interference := NewSignal(frames[0].Spectrum())
	return sweepExtremum(start, changes,
		func(sc signalChange) { applyChange(interference, sc) },
		interference.Max,
		func(v, best float64) bool { return v > best },
	)
}

// GlobalMin returns the minimum combined interference power observed within
// [start, end], taken across the bins the in-flight signals occupy. Returns 0
// when frames is empty or nothing is in flight during the window.
func GlobalMin(start, end time.Time, frames []*Signal) float64 {
	if len(frames) == 0 {
		return 0
	}
	changes := calculateChanges(start, end, frames, nil)
	if len(changes) == 0 {
		return 0
	}
	sortChangesByTime(changes)

	interference := NewSignal(frames[0].Spectrum())
	return sweepExtremum(start, changes,
		func(sc signalChange) { applyChange(interference, sc) },
		interference.DataMin,
		func(v, best float64) bool { return v < best },
	)
}

// MinAtFrequency returns the minimum combined interference power at one bin
// within [start, end], optionally excluding one frame. Returns 0 when frames
// is empty or nothing is in flight during the window.
func MinAtFrequency(start, end time.Time, frames []*Signal, freqIndex int, exclude *Signal) float64 {
	if len(frames) == 0 {
		return 0
	}
	changes := calculateChanges(start, end, frames, exclude)
	if len(changes) == 0 {
		return 0
	}
	sortChangesByTime(changes)

	var interference float64
	return sweepExtremum(start, changes,
		func(sc signalChange) {
			if sc.kind == changeStarting {
				interference += sc.signal.At(freqIndex)
			} else {
				interference -= sc.signal.At(freqIndex)
			}
		},
		func() float64 { return interference },
		func(v, best float64) bool { return v < best },
	)
}

// sweepExtremum drives one interference sweep. changes must be sorted by
// timestamp. Events at or before start seed the accumulator (signals already
// in flight at the window's lower edge), and the seed state is sampled before
// any further event is processed. After that the extremum is sampled only at
// timestamp-group boundaries.
func sweepExtremum(start time.Time, changes []signalChange, apply func(signalChange), sample func() float64, better func(v, best float64) bool) float64 {
	i := 0
	for i < len(changes) && !changes[i].at.After(start) {
		apply(changes[i])
		i++
	}
	best := sample()

	for ; i < len(changes); i++ {
		apply(changes[i])
		if i+1 == len(changes) || !changes[i].at.Equal(changes[i+1].at) {
			if v := sample(); better(v, best) {
				best = v
			}
		}
	}
	return best
}

func applyChange(interference *Signal, sc signalChange) {
	if sc.kind == changeStarting {
		interference.AddSignal(sc.signal)
	} else {
		interference.SubSignal(sc.signal)
	}
}
