package core

import (
	"sort"
	"time"
)

type changeKind int

const (
	changeStarting changeKind = iota
	changeEnding
)

// signalChange marks the instant a signal enters or leaves the air during a
// query window. Changes hold a non-owning reference to the signal; they are
// rebuilt for every query and never outlive it.
type signalChange struct {
	signal *Signal
	kind   changeKind
	at     time.Time
}

// calculateChanges lists the change events for every non-excluded frame whose
// reception interval overlaps the window [start, end] under half-open
// semantics. The result is unsorted; complexity is linear in the frame count.
//
// Point queries (start == end) are the one asymmetry: a signal starting
// exactly at that instant still yields a starting event, so that
// instantaneous measurements see signals beginning right now.
func calculateChanges(start, end time.Time, frames []*Signal, exclude *Signal) []signalChange {
	changes := make([]signalChange, 0, 2*len(frames))
	for _, signal := range frames {
		if signal == exclude {
			continue
		}

		if start.Equal(end) && signal.ReceptionStart().Equal(start) {
			changes = append(changes, signalChange{signal: signal, kind: changeStarting, at: signal.ReceptionStart()})
			continue
		}

		// The signal must start before(!) the window end and must not end
		// at or before the window start; anything else never overlaps.
		if signal.ReceptionStart().Before(end) && signal.ReceptionEnd().After(start) {
			changes = append(changes, signalChange{signal: signal, kind: changeStarting, at: signal.ReceptionStart()})
			// An ending past the window never needs to be materialised.
			if !signal.ReceptionEnd().After(end) {
				changes = append(changes, signalChange{signal: signal, kind: changeEnding, at: signal.ReceptionEnd()})
			}
		}
	}
	return changes
}

// sortChangesByTime orders changes by timestamp. Changes sharing a timestamp
// are always applied together before any measurement, so their relative
// order is irrelevant.
func sortChangesByTime(changes []signalChange) {
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].at.Before(changes[j].at)
	})
}
