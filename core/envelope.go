package core

import (
	"container/heap"
	"fmt"
	"time"
)

// endHeap is a min-heap of in-flight interferers keyed on reception end, so
// the soonest-to-end signal is always on top.
type endHeap []*Signal

func (h endHeap) Len() int            { return len(h) }
func (h endHeap) Less(i, j int) bool  { return h[i].ReceptionEnd().Before(h[j].ReceptionEnd()) }
func (h endHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *endHeap) Push(x interface{}) { *h = append(*h, x.(*Signal)) }
func (h *endHeap) Pop() interface{} {
	old := *h
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return s
}

// maxInterference computes, per bin, the worst instantaneous interference the
// reference signal sees from other transmission groups during [start, end].
// Interferers sharing the reference's group are retransmissions of the same
// logical transmission and are skipped entirely.
//
// interferers must be sorted by reception start, ascending; violating that is
// a caller contract failure and panics. The sweep walks interferer starts in
// order, evicting signals that ended before each new start. Sampling the
// per-bin maximum right after every start is sufficient: combined
// interference only grows at a start event, so the true maximum at any
// instant is dominated by the state immediately after the latest start.
// Complexity is O(n log n) in the interferer count.
func maxInterference(start, end time.Time, reference *Signal, interferers []*Signal) *Signal {
	spectrum := reference.Spectrum()
	envelope := NewSignal(spectrum)
	current := NewSignal(spectrum)

	var inFlight endHeap
	var sweepTime time.Time

	for _, signal := range interferers {
		if signal.GroupID() == reference.GroupID() {
			continue // same logical transmission, never mutual interference
		}
		if !signal.ReceptionEnd().After(start) || signal.ReceptionStart().After(end) {
			continue // entirely outside the window of interest
		}
		if signal.ReceptionStart().Before(sweepTime) {
			panic(fmt.Sprintf("core: interferers not sorted by reception start (%v before sweep time %v)",
				signal.ReceptionStart(), sweepTime))
		}
		if !signal.Spectrum().SameAs(spectrum) {
			panic("core: interferer spectrum differs from reference spectrum")
		}

		heap.Push(&inFlight, signal)
		sweepTime = signal.ReceptionStart()

		// Starts at or past the window end cannot raise the envelope.
		if !sweepTime.Before(end) {
			break
		}

		// Evict everything that ended at or before this start.
		for !inFlight[0].ReceptionEnd().After(sweepTime) {
			current.SubSignal(inFlight[0])
			heap.Pop(&inFlight)
		}

		current.AddSignal(signal)

		// The new signal only touches its own bins, but current already
		// carries every still-in-flight interferer there too.
		for i := signal.DataStart(); i < signal.DataEnd(); i++ {
			if current.At(i) > envelope.At(i) {
				envelope.SetAt(i, current.At(i))
			}
		}
	}

	return envelope
}
