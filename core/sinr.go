package core

import (
	"fmt"
	"math"
	"time"
)

// MinSINR returns the minimum signal-to-interference-plus-noise ratio the
// reference signal experiences over [start, end], taken across the bins the
// reference occupies. noise is the flat noise power (watts) added to the
// interference in every bin.
//
// The window must lie inside the reference's reception interval; violating
// that is a caller contract failure and panics. All attenuation layers of the
// reference and every candidate interferer are forced before measuring, so a
// repeated call over the same inputs returns the same value.
func MinSINR(start, end time.Time, reference *Signal, frames []*Signal, noise float64) float64 {
	if start.Before(reference.ReceptionStart()) || end.After(reference.ReceptionEnd()) {
		panic(fmt.Sprintf("core: SINR window [%v,%v] outside reference reception [%v,%v]",
			start, end, reference.ReceptionStart(), reference.ReceptionEnd()))
	}

	reference.ApplyAllAttenuation()
	for _, signal := range frames {
		signal.ApplyAllAttenuation()
	}

	interference := maxInterference(start, end, reference, frames)

	minSINR := math.Inf(1)
	for i := reference.DataStart(); i < reference.DataEnd(); i++ {
		sinr := reference.At(i) / (interference.At(i) + noise)
		if sinr < minSINR {
			minSINR = sinr
		}
	}
	return minSINR
}
