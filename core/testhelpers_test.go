package core

import "time"

// simEpoch anchors scenario times in tests; offsets are seconds from here.
var simEpoch = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return simEpoch.Add(time.Duration(seconds * float64(time.Second)))
}

// testSignal builds a signal with the given power values starting at bin
// dataStart, received over [startS, endS) seconds from simEpoch.
func testSignal(spectrum *Spectrum, group string, startS, endS float64, dataStart int, values ...float64) *Signal {
	s := NewSignalWithValues(spectrum, dataStart, values)
	s.SetGroupID(group)
	s.SetReceptionInterval(at(startS), at(endS))
	return s
}
