package core

import (
	"fmt"
	"time"
)

// IsChannelPowerBelowThreshold decides whether the combined interference
// power at one bin, at instant now, stays below threshold. An empty frame set
// is trivially clear.
//
// The check is staged for cheapness: the unattenuated sum is tested first,
// then attenuation layers are applied one index at a time across every
// in-flight interferer, re-testing after each layer. Attenuation only ever
// reduces power, so the first time the sum drops under the threshold the
// answer is final. Every interferer must carry the same number of attenuation
// layers; a mismatch panics.
//
// Applying layers mutates the interferer signals in place; the caller owns
// exclusive access to them for the duration of the call.
func IsChannelPowerBelowThreshold(now time.Time, frames []*Signal, freqIndex int, threshold float64, exclude *Signal) bool {
	if len(frames) == 0 {
		return true
	}

	interferers := make([]*Signal, 0, len(frames))
	for _, signal := range frames {
		if signal != exclude && signal.InFlightAt(now) {
			interferers = append(interferers, signal)
		}
	}

	if powerSumAt(interferers, freqIndex) < threshold {
		return true
	}

	layerCount := frames[0].AttenuationLayerCount()
	for _, signal := range interferers {
		if signal.AttenuationLayerCount() != layerCount {
			panic(fmt.Sprintf("core: interferer carries %d attenuation layers, want %d",
				signal.AttenuationLayerCount(), layerCount))
		}
	}
	for layer := 0; layer < layerCount; layer++ {
		for _, signal := range interferers {
			signal.ApplyAttenuationLayer(layer)
		}
		if powerSumAt(interferers, freqIndex) < threshold {
			return true
		}
	}

	// Fully attenuated and still at or above the threshold.
	return false
}

func powerSumAt(signals []*Signal, freqIndex int) float64 {
	sum := 0.0
	for _, signal := range signals {
		sum += signal.At(freqIndex)
	}
	return sum
}
