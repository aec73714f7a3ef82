package core

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Scenario is the loaded form of a channel scenario: the shared spectrum,
// named radio profiles, and the transmissions scheduled on the air. Times in
// the file are seconds relative to the epoch handed to LoadScenario.
type Scenario struct {
	Epoch         time.Time
	Spectrum      *Spectrum
	Profiles      map[string]*RadioProfile
	Transmissions []*Signal

	// Reference is the transmission marked "reference": true, if any; the
	// one whose SINR the demo reports.
	Reference *Signal

	// NoiseFloorW is the receiver noise floor derived from the scenario's
	// noise profile, 0 when none was named.
	NoiseFloorW float64
}

// internal JSON shapes – kept unexported so we're free to evolve them.
type scenarioJSON struct {
	Spectrum      spectrumJSON       `json:"spectrum"`
	Profiles      []*RadioProfile    `json:"profiles"`
	NoiseProfile  string             `json:"noise_profile"`
	Transmissions []transmissionJSON `json:"transmissions"`
}

type spectrumJSON struct {
	// Either an explicit bin list...
	FreqsHz []float64 `json:"freqs_hz"`
	// ...or a uniform grid.
	StartHz float64 `json:"start_hz"`
	StepHz  float64 `json:"step_hz"`
	Count   int     `json:"count"`
}

type transmissionJSON struct {
	ID        string  `json:"id"`
	Group     string  `json:"group"` // defaults to the transmission id
	Reference bool    `json:"reference"`
	StartS    float64 `json:"start_s"`
	EndS      float64 `json:"end_s"`

	// Explicit per-bin power placed at data_start...
	DataStart int       `json:"data_start"`
	PowerW    []float64 `json:"power_w"`
	// ...or a link-budget seed from a named profile and a distance.
	Profile    string  `json:"profile"`
	DistanceKm float64 `json:"distance_km"`

	Attenuation []attenuationJSON `json:"attenuation"`
}

type attenuationJSON struct {
	Type       string  `json:"type"` // "flat" | "fspl"
	LossDB     float64 `json:"loss_db"`
	DistanceKm float64 `json:"distance_km"`
}

// LoadScenario reads a JSON channel scenario from r and materialises its
// transmissions as Signals anchored at epoch. It fails only on JSON or
// structural errors; numeric plausibility is the scenario author's business.
func LoadScenario(r io.Reader, epoch time.Time) (*Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	spectrum, err := spectrumFromJSON(payload.Spectrum)
	if err != nil {
		return nil, err
	}

	scenario := &Scenario{
		Epoch:    epoch,
		Spectrum: spectrum,
		Profiles: make(map[string]*RadioProfile, len(payload.Profiles)),
	}
	for _, p := range payload.Profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("LoadScenario: profile with empty id")
		}
		scenario.Profiles[p.ID] = p
	}

	if payload.NoiseProfile != "" {
		p, ok := scenario.Profiles[payload.NoiseProfile]
		if !ok {
			return nil, fmt.Errorf("LoadScenario: unknown noise profile %q", payload.NoiseProfile)
		}
		scenario.NoiseFloorW = p.NoiseFloorW()
	}

	for _, tx := range payload.Transmissions {
		signal, err := scenario.signalFromJSON(tx)
		if err != nil {
			return nil, err
		}
		scenario.Transmissions = append(scenario.Transmissions, signal)
		if tx.Reference {
			if scenario.Reference != nil {
				return nil, fmt.Errorf("LoadScenario: more than one reference transmission")
			}
			scenario.Reference = signal
		}
	}

	return scenario, nil
}

func (sc *Scenario) signalFromJSON(tx transmissionJSON) (*Signal, error) {
	if tx.ID == "" {
		return nil, fmt.Errorf("LoadScenario: transmission with empty id")
	}
	if tx.EndS < tx.StartS {
		return nil, fmt.Errorf("LoadScenario: transmission %q ends before it starts", tx.ID)
	}

	var signal *Signal
	switch {
	case len(tx.PowerW) > 0:
		if tx.Profile != "" {
			return nil, fmt.Errorf("LoadScenario: transmission %q sets both power_w and profile", tx.ID)
		}
		if tx.DataStart < 0 || tx.DataStart+len(tx.PowerW) > sc.Spectrum.Len() {
			return nil, fmt.Errorf("LoadScenario: transmission %q power outside spectrum", tx.ID)
		}
		signal = NewSignalWithValues(sc.Spectrum, tx.DataStart, tx.PowerW)
	case tx.Profile != "":
		profile, ok := sc.Profiles[tx.Profile]
		if !ok {
			return nil, fmt.Errorf("LoadScenario: transmission %q names unknown profile %q", tx.ID, tx.Profile)
		}
		signal = signalFromProfile(sc.Spectrum, profile, tx.DistanceKm)
	default:
		return nil, fmt.Errorf("LoadScenario: transmission %q has neither power_w nor profile", tx.ID)
	}

	signal.SetID(tx.ID)
	group := tx.Group
	if group == "" {
		group = tx.ID
	}
	signal.SetGroupID(group)
	signal.SetReceptionInterval(
		sc.Epoch.Add(secondsToDuration(tx.StartS)),
		sc.Epoch.Add(secondsToDuration(tx.EndS)),
	)

	for _, a := range tx.Attenuation {
		model, err := attenuationFromJSON(a)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: transmission %q: %w", tx.ID, err)
		}
		signal.AddAttenuation(model)
	}
	return signal, nil
}

// signalFromProfile seeds per-bin received power from the profile's link
// budget over the bins its band covers.
func signalFromProfile(spectrum *Spectrum, profile *RadioProfile, distanceKm float64) *Signal {
	signal := NewSignal(spectrum)
	for i := 0; i < spectrum.Len(); i++ {
		if !profile.Band.Contains(spectrum.FreqHz(i)) {
			continue
		}
		if p := profile.ReceivedPowerW(distanceKm, spectrum.FreqHz(i)); p > 0 {
			signal.SetAt(i, p)
		}
	}
	return signal
}

func spectrumFromJSON(js spectrumJSON) (*Spectrum, error) {
	if len(js.FreqsHz) > 0 {
		return NewSpectrum(js.FreqsHz), nil
	}
	if js.Count <= 0 {
		return nil, fmt.Errorf("LoadScenario: spectrum needs freqs_hz or a start_hz/step_hz/count grid")
	}
	return NewUniformSpectrum(js.StartHz, js.StepHz, js.Count), nil
}

func attenuationFromJSON(js attenuationJSON) (AttenuationModel, error) {
	switch strings.ToLower(strings.TrimSpace(js.Type)) {
	case "flat", "flat-fade":
		return FlatFade{LossDB: js.LossDB}, nil
	case "fspl", "free-space-path-loss":
		return FreeSpacePathLoss{DistanceKm: js.DistanceKm}, nil
	default:
		return nil, fmt.Errorf("unknown attenuation type %q", js.Type)
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
