package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/signalsfoundry/interference-simulator/core"
	"github.com/signalsfoundry/interference-simulator/internal/logging"
	"github.com/signalsfoundry/interference-simulator/internal/observability"
	"github.com/signalsfoundry/interference-simulator/internal/simconfig"
	"github.com/signalsfoundry/interference-simulator/timectrl"
)

func main() {
	configPath := flag.String("config", "configs/sim.yaml", "path to the simulation config")
	scenarioPath := flag.String("scenario", "", "override the scenario path from the config")
	orbitalInterferer := flag.Bool(
		"orbital-interferer",
		false,
		"inject an additional interferer flying an ISS-like orbit over the receiver",
	)
	flag.Parse()

	cfg, err := simconfig.LoadWithEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *scenarioPath != "" {
		cfg.Channel.ScenarioPath = *scenarioPath
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	collector, err := observability.NewChannelCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, collector.Handler())
		go func() {
			log.Info(ctx, "metrics endpoint up",
				logging.String("addr", cfg.Metrics.Addr),
				logging.String("path", cfg.Metrics.Path),
			)
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Warn(ctx, "metrics server stopped", logging.String("error", err.Error()))
			}
		}()
	}

	epoch := time.Now().UTC()
	f, err := os.Open(cfg.Channel.ScenarioPath)
	if err != nil {
		log.Error(ctx, "open scenario failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	scenario, err := core.LoadScenario(f, epoch)
	f.Close()
	if err != nil {
		log.Error(ctx, "load scenario failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "scenario loaded",
		logging.String("path", cfg.Channel.ScenarioPath),
		logging.Int("bins", scenario.Spectrum.Len()),
		logging.Int("transmissions", len(scenario.Transmissions)),
	)

	frames := scenario.Transmissions
	if *orbitalInterferer {
		if signal := buildOrbitalInterferer(scenario, epoch, cfg.Sim.Duration); signal != nil {
			frames = append(frames, signal)
			log.Info(ctx, "orbital interferer injected", logging.String("id", signal.ID()))
		} else {
			log.Warn(ctx, "orbital interferer below horizon for the whole run; skipped")
		}
	}

	noise := scenario.NoiseFloorW
	if cfg.Channel.NoiseFloorDBw != nil {
		noise = core.DBWToWatts(*cfg.Channel.NoiseFloorDBw)
	}
	threshold := core.DBWToWatts(cfg.Channel.Clearance.ThresholdDBw)

	engine := core.NewChannelEngine(frames,
		core.WithLogger(log),
		core.WithMetrics(collector),
	)

	mode := timectrl.RealTime
	if cfg.Sim.Accelerated {
		mode = timectrl.Accelerated
	}
	tc := timectrl.NewTimeController(epoch, cfg.Sim.Tick, mode)
	tc.AddListener(func(simTime time.Time) {
		engine.Advance(simTime)

		qctx, qlog := logging.WithQueryLogger(ctx, log)
		clear := engine.ChannelClear(qctx, simTime, cfg.Channel.Clearance.FreqIndex, threshold, scenario.Reference)
		qlog.Info(qctx, "clearance",
			logging.String("sim_time", simTime.Format(time.RFC3339)),
			logging.Int("freq_index", cfg.Channel.Clearance.FreqIndex),
			logging.Bool("clear", clear),
			logging.Int("in_flight", len(engine.InFlightAt(simTime))),
		)
	})

	log.Info(ctx, "simulation starting",
		logging.String("duration", cfg.Sim.Duration.String()),
		logging.String("tick", cfg.Sim.Tick.String()),
		logging.Bool("accelerated", cfg.Sim.Accelerated),
	)
	<-tc.Start(cfg.Sim.Duration)

	windowEnd := epoch.Add(cfg.Sim.Duration)
	peak := engine.PeakInterference(ctx, epoch, windowEnd)
	floor := engine.FloorInterference(ctx, epoch, windowEnd)
	log.Info(ctx, "run summary",
		logging.Float("peak_interference_w", peak),
		logging.Float("peak_interference_dbw", core.WattsToDBW(peak)),
		logging.Float("floor_interference_w", floor),
	)

	if ref := scenario.Reference; ref != nil {
		sinr := engine.MinSINROf(ctx, ref.ReceptionStart(), ref.ReceptionEnd(), ref, noise)
		log.Info(ctx, "reference SINR",
			logging.String("id", ref.ID()),
			logging.Float("min_sinr", sinr),
			logging.Float("min_sinr_db", 10*math.Log10(sinr)),
		)
	}
}

// ISS sample TLE, good enough for a demo orbit.
const (
	demoTLE1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	demoTLE2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

// buildOrbitalInterferer flies an SGP4-propagated transmitter over a ground
// receiver on the x-axis and schedules one interfering transmission spanning
// the run, with power seeded from the first scenario profile at the pass
// midpoint distance. Returns nil when the satellite never has line of sight
// during the run.
func buildOrbitalInterferer(scenario *core.Scenario, epoch time.Time, duration time.Duration) *core.Signal {
	receiver := core.Vec3{X: core.EarthRadiusKm, Y: 0, Z: 0}
	motion := core.NewOrbitalMotionFromTLE(demoTLE1, demoTLE2)

	mid := epoch.Add(duration / 2)
	pos := motion.PositionKm(mid)
	if !core.HasLineOfSight(pos, receiver) {
		return nil
	}

	var profile *core.RadioProfile
	for _, p := range scenario.Profiles {
		profile = p
		break
	}
	if profile == nil {
		return nil
	}

	distanceKm := pos.DistanceTo(receiver)
	signal := core.NewSignal(scenario.Spectrum)
	for i := 0; i < scenario.Spectrum.Len(); i++ {
		if !profile.Band.Contains(scenario.Spectrum.FreqHz(i)) {
			continue
		}
		if p := profile.ReceivedPowerW(distanceKm, scenario.Spectrum.FreqHz(i)); p > 0 {
			signal.SetAt(i, p)
		}
	}
	if signal.DataStart() >= signal.DataEnd() {
		return nil
	}
	signal.SetID("orbital-interferer")
	signal.SetGroupID("orbital-interferer")
	// Clearance requires a uniform layer count across interferers; mirror
	// the scenario's single flat margin layer.
	signal.AddAttenuation(core.FlatFade{LossDB: 0.5})
	signal.SetReceptionInterval(epoch, epoch.Add(duration))
	return signal
}
