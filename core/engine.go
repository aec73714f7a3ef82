package core

import (
	"context"
	"sort"
	"time"

	"github.com/signalsfoundry/interference-simulator/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/signalsfoundry/interference-simulator/core"

// ChannelMetrics receives instrumentation from the engine. The observability
// layer implements it with Prometheus collectors; tests use fakes.
type ChannelMetrics interface {
	ObserveQuery(op string, seconds float64)
	SetInFlight(n int)
	IncClearance(clear bool)
}

// ChannelEngine is the surrounding-simulator shim around the interference
// queries: it owns the scheduled frame set, tracks what is in flight as the
// sim clock advances, and wraps each query with logging, metrics and a span.
//
// The queries themselves stay pure; the engine adds no semantics. Engine
// state is the frame set only — every query call builds and discards its own
// transient structures.
type ChannelEngine struct {
	log     logging.Logger
	metrics ChannelMetrics

	// frames is kept sorted by reception start; the envelope builder
	// requires that order.
	frames []*Signal

	tickListeners []func(time.Time)
}

// EngineOption configures a ChannelEngine.
type EngineOption func(*ChannelEngine)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) EngineOption {
	return func(e *ChannelEngine) { e.log = l }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m ChannelMetrics) EngineOption {
	return func(e *ChannelEngine) { e.metrics = m }
}

// NewChannelEngine builds an engine over the scheduled transmissions. The
// frame slice is copied and sorted by reception start.
func NewChannelEngine(frames []*Signal, opts ...EngineOption) *ChannelEngine {
	e := &ChannelEngine{
		log:    logging.Noop(),
		frames: make([]*Signal, len(frames)),
	}
	copy(e.frames, frames)
	sort.SliceStable(e.frames, func(i, j int) bool {
		return e.frames[i].ReceptionStart().Before(e.frames[j].ReceptionStart())
	})
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Frames returns the scheduled transmissions in reception-start order.
func (e *ChannelEngine) Frames() []*Signal { return e.frames }

// RegisterTickListener adds a callback invoked on every Advance.
func (e *ChannelEngine) RegisterTickListener(fn func(time.Time)) {
	e.tickListeners = append(e.tickListeners, fn)
}

// Advance moves the engine's notion of now, refreshes the in-flight gauge
// and notifies tick listeners.
func (e *ChannelEngine) Advance(now time.Time) {
	inFlight := 0
	for _, signal := range e.frames {
		if signal.InFlightAt(now) {
			inFlight++
		}
	}
	if e.metrics != nil {
		e.metrics.SetInFlight(inFlight)
	}
	e.log.Debug(context.Background(), "channel tick",
		logging.String("sim_time", now.Format(time.RFC3339)),
		logging.Int("in_flight", inFlight),
	)
	for _, fn := range e.tickListeners {
		fn(now)
	}
}

// InFlightAt returns the signals being received at instant now.
func (e *ChannelEngine) InFlightAt(now time.Time) []*Signal {
	var out []*Signal
	for _, signal := range e.frames {
		if signal.InFlightAt(now) {
			out = append(out, signal)
		}
	}
	return out
}

// PeakInterference returns the worst combined interference power observed
// anywhere in the spectrum during [start, end].
func (e *ChannelEngine) PeakInterference(ctx context.Context, start, end time.Time) float64 {
	defer e.startOp(ctx, "global_max")()
	return GlobalMax(start, end, e.frames)
}

// FloorInterference returns the best (lowest) combined interference power
// observed during [start, end].
func (e *ChannelEngine) FloorInterference(ctx context.Context, start, end time.Time) float64 {
	defer e.startOp(ctx, "global_min")()
	return GlobalMin(start, end, e.frames)
}

// FloorAtFrequency returns the lowest combined interference power at one bin
// during [start, end], optionally excluding a frame.
func (e *ChannelEngine) FloorAtFrequency(ctx context.Context, start, end time.Time, freqIndex int, exclude *Signal) float64 {
	defer e.startOp(ctx, "min_at_frequency")()
	return MinAtFrequency(start, end, e.frames, freqIndex, exclude)
}

// ChannelClear runs the early-exit clearance check at instant now.
func (e *ChannelEngine) ChannelClear(ctx context.Context, now time.Time, freqIndex int, threshold float64, exclude *Signal) bool {
	defer e.startOp(ctx, "clearance")()
	ok := IsChannelPowerBelowThreshold(now, e.frames, freqIndex, threshold, exclude)
	if e.metrics != nil {
		e.metrics.IncClearance(ok)
	}
	return ok
}

// MinSINROf reports the reference transmission's minimum SINR over
// [start, end] against every other scheduled transmission.
func (e *ChannelEngine) MinSINROf(ctx context.Context, start, end time.Time, reference *Signal, noise float64) float64 {
	defer e.startOp(ctx, "min_sinr")()
	return MinSINR(start, end, reference, e.frames, noise)
}

// startOp opens a span and a timer for one query; the returned func closes
// both.
func (e *ChannelEngine) startOp(ctx context.Context, op string) func() {
	_, span := otel.Tracer(tracerName).Start(ctx, "Channel/"+op,
		trace.WithAttributes(attribute.String("channel.op", op)))
	begin := time.Now()
	return func() {
		span.End()
		if e.metrics != nil {
			e.metrics.ObserveQuery(op, time.Since(begin).Seconds())
		}
	}
}
