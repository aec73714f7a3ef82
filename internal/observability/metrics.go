package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ChannelCollector bundles Prometheus metrics for the channel engine and
// implements core.ChannelMetrics.
type ChannelCollector struct {
	gatherer prometheus.Gatherer

	Queries        *prometheus.CounterVec
	QueryDurations *prometheus.HistogramVec

	InFlightSignals prometheus.Gauge
	ClearanceChecks *prometheus.CounterVec
}

// NewChannelCollector registers channel Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewChannelCollector(reg prometheus.Registerer) (*ChannelCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "channel_queries_total",
		Help: "Total number of channel interference queries, labeled by operation.",
	}, []string{"op"})
	queries, err := registerCounterVec(reg, queries, "channel_queries_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "channel_query_duration_seconds",
		Help:    "Channel query latency in seconds.",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"op"})
	durations, err = registerHistogramVec(reg, durations, "channel_query_duration_seconds")
	if err != nil {
		return nil, err
	}

	inFlight, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "channel_in_flight_signals",
		Help: "Number of signals currently being received on the channel.",
	}), "channel_in_flight_signals")
	if err != nil {
		return nil, err
	}

	clearance := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "channel_clearance_checks_total",
		Help: "Total clearance checks, labeled by outcome.",
	}, []string{"result"})
	clearance, err = registerCounterVec(reg, clearance, "channel_clearance_checks_total")
	if err != nil {
		return nil, err
	}

	return &ChannelCollector{
		gatherer:        gatherer,
		Queries:         queries,
		QueryDurations:  durations,
		InFlightSignals: inFlight,
		ClearanceChecks: clearance,
	}, nil
}

// ObserveQuery records one finished query for the given operation.
func (c *ChannelCollector) ObserveQuery(op string, seconds float64) {
	if c == nil {
		return
	}
	if c.Queries != nil {
		c.Queries.WithLabelValues(op).Inc()
	}
	if c.QueryDurations != nil {
		c.QueryDurations.WithLabelValues(op).Observe(seconds)
	}
}

// SetInFlight updates the in-flight signal gauge.
func (c *ChannelCollector) SetInFlight(n int) {
	if c == nil || c.InFlightSignals == nil {
		return
	}
	c.InFlightSignals.Set(float64(n))
}

// IncClearance counts one clearance check by outcome.
func (c *ChannelCollector) IncClearance(clear bool) {
	if c == nil || c.ClearanceChecks == nil {
		return
	}
	result := "blocked"
	if clear {
		result = "clear"
	}
	c.ClearanceChecks.WithLabelValues(result).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *ChannelCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
