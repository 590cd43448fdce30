package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the detection pipeline counters.
type Metrics struct {
	FramesReceived  atomic.Uint64
	FramesProcessed atomic.Uint64
	FramesDropped   atomic.Uint64

	DecodeErrors    atomic.Uint64
	InferenceErrors atomic.Uint64

	AlertsSent       atomic.Uint64
	AlertsSuppressed atomic.Uint64

	ActiveSessions atomic.Int64
	TotalSessions  atomic.Uint64

	InferenceLatencyMs atomic.Uint64

	registry *prometheus.Registry
}

// New creates a Metrics instance with its Prometheus collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}

	m.registerPrometheusMetrics()

	return m
}

func (m *Metrics) registerPrometheusMetrics() {
	gauges := []struct {
		name string
		help string
		fn   func() float64
	}{
		{"drowsyguard_frames_received_total", "Total frames received over stream sessions",
			func() float64 { return float64(m.FramesReceived.Load()) }},
		{"drowsyguard_frames_processed_total", "Total frames run through the classifier",
			func() float64 { return float64(m.FramesProcessed.Load()) }},
		{"drowsyguard_frames_dropped_total", "Total frames dropped while a worker was busy",
			func() float64 { return float64(m.FramesDropped.Load()) }},
		{"drowsyguard_decode_errors_total", "Total frames that failed to decode",
			func() float64 { return float64(m.DecodeErrors.Load()) }},
		{"drowsyguard_inference_errors_total", "Total classifier call failures",
			func() float64 { return float64(m.InferenceErrors.Load()) }},
		{"drowsyguard_alerts_sent_total", "Total actuator notifications dispatched",
			func() float64 { return float64(m.AlertsSent.Load()) }},
		{"drowsyguard_alerts_suppressed_total", "Total alerts dropped inside the cooldown interval",
			func() float64 { return float64(m.AlertsSuppressed.Load()) }},
		{"drowsyguard_active_sessions", "Number of open stream sessions",
			func() float64 { return float64(m.ActiveSessions.Load()) }},
		{"drowsyguard_sessions_total", "Total stream sessions accepted",
			func() float64 { return float64(m.TotalSessions.Load()) }},
		{"drowsyguard_inference_latency_ms", "Latency of the most recent inference in milliseconds",
			func() float64 { return float64(m.InferenceLatencyMs.Load()) }},
	}

	for _, g := range gauges {
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: g.name, Help: g.help},
			g.fn,
		))
	}
}

// ObserveInference records the latency of one classifier call.
func (m *Metrics) ObserveInference(duration time.Duration) {
	m.InferenceLatencyMs.Store(uint64(duration.Milliseconds()))
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
