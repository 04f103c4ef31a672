// Package metrics exports run counters and durations in Prometheus format.
//
// Collectors live on a private registry rather than the global default, so
// a CLI invocation or a test only ever sees its own runs. WriteTextfile
// writes the registry for the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/roach88/wobos/internal/bridge"
)

// Metrics implements bridge.Observer.
type Metrics struct {
	registry *prometheus.Registry

	// runsTotal counts pipeline runs by outcome
	runsTotal *prometheus.CounterVec

	// runDuration tracks commit-to-publish latency
	runDuration prometheus.Histogram

	// setTotal counts exchange writes
	setTotal prometheus.Counter
}

var _ bridge.Observer = (*Metrics)(nil)

// New creates collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wobos_runs_total",
			Help: "Total engine runs by status",
		}, []string{"status"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wobos_run_duration_seconds",
			Help:    "Engine run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		setTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wobos_set_total",
			Help: "Total exchange values written to the engine",
		}),
	}
}

// ObserveSet implements bridge.Observer.
func (m *Metrics) ObserveSet(string) {
	m.setTotal.Inc()
}

// ObserveRun implements bridge.Observer. Canceled runs never started, so
// they are counted but not timed.
func (m *Metrics) ObserveRun(status string, elapsed time.Duration) {
	m.runsTotal.WithLabelValues(status).Inc()
	if status != bridge.StatusCanceled {
		m.runDuration.Observe(elapsed.Seconds())
	}
}

// Registry returns the private registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
