package observability

import (
	"time"

	"github.com/Bennylang23/autobeluga/internal/platform/resilience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics is the process-local Prometheus registry for match processing.
type Metrics struct {
	registry      *prometheus.Registry
	matches       *prometheus.CounterVec
	matchDuration *prometheus.HistogramVec
	warnings      *prometheus.CounterVec
	circuitState  *prometheus.GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_processed_total",
			Help:      "Match reports processed, by outcome status.",
		}, []string{"status"}),
		matchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Fetch, extract and persist time per match report.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		}, []string{"status"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_warnings_total",
			Help:      "Non-fatal extraction diagnostics, by kind.",
		}, []string{"kind"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_open",
			Help:      "1 while the named circuit breaker rejects calls.",
		}, []string{"name"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.matches,
		m.matchDuration,
		m.warnings,
		m.circuitState,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) MatchProcessed(status string, elapsed time.Duration) {
	m.matches.WithLabelValues(status).Inc()
	m.matchDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (m *Metrics) WarningsRecorded(kind string, count int) {
	m.warnings.WithLabelValues(kind).Add(float64(count))
}

// CircuitStateChanged matches resilience.CircuitBreakerConfig.OnStateChange.
func (m *Metrics) CircuitStateChanged(name string, _, to resilience.CircuitState) {
	v := 0.0
	if to == resilience.CircuitStateOpen {
		v = 1
	}
	m.circuitState.WithLabelValues(name).Set(v)
}
