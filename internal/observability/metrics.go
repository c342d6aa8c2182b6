package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the fetch pipeline.
type Metrics struct {
	Fetches          *prometheus.CounterVec   // labels: outcome={ok,cached,error}
	FetchErrors      *prometheus.CounterVec   // labels: code
	UpstreamRequests *prometheus.CounterVec   // labels: kind={current,forecast,onecall}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: kind
	CacheLookups     *prometheus.CounterVec   // labels: result={hit,miss}
	CacheFallbacks   prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercast",
			Name:      "fetches_total",
			Help:      "Completed fetch intents by outcome.",
		}, []string{"outcome"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercast",
			Name:      "fetch_errors_total",
			Help:      "Classified fetch failures by error code.",
		}, []string{"code"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercast",
			Name:      "upstream_requests_total",
			Help:      "Upstream gateway requests by kind and outcome.",
		}, []string{"kind", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weathercast",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream gateway request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"kind"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weathercast",
			Name:      "cache_lookups_total",
			Help:      "Snapshot cache lookups by result.",
		}, []string{"result"}),
		CacheFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weathercast",
			Name:      "cache_fallbacks_total",
			Help:      "Fetches served from cache after a connectivity failure.",
		}),
	}
}

// NewMetrics creates and registers all fetch metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Fetches,
		m.FetchErrors,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.CacheFallbacks,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so parallel tests avoid
// "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
