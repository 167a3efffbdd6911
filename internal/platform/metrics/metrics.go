package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SearchTrials counts sampled visit orders by outcome:
	// feasible, infeasible, duplicate or skipped (search interrupted).
	SearchTrials = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tour_search_trials_total", Help: "Tour search trials by outcome."},
		[]string{"outcome"},
	)
	// SearchDuration records wall time of complete tour searches.
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "tour_search_duration_seconds", Help: "Tour search duration in seconds.", Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10}},
	)
	// LegCacheLookups counts shortest-path leg cache lookups by result.
	LegCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "leg_cache_lookups_total", Help: "Leg cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SearchTrials)
		Registry.MustRegister(SearchDuration)
		Registry.MustRegister(LegCacheLookups)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
