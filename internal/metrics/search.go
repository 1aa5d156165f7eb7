package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"collection", "mode", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodex",
			Name:      "search_request_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"collection", "mode"},
	)

	SearchResultCount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodex",
			Name:      "search_result_count",
			Help:      "Number of matching rows per search, pre-pagination",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000, 10000},
		},
		[]string{"collection", "mode"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchResultCount)
	searchMetricsRegistered = true
}
