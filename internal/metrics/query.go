package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query path labels.
const (
	PathStructured   = "structured"
	PathNaturalQuery = "natural_language"
)

// Query engine Prometheus metrics.
var (
	QueryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "query_requests_total",
			Help:      "Total number of filter queries by path and outcome",
		},
		[]string{"path", "outcome"},
	)

	QueryRulesFiredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "query_rules_fired_total",
			Help:      "Recognition rules that matched a free-text query",
		},
		[]string{"rule"},
	)

	QueryMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "query_matches",
			Help:      "Number of records returned per query",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	RecordsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "records_created_total",
			Help:      "Record create attempts by status",
		},
		[]string{"status"}, // "created" / "exists" / "error"
	)
)

var registerQueryOnce sync.Once

// RegisterQueryMetrics registers the query and record metrics. Safe to call more than once.
func RegisterQueryMetrics() {
	registerQueryOnce.Do(func() {
		prometheus.MustRegister(QueryRequestsTotal)
		prometheus.MustRegister(QueryRulesFiredTotal)
		prometheus.MustRegister(QueryMatches)
		prometheus.MustRegister(RecordsCreatedTotal)
	})
}
