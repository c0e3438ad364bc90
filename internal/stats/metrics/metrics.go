package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the stats module.
type Metrics struct {
	SnapshotDuration *prometheus.HistogramVec
	CountFailures    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		SnapshotDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civicdesk_stats_snapshot_duration_seconds",
			Help:    "Time taken to compute a statistics snapshot, by scope",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"scope"}),
		CountFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civicdesk_stats_count_failures_total",
			Help: "Failed count queries, by table",
		}, []string{"table"}),
	}
}

func (m *Metrics) ObserveSnapshotDuration(scope string, seconds float64) {
	m.SnapshotDuration.WithLabelValues(scope).Observe(seconds)
}

func (m *Metrics) IncrementCountFailures(table string) {
	m.CountFailures.WithLabelValues(table).Inc()
}
