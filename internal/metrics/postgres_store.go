package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postgresRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "postgres_store",
		Name:      "operations_total",
		Help:      "Count of relational store operations.",
	}, []string{"operation", "network", "status"})
	postgresRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "postgres_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of relational store operations.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "network", "status"})
)

// PostgresStore tracks metrics for checkpoint, lease and configuration queries.
type PostgresStore struct{}

// NewPostgresStore creates a PostgresStore metrics collector.
func NewPostgresStore() *PostgresStore {
	return &PostgresStore{}
}

// Observe records duration and status of a store operation.
func (m PostgresStore) Observe(operation string, network string, err error, started time.Time) {
	status := statusOf(err)
	network = orUnknown(network)

	postgresRequestsTotal.WithLabelValues(operation, network, status).Inc()
	postgresRequestDuration.WithLabelValues(operation, network, status).Observe(time.Since(started).Seconds())
}
