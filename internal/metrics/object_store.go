package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	objectStoreRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "object_store",
		Name:      "operations_total",
		Help:      "Count of object storage operations.",
	}, []string{"operation", "backend", "status"})
	objectStoreRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "object_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of object storage operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "backend", "status"})
)

// ObjectStore tracks metrics for one object storage backend.
type ObjectStore struct {
	backend string
}

// NewObjectStore constructs an ObjectStore collector for backend (fs, s3).
func NewObjectStore(backend string) *ObjectStore {
	return &ObjectStore{backend: orUnknown(backend)}
}

// Observe records duration and status of an object storage operation.
func (m ObjectStore) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	objectStoreRequestsTotal.WithLabelValues(operation, m.backend, status).Inc()
	objectStoreRequestDuration.WithLabelValues(operation, m.backend, status).Observe(time.Since(started).Seconds())
}
