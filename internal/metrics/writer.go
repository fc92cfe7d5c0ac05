package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writerWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "writer",
		Name:      "tier_writes_total",
		Help:      "Count of batch writes per storage tier.",
	}, []string{"tier", "network", "status"})
	writerWriteDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "writer",
		Name:      "tier_write_duration_seconds",
		Help:      "Duration of batch writes per storage tier including retries.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"tier", "network", "status"})
	writerRollbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "writer",
		Name:      "rollbacks_total",
		Help:      "Count of data rollbacks.",
	}, []string{"network", "status"})
)

// Writer tracks metrics for the storage fan-out.
type Writer struct{}

// NewWriter creates a Writer metrics collector.
func NewWriter() *Writer {
	return &Writer{}
}

// ObserveWrite records a write to one tier.
func (m Writer) ObserveWrite(tier, network string, err error, started time.Time) {
	status := statusOf(err)
	network = orUnknown(network)
	writerWritesTotal.WithLabelValues(tier, network, status).Inc()
	writerWriteDuration.WithLabelValues(tier, network, status).Observe(time.Since(started).Seconds())
}

// ObserveRollback records a rollback attempt.
func (m Writer) ObserveRollback(network string, err error) {
	writerRollbacksTotal.WithLabelValues(orUnknown(network), statusOf(err)).Inc()
}
