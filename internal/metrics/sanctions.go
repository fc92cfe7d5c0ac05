package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sanctionsSyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sanctions",
		Name:      "syncs_total",
		Help:      "Count of sanctions list imports.",
	}, []string{"list", "status"})
	sanctionsSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sanctions",
		Name:      "sync_duration_seconds",
		Help:      "Duration of sanctions list imports.",
		Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"list", "status"})
	sanctionsLastSuccess = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sanctions",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful import.",
	}, []string{"list"})
)

// Sanctions tracks metrics for sanctions list imports.
type Sanctions struct{}

// NewSanctions creates a Sanctions collector.
func NewSanctions() *Sanctions {
	return &Sanctions{}
}

// ObserveSync records one import attempt.
func (m Sanctions) ObserveSync(list string, err error, started time.Time) {
	list = orUnknown(list)
	status := statusOf(err)
	sanctionsSyncsTotal.WithLabelValues(list, status).Inc()
	sanctionsSyncDuration.WithLabelValues(list, status).Observe(time.Since(started).Seconds())
	if err == nil {
		sanctionsLastSuccess.WithLabelValues(list).SetToCurrentTime()
	}
}
