package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tracerTracesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tracer",
		Name:      "traces_total",
		Help:      "Count of upstream traces.",
	}, []string{"network", "status"})
	tracerTraceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tracer",
		Name:      "trace_duration_seconds",
		Help:      "Duration of upstream traces.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"network", "status"})
	tracerVisited = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "tracer",
		Name:      "visited_addresses",
		Help:      "Addresses visited per trace.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"network"})
)

// Tracer tracks metrics for the upstream tracing engine.
type Tracer struct{}

// NewTracer creates a Tracer collector.
func NewTracer() *Tracer {
	return &Tracer{}
}

// ObserveTrace records a single network traversal.
func (m Tracer) ObserveTrace(network string, err error, visited int, started time.Time) {
	network = orUnknown(network)
	status := statusOf(err)
	tracerTracesTotal.WithLabelValues(network, status).Inc()
	tracerTraceDuration.WithLabelValues(network, status).Observe(time.Since(started).Seconds())
	if err == nil {
		tracerVisited.WithLabelValues(network).Observe(float64(visited))
	}
}
