package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexerBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "batches_total",
		Help:      "Count of indexing rounds.",
	}, []string{"network", "status"})
	indexerBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "batch_duration_seconds",
		Help:      "Duration of an indexing round from fetch to checkpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})
	indexerBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "batch_blocks",
		Help:      "Number of blocks per indexing round.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"network"})
	indexerCheckpointHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "checkpoint_height",
		Help:      "Last checkpointed height.",
	}, []string{"network"})
	indexerTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "tip_height",
		Help:      "Latest height reported by the node.",
	}, []string{"network"})
	indexerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "state",
		Help:      "1 for the current runner state, 0 otherwise.",
	}, []string{"network", "state"})
	indexerReorgsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "reorgs_total",
		Help:      "Count of detected chain reorganizations.",
	}, []string{"network"})
	indexerReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "reorg_depth_blocks",
		Help:      "Blocks rolled back per reorg.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"network"})
	indexerLeadershipTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "indexer",
		Name:      "leadership_transitions_total",
		Help:      "Count of leadership acquisitions and losses.",
	}, []string{"network", "event"})
)

var runnerStates = []model.RunnerState{
	model.StateIdle,
	model.StateAcquiringLeadership,
	model.StateIndexing,
	model.StateBackoff,
	model.StateRelinquished,
	model.StateStopped,
}

// Indexer tracks metrics for one network's runner.
type Indexer struct {
	network string
}

// NewIndexer constructs an Indexer collector.
func NewIndexer(network string) *Indexer {
	return &Indexer{network: orUnknown(network)}
}

// ObserveBatch records an indexing round.
func (m Indexer) ObserveBatch(err error, blocks int, started time.Time) {
	status := statusOf(err)
	indexerBatchTotal.WithLabelValues(m.network, status).Inc()
	indexerBatchDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	if err == nil {
		indexerBatchSize.WithLabelValues(m.network).Observe(float64(blocks))
	}
}

// SetCheckpoint records the checkpoint height.
func (m Indexer) SetCheckpoint(height uint64) {
	indexerCheckpointHeight.WithLabelValues(m.network).Set(float64(height))
}

// SetTip records the node's tip height.
func (m Indexer) SetTip(height uint64) {
	indexerTipHeight.WithLabelValues(m.network).Set(float64(height))
}

// SetState marks state as current.
func (m Indexer) SetState(state model.RunnerState) {
	for _, s := range runnerStates {
		v := 0.0
		if s == state {
			v = 1
		}
		indexerState.WithLabelValues(m.network, string(s)).Set(v)
	}
}

// ObserveReorg records a rollback of depth blocks.
func (m Indexer) ObserveReorg(depth uint64) {
	indexerReorgsTotal.WithLabelValues(m.network).Inc()
	indexerReorgDepth.WithLabelValues(m.network).Observe(float64(depth))
}

// ObserveLeadership records "acquired" or "lost".
func (m Indexer) ObserveLeadership(event string) {
	indexerLeadershipTotal.WithLabelValues(m.network, event).Inc()
}
