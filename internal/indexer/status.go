package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/pkg/batcher"
	"go.uber.org/zap"
)

// StatusRecorder buffers runner status updates and persists the latest one per network.
type StatusRecorder struct {
	sink         StatusSink
	batcher      *batcher.Batcher[model.NetworkStatus]
	logger       *zap.Logger
	flushTimeout time.Duration
}

func NewStatusRecorder(sink StatusSink, logger *zap.Logger) (*StatusRecorder, error) {
	if sink == nil {
		return nil, errors.New("status sink is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &StatusRecorder{sink: sink, logger: logger.Named("status"), flushTimeout: statusFlushTimeout}
	r.batcher = batcher.New[model.NetworkStatus](
		logger.Named("statusBatcher"),
		r.flush,
		statusFlushSize,
		statusFlushInterval,
		statusFlushRPS,
	)
	return r, nil
}

func (r *StatusRecorder) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop flushes buffered updates.
func (r *StatusRecorder) Stop() {
	r.batcher.Stop()
}

// Report never blocks the runner. An update is dropped when the buffer is full; the next one carries the last error again.
func (r *StatusRecorder) Report(_ context.Context, status model.NetworkStatus) error {
	if !r.batcher.TryAdd(status) {
		r.logger.Debug("status update dropped",
			zap.String("network", status.Network),
			zap.String("state", string(status.State)),
		)
	}
	return nil
}

func (r *StatusRecorder) flush(ctx context.Context, statuses []model.NetworkStatus) error {
	ctx, cancel := context.WithTimeout(ctx, r.flushTimeout)
	defer cancel()
	if err := r.sink.UpsertStatuses(ctx, latestPerNetwork(statuses)); err != nil {
		return fmt.Errorf("upsert statuses: %w", err)
	}
	return nil
}

// latestPerNetwork keeps the last update of each network, in first-seen order.
func latestPerNetwork(statuses []model.NetworkStatus) []model.NetworkStatus {
	index := make(map[string]int, len(statuses))
	out := make([]model.NetworkStatus, 0, len(statuses))
	for _, st := range statuses {
		if i, ok := index[st.Network]; ok {
			if !st.UpdatedAt.Before(out[i].UpdatedAt) {
				out[i] = st
			}
			continue
		}
		index[st.Network] = len(out)
		out = append(out, st)
	}
	return out
}
