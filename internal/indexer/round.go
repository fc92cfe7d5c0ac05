package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-tracer/pkg/workerpool"
	"go.uber.org/zap"
)

var errChainMoved = errors.New("chain moved during fetch")

// round runs one indexing step. A positive wait means the runner is caught up with the tip.
func (r *Runner) round(ctx context.Context) (wait time.Duration, err error) {
	started := time.Now()
	blocks := 0
	defer func() {
		if blocks > 0 || err != nil {
			r.metrics.ObserveBatch(err, blocks, started)
		}
	}()

	cp, err := r.store.ReadCheckpoint(ctx, r.network.ID)
	if err != nil {
		return 0, fmt.Errorf("read checkpoint: %w", err)
	}
	if cp.RollbackFrom > 0 {
		if err := r.finishRollback(ctx, cp.RollbackFrom, cp.Generation); err != nil {
			return 0, err
		}
	}

	tip, err := r.source.LatestHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest height: %w", err)
	}
	r.tip = tip
	r.metrics.SetTip(tip)

	next := cp.Next(r.network.GenesisHeight)
	if next > tip {
		return r.network.BlockTime, nil
	}
	end := min(next+uint64(r.cfg.BatchSize)-1, tip)

	heights := make([]uint64, 0, end-next+1)
	for h := next; h <= end; h++ {
		heights = append(heights, h)
	}
	raw, err := workerpool.Map(ctx, r.cfg.FetchWorkers, heights, r.source.FetchBlockByHeight)
	if err != nil {
		return 0, fmt.Errorf("fetch blocks %d-%d: %w", next, end, err)
	}

	if cp.Generation > 0 && next > r.network.GenesisHeight {
		stored, found, err := r.hashes.BlockHash(ctx, r.network.ID, next-1)
		if err != nil {
			return 0, fmt.Errorf("stored hash at %d: %w", next-1, err)
		}
		if found && !sameHash(stored, raw[0].Block.ParentHash) {
			return 0, r.handleReorg(ctx, raw[0])
		}
	}
	for i := 1; i < len(raw); i++ {
		if !sameHash(raw[i].Block.ParentHash, raw[i-1].Block.Hash) {
			return 0, &model.TransientFetchError{
				Op:       fmt.Sprintf("verify continuity at %d", raw[i].Block.Height),
				Attempts: 1,
				Err:      errChainMoved,
			}
		}
	}

	records, err := r.source.Extract(ctx, raw)
	if err != nil {
		return 0, fmt.Errorf("extract blocks %d-%d: %w", next, end, err)
	}
	batch := model.NewBatch(r.network.ID, records)
	if err := r.writer.WriteBatch(ctx, batch); err != nil {
		return 0, fmt.Errorf("write batch %d-%d: %w", next, end, err)
	}
	if err := r.store.AdvanceCheckpoint(ctx, r.network.ID, end); err != nil {
		return 0, fmt.Errorf("advance checkpoint to %d: %w", end, err)
	}

	blocks = len(raw)
	r.metrics.SetCheckpoint(end)
	r.logger.Debug("batch indexed",
		zap.Uint64("from", next),
		zap.Uint64("to", end),
		zap.Int("transfers", len(batch.Transfers)),
	)
	return 0, nil
}

func sameHash(a, b string) bool {
	return strings.EqualFold(a, b)
}
