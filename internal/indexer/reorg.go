package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

var errReorgTooDeep = errors.New("reorg exceeds max depth")

// handleReorg walks back from first until a stored ancestor matches, then rolls storage back to it.
func (r *Runner) handleReorg(ctx context.Context, first *model.RawBlock) error {
	fork, err := r.findForkPoint(ctx, first)
	if err != nil {
		return err
	}

	reorg := &model.ReorgError{Height: first.Block.Height - 1, ForkHeight: fork}
	depth := first.Block.Height - 1 - fork
	r.metrics.ObserveReorg(depth)
	r.logger.Warn("rolling back reorganized blocks",
		zap.Error(reorg),
		zap.Uint64("depth", depth),
	)

	generation, err := r.store.RewindCheckpoint(ctx, r.network.ID, fork)
	if err != nil {
		return fmt.Errorf("rewind checkpoint to %d: %w", fork, err)
	}
	return r.finishRollback(ctx, fork+1, generation)
}

func (r *Runner) findForkPoint(ctx context.Context, first *model.RawBlock) (uint64, error) {
	height := first.Block.Height - 1
	hash := first.Block.ParentHash
	for depth := 0; ; depth++ {
		if depth >= r.cfg.MaxReorgDepth {
			return 0, fmt.Errorf("no common ancestor within %d blocks below %d: %w",
				r.cfg.MaxReorgDepth, first.Block.Height, errReorgTooDeep)
		}

		stored, found, err := r.hashes.BlockHash(ctx, r.network.ID, height)
		if err != nil {
			return 0, fmt.Errorf("stored hash at %d: %w", height, err)
		}
		if found && sameHash(stored, hash) {
			return height, nil
		}
		if height <= r.network.GenesisHeight {
			return 0, fmt.Errorf("genesis block %d does not match stored hash: %w", height, errReorgTooDeep)
		}

		parent, err := r.source.FetchBlockByHash(ctx, hash)
		if err != nil {
			return 0, fmt.Errorf("fetch block %s: %w", hash, err)
		}
		if parent.Block.Height != height {
			return 0, model.NewProtocolError("walk back reorg",
				fmt.Errorf("block %s has height %d, want %d", hash, parent.Block.Height, height))
		}
		hash = parent.Block.ParentHash
		height--
	}
}

// finishRollback deletes stored data at or above from and clears the pending marker.
func (r *Runner) finishRollback(ctx context.Context, from, generation uint64) error {
	if err := r.writer.Rollback(ctx, r.network.ID, from); err != nil {
		return fmt.Errorf("rollback from %d: %w", from, err)
	}
	if err := r.store.ClearPendingRollback(ctx, r.network.ID, generation); err != nil {
		return fmt.Errorf("clear pending rollback: %w", err)
	}
	r.metrics.SetCheckpoint(from - 1)
	r.logger.Info("rollback finished", zap.Uint64("from", from))
	return nil
}
