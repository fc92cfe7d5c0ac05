package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// InsertBlocks stores block rows. Re-inserting a height replaces the previous row on merge.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_blocks", firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO blocks (
	network,
	height,
	hash,
	parent_hash,
	timestamp,
	tx_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}
	defer abortUnsent(batch, &err)

	for _, block := range blocks {
		if err = batch.Append(
			block.Network,
			block.Height,
			block.Hash,
			block.ParentHash,
			block.Timestamp,
			block.TxCount,
		); err != nil {
			return fmt.Errorf("append block %d: %w", block.Height, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

// abortUnsent releases a prepared batch when the insert failed before Send.
func abortUnsent(batch Batch, err *error) {
	if *err != nil {
		_ = batch.Abort()
	}
}

func firstNetwork[T any](items []T) string {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.Block:
		return v.Network
	case model.Transaction:
		return v.Network
	case model.Transfer:
		return v.Network
	case model.TransactionOutput:
		return v.Network
	default:
		return ""
	}
}
