package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// InsertTransactions stores transaction rows keyed on (network, block_height, tx_index).
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO transactions (
	network,
	block_height,
	tx_index,
	hash,
	timestamp,
	failed
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}
	defer abortUnsent(batch, &err)

	for _, tx := range txs {
		if err = batch.Append(
			tx.Network,
			tx.BlockHeight,
			tx.Index,
			tx.Hash,
			tx.Timestamp,
			tx.Failed,
		); err != nil {
			return fmt.Errorf("append transaction %s: %w", tx.Hash, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
