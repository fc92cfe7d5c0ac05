package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// InsertTransfers stores transfers keyed on (network, block_height, transfer_index).
// The transfers_by_destination view is fed from the same insert.
func (r *Repository) InsertTransfers(ctx context.Context, transfers []model.Transfer) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_transfers", firstNetwork(transfers), err, start)
	}()

	if len(transfers) == 0 {
		return nil
	}

	const query = `
INSERT INTO transfers (
	network,
	block_height,
	transfer_index,
	tx_hash,
	timestamp,
	from_address,
	to_address,
	asset,
	amount
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transfers batch: %w", err)
	}
	defer abortUnsent(batch, &err)

	for _, t := range transfers {
		amount := t.Amount
		if amount == nil {
			amount = new(big.Int)
		}
		if amount.Sign() < 0 {
			err = fmt.Errorf("transfer %d at height %d has negative amount %s", t.Index, t.BlockHeight, amount)
			return err
		}
		if err = batch.Append(
			t.Network,
			t.BlockHeight,
			t.Index,
			t.TxHash,
			t.Timestamp,
			t.From,
			t.To,
			t.Asset,
			amount,
		); err != nil {
			return fmt.Errorf("append transfer %d at height %d: %w", t.Index, t.BlockHeight, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transfers: %w", err)
	}
	return nil
}
