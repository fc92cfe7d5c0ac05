package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// InsertOutputs stores UTXO outputs used to resolve later inputs.
func (r *Repository) InsertOutputs(ctx context.Context, outputs []model.TransactionOutput) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_outputs", firstNetwork(outputs), err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO utxo_outputs (
	network,
	block_height,
	txid,
	output_index,
	value,
	addresses
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare outputs batch: %w", err)
	}
	defer abortUnsent(batch, &err)

	for _, output := range outputs {
		addresses := output.Addresses
		if addresses == nil {
			addresses = []string{}
		}
		if err = batch.Append(
			output.Network,
			output.BlockHeight,
			output.TxID,
			output.Index,
			output.Value,
			addresses,
		); err != nil {
			return fmt.Errorf("append output %s:%d: %w", output.TxID, output.Index, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert outputs: %w", err)
	}
	return nil
}
