package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// TransactionOutputsLookupByTxIDs returns stored outputs grouped by txid.
func (r *Repository) TransactionOutputsLookupByTxIDs(ctx context.Context, network string, txids []string) (result map[string][]model.TransactionOutput, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transaction_outputs_lookup_by_txids", network, err, start)
	}()

	result = make(map[string][]model.TransactionOutput, len(txids))
	if len(txids) == 0 {
		return result, nil
	}

	const query = `
SELECT
	txid,
	output_index,
	anyLast(block_height) AS block_height,
	anyLast(value) AS value,
	anyLast(addresses) AS addresses
FROM utxo_outputs
WHERE network = ? AND txid IN ?
GROUP BY
	txid,
	output_index
ORDER BY output_index ASC`

	rows, err := r.conn.Query(ctx, query, network, txids)
	if err != nil {
		return nil, fmt.Errorf("query transaction outputs by txids: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		output := model.TransactionOutput{Network: network}
		if err = rows.Scan(
			&output.TxID,
			&output.Index,
			&output.BlockHeight,
			&output.Value,
			&output.Addresses,
		); err != nil {
			return nil, fmt.Errorf("scan transaction output: %w", err)
		}
		result[output.TxID] = append(result[output.TxID], output)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction outputs: %w", err)
	}
	return result, nil
}
