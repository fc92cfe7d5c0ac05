package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// heightColumns maps every table holding per-block rows to its height column.
var heightColumns = []struct {
	table  string
	column string
}{
	{table: "blocks", column: "height"},
	{table: "transactions", column: "block_height"},
	{table: "transfers", column: "block_height"},
	{table: "transfers_by_destination", column: "block_height"},
	{table: "utxo_outputs", column: "block_height"},
}

// DeleteFromHeight removes every row of network at or above height.
// Mutations run synchronously on all replicas so the caller can re-insert right away.
func (r *Repository) DeleteFromHeight(ctx context.Context, network string, height uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("delete_from_height", network, err, start)
	}()

	ctx = clickhouse.Context(ctx, clickhouse.WithSettings(clickhouse.Settings{
		"mutations_sync": 2,
	}))

	for _, t := range heightColumns {
		query := fmt.Sprintf("ALTER TABLE %s DELETE WHERE network = ? AND %s >= ?", t.table, t.column)
		if err = r.conn.Exec(ctx, query, network, height); err != nil {
			return fmt.Errorf("delete %s from height %d: %w", t.table, height, err)
		}
	}
	return nil
}
