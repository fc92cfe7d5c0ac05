package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// BlockHash returns the stored hash at height and whether a block is stored there.
func (r *Repository) BlockHash(ctx context.Context, network string, height uint64) (hash string, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_hash", network, err, start)
	}()

	const query = `
SELECT hash
FROM blocks FINAL
WHERE network = ? AND height = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, network, height)
	if err != nil {
		return "", false, fmt.Errorf("query block hash: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return "", false, fmt.Errorf("iterate block hash: %w", err)
		}
		return "", false, nil
	}
	if err = rows.Scan(&hash); err != nil {
		return "", false, fmt.Errorf("scan block hash: %w", err)
	}
	if err = rows.Err(); err != nil {
		return "", false, fmt.Errorf("iterate block hash: %w", err)
	}
	return hash, true, nil
}
