package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// AssetFlows sums what address received and sent per asset.
func (r *Repository) AssetFlows(ctx context.Context, network, address string) (flows []model.AssetFlow, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("asset_flows", network, err, start)
	}()

	const query = `
SELECT
	asset,
	sumIf(amount, to_address = ?) AS received,
	sumIf(amount, from_address = ?) AS sent
FROM transfers FINAL
WHERE network = ? AND (to_address = ? OR from_address = ?)
GROUP BY asset
ORDER BY asset`

	rows, err := r.conn.Query(ctx, query, address, address, network, address, address)
	if err != nil {
		return nil, fmt.Errorf("query asset flows: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		flow := model.AssetFlow{Received: new(big.Int), Sent: new(big.Int)}
		if err = rows.Scan(&flow.Asset, flow.Received, flow.Sent); err != nil {
			return nil, fmt.Errorf("scan asset flow: %w", err)
		}
		flow.Balance = new(big.Int).Sub(flow.Received, flow.Sent)
		flows = append(flows, flow)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset flows: %w", err)
	}
	return flows, nil
}
