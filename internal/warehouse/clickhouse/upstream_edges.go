package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// UpstreamEdges aggregates what each source sent to any of destinations in asset.
// Sourceless transfers and self transfers are left out. Edges below minAmount are dropped.
func (r *Repository) UpstreamEdges(ctx context.Context, network, asset string, destinations []string, minAmount *big.Int) (edges []model.Edge, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("upstream_edges", network, err, start)
	}()

	if len(destinations) == 0 {
		return nil, nil
	}
	threshold := "0"
	if minAmount != nil && minAmount.Sign() > 0 {
		threshold = minAmount.String()
	}

	const query = `
SELECT
	from_address,
	to_address,
	sum(amount) AS total
FROM transfers_by_destination FINAL
WHERE network = ?
	AND asset = ?
	AND to_address IN ?
	AND from_address != ''
	AND from_address != to_address
GROUP BY
	from_address,
	to_address
HAVING total >= toUInt256(?)
ORDER BY
	to_address,
	from_address`

	rows, err := r.conn.Query(ctx, query, network, asset, destinations, threshold)
	if err != nil {
		return nil, fmt.Errorf("query upstream edges: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		edge := model.Edge{Amount: new(big.Int)}
		if err = rows.Scan(&edge.From, &edge.To, edge.Amount); err != nil {
			return nil, fmt.Errorf("scan upstream edge: %w", err)
		}
		edges = append(edges, edge)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upstream edges: %w", err)
	}
	return edges, nil
}
