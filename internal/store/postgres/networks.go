package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/jackc/pgx/v5"
)

const networkColumns = `id, name, architecture, chain, block_time_ms, rpc_endpoints, rps, genesis_height, internal_transfers, enabled`

// UpsertNetwork creates or updates a network. The architecture of an existing network cannot change.
func (s *Store) UpsertNetwork(ctx context.Context, n model.Network) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("upsert_network", n.ID, err, start)
	}()

	if err = n.Validate(); err != nil {
		return err
	}

	const query = `
INSERT INTO networks (` + networkColumns + `, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
ON CONFLICT (id) DO UPDATE
SET name = excluded.name,
    chain = excluded.chain,
    block_time_ms = excluded.block_time_ms,
    rpc_endpoints = excluded.rpc_endpoints,
    rps = excluded.rps,
    genesis_height = excluded.genesis_height,
    internal_transfers = excluded.internal_transfers,
    enabled = excluded.enabled,
    updated_at = now()
WHERE networks.architecture = excluded.architecture
RETURNING id`

	var id string
	err = s.db.QueryRow(ctx, query,
		n.ID,
		n.Name,
		string(n.Architecture),
		n.Chain,
		n.BlockTime.Milliseconds(),
		n.RPCEndpoints,
		n.RPS,
		n.GenesisHeight,
		n.InternalTransfers,
		n.Enabled,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("upsert network %s: %w", n.ID, model.ErrArchitectureImmutable)
		return err
	}
	if err != nil {
		return fmt.Errorf("upsert network %s: %w", n.ID, err)
	}
	return nil
}

// GetNetwork returns model.ErrNetworkNotFound for unknown ids.
func (s *Store) GetNetwork(ctx context.Context, id string) (n model.Network, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("get_network", id, err, start)
	}()

	query := `SELECT ` + networkColumns + ` FROM networks WHERE id = $1`
	n, err = scanNetwork(s.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("get network %s: %w", id, model.ErrNetworkNotFound)
		return model.Network{}, err
	}
	if err != nil {
		return model.Network{}, fmt.Errorf("get network %s: %w", id, err)
	}
	return n, nil
}

// ListNetworks returns all networks ordered by id.
func (s *Store) ListNetworks(ctx context.Context) (networks []model.Network, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("list_networks", "", err, start)
	}()

	rows, err := s.db.Query(ctx, `SELECT `+networkColumns+` FROM networks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		n, scanErr := scanNetwork(rows)
		if scanErr != nil {
			err = fmt.Errorf("scan network: %w", scanErr)
			return nil, err
		}
		networks = append(networks, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate networks: %w", err)
	}
	return networks, nil
}

// DeleteNetwork removes a network with its checkpoint, lease, status and addresses.
func (s *Store) DeleteNetwork(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("delete_network", id, err, start)
	}()

	tag, err := s.db.Exec(ctx, `DELETE FROM networks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete network %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("delete network %s: %w", id, model.ErrNetworkNotFound)
		return err
	}
	return nil
}

func scanNetwork(row Row) (model.Network, error) {
	var (
		n            model.Network
		architecture string
		blockTimeMS  int64
	)
	if err := row.Scan(
		&n.ID,
		&n.Name,
		&architecture,
		&n.Chain,
		&blockTimeMS,
		&n.RPCEndpoints,
		&n.RPS,
		&n.GenesisHeight,
		&n.InternalTransfers,
		&n.Enabled,
	); err != nil {
		return model.Network{}, err
	}
	n.Architecture = model.Architecture(architecture)
	n.BlockTime = time.Duration(blockTimeMS) * time.Millisecond
	return n, nil
}
