package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/jackc/pgx/v5"
)

// UpsertStatuses stores the latest runner status per network in one batch.
// An empty LastError keeps the previously recorded error.
func (s *Store) UpsertStatuses(ctx context.Context, statuses []model.NetworkStatus) (err error) {
	start := time.Now()
	defer func() {
		network := ""
		if len(statuses) > 0 {
			network = statuses[0].Network
		}
		s.metrics.Observe("upsert_statuses", network, err, start)
	}()

	if len(statuses) == 0 {
		return nil
	}

	const query = `
INSERT INTO indexer_status (network_id, instance_id, state, tip_height, last_error, last_error_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (network_id) DO UPDATE
SET instance_id = excluded.instance_id,
    state = excluded.state,
    tip_height = GREATEST(indexer_status.tip_height, excluded.tip_height),
    last_error = CASE WHEN excluded.last_error = '' THEN indexer_status.last_error ELSE excluded.last_error END,
    last_error_at = COALESCE(excluded.last_error_at, indexer_status.last_error_at),
    updated_at = excluded.updated_at
WHERE indexer_status.updated_at <= excluded.updated_at`

	for _, st := range statuses {
		var lastErrorAt *time.Time
		if st.LastError != "" {
			at := st.LastErrorAt
			lastErrorAt = &at
		}
		updatedAt := st.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = time.Now()
		}
		if _, err = s.db.Exec(ctx, query, st.Network, st.InstanceID, string(st.State), st.TipHeight, st.LastError, lastErrorAt, updatedAt); err != nil {
			return fmt.Errorf("upsert status %s: %w", st.Network, err)
		}
	}
	return nil
}

// GetNetworkStatus returns the last recorded status; zero value when none.
func (s *Store) GetNetworkStatus(ctx context.Context, network string) (st model.NetworkStatus, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("get_network_status", network, err, start)
	}()

	const query = `
SELECT instance_id, state, tip_height, last_error, last_error_at, updated_at
FROM indexer_status
WHERE network_id = $1`

	var (
		state       string
		lastErrorAt *time.Time
	)
	st.Network = network
	err = s.db.QueryRow(ctx, query, network).Scan(&st.InstanceID, &state, &st.TipHeight, &st.LastError, &lastErrorAt, &st.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return model.NetworkStatus{Network: network, State: model.StateIdle}, nil
	}
	if err != nil {
		return model.NetworkStatus{}, fmt.Errorf("get status %s: %w", network, err)
	}
	st.State = model.RunnerState(state)
	if lastErrorAt != nil {
		st.LastErrorAt = *lastErrorAt
	}
	return st, nil
}
