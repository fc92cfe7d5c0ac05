package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/jackc/pgx/v5"
)

// ReadCheckpoint returns the network's checkpoint, or a zero generation checkpoint when none exists.
func (s *Store) ReadCheckpoint(ctx context.Context, network string) (cp model.Checkpoint, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("read_checkpoint", network, err, start)
	}()

	const query = `
SELECT height, generation, rollback_from, updated_at
FROM checkpoints
WHERE network_id = $1`

	cp.Network = network
	err = s.db.QueryRow(ctx, query, network).Scan(&cp.Height, &cp.Generation, &cp.RollbackFrom, &cp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return model.Checkpoint{Network: network}, nil
	}
	if err != nil {
		return model.Checkpoint{}, fmt.Errorf("read checkpoint %s: %w", network, err)
	}
	return cp, nil
}

// AdvanceCheckpoint moves the checkpoint forward to height.
// It returns model.ErrStaleCheckpoint when the stored height is not lower.
func (s *Store) AdvanceCheckpoint(ctx context.Context, network string, height uint64) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("advance_checkpoint", network, err, start)
	}()

	const query = `
INSERT INTO checkpoints (network_id, height, generation, rollback_from, updated_at)
VALUES ($1, $2, 1, 0, now())
ON CONFLICT (network_id) DO UPDATE
SET height = excluded.height,
    generation = checkpoints.generation + 1,
    updated_at = now()
WHERE checkpoints.height < excluded.height
RETURNING generation`

	var generation uint64
	err = s.db.QueryRow(ctx, query, network, height).Scan(&generation)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("advance checkpoint %s to %d: %w", network, height, model.ErrStaleCheckpoint)
		return err
	}
	if err != nil {
		return fmt.Errorf("advance checkpoint %s to %d: %w", network, height, err)
	}
	return nil
}

// RewindCheckpoint moves the checkpoint back to height for re-indexing after a reorg.
// It records rollback_from = height+1 until ClearPendingRollback and returns the new generation.
func (s *Store) RewindCheckpoint(ctx context.Context, network string, height uint64) (generation uint64, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("rewind_checkpoint", network, err, start)
	}()

	const query = `
INSERT INTO checkpoints (network_id, height, generation, rollback_from, updated_at)
VALUES ($1, $2, 1, $3, now())
ON CONFLICT (network_id) DO UPDATE
SET height = excluded.height,
    generation = checkpoints.generation + 1,
    rollback_from = excluded.rollback_from,
    updated_at = now()
RETURNING generation`

	if err = s.db.QueryRow(ctx, query, network, height, height+1).Scan(&generation); err != nil {
		return 0, fmt.Errorf("rewind checkpoint %s to %d: %w", network, height, err)
	}
	return generation, nil
}

// ClearPendingRollback marks the rollback recorded by generation as finished.
// A newer generation is left untouched.
func (s *Store) ClearPendingRollback(ctx context.Context, network string, generation uint64) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("clear_pending_rollback", network, err, start)
	}()

	const query = `
UPDATE checkpoints
SET rollback_from = 0, updated_at = now()
WHERE network_id = $1 AND generation = $2`

	if _, err = s.db.Exec(ctx, query, network, generation); err != nil {
		return fmt.Errorf("clear pending rollback %s: %w", network, err)
	}
	return nil
}
