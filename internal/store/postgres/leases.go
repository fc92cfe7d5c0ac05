package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"github.com/jackc/pgx/v5"
)

// TryAcquireLeadership takes the network's lease when it is free, expired or already ours.
// The compare-and-set happens in a single statement.
func (s *Store) TryAcquireLeadership(ctx context.Context, network, instanceID string, leaseDuration time.Duration) (acquired bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("try_acquire_leadership", network, err, start)
	}()

	const query = `
INSERT INTO leases (network_id, instance_id, duration_ms, acquired_at, expires_at)
VALUES ($1, $2, $3::bigint, now(), now() + $3::bigint * interval '1 millisecond')
ON CONFLICT (network_id) DO UPDATE
SET instance_id = excluded.instance_id,
    duration_ms = excluded.duration_ms,
    acquired_at = CASE WHEN leases.instance_id = excluded.instance_id THEN leases.acquired_at ELSE excluded.acquired_at END,
    expires_at = excluded.expires_at
WHERE leases.expires_at < now() OR leases.instance_id = excluded.instance_id
RETURNING instance_id`

	var holder string
	err = s.db.QueryRow(ctx, query, network, instanceID, leaseDuration.Milliseconds()).Scan(&holder)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("acquire lease %s: %w", network, err)
	}
	return holder == instanceID, nil
}

// RenewLeadership extends a live lease held by instanceID by its stored duration.
// It reports false when the lease expired or belongs to someone else.
func (s *Store) RenewLeadership(ctx context.Context, network, instanceID string) (renewed bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("renew_leadership", network, err, start)
	}()

	const query = `
UPDATE leases
SET expires_at = now() + duration_ms * interval '1 millisecond'
WHERE network_id = $1 AND instance_id = $2 AND expires_at > now()`

	tag, err := s.db.Exec(ctx, query, network, instanceID)
	if err != nil {
		return false, fmt.Errorf("renew lease %s: %w", network, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseLeadership drops the lease if instanceID holds it.
func (s *Store) ReleaseLeadership(ctx context.Context, network, instanceID string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("release_leadership", network, err, start)
	}()

	const query = `DELETE FROM leases WHERE network_id = $1 AND instance_id = $2`
	if _, err = s.db.Exec(ctx, query, network, instanceID); err != nil {
		return fmt.Errorf("release lease %s: %w", network, err)
	}
	return nil
}

// GetLease returns the current lease row; a zero InstanceID means nobody ever held it.
func (s *Store) GetLease(ctx context.Context, network string) (lease model.Lease, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("get_lease", network, err, start)
	}()

	const query = `
SELECT instance_id, acquired_at, expires_at
FROM leases
WHERE network_id = $1`

	lease.Network = network
	err = s.db.QueryRow(ctx, query, network).Scan(&lease.InstanceID, &lease.AcquiredAt, &lease.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return model.Lease{Network: network}, nil
	}
	if err != nil {
		return model.Lease{}, fmt.Errorf("get lease %s: %w", network, err)
	}
	return lease, nil
}
