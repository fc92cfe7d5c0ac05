package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SanctionsChecksum returns the checksum of the last imported revision of list,
// or an empty string when the list was never imported.
func (s *Store) SanctionsChecksum(ctx context.Context, list string) (checksum string, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("sanctions_checksum", "", err, start)
	}()

	err = s.db.QueryRow(ctx, `SELECT checksum FROM sanctions_lists WHERE list = $1`, list).Scan(&checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read checksum of %s: %w", list, err)
	}
	return checksum, nil
}

// SaveSanctionsChecksum records checksum as the last imported revision of list.
func (s *Store) SaveSanctionsChecksum(ctx context.Context, list, checksum string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("save_sanctions_checksum", "", err, start)
	}()

	const query = `
INSERT INTO sanctions_lists (list, checksum, synced_at) VALUES ($1, $2, now())
ON CONFLICT (list) DO UPDATE
SET checksum = excluded.checksum,
    synced_at = excluded.synced_at`

	if _, err = s.db.Exec(ctx, query, list, checksum); err != nil {
		return fmt.Errorf("save checksum of %s: %w", list, err)
	}
	return nil
}

// SanctionedEntities maps the entry uids of list to the entities created for them.
func (s *Store) SanctionedEntities(ctx context.Context, list string) (entities map[string]int64, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("sanctioned_entities", "", err, start)
	}()

	rows, err := s.db.Query(ctx, `SELECT uid, entity_id FROM sanctioned_entities WHERE list = $1`, list)
	if err != nil {
		return nil, fmt.Errorf("list sanctioned entities of %s: %w", list, err)
	}
	defer rows.Close()

	entities = make(map[string]int64)
	for rows.Next() {
		var (
			uid      string
			entityID int64
		)
		if err = rows.Scan(&uid, &entityID); err != nil {
			return nil, fmt.Errorf("scan sanctioned entity: %w", err)
		}
		entities[uid] = entityID
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sanctioned entities: %w", err)
	}
	return entities, nil
}

// LinkSanctionedEntity records that entry uid of list is represented by entityID.
func (s *Store) LinkSanctionedEntity(ctx context.Context, list, uid string, entityID int64) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("link_sanctioned_entity", "", err, start)
	}()

	const query = `
INSERT INTO sanctioned_entities (list, uid, entity_id) VALUES ($1, $2, $3)
ON CONFLICT (list, uid) DO UPDATE
SET entity_id = excluded.entity_id`

	if _, err = s.db.Exec(ctx, query, list, uid, entityID); err != nil {
		return fmt.Errorf("link %s entry %s to entity %d: %w", list, uid, entityID, err)
	}
	return nil
}
