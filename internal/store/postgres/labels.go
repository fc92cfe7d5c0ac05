package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// CreateEntity inserts an entity and returns it with its id.
func (s *Store) CreateEntity(ctx context.Context, e model.Entity) (created model.Entity, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("create_entity", "", err, start)
	}()

	if e.Name == "" {
		err = fmt.Errorf("create entity: name is required")
		return model.Entity{}, err
	}
	const query = `INSERT INTO entities (name, description) VALUES ($1, $2) RETURNING id`
	if err = s.db.QueryRow(ctx, query, e.Name, e.Description).Scan(&e.ID); err != nil {
		return model.Entity{}, fmt.Errorf("create entity %s: %w", e.Name, err)
	}
	return e, nil
}

// ListEntities returns all entities ordered by id.
func (s *Store) ListEntities(ctx context.Context) (entities []model.Entity, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("list_entities", "", err, start)
	}()

	rows, err := s.db.Query(ctx, `SELECT id, name, description FROM entities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e model.Entity
		if err = rows.Scan(&e.ID, &e.Name, &e.Description); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		entities = append(entities, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entities: %w", err)
	}
	return entities, nil
}

// CreateTag inserts a tag with a valid risk level.
func (s *Store) CreateTag(ctx context.Context, tag model.Tag) (created model.Tag, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("create_tag", "", err, start)
	}()

	if tag.Name == "" {
		err = fmt.Errorf("create tag: name is required")
		return model.Tag{}, err
	}
	if !tag.RiskLevel.Valid() {
		err = fmt.Errorf("create tag %s: unknown risk level %q", tag.Name, tag.RiskLevel)
		return model.Tag{}, err
	}
	const query = `INSERT INTO tags (name, risk_level) VALUES ($1, $2) RETURNING id`
	if err = s.db.QueryRow(ctx, query, tag.Name, string(tag.RiskLevel)).Scan(&tag.ID); err != nil {
		return model.Tag{}, fmt.Errorf("create tag %s: %w", tag.Name, err)
	}
	return tag, nil
}

// ListTags returns all tags ordered by id.
func (s *Store) ListTags(ctx context.Context) (tags []model.Tag, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("list_tags", "", err, start)
	}()

	rows, err := s.db.Query(ctx, `SELECT id, name, risk_level FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tag   model.Tag
			level string
		)
		if err = rows.Scan(&tag.ID, &tag.Name, &level); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tag.RiskLevel = model.RiskLevel(level)
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// AttachTag links a tag to an entity. Attaching twice is a no-op.
func (s *Store) AttachTag(ctx context.Context, entityID, tagID int64) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("attach_tag", "", err, start)
	}()

	const query = `
INSERT INTO entity_tags (entity_id, tag_id) VALUES ($1, $2)
ON CONFLICT (entity_id, tag_id) DO NOTHING`

	if _, err = s.db.Exec(ctx, query, entityID, tagID); err != nil {
		if isForeignKeyViolation(err) {
			err = fmt.Errorf("attach tag %d to entity %d: %w", tagID, entityID, model.ErrNotFound)
			return err
		}
		return fmt.Errorf("attach tag %d to entity %d: %w", tagID, entityID, err)
	}
	return nil
}

// DetachTag unlinks a tag from an entity.
func (s *Store) DetachTag(ctx context.Context, entityID, tagID int64) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("detach_tag", "", err, start)
	}()

	tag, err := s.db.Exec(ctx, `DELETE FROM entity_tags WHERE entity_id = $1 AND tag_id = $2`, entityID, tagID)
	if err != nil {
		return fmt.Errorf("detach tag %d from entity %d: %w", tagID, entityID, err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("detach tag %d from entity %d: %w", tagID, entityID, model.ErrNotFound)
		return err
	}
	return nil
}

// UpsertAddress assigns an address on a network to an entity.
func (s *Store) UpsertAddress(ctx context.Context, a model.Address) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("upsert_address", a.Network, err, start)
	}()

	if a.Address == "" {
		err = fmt.Errorf("upsert address: address is required")
		return err
	}
	const query = `
INSERT INTO addresses (network_id, address, entity_id, description)
VALUES ($1, $2, $3, $4)
ON CONFLICT (network_id, address) DO UPDATE
SET entity_id = excluded.entity_id,
    description = excluded.description`

	if _, err = s.db.Exec(ctx, query, a.Network, a.Address, a.EntityID, a.Description); err != nil {
		if isForeignKeyViolation(err) {
			err = fmt.Errorf("upsert address %s/%s: %w", a.Network, a.Address, model.ErrNotFound)
			return err
		}
		return fmt.Errorf("upsert address %s/%s: %w", a.Network, a.Address, err)
	}
	return nil
}

// LabelsForAddresses returns the entity and tags for every address in addresses that has one.
func (s *Store) LabelsForAddresses(ctx context.Context, network string, addresses []string) (labels map[string]model.AddressLabel, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("labels_for_addresses", network, err, start)
	}()

	labels = make(map[string]model.AddressLabel)
	if len(addresses) == 0 {
		return labels, nil
	}

	const query = `
SELECT a.address, e.id, e.name, e.description, t.id, t.name, t.risk_level
FROM addresses a
JOIN entities e ON e.id = a.entity_id
LEFT JOIN entity_tags et ON et.entity_id = e.id
LEFT JOIN tags t ON t.id = et.tag_id
WHERE a.network_id = $1 AND a.address = ANY($2)
ORDER BY a.address, t.id`

	rows, err := s.db.Query(ctx, query, network, addresses)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			address   string
			entity    model.Entity
			tagID     *int64
			tagName   *string
			riskLevel *string
		)
		if err = rows.Scan(&address, &entity.ID, &entity.Name, &entity.Description, &tagID, &tagName, &riskLevel); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		label := labels[address]
		label.Entity = entity
		if tagID != nil && tagName != nil && riskLevel != nil {
			label.Tags = append(label.Tags, model.Tag{ID: *tagID, Name: *tagName, RiskLevel: model.RiskLevel(*riskLevel)})
		}
		labels[address] = label
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return labels, nil
}
