// Package sanctions imports published sanctions lists into the label store.
package sanctions

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store persists entities, tags and addresses along with list bookkeeping.
	Store interface {
		ListNetworks(ctx context.Context) ([]model.Network, error)
		ListTags(ctx context.Context) ([]model.Tag, error)
		CreateTag(ctx context.Context, tag model.Tag) (model.Tag, error)
		CreateEntity(ctx context.Context, e model.Entity) (model.Entity, error)
		ListEntities(ctx context.Context) ([]model.Entity, error)
		AttachTag(ctx context.Context, entityID, tagID int64) error
		DetachTag(ctx context.Context, entityID, tagID int64) error
		UpsertAddress(ctx context.Context, a model.Address) error
		SanctionsChecksum(ctx context.Context, list string) (string, error)
		SaveSanctionsChecksum(ctx context.Context, list, checksum string) error
		SanctionedEntities(ctx context.Context, list string) (map[string]int64, error)
		LinkSanctionedEntity(ctx context.Context, list, uid string, entityID int64) error
	}

	// Source downloads the raw list document.
	Source interface {
		Fetch(ctx context.Context) ([]byte, error)
	}

	// Metrics records import outcomes.
	Metrics interface {
		ObserveSync(list string, err error, started time.Time)
	}
)
