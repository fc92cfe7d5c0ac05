package service

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

func (e *Explorer) ListNetworks(ctx context.Context) ([]model.Network, error) {
	return e.store.ListNetworks(ctx)
}

func (e *Explorer) UpsertNetwork(ctx context.Context, n model.Network) error {
	return e.store.UpsertNetwork(ctx, n)
}

func (e *Explorer) DeleteNetwork(ctx context.Context, id string) error {
	return e.store.DeleteNetwork(ctx, id)
}

func (e *Explorer) CreateEntity(ctx context.Context, entity model.Entity) (model.Entity, error) {
	return e.store.CreateEntity(ctx, entity)
}

func (e *Explorer) ListEntities(ctx context.Context) ([]model.Entity, error) {
	return e.store.ListEntities(ctx)
}

func (e *Explorer) CreateTag(ctx context.Context, tag model.Tag) (model.Tag, error) {
	return e.store.CreateTag(ctx, tag)
}

func (e *Explorer) ListTags(ctx context.Context) ([]model.Tag, error) {
	return e.store.ListTags(ctx)
}

func (e *Explorer) AttachTag(ctx context.Context, entityID, tagID int64) error {
	return e.store.AttachTag(ctx, entityID, tagID)
}

func (e *Explorer) DetachTag(ctx context.Context, entityID, tagID int64) error {
	return e.store.DetachTag(ctx, entityID, tagID)
}

// UpsertAddress stores a in the canonical form of its network.
func (e *Explorer) UpsertAddress(ctx context.Context, a model.Address) error {
	n, err := e.store.GetNetwork(ctx, a.Network)
	if err != nil {
		return err
	}
	a.Address = chain.NormalizeAddress(n.Architecture, a.Address)
	return e.store.UpsertAddress(ctx, a)
}
