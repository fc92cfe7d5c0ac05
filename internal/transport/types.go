package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Explorer interface {
		GetCheckpoint(ctx context.Context, network string) (model.Checkpoint, error)
		GetStatus(ctx context.Context, network string) (model.Status, error)
		TraceUpstream(ctx context.Context, req model.TraceRequest) ([]model.Attribution, error)
		Info(ctx context.Context, network, address string) (model.Info, error)

		ListNetworks(ctx context.Context) ([]model.Network, error)
		UpsertNetwork(ctx context.Context, n model.Network) error
		DeleteNetwork(ctx context.Context, id string) error
		CreateEntity(ctx context.Context, e model.Entity) (model.Entity, error)
		ListEntities(ctx context.Context) ([]model.Entity, error)
		CreateTag(ctx context.Context, tag model.Tag) (model.Tag, error)
		ListTags(ctx context.Context) ([]model.Tag, error)
		AttachTag(ctx context.Context, entityID, tagID int64) error
		DetachTag(ctx context.Context, entityID, tagID int64) error
		UpsertAddress(ctx context.Context, a model.Address) error
	}
)
