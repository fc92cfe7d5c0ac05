package service

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Store interface {
		ReadCheckpoint(ctx context.Context, network string) (model.Checkpoint, error)
		GetLease(ctx context.Context, network string) (model.Lease, error)
		GetNetworkStatus(ctx context.Context, network string) (model.NetworkStatus, error)

		GetNetwork(ctx context.Context, id string) (model.Network, error)
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
		LabelsForAddresses(ctx context.Context, network string, addresses []string) (map[string]model.AddressLabel, error)
	}

	Flows interface {
		AssetFlows(ctx context.Context, network, address string) ([]model.AssetFlow, error)
	}

	Tracer interface {
		TraceUpstream(ctx context.Context, req model.TraceRequest) ([]model.Attribution, error)
	}
)
