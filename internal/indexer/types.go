package indexer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source is the chain adapter of one network.
	Source interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlockByHeight(ctx context.Context, height uint64) (*model.RawBlock, error)
		FetchBlockByHash(ctx context.Context, hash string) (*model.RawBlock, error)
		Extract(ctx context.Context, blocks []*model.RawBlock) ([]model.BlockRecords, error)
	}

	Store interface {
		ReadCheckpoint(ctx context.Context, network string) (model.Checkpoint, error)
		AdvanceCheckpoint(ctx context.Context, network string, height uint64) error
		RewindCheckpoint(ctx context.Context, network string, height uint64) (uint64, error)
		ClearPendingRollback(ctx context.Context, network string, generation uint64) error
		TryAcquireLeadership(ctx context.Context, network, instanceID string, leaseDuration time.Duration) (bool, error)
		RenewLeadership(ctx context.Context, network, instanceID string) (bool, error)
		ReleaseLeadership(ctx context.Context, network, instanceID string) error
	}

	// BlockHashes reads stored block hashes for fork detection.
	BlockHashes interface {
		BlockHash(ctx context.Context, network string, height uint64) (string, bool, error)
	}

	Writer interface {
		WriteBatch(ctx context.Context, batch model.Batch) error
		Rollback(ctx context.Context, network string, from uint64) error
	}

	StatusReporter interface {
		Report(ctx context.Context, status model.NetworkStatus) error
	}

	StatusSink interface {
		UpsertStatuses(ctx context.Context, statuses []model.NetworkStatus) error
	}

	NetworkLister interface {
		ListNetworks(ctx context.Context) ([]model.Network, error)
	}

	Runnable interface {
		Run(ctx context.Context) error
	}

	Metrics interface {
		ObserveBatch(err error, blocks int, started time.Time)
		SetCheckpoint(height uint64)
		SetTip(height uint64)
		SetState(state model.RunnerState)
		ObserveReorg(depth uint64)
		ObserveLeadership(event string)
	}
)
