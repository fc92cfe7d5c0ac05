package writer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ObjectStore interface {
		Put(ctx context.Context, key string, data []byte) error
		Get(ctx context.Context, key string) ([]byte, error)
		List(ctx context.Context, prefix string) ([]string, error)
		Delete(ctx context.Context, key string) error
	}

	Warehouse interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransfers(ctx context.Context, transfers []model.Transfer) error
		InsertOutputs(ctx context.Context, outputs []model.TransactionOutput) error
		DeleteFromHeight(ctx context.Context, network string, height uint64) error
	}

	Metrics interface {
		ObserveWrite(tier, network string, err error, started time.Time)
		ObserveRollback(network string, err error)
	}
)
