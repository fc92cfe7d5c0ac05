package bitcoin

import (
	"context"
	"encoding/json"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Caller performs JSON-RPC calls against bitcoind.
	Caller interface {
		Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	}

	// OutputLookup resolves outputs already stored in the warehouse.
	OutputLookup interface {
		TransactionOutputsLookupByTxIDs(ctx context.Context, network string, txids []string) (map[string][]model.TransactionOutput, error)
	}
)
