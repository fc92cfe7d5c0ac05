// Package chain dispatches networks to their architecture-specific adapters.
package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain/evm"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

type (
	// Adapter reads blocks from one network's nodes and normalizes them.
	Adapter interface {
		LatestHeight(ctx context.Context) (uint64, error)
		FetchBlockByHeight(ctx context.Context, height uint64) (*model.RawBlock, error)
		FetchBlockByHash(ctx context.Context, hash string) (*model.RawBlock, error)
		// Extract expects blocks in strictly increasing height order.
		Extract(ctx context.Context, blocks []*model.RawBlock) ([]model.BlockRecords, error)
	}

	// Caller performs JSON-RPC calls against a node.
	Caller interface {
		Call(ctx context.Context, method string, params ...any) (json.RawMessage, error)
	}

	// OutputLookup resolves previously stored UTXO outputs.
	OutputLookup interface {
		TransactionOutputsLookupByTxIDs(ctx context.Context, network string, txids []string) (map[string][]model.TransactionOutput, error)
	}
)

// New returns the adapter for network's architecture.
func New(network model.Network, caller Caller, outputs OutputLookup, logger *zap.Logger) (Adapter, error) {
	if caller == nil {
		return nil, fmt.Errorf("network %s: rpc caller is required", network.ID)
	}
	switch network.Architecture {
	case model.ArchitectureUTXO:
		if outputs == nil {
			return nil, fmt.Errorf("network %s: output lookup is required", network.ID)
		}
		return bitcoin.NewAdapter(network, caller, outputs, logger)
	case model.ArchitectureAccount:
		return evm.NewAdapter(network, caller, logger)
	default:
		return nil, fmt.Errorf("network %s: unsupported architecture %q", network.ID, network.Architecture)
	}
}

// NormalizeAddress returns the canonical form used for storage and lookups.
func NormalizeAddress(arch model.Architecture, address string) string {
	address = strings.TrimSpace(address)
	if arch == model.ArchitectureAccount {
		return strings.ToLower(address)
	}
	return address
}
