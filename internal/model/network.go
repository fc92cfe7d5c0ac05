// Package model defines the canonical domain types shared by the indexer, stores and tracer.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Architecture is the capability class of a network.
type Architecture string

const (
	// ArchitectureUTXO covers Bitcoin-family chains.
	ArchitectureUTXO Architecture = "utxo"
	// ArchitectureAccount covers EVM-compatible chains.
	ArchitectureAccount Architecture = "account"
	// ArchitectureOther is reserved for architectures without an adapter yet.
	ArchitectureOther Architecture = "other"
)

// NativeAsset identifies the chain's own coin in transfers.
const NativeAsset = ""

// Network is a configured blockchain source.
type Network struct {
	ID                string
	Name              string
	Architecture      Architecture
	Chain             string
	BlockTime         time.Duration
	RPCEndpoints      []string
	RPS               float64
	GenesisHeight     uint64
	InternalTransfers bool
	Enabled           bool
}

// Validate checks the fields required to index a network.
func (n Network) Validate() error {
	if n.ID == "" {
		return errors.New("network id is required")
	}
	switch n.Architecture {
	case ArchitectureUTXO, ArchitectureAccount, ArchitectureOther:
	default:
		return fmt.Errorf("network %s: unknown architecture %q", n.ID, n.Architecture)
	}
	if len(n.RPCEndpoints) == 0 {
		return fmt.Errorf("network %s: at least one rpc endpoint is required", n.ID)
	}
	if n.RPS <= 0 {
		return fmt.Errorf("network %s: rps must be positive", n.ID)
	}
	if n.BlockTime <= 0 {
		return fmt.Errorf("network %s: block time must be positive", n.ID)
	}
	return nil
}
