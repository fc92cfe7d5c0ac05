// Package config loads network definitions from YAML.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"gopkg.in/yaml.v3"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type NetworkStore interface {
	UpsertNetwork(ctx context.Context, n model.Network) error
}

// File is the layout of a networks file.
type File struct {
	Networks []Network `yaml:"networks"`
}

// Network is one entry of a networks file. Endpoints may reference environment variables.
type Network struct {
	ID                string        `yaml:"id"`
	Name              string        `yaml:"name"`
	Architecture      string        `yaml:"architecture"`
	Chain             string        `yaml:"chain"`
	BlockTime         time.Duration `yaml:"block_time"`
	RPCEndpoints      []string      `yaml:"rpc_endpoints"`
	RPS               float64       `yaml:"rps"`
	GenesisHeight     uint64        `yaml:"genesis_height"`
	InternalTransfers bool          `yaml:"internal_transfers"`
	Enabled           *bool         `yaml:"enabled"`
}

func (n Network) model() model.Network {
	endpoints := make([]string, 0, len(n.RPCEndpoints))
	for _, ep := range n.RPCEndpoints {
		endpoints = append(endpoints, os.ExpandEnv(ep))
	}
	enabled := true
	if n.Enabled != nil {
		enabled = *n.Enabled
	}
	return model.Network{
		ID:                n.ID,
		Name:              n.Name,
		Architecture:      model.Architecture(n.Architecture),
		Chain:             n.Chain,
		BlockTime:         n.BlockTime,
		RPCEndpoints:      endpoints,
		RPS:               n.RPS,
		GenesisHeight:     n.GenesisHeight,
		InternalTransfers: n.InternalTransfers,
		Enabled:           enabled,
	}
}

// LoadNetworks reads and validates the networks file at path.
func LoadNetworks(path string) ([]model.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read networks file: %w", err)
	}
	return ParseNetworks(bytes.NewReader(data))
}

// ParseNetworks decodes a networks document. Unknown keys and duplicate ids are rejected.
func ParseNetworks(r io.Reader) ([]model.Network, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse networks file: %w", err)
	}

	seen := make(map[string]bool, len(file.Networks))
	networks := make([]model.Network, 0, len(file.Networks))
	for _, entry := range file.Networks {
		n := entry.model()
		if err := n.Validate(); err != nil {
			return nil, err
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("network %s is defined twice", n.ID)
		}
		seen[n.ID] = true
		networks = append(networks, n)
	}
	return networks, nil
}

// Seed upserts networks into store.
func Seed(ctx context.Context, store NetworkStore, networks []model.Network) error {
	for _, n := range networks {
		if err := store.UpsertNetwork(ctx, n); err != nil {
			return fmt.Errorf("seed network %s: %w", n.ID, err)
		}
	}
	return nil
}
