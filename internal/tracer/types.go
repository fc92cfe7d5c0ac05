package tracer

import (
	"context"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	EdgeSource interface {
		UpstreamEdges(ctx context.Context, network, asset string, destinations []string, minAmount *big.Int) ([]model.Edge, error)
	}

	LabelSource interface {
		LabelsForAddresses(ctx context.Context, network string, addresses []string) (map[string]model.AddressLabel, error)
	}

	NetworkSource interface {
		GetNetwork(ctx context.Context, id string) (model.Network, error)
		ListNetworks(ctx context.Context) ([]model.Network, error)
	}

	Metrics interface {
		ObserveTrace(network string, err error, visited int, started time.Time)
	}
)
