// Package tracer finds labeled fund sources upstream of an address.
package tracer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultHopLimit    = 4
	defaultMaxHopLimit = 10
	defaultMaxFrontier = 50_000
	defaultChunkSize   = 1000
)

type Config struct {
	// MaxHopLimit is the largest hop limit a request may ask for.
	MaxHopLimit int
	MaxFrontier int
	ChunkSize   int
}

type Tracer struct {
	edges       EdgeSource
	labels      LabelSource
	networks    NetworkSource
	metrics     Metrics
	logger      *zap.Logger
	maxHopLimit int
	maxFrontier int
	chunkSize   int
}

func New(cfg Config, edges EdgeSource, labels LabelSource, networks NetworkSource, metrics Metrics, logger *zap.Logger) (*Tracer, error) {
	if edges == nil {
		return nil, errors.New("tracer edge source is required")
	}
	if labels == nil {
		return nil, errors.New("tracer label source is required")
	}
	if networks == nil {
		return nil, errors.New("tracer network source is required")
	}
	if metrics == nil {
		return nil, errors.New("tracer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxHopLimit <= 0 {
		cfg.MaxHopLimit = defaultMaxHopLimit
	}
	if cfg.MaxFrontier <= 0 {
		cfg.MaxFrontier = defaultMaxFrontier
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	return &Tracer{
		edges:       edges,
		labels:      labels,
		networks:    networks,
		metrics:     metrics,
		logger:      logger.Named("tracer"),
		maxHopLimit: cfg.MaxHopLimit,
		maxFrontier: cfg.MaxFrontier,
		chunkSize:   cfg.ChunkSize,
	}, nil
}

// TraceUpstream walks transfers backwards from req.Address and returns every labeled
// address at its minimal hop count, sorted by hops, network and address.
// An empty req.Network traces every enabled network.
func (t *Tracer) TraceUpstream(ctx context.Context, req model.TraceRequest) ([]model.Attribution, error) {
	if req.Address == "" {
		return nil, fmt.Errorf("%w: address is required", model.ErrInvalidRequest)
	}
	if req.HopLimit < 0 || req.HopLimit > t.maxHopLimit {
		return nil, fmt.Errorf("%w: hop limit %d must be between 0 and %d", model.ErrInvalidRequest, req.HopLimit, t.maxHopLimit)
	}
	if req.HopLimit == 0 {
		req.HopLimit = DefaultHopLimit
	}
	if req.MinAmount != nil && req.MinAmount.Sign() < 0 {
		return nil, fmt.Errorf("%w: min amount %s must not be negative", model.ErrInvalidRequest, req.MinAmount)
	}

	networks, err := t.resolveNetworks(ctx, req.Network)
	if err != nil {
		return nil, err
	}

	result := make([]model.Attribution, 0)
	for _, n := range networks {
		found, err := t.traceNetwork(ctx, n, req)
		if err != nil {
			return nil, fmt.Errorf("trace %s: %w", n.ID, err)
		}
		result = append(result, found...)
	}
	sortAttributions(result)
	return result, nil
}

func (t *Tracer) resolveNetworks(ctx context.Context, id string) ([]model.Network, error) {
	if id != "" {
		n, err := t.networks.GetNetwork(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get network %s: %w", id, err)
		}
		return []model.Network{n}, nil
	}

	all, err := t.networks.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	enabled := make([]model.Network, 0, len(all))
	for _, n := range all {
		if n.Enabled {
			enabled = append(enabled, n)
		}
	}
	return enabled, nil
}

func (t *Tracer) traceNetwork(ctx context.Context, network model.Network, req model.TraceRequest) (found []model.Attribution, err error) {
	started := time.Now()
	target := chain.NormalizeAddress(network.Architecture, req.Address)
	visited := map[string]struct{}{target: {}}
	defer func() {
		t.metrics.ObserveTrace(network.ID, err, len(visited), started)
	}()

	frontier := map[string]*big.Int{target: new(big.Int)}
	for hop := 1; hop <= req.HopLimit && len(frontier) > 0; hop++ {
		reached, err := t.expand(ctx, network.ID, req, frontier, visited)
		if err != nil {
			return nil, fmt.Errorf("expand hop %d: %w", hop, err)
		}
		if len(reached) == 0 {
			break
		}
		for addr := range reached {
			visited[addr] = struct{}{}
		}

		labels, err := t.lookupLabels(ctx, network.ID, sortedKeys(reached))
		if err != nil {
			return nil, fmt.Errorf("labels at hop %d: %w", hop, err)
		}

		next := make(map[string]*big.Int, len(reached))
		for addr, amount := range reached {
			label, ok := labels[addr]
			if !ok || !label.Labeled() {
				next[addr] = amount
				continue
			}
			found = append(found, model.Attribution{
				Network:    network.ID,
				Address:    addr,
				Hops:       hop,
				Amount:     amount,
				Entity:     label.Entity,
				Tags:       label.Tags,
				RiskLevels: label.RiskLevels(),
			})
		}
		frontier = t.capFrontier(network.ID, hop, next)
	}
	return found, nil
}

// expand returns the unvisited sources of frontier with the largest path sum reaching each.
func (t *Tracer) expand(ctx context.Context, network string, req model.TraceRequest, frontier map[string]*big.Int, visited map[string]struct{}) (map[string]*big.Int, error) {
	reached := make(map[string]*big.Int)
	destinations := sortedKeys(frontier)
	for start := 0; start < len(destinations); start += t.chunkSize {
		chunk := destinations[start:min(start+t.chunkSize, len(destinations))]
		edges, err := t.edges.UpstreamEdges(ctx, network, req.Asset, chunk, req.MinAmount)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if _, seen := visited[e.From]; seen {
				continue
			}
			parent, ok := frontier[e.To]
			if !ok {
				continue
			}
			sum := new(big.Int).Add(parent, e.Amount)
			if cur, ok := reached[e.From]; !ok || sum.Cmp(cur) > 0 {
				reached[e.From] = sum
			}
		}
	}
	return reached, nil
}

func (t *Tracer) lookupLabels(ctx context.Context, network string, addresses []string) (map[string]model.AddressLabel, error) {
	labels := make(map[string]model.AddressLabel)
	for start := 0; start < len(addresses); start += t.chunkSize {
		chunk := addresses[start:min(start+t.chunkSize, len(addresses))]
		found, err := t.labels.LabelsForAddresses(ctx, network, chunk)
		if err != nil {
			return nil, err
		}
		for addr, label := range found {
			labels[addr] = label
		}
	}
	return labels, nil
}

// capFrontier keeps the maxFrontier addresses carrying the most value.
func (t *Tracer) capFrontier(network string, hop int, frontier map[string]*big.Int) map[string]*big.Int {
	if len(frontier) <= t.maxFrontier {
		return frontier
	}
	t.logger.Warn("frontier too wide, keeping highest amounts",
		zap.String("network", network),
		zap.Int("hop", hop),
		zap.Int("width", len(frontier)),
		zap.Int("limit", t.maxFrontier),
	)

	addrs := sortedKeys(frontier)
	sort.SliceStable(addrs, func(i, j int) bool {
		return frontier[addrs[i]].Cmp(frontier[addrs[j]]) > 0
	})
	capped := make(map[string]*big.Int, t.maxFrontier)
	for _, addr := range addrs[:t.maxFrontier] {
		capped[addr] = frontier[addr]
	}
	return capped
}

func sortedKeys(m map[string]*big.Int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortAttributions(a []model.Attribution) {
	sort.Slice(a, func(i, j int) bool {
		if a[i].Hops != a[j].Hops {
			return a[i].Hops < a[j].Hops
		}
		if a[i].Network != a[j].Network {
			return a[i].Network < a[j].Network
		}
		return a[i].Address < a[j].Address
	})
}
