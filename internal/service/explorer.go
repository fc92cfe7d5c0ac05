// Package service answers operational and analytical queries over indexed networks.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
)

// Explorer is the query surface used by the API.
type Explorer struct {
	store  Store
	flows  Flows
	tracer Tracer
	now    func() time.Time
}

func NewExplorer(store Store, flows Flows, tracer Tracer) (*Explorer, error) {
	if store == nil {
		return nil, errors.New("explorer store is required")
	}
	if flows == nil {
		return nil, errors.New("explorer flows is required")
	}
	if tracer == nil {
		return nil, errors.New("explorer tracer is required")
	}
	return &Explorer{store: store, flows: flows, tracer: tracer, now: time.Now}, nil
}

func (e *Explorer) GetCheckpoint(ctx context.Context, network string) (model.Checkpoint, error) {
	if _, err := e.store.GetNetwork(ctx, network); err != nil {
		return model.Checkpoint{}, err
	}
	cp, err := e.store.ReadCheckpoint(ctx, network)
	if err != nil {
		return model.Checkpoint{}, fmt.Errorf("read checkpoint: %w", err)
	}
	return cp, nil
}

// GetStatus reports the live leader, indexed height and lag behind the last observed tip.
func (e *Explorer) GetStatus(ctx context.Context, network string) (model.Status, error) {
	n, err := e.store.GetNetwork(ctx, network)
	if err != nil {
		return model.Status{}, err
	}
	cp, err := e.store.ReadCheckpoint(ctx, network)
	if err != nil {
		return model.Status{}, fmt.Errorf("read checkpoint: %w", err)
	}
	lease, err := e.store.GetLease(ctx, network)
	if err != nil {
		return model.Status{}, fmt.Errorf("get lease: %w", err)
	}
	st, err := e.store.GetNetworkStatus(ctx, network)
	if err != nil {
		return model.Status{}, fmt.Errorf("get network status: %w", err)
	}

	status := model.Status{
		Network:   network,
		Height:    cp.Height,
		TipHeight: st.TipHeight,
		State:     st.State,
		LastError: st.LastError,
	}
	if lease.Live(e.now()) {
		status.Leader = lease.InstanceID
	}
	if next := cp.Next(n.GenesisHeight); st.TipHeight+1 > next {
		status.Lag = st.TipHeight + 1 - next
	}
	return status, nil
}

func (e *Explorer) TraceUpstream(ctx context.Context, req model.TraceRequest) ([]model.Attribution, error) {
	return e.tracer.TraceUpstream(ctx, req)
}

// Info gathers the label, asset flows and upstream sources of an address.
func (e *Explorer) Info(ctx context.Context, network, address string) (model.Info, error) {
	if address == "" {
		return model.Info{}, errors.New("address is required")
	}
	n, err := e.store.GetNetwork(ctx, network)
	if err != nil {
		return model.Info{}, err
	}
	address = chain.NormalizeAddress(n.Architecture, address)

	info := model.Info{Network: network, Address: address}
	labels, err := e.store.LabelsForAddresses(ctx, network, []string{address})
	if err != nil {
		return model.Info{}, fmt.Errorf("labels: %w", err)
	}
	if label, ok := labels[address]; ok {
		info.Label = &label
		info.RiskLevels = label.RiskLevels()
	}

	if info.Assets, err = e.flows.AssetFlows(ctx, network, address); err != nil {
		return model.Info{}, fmt.Errorf("asset flows: %w", err)
	}
	if info.Sources, err = e.tracer.TraceUpstream(ctx, model.TraceRequest{Network: network, Address: address}); err != nil {
		return model.Info{}, fmt.Errorf("trace sources: %w", err)
	}
	return info, nil
}
