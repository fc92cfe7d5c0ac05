package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunnerFactory builds the runner of one network.
type RunnerFactory func(network model.Network) (Runnable, error)

// Scheduler starts one runner per enabled network. Runners share nothing but the process.
type Scheduler struct {
	networks NetworkLister
	build    RunnerFactory
	recorder *StatusRecorder
	only     map[string]bool
	logger   *zap.Logger
}

// NewScheduler returns a scheduler. A non-empty only restricts indexing to those network ids.
func NewScheduler(networks NetworkLister, build RunnerFactory, recorder *StatusRecorder, only []string, logger *zap.Logger) (*Scheduler, error) {
	if networks == nil {
		return nil, errors.New("scheduler network lister is required")
	}
	if build == nil {
		return nil, errors.New("scheduler runner factory is required")
	}
	if recorder == nil {
		return nil, errors.New("scheduler status recorder is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[string]bool, len(only))
	for _, id := range only {
		set[id] = true
	}
	return &Scheduler{
		networks: networks,
		build:    build,
		recorder: recorder,
		only:     set,
		logger:   logger.Named("scheduler"),
	}, nil
}

// Run blocks until ctx is canceled or a runner fails. Configuration errors are returned before anything starts.
func (s *Scheduler) Run(ctx context.Context) error {
	networks, err := s.selectNetworks(ctx)
	if err != nil {
		return err
	}
	if len(networks) == 0 {
		return errors.New("no enabled networks to index")
	}

	runners := make([]Runnable, 0, len(networks))
	for _, n := range networks {
		runner, err := s.build(n)
		if err != nil {
			return fmt.Errorf("build runner for %s: %w", n.ID, err)
		}
		runners = append(runners, runner)
	}

	s.recorder.Start(context.WithoutCancel(ctx))
	defer s.recorder.Stop()

	g, gctx := errgroup.WithContext(ctx)
	for i, runner := range runners {
		runner := runner
		network := networks[i].ID
		g.Go(func() error {
			if err := runner.Run(gctx); err != nil {
				return fmt.Errorf("runner %s: %w", network, err)
			}
			return nil
		})
	}
	s.logger.Info("runners started", zap.Int("networks", len(runners)))
	return g.Wait()
}

func (s *Scheduler) selectNetworks(ctx context.Context) ([]model.Network, error) {
	all, err := s.networks.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}

	known := make(map[string]bool, len(all))
	selected := make([]model.Network, 0, len(all))
	for _, n := range all {
		known[n.ID] = true
		if len(s.only) > 0 && !s.only[n.ID] {
			continue
		}
		if !n.Enabled {
			s.logger.Info("skipping disabled network", zap.String("network", n.ID))
			continue
		}
		selected = append(selected, n)
	}
	for id := range s.only {
		if !known[id] {
			return nil, fmt.Errorf("network %s: %w", id, model.ErrNetworkNotFound)
		}
	}
	return selected, nil
}
