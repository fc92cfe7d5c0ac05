// Package indexer drives per-network extraction under a leadership lease.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

// Config tunes a runner. Zero values take defaults.
type Config struct {
	InstanceID      string
	BatchSize       int
	FetchWorkers    int
	LeaseDuration   time.Duration
	RenewInterval   time.Duration
	AcquireInterval time.Duration
	MaxReorgDepth   int
	MaxBackoff      time.Duration
}

func (c Config) withDefaults() (Config, error) {
	if c.InstanceID == "" {
		return c, errors.New("instance id is required")
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.FetchWorkers <= 0 {
		c.FetchWorkers = defaultFetchWorkers
	}
	if c.LeaseDuration <= 0 {
		c.LeaseDuration = defaultLeaseDuration
	}
	if c.RenewInterval <= 0 {
		c.RenewInterval = defaultRenewInterval
	}
	if c.AcquireInterval <= 0 {
		c.AcquireInterval = defaultAcquireInterval
	}
	if c.MaxReorgDepth <= 0 {
		c.MaxReorgDepth = defaultMaxReorgDepth
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = defaultMaxBackoff
	}
	if c.RenewInterval >= c.LeaseDuration {
		return c, fmt.Errorf("renew interval %s must be shorter than lease duration %s", c.RenewInterval, c.LeaseDuration)
	}
	return c, nil
}

// Runner indexes one network. Its state lives here and nowhere else.
type Runner struct {
	network model.Network
	cfg     Config
	source  Source
	store   Store
	hashes  BlockHashes
	writer  Writer
	status  StatusReporter
	metrics Metrics
	logger  *zap.Logger
	clock   clock.Clock
	sleep   func(context.Context, time.Duration) error

	state     model.RunnerState
	failures  int
	tip       uint64
	lastErr   string
	lastErrAt time.Time
}

func NewRunner(
	cfg Config,
	network model.Network,
	source Source,
	store Store,
	hashes BlockHashes,
	writer Writer,
	status StatusReporter,
	metrics Metrics,
	logger *zap.Logger,
) (*Runner, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("runner source is required")
	}
	if store == nil {
		return nil, errors.New("runner store is required")
	}
	if hashes == nil {
		return nil, errors.New("runner block hashes are required")
	}
	if writer == nil {
		return nil, errors.New("runner writer is required")
	}
	if status == nil {
		return nil, errors.New("runner status reporter is required")
	}
	if metrics == nil {
		return nil, errors.New("runner metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if network.BlockTime <= 0 {
		return nil, fmt.Errorf("network %s: block time must be positive", network.ID)
	}

	return &Runner{
		network: network,
		cfg:     cfg,
		source:  source,
		store:   store,
		hashes:  hashes,
		writer:  writer,
		status:  status,
		metrics: metrics,
		logger: logger.Named("runner").With(
			zap.String("network", network.ID),
			zap.String("instance", cfg.InstanceID),
		),
		clock: clock.Real{},
		sleep: clock.SleepWithContext,
		state: model.StateIdle,
	}, nil
}

// Run competes for leadership and indexes while it holds the lease.
// It returns nil once ctx is canceled, after releasing the lease.
func (r *Runner) Run(ctx context.Context) error {
	for {
		r.setState(ctx, model.StateAcquiringLeadership)
		if err := r.acquire(ctx); err != nil {
			r.stop()
			return nil
		}
		r.metrics.ObserveLeadership(leadershipAcquired)
		r.logger.Info("leadership acquired")

		err := r.lead(ctx)
		if ctx.Err() != nil {
			r.stop()
			return nil
		}
		r.metrics.ObserveLeadership(leadershipLost)
		r.logger.Warn("leadership lost, abandoning in-flight batch", zap.Error(err))
		r.recordError(err)
		r.setState(ctx, model.StateRelinquished)
	}
}

func (r *Runner) acquire(ctx context.Context) error {
	for {
		acquired, err := r.store.TryAcquireLeadership(ctx, r.network.ID, r.cfg.InstanceID, r.cfg.LeaseDuration)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("acquire leadership failed", zap.Error(err))
			r.recordError(err)
		case acquired:
			return nil
		}
		if err := r.sleep(ctx, r.cfg.AcquireInterval); err != nil {
			return err
		}
	}
}

// lead indexes until ctx ends or the lease keeper cancels with ErrLeadershipLost.
func (r *Runner) lead(ctx context.Context) error {
	leadCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	keeperDone := make(chan struct{})
	go func() {
		defer close(keeperDone)
		r.keepLease(leadCtx, cancel)
	}()

	err := r.index(leadCtx)
	cancel(err)
	<-keeperDone
	return err
}

func (r *Runner) index(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		r.setState(ctx, model.StateIndexing)

		wait, err := r.round(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return context.Cause(ctx)
			}
			d := r.backoff(err)
			r.logger.Warn("indexing round failed, backing off", zap.Error(err), zap.Duration("sleep", d))
			r.recordError(err)
			r.setState(ctx, model.StateBackoff)
			if sleepErr := r.sleep(ctx, d); sleepErr != nil {
				return context.Cause(ctx)
			}
			continue
		}

		r.failures = 0
		if wait > 0 {
			r.logger.Debug("no new blocks; sleeping", zap.Duration("sleep", wait))
			if sleepErr := r.sleep(ctx, wait); sleepErr != nil {
				return context.Cause(ctx)
			}
		}
	}
}

// backoff returns how long to wait after err. Waiting for the tip does not count as a failure.
func (r *Runner) backoff(err error) time.Duration {
	if errors.Is(err, model.ErrBeyondTip) {
		return r.network.BlockTime
	}
	r.failures++
	return clock.Backoff(r.network.BlockTime, min(r.failures, maxBackoffExponent), r.cfg.MaxBackoff)
}

func (r *Runner) keepLease(ctx context.Context, cancel context.CancelCauseFunc) {
	ticker := time.NewTicker(r.cfg.RenewInterval)
	defer ticker.Stop()

	lastRenewed := r.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		renewed, err := r.store.RenewLeadership(ctx, r.network.ID, r.cfg.InstanceID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			r.logger.Warn("renew leadership failed", zap.Error(err))
			if r.clock.Now().Sub(lastRenewed) >= r.cfg.LeaseDuration {
				cancel(fmt.Errorf("lease not renewed for %s: %w", r.cfg.LeaseDuration, model.ErrLeadershipLost))
				return
			}
		case !renewed:
			cancel(model.ErrLeadershipLost)
			return
		default:
			lastRenewed = r.clock.Now()
		}
	}
}

// stop releases the lease on a best-effort basis.
func (r *Runner) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.RenewInterval)
	defer cancel()

	if err := r.store.ReleaseLeadership(ctx, r.network.ID, r.cfg.InstanceID); err != nil {
		r.logger.Warn("release leadership failed", zap.Error(err))
	} else {
		r.metrics.ObserveLeadership(leadershipReleased)
	}
	r.setState(ctx, model.StateStopped)
	r.logger.Info("runner stopped")
}

func (r *Runner) recordError(err error) {
	if err == nil {
		return
	}
	r.lastErr = err.Error()
	r.lastErrAt = r.clock.Now()
}

func (r *Runner) setState(ctx context.Context, state model.RunnerState) {
	r.state = state
	r.metrics.SetState(state)
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	err := r.status.Report(ctx, model.NetworkStatus{
		Network:     r.network.ID,
		InstanceID:  r.cfg.InstanceID,
		State:       state,
		TipHeight:   r.tip,
		LastError:   r.lastErr,
		LastErrorAt: r.lastErrAt,
		UpdatedAt:   r.clock.Now(),
	})
	if err != nil {
		r.logger.Debug("status not reported", zap.Error(err))
	}
}
