package writer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/blockinsight7000-tracer/internal/model"
	"go.uber.org/zap"
)

const (
	TierObjectStore = "object_store"
	TierWarehouse   = "warehouse"

	defaultMaxAttempts     = 3
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 10 * time.Second
)

type Config struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// Writer persists extracted batches to object storage and the warehouse.
type Writer struct {
	objects    ObjectStore
	warehouse  Warehouse
	metrics    Metrics
	logger     *zap.Logger
	attempts   int
	newBackOff func() backoff.BackOff
}

func New(cfg Config, objects ObjectStore, warehouse Warehouse, metrics Metrics, logger *zap.Logger) (*Writer, error) {
	if objects == nil {
		return nil, errors.New("writer object store is required")
	}
	if warehouse == nil {
		return nil, errors.New("writer warehouse is required")
	}
	if metrics == nil {
		return nil, errors.New("writer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = defaultMaxInterval
	}

	return &Writer{
		objects:   objects,
		warehouse: warehouse,
		metrics:   metrics,
		logger:    logger.Named("writer"),
		attempts:  cfg.MaxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = cfg.InitialInterval
			b.MaxInterval = cfg.MaxInterval
			b.MaxElapsedTime = 0
			return b
		},
	}, nil
}

// WriteBatch stores batch in object storage and then in the warehouse.
// Both writes are idempotent, so a failed batch may be written again as a whole.
func (w *Writer) WriteBatch(ctx context.Context, batch model.Batch) error {
	if len(batch.Blocks) == 0 {
		return nil
	}

	if err := w.writeTier(ctx, TierObjectStore, batch.Network, func(ctx context.Context) error {
		return w.putObject(ctx, batch)
	}); err != nil {
		return err
	}

	return w.writeTier(ctx, TierWarehouse, batch.Network, func(ctx context.Context) error {
		return w.insertRows(ctx, batch)
	})
}

func (w *Writer) putObject(ctx context.Context, batch model.Batch) error {
	data, err := encode(toRecords(batch))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("encode batch %d: %w", batch.StartHeight, err))
	}
	if err := w.objects.Put(ctx, objectKey(batch.Network, batch.StartHeight), data); err != nil {
		return fmt.Errorf("put batch %d: %w", batch.StartHeight, err)
	}
	return nil
}

// insertRows writes blocks last: a stored block hash implies its records are stored.
func (w *Writer) insertRows(ctx context.Context, batch model.Batch) error {
	if err := w.warehouse.InsertOutputs(ctx, batch.Outputs); err != nil {
		return fmt.Errorf("insert outputs: %w", err)
	}
	if err := w.warehouse.InsertTransactions(ctx, batch.Transactions); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	if err := w.warehouse.InsertTransfers(ctx, batch.Transfers); err != nil {
		return fmt.Errorf("insert transfers: %w", err)
	}
	if err := w.warehouse.InsertBlocks(ctx, batch.Blocks); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}

func (w *Writer) writeTier(ctx context.Context, tier, network string, op func(context.Context) error) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveWrite(tier, network, err, started)
	}()

	attempt := 0
	notify := func(err error, d time.Duration) {
		w.logger.Warn("storage write failed, retrying",
			zap.String("tier", tier),
			zap.String("network", network),
			zap.Int("attempt", attempt),
			zap.Duration("sleep", d),
			zap.Error(err),
		)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(w.newBackOff(), uint64(w.attempts-1)), ctx)
	if err = backoff.RetryNotify(func() error {
		attempt++
		return op(ctx)
	}, policy, notify); err != nil {
		if ctx.Err() != nil {
			return err
		}
		return &model.StorageWriteError{Tier: tier, Err: err}
	}
	return nil
}
