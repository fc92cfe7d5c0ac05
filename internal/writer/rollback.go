package writer

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Rollback removes everything at or above from for network. Warehouse rows go first;
// the caller records the pending rollback so a crash in between is finished on restart.
func (w *Writer) Rollback(ctx context.Context, network string, from uint64) (err error) {
	defer func() {
		w.metrics.ObserveRollback(network, err)
	}()

	if err = w.writeTier(ctx, TierWarehouse, network, func(ctx context.Context) error {
		return w.warehouse.DeleteFromHeight(ctx, network, from)
	}); err != nil {
		return fmt.Errorf("rollback warehouse from %d: %w", from, err)
	}
	if err = w.writeTier(ctx, TierObjectStore, network, func(ctx context.Context) error {
		return w.rollbackObjects(ctx, network, from)
	}); err != nil {
		return fmt.Errorf("rollback objects from %d: %w", from, err)
	}
	return nil
}

func (w *Writer) rollbackObjects(ctx context.Context, network string, from uint64) error {
	keys, err := w.objects.List(ctx, objectPrefix(network))
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}

	type object struct {
		key   string
		start uint64
	}
	objects := make([]object, 0, len(keys))
	for _, key := range keys {
		start, ok := startOfKey(network, key)
		if !ok {
			w.logger.Warn("skipping unrecognized object", zap.String("key", key))
			continue
		}
		objects = append(objects, object{key: key, start: start})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].start < objects[j].start })

	straddling := -1
	for i, obj := range objects {
		if obj.start >= from {
			if err := w.objects.Delete(ctx, obj.key); err != nil {
				return fmt.Errorf("delete object %s: %w", obj.key, err)
			}
			continue
		}
		straddling = i
	}
	if straddling < 0 {
		return nil
	}
	return w.truncateObject(ctx, objects[straddling].key, from)
}

func (w *Writer) truncateObject(ctx context.Context, key string, from uint64) error {
	data, err := w.objects.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get object %s: %w", key, err)
	}
	rows, err := decode(data)
	if err != nil {
		return fmt.Errorf("decode object %s: %w", key, err)
	}
	total := len(rows)
	kept := truncate(rows, from)
	if len(kept) == total {
		return nil
	}
	if len(kept) == 0 {
		if err := w.objects.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete object %s: %w", key, err)
		}
		return nil
	}
	out, err := encode(kept)
	if err != nil {
		return fmt.Errorf("encode object %s: %w", key, err)
	}
	if err := w.objects.Put(ctx, key, out); err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	w.logger.Info("truncated batch object",
		zap.String("key", key),
		zap.Uint64("from", from),
		zap.Int("rows_removed", total-len(kept)),
	)
	return nil
}
