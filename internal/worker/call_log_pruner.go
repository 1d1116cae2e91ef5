package worker

import (
	"context"
	"log/slog"
	"time"
)

// CallLogStore deletes persisted call log entries.
type CallLogStore interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

// CallLogPruner keeps the persisted call log within its retention window.
type CallLogPruner struct {
	store     CallLogStore
	interval  time.Duration
	retention time.Duration
	batchSize int
	logger    *slog.Logger
	now       func() time.Time
}

func NewCallLogPruner(
	store CallLogStore,
	interval time.Duration,
	retention time.Duration,
	batchSize int,
	logger *slog.Logger,
) *CallLogPruner {
	return &CallLogPruner{
		store:     store,
		interval:  interval,
		retention: retention,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

func (w *CallLogPruner) Start(ctx context.Context) {
	w.logger.Info("call log pruner started", "interval", w.interval, "retention", w.retention)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.run(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("call log pruner stopping")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *CallLogPruner) run(ctx context.Context) {
	if _, err := w.Prune(ctx); err != nil {
		w.logger.Error("call log pruning failed", "error", err)
	}
}

// Prune deletes every entry older than the retention window, one batch at a time.
// It returns the number of entries deleted, including those deleted before a failure.
func (w *CallLogPruner) Prune(ctx context.Context) (int64, error) {
	cutoff := w.now().Add(-w.retention)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		deleted, err := w.store.DeleteOlderThan(ctx, cutoff, w.batchSize)
		if err != nil {
			return total, err
		}
		total += deleted

		if deleted < int64(w.batchSize) {
			break
		}
	}

	if total > 0 {
		w.logger.Info("pruned call log", "deleted", total, "cutoff", cutoff)
	}
	return total, nil
}
