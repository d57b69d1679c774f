package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rasana/internal/ports/cache"
	invalidationPort "rasana/internal/ports/invalidation"
)

// InvalidationWorker drains pending invalidation events and drops the
// tagged cache entries they name. It deduplicates tags within a batch so
// a burst of writes costs one invalidation.
type InvalidationWorker struct {
	InvalidationRepo invalidationPort.InvalidationRepository
	Cache            cache.TaggedCache
	BatchSize        int
	PollInterval     time.Duration
	Logger           *zap.Logger
}

func NewInvalidationWorker(
	invalidationRepo invalidationPort.InvalidationRepository,
	taggedCache cache.TaggedCache,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *InvalidationWorker {
	return &InvalidationWorker{
		InvalidationRepo: invalidationRepo,
		Cache:            taggedCache,
		BatchSize:        batchSize,
		PollInterval:     pollInterval,
		Logger:           logger,
	}
}

// Run polls until the context is cancelled.
func (w *InvalidationWorker) Run(ctx context.Context) {
	w.Logger.Info("invalidation worker started")
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("invalidation worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *InvalidationWorker) drain(ctx context.Context) {
	events, err := w.InvalidationRepo.GetPending(ctx, int64(w.BatchSize))
	if err != nil {
		w.Logger.Error("fetching pending invalidation events", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	invalidated := map[string]error{}
	for _, event := range events {
		res, done := invalidated[event.CacheTag]
		if !done {
			res = w.Cache.InvalidateTag(ctx, event.CacheTag)
			invalidated[event.CacheTag] = res
		}

		if res != nil {
			w.Logger.Error("invalidating cache tag",
				zap.String("tag", event.CacheTag),
				zap.String("reason", event.Reason),
				zap.Error(res))
			if err := w.InvalidationRepo.MarkFailed(ctx, event.ID); err != nil {
				w.Logger.Warn("could not mark invalidation event failed", zap.Uint64("id", event.ID), zap.Error(err))
			}
			continue
		}

		if err := w.InvalidationRepo.MarkDone(ctx, event.ID); err != nil {
			w.Logger.Warn("could not mark invalidation event done", zap.Uint64("id", event.ID), zap.Error(err))
		}
	}

	w.Logger.Info("invalidation batch processed",
		zap.Int("events", len(events)),
		zap.Int("tags", len(invalidated)))
}
