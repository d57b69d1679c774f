package invalidation

import (
	"context"

	"rasana/internal/core/invalidation"
)

type InvalidationRepository interface {
	Enqueue(ctx context.Context, event *invalidation.Event) error
	GetPending(ctx context.Context, limit int64) ([]*invalidation.Event, error)
	MarkDone(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64) error
}
