package cache

import (
	"context"
	"time"
)

// Cache tags. Invalidation happens per tag, never by key enumeration.
const (
	TagLists   = "lists"
	TagConfigs = "configs"
)

// TaggedCache is a key-value store with TTLs and tag-based bulk
// invalidation. A miss is always safe; callers recompute.
type TaggedCache interface {
	// GetJSON unmarshals the cached payload into dest. The bool reports
	// whether the key was present.
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	PutJSON(ctx context.Context, key string, value interface{}, tag string, ttl time.Duration) error
	InvalidateTag(ctx context.Context, tag string) error
}
