package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheRepositoryRedis stores JSON payloads under TTL keys and keeps a
// set of member keys per tag so a whole tag can be dropped at once.
type CacheRepositoryRedis struct {
	Client *redis.Client
}

func NewCacheRepositoryRedis(client *redis.Client) *CacheRepositoryRedis {
	return &CacheRepositoryRedis{
		Client: client,
	}
}

func tagSetKey(tag string) string {
	return "cache_tag:" + tag
}

func (r *CacheRepositoryRedis) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *CacheRepositoryRedis) PutJSON(ctx context.Context, key string, value interface{}, tag string, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.Client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return err
	}
	// Tag membership outlives the key's TTL; InvalidateTag tolerates
	// members that already expired.
	return r.Client.SAdd(ctx, tagSetKey(tag), key).Err()
}

func (r *CacheRepositoryRedis) InvalidateTag(ctx context.Context, tag string) error {
	setKey := tagSetKey(tag)
	keys, err := r.Client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := r.Client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return r.Client.Del(ctx, setKey).Err()
}
