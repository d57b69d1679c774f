package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newCacheHarness(t *testing.T) (*CacheRepositoryRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheRepositoryRedis(client), mr
}

func TestPutGetRoundTrip(t *testing.T) {
	cache, _ := newCacheHarness(t)
	ctx := context.Background()

	require.NoError(t, cache.PutJSON(ctx, "k1", payload{Name: "a", Count: 3}, "lists", time.Minute))

	var got payload
	hit, err := cache.GetJSON(ctx, "k1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "a", Count: 3}, got)
}

func TestGetMissingKey(t *testing.T) {
	cache, _ := newCacheHarness(t)

	var got payload
	hit, err := cache.GetJSON(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestEntriesExpire(t *testing.T) {
	cache, mr := newCacheHarness(t)
	ctx := context.Background()

	require.NoError(t, cache.PutJSON(ctx, "k1", payload{Name: "a"}, "lists", 5*time.Second))

	mr.FastForward(6 * time.Second)

	var got payload
	hit, err := cache.GetJSON(ctx, "k1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateTagDropsOnlyItsMembers(t *testing.T) {
	cache, _ := newCacheHarness(t)
	ctx := context.Background()

	require.NoError(t, cache.PutJSON(ctx, "list1", payload{Name: "a"}, "lists", time.Minute))
	require.NoError(t, cache.PutJSON(ctx, "list2", payload{Name: "b"}, "lists", time.Minute))
	require.NoError(t, cache.PutJSON(ctx, "conf1", payload{Name: "c"}, "configs", time.Minute))

	require.NoError(t, cache.InvalidateTag(ctx, "lists"))

	var got payload
	hit, err := cache.GetJSON(ctx, "list1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = cache.GetJSON(ctx, "list2", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = cache.GetJSON(ctx, "conf1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestInvalidateTagToleratesExpiredMembers(t *testing.T) {
	cache, mr := newCacheHarness(t)
	ctx := context.Background()

	require.NoError(t, cache.PutJSON(ctx, "k1", payload{Name: "a"}, "lists", time.Second))
	mr.FastForward(2 * time.Second)

	assert.NoError(t, cache.InvalidateTag(ctx, "lists"))
}

func TestInvalidateEmptyTag(t *testing.T) {
	cache, _ := newCacheHarness(t)

	assert.NoError(t, cache.InvalidateTag(context.Background(), "nothing"))
}
