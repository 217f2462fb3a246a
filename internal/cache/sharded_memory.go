package cache

import (
	"context"
	"hash/fnv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

const shardCount = 256 // power of 2 so the shard index can be a bitmask

// ShardedMemoryCache spreads entries across shardCount independent
// go-cache instances keyed by an fnv-1a hash of the cache key, trading a
// single global lock for shardCount smaller ones under heavy concurrent
// fetch fan-out.
type ShardedMemoryCache struct {
	shards []*gocache.Cache
}

func NewShardedMemoryCache(cleanupInterval time.Duration) *ShardedMemoryCache {
	c := &ShardedMemoryCache{
		shards: make([]*gocache.Cache, shardCount),
	}
	for i := 0; i < shardCount; i++ {
		c.shards[i] = gocache.New(gocache.NoExpiration, cleanupInterval)
	}
	return c
}

func (c *ShardedMemoryCache) getShard(key string) *gocache.Cache {
	hasher := fnv.New64a()
	hasher.Write([]byte(key))
	return c.shards[hasher.Sum64()&(shardCount-1)]
}

func (c *ShardedMemoryCache) Get(_ context.Context, key string) (*Entry, bool) {
	val, found := c.getShard(key).Get(key)
	if !found {
		return nil, false
	}
	entry, ok := val.(*Entry)
	if !ok {
		return nil, false
	}
	return entry, true
}

func (c *ShardedMemoryCache) Set(_ context.Context, key string, entry *Entry, _ int64) error {
	entry.Meta.StoredAtEpoch = model.Now()
	c.getShard(key).Set(key, entry, gocache.NoExpiration)
	return nil
}
