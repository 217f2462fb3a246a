package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// MemoryCache is an in-process cache implementing Cache on top of
// patrickmn/go-cache. It is selected via WEBPIPE_CACHE_BACKEND=memory; good
// for single-process deployments where a disk cache is unnecessary.
type MemoryCache struct {
	client *gocache.Cache
}

// NewMemoryCache creates a new MemoryCache. cleanupInterval controls how
// often expired entries are purged; entries themselves carry no expiration
// here since freshness is evaluated by Fresh() at read time against the
// stored Meta, not by go-cache's own TTL.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		client: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Entry, bool) {
	val, found := c.client.Get(key)
	if !found {
		return nil, false
	}
	entry, ok := val.(*Entry)
	if !ok {
		return nil, false
	}
	return entry, true
}

func (c *MemoryCache) Set(_ context.Context, key string, entry *Entry, _ int64) error {
	entry.Meta.StoredAtEpoch = model.Now()
	c.client.Set(key, entry, gocache.NoExpiration)
	return nil
}
