package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"

	"github.com/webpipe-gateway/webpipe/internal/logger"
	"github.com/webpipe-gateway/webpipe/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisCache is a shared Redis-backed cache implementing Cache, for
// deployments that run more than one webpipe process against the same
// backing store.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new RedisCache sized for high concurrency, since
// fetch fan-out can hit the cache with many simultaneous lookups.
func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     500,
		MinIdleConns: 50,
	})
	return &RedisCache{client: rdb}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.LogWarn("redis GET failed", "key", key, "error", err)
		}
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		logger.LogWarn("redis cache: failed to unmarshal entry", "key", key, "error", err)
		return nil, false
	}
	return &entry, true
}

func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry, ttlSeconds int64) error {
	entry.Meta.StoredAtEpoch = model.Now()

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	expiration := redisExpiration(ttlSeconds)
	if err := c.client.Set(ctx, key, jsonBytes, expiration).Err(); err != nil {
		logger.LogWarn("redis SET failed", "key", key, "error", err)
		return err
	}
	return nil
}

// MGet is a batched lookup of several cache keys in one Redis round trip.
// It is not part of the Cache interface, so the fetcher does not use it.
func (c *RedisCache) MGet(ctx context.Context, keys []string) (map[string]*Entry, error) {
	results := make(map[string]*Entry, len(keys))
	if len(keys) == 0 {
		return results, nil
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	for i, val := range vals {
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(strVal), &entry); err != nil {
			logger.LogWarn("redis cache: MGET failed to unmarshal entry", "key", keys[i], "error", err)
			continue
		}
		results[keys[i]] = &entry
	}
	return results, nil
}

func redisExpiration(ttlSeconds int64) time.Duration {
	if ttlSeconds <= 0 {
		return 0
	}
	return time.Duration(ttlSeconds) * time.Second
}
