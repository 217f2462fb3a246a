package cache

import (
	"fmt"
	"time"

	"github.com/webpipe-gateway/webpipe/internal/config"
)

// NewFromConfig builds the Cache backend selected by cfg.CacheBackend. disk
// is the default and primary backend; memory, sharded-memory, and redis
// are alternates for deployments that want an in-process or shared cache
// instead of a local directory.
func NewFromConfig(cfg *config.AppConfig) (Cache, error) {
	switch cfg.CacheBackend {
	case "disk", "":
		return NewDiskCache(cfg.CacheDir)
	case "memory":
		return NewMemoryCache(10 * time.Minute), nil
	case "sharded-memory":
		return NewShardedMemoryCache(10 * time.Minute), nil
	case "redis":
		return NewRedisCache(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
