// Package cache implements the fetch cache: a content-addressed store
// keyed by (final URL, backend, relevant options), with TTL evaluated
// per-read. Three backends (memory, sharded-memory, redis) plus a
// content-addressed disk default share one Cache interface: every backend
// stores (meta, body) pairs stamped with StoredAtEpoch, and the reader
// evaluates staleness against StoredAtEpoch+TTL at read time (see Fresh).
// The redis backend additionally sets a key expiry from the TTL passed to
// Set.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// Entry is what a backend stores: the cache metadata plus the raw body.
type Entry struct {
	Meta model.CacheEntry
	Body []byte
}

// Cache is the fetch cache's backend-agnostic interface. TTLSeconds <= 0
// means "no TTL": an entry is fresh forever.
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, entry *Entry, ttlSeconds int64) error
}

// Key computes the cache key for a fetch: the tuple of (final URL, backend
// name, max_bytes, and any headers that materially vary the response),
// hashed so it is safe to use as a filename / redis key.
func Key(finalURL, backend string, maxBytes int64, varyingHeaders map[string]string) string {
	h := sha256.New()
	fmt.Fprintf(h, "url=%s\nbackend=%s\nmax_bytes=%d\n", finalURL, backend, maxBytes)

	keys := make([]string, 0, len(varyingHeaders))
	for k := range varyingHeaders {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "hdr:%s=%s\n", strings.ToLower(k), varyingHeaders[k])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Fresh reports whether a stored entry is still within its TTL as of now.
func Fresh(storedAtEpoch int64, ttlSeconds int64, now int64) bool {
	if ttlSeconds <= 0 {
		return true
	}
	return storedAtEpoch+ttlSeconds > now
}
