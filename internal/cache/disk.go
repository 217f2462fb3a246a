package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// DiskCache is a content-addressed sidecar store:
// {cache_dir}/<hex_key>.meta holds the JSON metadata, {cache_dir}/<hex_key>.body
// holds the raw bytes. Writes go through a .tmp file and an atomic rename so
// readers never observe a partial write; any corruption on read (missing
// sibling, unparseable meta) is simply treated as a cache miss.
type DiskCache struct {
	dir string
}

// NewDiskCache creates (if needed) and returns a DiskCache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) metaPath(key string) string { return filepath.Join(c.dir, key+".meta") }
func (c *DiskCache) bodyPath(key string) string { return filepath.Join(c.dir, key+".body") }

func (c *DiskCache) Get(_ context.Context, key string) (*Entry, bool) {
	metaBytes, err := os.ReadFile(c.metaPath(key))
	if err != nil {
		return nil, false
	}
	var meta model.CacheEntry
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, false
	}
	body, err := os.ReadFile(c.bodyPath(key))
	if err != nil {
		return nil, false
	}
	meta.Key = key
	return &Entry{Meta: meta, Body: body}, true
}

func (c *DiskCache) Set(_ context.Context, key string, entry *Entry, _ int64) error {
	entry.Meta.StoredAtEpoch = model.Now()

	metaBytes, err := json.Marshal(entry.Meta)
	if err != nil {
		return fmt.Errorf("marshalling cache meta: %w", err)
	}

	if err := writeAtomic(c.bodyPath(key), entry.Body); err != nil {
		return fmt.Errorf("writing cache body: %w", err)
	}
	if err := writeAtomic(c.metaPath(key), metaBytes); err != nil {
		return fmt.Errorf("writing cache meta: %w", err)
	}
	return nil
}

// writeAtomic writes data to a .tmp sibling of path, then renames it into
// place, so a reader either sees the old file or the fully-written new one.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
