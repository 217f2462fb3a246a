package cache

import (
	"context"
	"os"
	"testing"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := NewDiskCache(dir)
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	ctx := context.Background()
	key := Key("https://example.com/a", "local", 1024, nil)

	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("expected cache miss before any Set")
	}

	entry := &Entry{
		Meta: model.CacheEntry{FinalURL: "https://example.com/a", Status: 200, ContentType: "text/html"},
		Body: []byte("<html>hello</html>"),
	}
	if err := c.Set(ctx, key, entry, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if string(got.Body) != string(entry.Body) {
		t.Errorf("Body = %q, want %q", got.Body, entry.Body)
	}
	if got.Meta.FinalURL != entry.Meta.FinalURL {
		t.Errorf("FinalURL = %q, want %q", got.Meta.FinalURL, entry.Meta.FinalURL)
	}
	if got.Meta.StoredAtEpoch == 0 {
		t.Error("expected StoredAtEpoch to be stamped on Set")
	}
}

func TestDiskCacheMissingSiblingIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := NewDiskCache(dir)
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	ctx := context.Background()
	key := Key("https://example.com/b", "local", 1024, nil)

	entry := &Entry{Meta: model.CacheEntry{FinalURL: "https://example.com/b"}, Body: []byte("x")}
	if err := c.Set(ctx, key, entry, 60); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := os.Remove(c.bodyPath(key)); err != nil {
		t.Fatalf("removing body sidecar: %v", err)
	}
	if _, ok := c.Get(ctx, key); ok {
		t.Fatal("expected miss when the .body sidecar is gone")
	}
}

func TestKeyIsStableAndOrderIndependentOverHeaders(t *testing.T) {
	h1 := map[string]string{"Accept": "text/html", "X-Foo": "bar"}
	h2 := map[string]string{"X-Foo": "bar", "Accept": "text/html"}
	if Key("https://a", "local", 10, h1) != Key("https://a", "local", 10, h2) {
		t.Fatal("expected Key to be independent of header map iteration order")
	}
	if Key("https://a", "local", 10, nil) == Key("https://b", "local", 10, nil) {
		t.Fatal("expected different URLs to hash to different keys")
	}
}

func TestFreshZeroTTLNeverExpires(t *testing.T) {
	if !Fresh(0, 0, 1_000_000) {
		t.Fatal("TTL <= 0 should mean always fresh")
	}
}

func TestFreshRespectsTTLWindow(t *testing.T) {
	if !Fresh(100, 60, 150) {
		t.Fatal("expected fresh within TTL window")
	}
	if Fresh(100, 60, 200) {
		t.Fatal("expected stale past TTL window")
	}
}
