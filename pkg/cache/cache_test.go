package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "export:abc", []byte("document"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "export:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if string(data) != "document" {
		t.Errorf("got %q, want %q", data, "document")
	}

	if err := c.Delete(ctx, "export:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "export:abc"); hit {
		t.Error("expected miss after delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	ck1 := k.ConflictKey("hash123")
	ck2 := k.ConflictKey("hash456")
	if ck1 == ck2 {
		t.Error("different layout hashes should produce different conflict keys")
	}

	ek1 := k.ExportKey("hash123", ExportKeyOpts{FrameBorder: 16, Scale: 1})
	ek2 := k.ExportKey("hash123", ExportKeyOpts{FrameBorder: 16, Scale: 2})
	if ek1 == ek2 {
		t.Error("different ExportKeyOpts should produce different keys")
	}
	if ek1 != k.ExportKey("hash123", ExportKeyOpts{FrameBorder: 16, Scale: 1}) {
		t.Error("ExportKey should be deterministic")
	}
	if ck1 == ek1 {
		t.Error("stage prefixes should separate conflict and export keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "store:alpha:")

	got := scoped.ConflictKey("hash123")
	want := "store:alpha:" + inner.ConflictKey("hash123")
	if got != want {
		t.Errorf("scoped key = %q, want %q", got, want)
	}

	// Should use DefaultKeyer when inner is nil
	fallback := NewScopedKeyer(nil, "p:")
	if fallback.ConflictKey("h") != "p:"+inner.ConflictKey("h") {
		t.Error("nil inner should fall back to the default keyer")
	}
}
