package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCacheAlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Errorf("got hit with data %q, want miss", data)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	want := []byte("digraph chain {}")

	if err := c.Set(ctx, "result:abc", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, "result:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("got miss, want hit")
	}
	if string(got) != string(want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("got hit for missing key, want miss")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := c.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("got hit for expired entry, want miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("got hit after delete, want miss")
	}

	// Deleting a missing key is not an error.
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestResultKeyDeterministic(t *testing.T) {
	a := ResultKey("hash1", 10, int64(1), "bayes", "svg")
	b := ResultKey("hash1", 10, int64(1), "bayes", "svg")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "result:hash1:") {
		t.Errorf("key %q missing result prefix", a)
	}
}

func TestResultKeyVariesWithComponents(t *testing.T) {
	base := ResultKey("hash1", 10, int64(1), "bayes", "svg")
	tests := []struct {
		name string
		key  string
	}{
		{"dataset", ResultKey("hash2", 10, int64(1), "bayes", "svg")},
		{"runs", ResultKey("hash1", 20, int64(1), "bayes", "svg")},
		{"seed", ResultKey("hash1", 10, int64(2), "bayes", "svg")},
		{"score", ResultKey("hash1", 10, int64(1), "mdl", "svg")},
		{"format", ResultKey("hash1", 10, int64(1), "bayes", "png")},
	}
	for _, tt := range tests {
		if tt.key == base {
			t.Errorf("changing %s did not change the key", tt.name)
		}
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("got hash length %d, want 64", len(h))
	}
	if h != Hash([]byte("hello")) {
		t.Error("hash is not deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs produced the same hash")
	}
}
