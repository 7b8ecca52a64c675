package lang

import (
	"context"
	"testing"
)

func cacheLen() int {
	n := 0

	extractCache.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

func TestExtractCache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := Source{Name: "cached.txt", Text: "@=a[1] @=b[a+1] @<"}

	first, err := New().Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if n := cacheLen(); n != 1 {
		t.Fatalf("expected 1 cache entry, got %d", n)
	}

	second, err := New().Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if n := cacheLen(); n != 1 {
		t.Errorf("expected 1 cache entry after repeat, got %d", n)
	}

	// A cache hit shares the extracted definitions.
	if first.Texts[0].Definitions[0] != second.Texts[0].Definitions[0] {
		t.Error("expected cached definitions to be shared")
	}

	// The same text under another name is a different entry.
	if _, err := New().Resolve(context.Background(), Source{Name: "other.txt", Text: src.Text}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if n := cacheLen(); n != 2 {
		t.Errorf("expected 2 cache entries, got %d", n)
	}

	ClearCache()

	if n := cacheLen(); n != 0 {
		t.Errorf("expected empty cache after ClearCache, got %d", n)
	}
}

func TestExtractCache_Disabled(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	c := New(WithCache(false))
	src := Source{Name: "uncached.txt", Text: "@=a[1]"}

	first, err := c.Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	second, err := c.Resolve(context.Background(), src)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if n := cacheLen(); n != 0 {
		t.Errorf("expected empty cache, got %d entries", n)
	}

	if first.Texts[0].Definitions[0] == second.Texts[0].Definitions[0] {
		t.Error("expected fresh definitions without the cache")
	}
}

func TestExtractCache_Error(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	src := Source{Name: "bad.txt", Text: "@=a[1 %]"}

	for range 2 {
		if _, err := New().Resolve(context.Background(), src); err == nil {
			t.Fatal("expected error")
		}
	}

	if n := cacheLen(); n != 1 {
		t.Errorf("expected failed extraction to be cached once, got %d", n)
	}
}

func TestSourceKey(t *testing.T) {
	a := sourceKey(Source{Name: "ab", Text: "c"})
	b := sourceKey(Source{Name: "a", Text: "bc"})

	if a == b {
		t.Error("expected name and text boundary to affect the key")
	}

	if a != sourceKey(Source{Name: "ab", Text: "c"}) {
		t.Error("expected stable key")
	}
}
