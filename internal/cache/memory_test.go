package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("a", "coffee_shop", 0)
	got, found := c.Get("a")
	if !found || got != "coffee_shop" {
		t.Fatalf("Get(a) = %q, %v; want coffee_shop, true", got, found)
	}

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	c.Delete("a")
	if c.Len() != 0 {
		t.Errorf("expected empty cache after delete, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	c.Set("short", "hotel", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("a", "x", 0)
	c.Set("b", "y", 0)

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected 0 items after Clear, got %d", c.Len())
	}
}

func TestCacheKey(t *testing.T) {
	if got, want := CacheKey("  Starbucks "), "candor:v1:business:starbucks"; got != want {
		t.Errorf("CacheKey = %q, want %q", got, want)
	}
}
