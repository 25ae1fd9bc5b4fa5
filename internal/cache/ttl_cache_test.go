package cache_test

import (
	"testing"
	"time"

	"github.com/turmapay/turmapay/internal/cache"
	"github.com/turmapay/turmapay/internal/clock"
)

func TestTTLCacheExpiry(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := cache.NewTTLCache[string, int](fake)

	c.Set("a", 42, 5*time.Minute)

	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Fatalf("expected hit with 42, got %d ok=%v", got, ok)
	}

	fake.Advance(4 * time.Minute)
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected entry to survive before ttl")
	}

	fake.Advance(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
}

func TestTTLCacheOverwriteAndDelete(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := cache.NewTTLCache[string, string](fake)

	c.Set("k", "v1", time.Minute)
	c.Set("k", "v2", time.Minute)

	got, ok := c.Get("k")
	if !ok || got != "v2" {
		t.Fatalf("expected v2, got %q ok=%v", got, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestTTLCacheZeroTTLIsNoop(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	c := cache.NewTTLCache[string, int](fake)

	c.Set("a", 1, 0)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected zero ttl set to be ignored")
	}
}
