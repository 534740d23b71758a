package cache

import (
	"testing"
	"time"
)

func TestLRUSetGet(t *testing.T) {
	c := NewLRU[string](2, time.Minute)
	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("expected hit, got %q ok=%v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatalf("expected miss")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a; b becomes eviction candidate
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a retained")
	}
	if c.Size() != 2 {
		t.Fatalf("expected size 2, got %d", c.Size())
	}
}

func TestLRUTTLExpiry(t *testing.T) {
	c := NewLRU[int](10, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expiry")
	}
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if n := c.CleanExpired(); n != 1 {
		t.Fatalf("expected 1 cleaned, got %d", n)
	}
}

func TestLRUPurge(t *testing.T) {
	c := NewLRU[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("expected empty after purge, got %d", c.Size())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected miss after purge")
	}
	// Cache is usable after a purge.
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatalf("expected hit after purge, got %d ok=%v", v, ok)
	}
}

func TestManagerSweeps(t *testing.T) {
	c := NewLRU[int](10, time.Millisecond)
	m := NewManager()
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	c.Set("a", 1)
	time.Sleep(30 * time.Millisecond)
	if c.Size() != 0 {
		t.Fatalf("expected swept cache, size %d", c.Size())
	}
}
