package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a", 41)
	c.Set("a", 42)
	v, ok := c.Get("a")
	if !ok || v != 42 {
		t.Fatalf("Get(a) = %d, %v; want 42, true", v, ok)
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after Delete")
	}
}

func TestExpiry(t *testing.T) {
	c := New[string, string](20 * time.Millisecond)
	c.Set("k", "v")

	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before TTL")
	}

	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after TTL")
	}
}
