package cache

import (
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("key")
	if !found {
		t.Fatal("expected key to be present")
	}
	if string(val) != "value" {
		t.Errorf("expected value, got %q", val)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("absent"); found {
		t.Error("expected miss for absent key")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("short", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("expected entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("expected a to be deleted")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("expected cache to be empty after Clear")
	}
}

func TestKey(t *testing.T) {
	k1 := Key("some prompt")
	k2 := Key("some prompt")
	k3 := Key("other prompt")

	if k1 != k2 {
		t.Error("expected stable keys for identical input")
	}
	if k1 == k3 {
		t.Error("expected distinct keys for distinct input")
	}
	if !strings.HasPrefix(k1, "triplex:v1:") {
		t.Errorf("expected versioned prefix, got %q", k1)
	}
}
