package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(Config{
		Type:       TypeMemory,
		DefaultTTL: time.Minute,
		MaxSize:    100,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManager_InvalidateDropsCollection(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	tc := NewTypedCache[[]string](m.Backend(), CollectionPrefix)
	if err := tc.Set(ctx, ResourceStories, []string{"a", "b"}, m.TTL()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := tc.Set(ctx, ResourceIdeas, []string{"c"}, m.TTL()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	m.Invalidate(ctx, ResourceStories)

	if _, err := tc.Get(ctx, ResourceStories); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("stories collection should be invalidated, got %v", err)
	}
	// Other collections are untouched.
	if _, err := tc.Get(ctx, ResourceIdeas); err != nil {
		t.Errorf("ideas collection should survive, got %v", err)
	}
}

func TestManager_InvalidateAll(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	tc := NewTypedCache[[]string](m.Backend(), CollectionPrefix)
	_ = tc.Set(ctx, ResourceStories, []string{"a"}, 0)
	_ = tc.Set(ctx, ResourceMedia, []string{"b"}, 0)

	m.InvalidateAll(ctx)

	if _, err := tc.Get(ctx, ResourceStories); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected everything dropped, got %v", err)
	}
	if _, err := tc.Get(ctx, ResourceMedia); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected everything dropped, got %v", err)
	}
}

func TestManager_Stats(t *testing.T) {
	m := newTestManager(t)

	stats, ok := m.Stats()
	if !ok {
		t.Fatal("memory backend should provide stats")
	}
	if stats.Items != 0 {
		t.Errorf("Items = %d; want 0", stats.Items)
	}
}
