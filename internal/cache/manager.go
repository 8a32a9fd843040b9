// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Collection cache key namespace. Typed collection caches are created with
// CollectionPrefix and keyed by resource name, so invalidation by resource
// works across all of them.
const CollectionPrefix = "collection"

// Cached resource names.
const (
	ResourceStories     = "stories"
	ResourceIdeas       = "ideas"
	ResourceMedia       = "media"
	ResourceMemberships = "memberships"
)

// Manager owns the cache backend and provides keyed invalidation for
// resource collections. Mutation handlers call Invalidate with the resource
// they changed; list handlers read through typed collection caches built on
// Backend().
type Manager struct {
	backend Cacher
	ttl     time.Duration
}

// NewManager creates a cache backend from cfg and wraps it in a Manager.
// If the Redis backend cannot be reached it falls back to the in-memory
// backend rather than failing startup.
func NewManager(cfg Config) (*Manager, error) {
	backend, err := New(cfg)
	if err != nil {
		if cfg.Type != TypeRedis {
			return nil, err
		}
		slog.Warn("redis cache unavailable, falling back to memory", "error", err)
		cfg.Type = TypeMemory
		backend, err = New(cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Manager{
		backend: backend,
		ttl:     cfg.DefaultTTL,
	}, nil
}

// Backend returns the underlying cache for building typed caches.
func (m *Manager) Backend() Cacher {
	return m.backend
}

// TTL returns the default time-to-live for cached collections.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Invalidate drops the cached collection for a resource. Called after every
// create, update, or delete so the next list read hits the database.
func (m *Manager) Invalidate(ctx context.Context, resource string) {
	if err := m.backend.Delete(ctx, CollectionPrefix+":"+resource); err != nil {
		slog.Warn("cache invalidation failed", "resource", resource, "error", err)
	}
}

// InvalidateAll drops every cached entry.
func (m *Manager) InvalidateAll(ctx context.Context) {
	if err := m.backend.Clear(ctx); err != nil {
		slog.Warn("cache clear failed", "error", err)
	}
}

// Stats returns backend statistics when the backend provides them.
func (m *Manager) Stats() (Stats, bool) {
	if sp, ok := m.backend.(StatsProvider); ok {
		return sp.Stats(), true
	}
	return Stats{}, false
}

// Close releases the cache backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
