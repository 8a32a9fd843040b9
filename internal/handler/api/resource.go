// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/cache"
)

// resource is a generic admin controller for a CRUD-managed collection.
// List reads go through the collection cache; Delete invalidates it.
// Create and update handlers stay per-resource because their field decoding
// differs, but they share the same cache invalidation path.
type resource[T any] struct {
	name       string // payload key, cache key, and log label
	cache      *cache.TypedCache[[]T]
	ttl        time.Duration
	manager    *cache.Manager
	fetchAll  func(ctx context.Context) ([]T, error)
	fetchOne  func(ctx context.Context, id int64) (T, error)
	deleteOne func(ctx context.Context, id int64) error
	render    func(T) any
	onDelete  func(item T) // optional, runs after a successful delete
}

// newResource builds a controller for one collection.
func newResource[T any](h *Handler, name string,
	fetchAll func(ctx context.Context) ([]T, error),
	fetchOne func(ctx context.Context, id int64) (T, error),
	deleteOne func(ctx context.Context, id int64) error,
	render func(T) any) *resource[T] {
	return &resource[T]{
		name:      name,
		cache:     cache.NewTypedCache[[]T](h.cache.Backend(), cache.CollectionPrefix),
		ttl:       h.cache.TTL(),
		manager:   h.cache,
		fetchAll:  fetchAll,
		fetchOne:  fetchOne,
		deleteOne: deleteOne,
		render:    render,
	}
}

// invalidate drops the cached collection after any mutation.
func (c *resource[T]) invalidate(ctx context.Context) {
	c.manager.Invalidate(ctx, c.name)
}

// List responds with {<name>: [...]}, serving from the collection cache.
func (c *resource[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.cache.GetOrSet(r.Context(), c.name, c.ttl, c.fetchAll)
	if err != nil {
		writeStoreError(w, err, c.name+" unavailable")
		return
	}

	rendered := make([]any, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, c.render(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{c.name: rendered})
}

// Get responds with a single record by {id}.
func (c *resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := c.fetchOne(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	writeJSON(w, http.StatusOK, c.render(item))
}

// Delete removes a record and invalidates the collection cache.
func (c *resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	// Confirm existence first so deletes of missing records 404.
	item, err := c.fetchOne(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "not found")
		return
	}

	if err := c.deleteOne(r.Context(), id); err != nil {
		writeStoreError(w, err, "not found")
		return
	}
	c.invalidate(r.Context())
	if c.onDelete != nil {
		c.onDelete(item)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
