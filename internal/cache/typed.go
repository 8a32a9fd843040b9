// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TypedCache wraps a Cacher with JSON serialization for a specific type.
type TypedCache[T any] struct {
	cache  Cacher
	prefix string
}

// NewTypedCache creates a typed cache wrapper around the given Cacher.
// All keys are namespaced with the prefix.
func NewTypedCache[T any](cache Cacher, prefix string) *TypedCache[T] {
	return &TypedCache[T]{
		cache:  cache,
		prefix: prefix,
	}
}

func (t *TypedCache[T]) key(k string) string {
	return t.prefix + ":" + k
}

// Get retrieves and deserializes a value from the cache.
func (t *TypedCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	data, err := t.cache.Get(ctx, t.key(key))
	if err != nil {
		return zero, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		// Corrupt entry, drop it so the next read goes to the source.
		_ = t.cache.Delete(ctx, t.key(key))
		return zero, fmt.Errorf("unmarshaling cached value: %w", err)
	}
	return value, nil
}

// Set serializes and stores a value in the cache.
func (t *TypedCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value for cache: %w", err)
	}
	return t.cache.Set(ctx, t.key(key), data, ttl)
}

// Delete removes a key from the cache.
func (t *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return t.cache.Delete(ctx, t.key(key))
}

// GetOrSet retrieves a value from the cache, or computes and stores it on a
// miss. Fetch errors are returned without caching; cache write errors are
// ignored so a degraded cache never blocks reads.
func (t *TypedCache[T]) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	value, err := t.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrCacheMiss) && !errors.Is(err, ErrCacheClosed) {
		var zero T
		return zero, err
	}

	value, err = fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	_ = t.Set(ctx, key, value, ttl)
	return value, nil
}
