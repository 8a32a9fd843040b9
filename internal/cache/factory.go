// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"time"
)

// Backend type identifiers.
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Config holds cache backend configuration.
type Config struct {
	Type            string // "memory" or "redis"
	RedisURL        string
	Prefix          string
	DefaultTTL      time.Duration
	MaxSize         int           // memory backend only
	CleanupInterval time.Duration // memory backend only
}

// New creates a cache backend based on the configuration.
func New(cfg Config) (Cacher, error) {
	switch cfg.Type {
	case TypeRedis:
		return NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
	case TypeMemory, "":
		return NewMemoryCache(MemoryCacheOptions{
			DefaultTTL:      cfg.DefaultTTL,
			MaxSize:         cfg.MaxSize,
			CleanupInterval: cfg.CleanupInterval,
		}), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %q", cfg.Type)
	}
}
