// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package notify implements the in-memory contact notification feed: a
// bounded ring buffer of recent notifications plus a hub fanning new
// entries out to live subscribers.
package notify

import (
	"sync"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

// Ring is a fixed-capacity buffer of notifications. When full, pushing a new
// notification evicts the oldest. Every push is kept as its own entry; two
// submissions from the same sender are two notifications.
type Ring struct {
	mu       sync.RWMutex
	entries  []model.Notification
	capacity int
}

// NewRing creates a ring buffer holding at most capacity notifications.
// Capacity must be at least 1.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		entries:  make([]model.Notification, 0, capacity),
		capacity: capacity,
	}
}

// Push appends a notification, evicting the oldest entry when full.
func (r *Ring) Push(n model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries[len(r.entries)-1] = n
		return
	}
	r.entries = append(r.entries, n)
}

// Snapshot returns the current notifications, newest first.
func (r *Ring) Snapshot() []model.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Notification, len(r.entries))
	for i, n := range r.entries {
		out[len(r.entries)-1-i] = n
	}
	return out
}

// Clear empties the buffer.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}

// Len returns the number of buffered notifications.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
