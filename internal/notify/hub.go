// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

// subscriberBuffer is the per-subscriber channel depth. A subscriber that
// falls this far behind starts dropping events; the ring buffer still holds
// them for the next snapshot.
const subscriberBuffer = 16

// Hub buffers contact notifications and fans new ones out to subscribers.
// All methods are safe for concurrent use.
type Hub struct {
	ring *Ring

	mu   sync.RWMutex
	subs map[chan model.Notification]struct{}
}

// NewHub creates a hub with a ring buffer of the given capacity.
func NewHub(capacity int) *Hub {
	return &Hub{
		ring: NewRing(capacity),
		subs: make(map[chan model.Notification]struct{}),
	}
}

// Publish assigns the notification an ID and timestamp, buffers it, and
// fans it out to all current subscribers. Returns the published entry.
func (h *Hub) Publish(name, email, subject string) model.Notification {
	n := model.Notification{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		CreatedAt: time.Now(),
	}

	h.ring.Push(n)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- n:
		default:
			// Slow subscriber, skip it. It can catch up from a snapshot.
		}
	}
	return n
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The channel is closed on unsubscribe.
func (h *Hub) Subscribe() (<-chan model.Notification, func()) {
	ch := make(chan model.Notification, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Snapshot returns the buffered notifications, newest first.
func (h *Hub) Snapshot() []model.Notification {
	return h.ring.Snapshot()
}

// Clear empties the buffer. Live subscribers are unaffected.
func (h *Hub) Clear() {
	h.ring.Clear()
}

// Len returns the number of buffered notifications.
func (h *Hub) Len() int {
	return h.ring.Len()
}

// Subscribers returns the number of live subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
