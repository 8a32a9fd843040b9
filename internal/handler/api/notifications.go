// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

// streamKeepAlive is the interval between SSE comment lines keeping idle
// connections open through proxies.
const streamKeepAlive = 30 * time.Second

// StreamNotifications handles GET /api/admin/notifications/stream as a
// Server-Sent Events feed. Each contact submission arrives as a
// "newContact" event. The stream must not sit behind the timeout
// middleware.
func (h *Handler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case n, open := <-ch:
			if !open {
				return
			}
			if err := writeSSE(w, "newContact", n); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeSSE writes one named event with a JSON data payload.
func writeSSE(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("encoding SSE payload", "event", event, "error", err)
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

// ListNotifications handles GET /api/admin/notifications: a snapshot of
// the buffered feed, newest first.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.hub.Snapshot()
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

// ClearNotifications handles DELETE /api/admin/notifications: the
// dropdown-close acknowledgement empties the feed.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.hub.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
