// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// Health handles GET /health with a database check and uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}

	resp := map[string]any{
		"status":   "ok",
		"database": "ok",
		"uptime":   time.Since(startTime).Round(time.Second).String(),
	}
	if stats, ok := h.cache.Stats(); ok {
		resp["cache"] = map[string]any{
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"items":  stats.Items,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Live handles GET /health/live: the process is up.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Ready handles GET /health/ready: the server can take traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
