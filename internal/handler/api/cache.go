// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import "net/http"

// CacheStats handles GET /api/admin/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := h.cache.Stats()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "cache statistics unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hits":    stats.Hits,
		"misses":  stats.Misses,
		"sets":    stats.Sets,
		"items":   stats.Items,
		"hitRate": stats.HitRate,
		"size":    stats.Size,
	})
}
