// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
)

const (
	defaultEventPageSize = 50
	maxEventPageSize     = 500
)

// ListEvents handles GET /api/admin/events: the audit log, newest first,
// with limit/offset pagination.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultEventPageSize)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		if n > maxEventPageSize {
			n = maxEventPageSize
		}
		limit = n
	}

	var offset int64
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = n
	}

	events, err := h.queries.ListEvents(r.Context(), limit, offset)
	if err != nil {
		writeStoreError(w, err, "events unavailable")
		return
	}
	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		writeStoreError(w, err, "events unavailable")
		return
	}

	rendered := make([]eventResponse, 0, len(events))
	for _, e := range events {
		rendered = append(rendered, renderEvent(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": rendered,
		"total":  total,
	})
}
