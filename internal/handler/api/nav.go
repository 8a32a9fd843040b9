// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/rbac"
)

// GetNav handles GET /api/admin/nav: the navigation visible to the
// session's role, served as data. An unknown role gets an empty list and
// is flagged so the client can tell it apart from a low-privilege role.
func (h *Handler) GetNav(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"role":      user.Role,
		"knownRole": model.IsKnownRole(user.Role),
		"nav":       rbac.NavFor(user.Role),
	})
}
