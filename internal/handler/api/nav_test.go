// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/model"
)

func navRequest(t *testing.T, user model.User) *http.Request {
	t.Helper()
	req := newJSONRequest(t, http.MethodGet, "/api/admin/nav", "", nil)
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, user))
}

func TestGetNav_RoleVisibility(t *testing.T) {
	tests := []struct {
		role      string
		wantItems int
		knownRole bool
	}{
		{model.RoleAdmin, 8, true},
		{model.RoleHR, 3, true},
		{model.RoleVolunteer, 1, true},
		{"auditor", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			_, h := testSetup(t)

			req := navRequest(t, model.User{ID: 1, Role: tt.role})
			w := executeHandler(t, h.GetNav, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d; want 200", w.Code)
			}
			body := unmarshalBody(t, w)
			if body["role"] != tt.role {
				t.Errorf("role = %v; want %s", body["role"], tt.role)
			}
			if body["knownRole"] != tt.knownRole {
				t.Errorf("knownRole = %v; want %v", body["knownRole"], tt.knownRole)
			}
			nav, ok := body["nav"].([]any)
			if !ok {
				t.Fatalf("nav missing or not a list: %s", w.Body.String())
			}
			if len(nav) != tt.wantItems {
				t.Errorf("nav has %d items; want %d", len(nav), tt.wantItems)
			}
		})
	}
}

func TestGetNav_HRSeesContactsNotStories(t *testing.T) {
	_, h := testSetup(t)

	req := navRequest(t, model.User{ID: 1, Role: model.RoleHR})
	w := executeHandler(t, h.GetNav, req)

	body := unmarshalBody(t, w)
	nav := body["nav"].([]any)

	labels := map[string]bool{}
	for _, item := range nav {
		labels[item.(map[string]any)["label"].(string)] = true
	}
	if !labels["Contacts"] || !labels["Memberships"] {
		t.Errorf("hr nav missing expected items: %v", labels)
	}
	if labels["Stories"] || labels["Users"] {
		t.Errorf("hr nav exposes restricted items: %v", labels)
	}
}

func TestGetNav_RequiresUser(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodGet, "/api/admin/nav", "", nil)
	w := executeHandler(t, h.GetNav, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", w.Code)
	}
}
