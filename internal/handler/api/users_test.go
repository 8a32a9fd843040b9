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

func TestCreateUser(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/users",
		`{"name": "New Hire", "email": "HR@Example.com", "password": "longenough", "role": "hr"}`, nil)
	w := executeHandler(t, h.CreateUser, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["email"] != "hr@example.com" {
		t.Errorf("email = %v; want lowercased hr@example.com", body["email"])
	}
	if body["role"] != model.RoleHR {
		t.Errorf("role = %v; want hr", body["role"])
	}
	if _, present := body["passwordHash"]; present {
		t.Error("password hash leaked into the response")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email": "a@b.c", "password": "longenough", "role": "admin"}`},
		{"bad email", `{"name": "N", "email": "nope", "password": "longenough", "role": "admin"}`},
		{"short password", `{"name": "N", "email": "a@b.c", "password": "short", "role": "admin"}`},
		{"unknown role", `{"name": "N", "email": "a@b.c", "password": "longenough", "role": "superuser"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := testSetup(t)

			req := newJSONRequest(t, http.MethodPost, "/api/admin/users", tt.body, nil)
			w := executeHandler(t, h.CreateUser, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, h := testSetup(t)
	seedUser(t, db, "taken@example.com", "password123", model.RoleAdmin)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/users",
		`{"name": "Dup", "email": "taken@example.com", "password": "longenough", "role": "hr"}`, nil)
	w := executeHandler(t, h.CreateUser, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d; want 409; body: %s", w.Code, w.Body.String())
	}
}

func TestListUsers_Envelope(t *testing.T) {
	db, h := testSetup(t)
	seedUser(t, db, "a@example.com", "password123", model.RoleAdmin)
	seedUser(t, db, "b@example.com", "password123", model.RoleVolunteer)

	req := newJSONRequest(t, http.MethodGet, "/api/admin/users", "", nil)
	w := executeHandler(t, h.ListUsers, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	body := unmarshalBody(t, w)
	users, ok := body["users"].([]any)
	if !ok {
		t.Fatalf("response missing users envelope: %s", w.Body.String())
	}
	if len(users) != 2 {
		t.Errorf("got %d users; want 2", len(users))
	}
}

func TestDeleteUser(t *testing.T) {
	db, h := testSetup(t)
	admin := seedUser(t, db, "admin@example.com", "password123", model.RoleAdmin)
	victim := seedUser(t, db, "gone@example.com", "password123", model.RoleVolunteer)

	req := newJSONRequest(t, http.MethodDelete, "/api/admin/users/2", "",
		map[string]string{"id": "2"})
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, admin))
	w := executeHandler(t, h.DeleteUser, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}

	if _, err := h.queries.GetUserByID(context.Background(), victim.ID); err == nil {
		t.Error("user still present after delete")
	}
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	db, h := testSetup(t)
	admin := seedUser(t, db, "admin@example.com", "password123", model.RoleAdmin)

	req := newJSONRequest(t, http.MethodDelete, "/api/admin/users/1", "",
		map[string]string{"id": "1"})
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, admin))
	w := executeHandler(t, h.DeleteUser, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	body := unmarshalBody(t, w)
	if body["error"] != "cannot delete the current account" {
		t.Errorf("error = %v", body["error"])
	}

	if _, err := h.queries.GetUserByID(context.Background(), admin.ID); err != nil {
		t.Errorf("account deleted despite the guard: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	db, h := testSetup(t)
	admin := seedUser(t, db, "admin@example.com", "password123", model.RoleAdmin)

	req := newJSONRequest(t, http.MethodDelete, "/api/admin/users/99", "",
		map[string]string{"id": "99"})
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, admin))
	w := executeHandler(t, h.DeleteUser, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}
