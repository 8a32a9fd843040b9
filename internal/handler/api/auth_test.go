// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hopeworks/hopeworks-go/internal/auth"
	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
)

// seedUser creates a user with a real password hash.
func seedUser(t *testing.T, db *sql.DB, email, password, role string) model.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

// withSession runs a handler inside the session middleware, as in production.
func withSession(h *Handler, fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.sessions.LoadAndSave(fn).ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	db, h := testSetup(t)
	seedUser(t, db, "admin@example.com", "correct horse battery", model.RoleAdmin)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"email": "Admin@Example.com", "password": "correct horse battery"}`, nil)
	w := withSession(h, h.Login, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}

	body := unmarshalBody(t, w)
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("response missing user: %s", w.Body.String())
	}
	if user["email"] != "admin@example.com" {
		t.Errorf("email = %v; want admin@example.com", user["email"])
	}
	if user["role"] != model.RoleAdmin {
		t.Errorf("role = %v; want admin", user["role"])
	}

	// A session cookie was issued.
	if len(w.Result().Cookies()) == 0 {
		t.Error("no session cookie set")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, h := testSetup(t)
	seedUser(t, db, "admin@example.com", "correct horse battery", model.RoleAdmin)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"email": "admin@example.com", "password": "wrong"}`, nil)
	w := withSession(h, h.Login, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", w.Code)
	}
	body := unmarshalBody(t, w)
	if body["error"] != "invalid credentials" {
		t.Errorf("error = %v; want invalid credentials", body["error"])
	}
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"email": "ghost@example.com", "password": "anything"}`, nil)
	w := withSession(h, h.Login, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", w.Code)
	}
	// The same message as a wrong password, so emails cannot be probed.
	body := unmarshalBody(t, w)
	if body["error"] != "invalid credentials" {
		t.Errorf("error = %v; want invalid credentials", body["error"])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/login",
		`{"email": "", "password": ""}`, nil)
	w := withSession(h, h.Login, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
}

func TestLogout(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/logout", "", nil)
	w := withSession(h, h.Logout, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["status"] != "logged out" {
		t.Errorf("status = %v; want logged out", body["status"])
	}
}

func TestMe_RequiresUser(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodGet, "/api/admin/me", "", nil)
	w := executeHandler(t, h.Me, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want 401", w.Code)
	}
}

func TestMe_ReturnsSessionUser(t *testing.T) {
	db, h := testSetup(t)
	user := seedUser(t, db, "hr@example.com", "password123", model.RoleHR)

	req := newJSONRequest(t, http.MethodGet, "/api/admin/me", "", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, user))
	w := executeHandler(t, h.Me, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	body := unmarshalBody(t, w)
	me := body["user"].(map[string]any)
	if me["email"] != "hr@example.com" {
		t.Errorf("email = %v; want hr@example.com", me["email"])
	}
}
