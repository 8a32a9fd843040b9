// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hopeworks/hopeworks-go/internal/auth"
	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
)

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, err, "users unavailable")
		return
	}

	rendered := make([]userResponse, 0, len(users))
	for _, u := range users {
		rendered = append(rendered, renderUser(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": rendered})
}

// userPayload is the admin create-user body.
type userPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (p *userPayload) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(p.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if !model.IsKnownRole(p.Role) {
		return fmt.Errorf("invalid role: %s", p.Role)
	}
	return nil
}

// CreateUser handles POST /api/admin/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := h.queries.GetUserByEmail(r.Context(), email); err == nil {
		writeError(w, http.StatusConflict, "email already in use")
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		writeStoreError(w, err, "user not found")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Name:         payload.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         payload.Role,
	})
	if err != nil {
		writeStoreError(w, err, "user not found")
		return
	}

	h.logMutation(r, model.EventCategoryAuth, "user created", user.ID, user.Email)
	writeJSON(w, http.StatusCreated, renderUser(user))
}

// DeleteUser handles DELETE /api/admin/users/{id}. Accounts cannot delete
// themselves.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if current, ok := middleware.GetUser(r); ok && current.ID == id {
		writeError(w, http.StatusBadRequest, "cannot delete the current account")
		return
	}

	target, err := h.queries.GetUserByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "user not found")
		return
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		writeStoreError(w, err, "user not found")
		return
	}

	h.logMutation(r, model.EventCategoryAuth, "user deleted", target.ID, target.Email)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
