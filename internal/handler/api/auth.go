// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/auth"
	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/session"
	"github.com/hopeworks/hopeworks-go/internal/util"
)

// WithLoginProtection attaches the account lockout tracker used by Login.
func (h *Handler) WithLoginProtection(lp *middleware.LoginProtection) *Handler {
	h.protection = lp
	return h
}

// loginPayload is the POST /api/admin/login body.
type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login. Invalid email and invalid password
// are indistinguishable in the response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	ip := util.ClientIP(r)

	if h.protection != nil {
		if locked, remaining := h.protection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "email", email, "ip", ip)
			writeError(w, http.StatusTooManyRequests,
				"account temporarily locked, try again in "+remaining.Round(time.Second).String())
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("looking up user", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		h.failLogin(r, email, ip)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ok, err := auth.CheckPassword(payload.Password, user.PasswordHash)
	if err != nil || !ok {
		h.failLogin(r, email, ip)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)

	if h.protection != nil {
		h.protection.RecordSuccessfulLogin(email)
	}
	if err := h.events.LogAuthEvent(r.Context(), model.EventLevelInfo, "user logged in",
		&user.ID, ip, map[string]any{"email": user.Email}); err != nil {
		slog.Warn("audit log write failed", "category", model.EventCategoryAuth, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": renderUser(user)})
}

// failLogin records a failed attempt and audits it.
func (h *Handler) failLogin(r *http.Request, email, ip string) {
	if h.protection != nil {
		if locked, duration := h.protection.RecordFailedAttempt(email); locked {
			slog.Warn("account locked", "email", email, "duration", duration)
		}
	}
	if err := h.events.LogAuthEvent(r.Context(), model.EventLevelWarning, "failed login attempt",
		nil, ip, map[string]any{"email": email}); err != nil {
		slog.Warn("audit log write failed", "category", model.EventCategoryAuth, "error", err)
	}
}

// Logout handles POST /api/admin/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me handles GET /api/admin/me: the session's user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": renderUser(user)})
}
