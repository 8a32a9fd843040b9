// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api implements the public and admin JSON endpoints.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/geoip"
	"github.com/hopeworks/hopeworks-go/internal/imaging"
	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/notify"
	"github.com/hopeworks/hopeworks-go/internal/service"
	"github.com/hopeworks/hopeworks-go/internal/store"

	"github.com/alexedwards/scs/v2"
)

// maxUploadSize bounds multipart form memory and upload size (32 MB).
const maxUploadSize = 32 << 20

// Handler carries the shared dependencies of all API endpoints.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cache     *cache.Manager
	hub       *notify.Hub
	sessions  *scs.SessionManager
	processor *imaging.Processor
	geo       *geoip.Lookup
	events    *service.EventService
	uploadDir string

	protection *middleware.LoginProtection
}

// NewHandler wires an API handler with its dependencies.
func NewHandler(db *sql.DB, cm *cache.Manager, hub *notify.Hub, sessions *scs.SessionManager,
	processor *imaging.Processor, geo *geoip.Lookup, events *service.EventService, uploadDir string) *Handler {
	return &Handler{
		db:        db,
		queries:   store.New(db),
		cache:     cm,
		hub:       hub,
		sessions:  sessions,
		processor: processor,
		geo:       geo,
		events:    events,
		uploadDir: uploadDir,
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// writeError writes the JSON error contract: {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps database errors to the error contract.
func writeStoreError(w http.ResponseWriter, err error, notFound string) {
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, notFound)
		return
	}
	slog.Error("store operation failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON decodes a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// parseIDParam parses the {id} route parameter.
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// publicURL converts a stored file path to its public /uploads/ URL.
// Returns "" for paths outside the upload directory.
func (h *Handler) publicURL(path string) string {
	if path == "" {
		return ""
	}
	absBase, err := filepath.Abs(h.uploadDir)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absBase, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return "/uploads/" + filepath.ToSlash(rel)
}

// removeUploadedAssets deletes the stored upload directories behind the
// given asset paths. Uploads live under <kind>/<uuid>/<name>, so the uuid
// is the parent directory of each stored path. Failures are logged, not
// surfaced; the record is already gone.
func (h *Handler) removeUploadedAssets(paths ...sql.NullString) {
	seen := map[string]bool{}
	for _, p := range paths {
		if !p.Valid || p.String == "" {
			continue
		}
		id := filepath.Base(filepath.Dir(p.String))
		if id == "." || id == string(filepath.Separator) || seen[id] {
			continue
		}
		seen[id] = true
		if err := h.processor.DeleteFiles(id); err != nil {
			slog.Warn("removing uploaded assets", "upload", id, "error", err)
		}
	}
}

// nullTimeOrNil renders a nullable time as RFC3339 or nil.
func nullTimeOrNil(t sql.NullTime) any {
	if !t.Valid {
		return nil
	}
	return t.Time.Format(time.RFC3339)
}
