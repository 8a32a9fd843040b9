// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/geoip"
	"github.com/hopeworks/hopeworks-go/internal/imaging"
	"github.com/hopeworks/hopeworks-go/internal/notify"
	"github.com/hopeworks/hopeworks-go/internal/service"
	"github.com/hopeworks/hopeworks-go/internal/session"
	"github.com/hopeworks/hopeworks-go/internal/testutil"
)

// testSetup builds a handler backed by a temporary database, an in-memory
// cache, and a fresh notification hub.
func testSetup(t *testing.T) (*sql.DB, *Handler) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	cm, err := cache.NewManager(cache.Config{
		Type:       cache.TypeMemory,
		DefaultTTL: time.Minute,
		MaxSize:    100,
	})
	if err != nil {
		t.Fatalf("creating cache manager: %v", err)
	}
	t.Cleanup(func() { _ = cm.Close() })

	uploadDir := t.TempDir()
	h := NewHandler(db, cm, notify.NewHub(16), session.New(db, true),
		imaging.NewProcessor(uploadDir), geoip.NewLookup(),
		service.NewEventService(db), uploadDir)
	return db, h
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with a JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// executeHandler executes a handler and returns the response recorder.
func executeHandler(t *testing.T, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// unmarshalBody unmarshals a JSON response body into a generic map.
func unmarshalBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return out
}
