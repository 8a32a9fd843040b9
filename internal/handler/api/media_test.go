// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/hopeworks/hopeworks-go/internal/store"
)

func seedMedia(t *testing.T, h *Handler, title, slug string, published bool) {
	t.Helper()
	if _, err := h.queries.CreateMedia(context.Background(), store.CreateMediaParams{
		Title:     title,
		Slug:      slug,
		Type:      "video",
		Published: published,
	}); err != nil {
		t.Fatalf("seeding media %q: %v", slug, err)
	}
}

func TestCreateMedia(t *testing.T) {
	_, h := testSetup(t)

	req := newMultipartRequest(t, http.MethodPost, "/api/admin/media", map[string]string{
		"title":     "Annual Gala Recap",
		"type":      "video",
		"duration":  "3:45",
		"creator":   "Media Team",
		"published": "true",
	}, nil)
	w := executeHandler(t, h.CreateMedia, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["slug"] != "annual-gala-recap" {
		t.Errorf("slug = %v; want annual-gala-recap", body["slug"])
	}
	if body["views"] != float64(0) {
		t.Errorf("views = %v; want 0", body["views"])
	}
}

func TestCreateMedia_MissingTitle(t *testing.T) {
	_, h := testSetup(t)

	req := newMultipartRequest(t, http.MethodPost, "/api/admin/media", map[string]string{
		"type": "video",
	}, nil)
	w := executeHandler(t, h.CreateMedia, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestListPublicMedia_PublishedOnly(t *testing.T) {
	_, h := testSetup(t)
	seedMedia(t, h, "Live", "live", true)
	seedMedia(t, h, "Draft", "draft", false)

	req := newJSONRequest(t, http.MethodGet, "/api/media", "", nil)
	w := executeHandler(t, h.ListPublicMedia, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	body := unmarshalBody(t, w)
	items, ok := body["media"].([]any)
	if !ok {
		t.Fatalf("response missing media envelope: %s", w.Body.String())
	}
	if len(items) != 1 {
		t.Fatalf("got %d items; want 1 published", len(items))
	}
	if items[0].(map[string]any)["slug"] != "live" {
		t.Errorf("published item = %v; want live", items[0])
	}
}

func TestViewMedia_Increments(t *testing.T) {
	_, h := testSetup(t)
	seedMedia(t, h, "Live", "live", true)

	for i := 0; i < 2; i++ {
		req := newJSONRequest(t, http.MethodPatch, "/api/media/1/view", "",
			map[string]string{"id": "1"})
		if w := executeHandler(t, h.ViewMedia, req); w.Code != http.StatusOK {
			t.Fatalf("status = %d; want 200", w.Code)
		}
	}

	item, err := h.queries.GetMediaByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("reading media back: %v", err)
	}
	if item.Views != 2 {
		t.Errorf("views = %d; want 2", item.Views)
	}
}

func TestViewMedia_NotFound(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPatch, "/api/media/9/view", "",
		map[string]string{"id": "9"})
	w := executeHandler(t, h.ViewMedia, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}

func TestUpdateMedia_PreservesViews(t *testing.T) {
	_, h := testSetup(t)
	seedMedia(t, h, "Live", "live", true)

	req := newJSONRequest(t, http.MethodPatch, "/api/media/1/view", "",
		map[string]string{"id": "1"})
	if w := executeHandler(t, h.ViewMedia, req); w.Code != http.StatusOK {
		t.Fatalf("seeding view failed: %d", w.Code)
	}

	upd := newMultipartRequest(t, http.MethodPut, "/api/admin/media/1", map[string]string{
		"title":     "Live Retitled",
		"slug":      "live",
		"type":      "video",
		"published": "true",
	}, map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateMedia, upd)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["views"] != float64(1) {
		t.Errorf("views = %v; want 1 (preserved across update)", body["views"])
	}
	if body["title"] != "Live Retitled" {
		t.Errorf("title = %v; want Live Retitled", body["title"])
	}
}
