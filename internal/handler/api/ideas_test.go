// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
)

func TestCreateIdea_Defaults(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/ideas",
		`{"title": "Solar Roof", "description": "Panels on the shelter"}`, nil)
	w := executeHandler(t, h.CreateIdea, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}

	body := unmarshalBody(t, w)
	if body["status"] != model.IdeaStatusOpen {
		t.Errorf("status = %v; want open", body["status"])
	}
	if body["likes"] != float64(0) {
		t.Errorf("likes = %v; want 0", body["likes"])
	}
	if body["published"] != false {
		t.Errorf("published = %v; want false", body["published"])
	}
	if body["slug"] != "solar-roof" {
		t.Errorf("slug = %v; want solar-roof", body["slug"])
	}
}

func TestCreateIdea_MissingTitle(t *testing.T) {
	db, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/ideas",
		`{"description": "no title"}`, nil)
	w := executeHandler(t, h.CreateIdea, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	body := unmarshalBody(t, w)
	if body["error"] == "" || body["error"] == nil {
		t.Error("error message missing from response")
	}

	// Nothing was written.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ideas`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("ideas table has %d rows; want 0", count)
	}
}

func TestCreateIdea_InvalidStatus(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/admin/ideas",
		`{"title": "A", "description": "B", "status": "bogus"}`, nil)
	w := executeHandler(t, h.CreateIdea, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestCreateIdea_IgnoresClientLikes(t *testing.T) {
	_, h := testSetup(t)

	// A submitted likes count is not honored on create.
	req := newJSONRequest(t, http.MethodPost, "/api/admin/ideas",
		`{"title": "A", "description": "B", "likes": 500}`, nil)
	w := executeHandler(t, h.CreateIdea, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["likes"] != float64(0) {
		t.Errorf("likes = %v; want 0", body["likes"])
	}
}

func TestCreateIdea_SlugDeduplication(t *testing.T) {
	_, h := testSetup(t)

	for i := 0; i < 2; i++ {
		req := newJSONRequest(t, http.MethodPost, "/api/admin/ideas",
			`{"title": "Same Name", "description": "B"}`, nil)
		w := executeHandler(t, h.CreateIdea, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d; want 201", w.Code)
		}
		body := unmarshalBody(t, w)
		want := "same-name"
		if i == 1 {
			want = "same-name-2"
		}
		if body["slug"] != want {
			t.Errorf("slug = %v; want %s", body["slug"], want)
		}
	}
}

func TestLikeIdea_Increments(t *testing.T) {
	db, h := testSetup(t)
	ctx := context.Background()

	idea, err := store.New(db).CreateIdea(ctx, store.CreateIdeaParams{
		Title: "Likeable", Slug: "likeable", Description: "d",
		Status: model.IdeaStatusOpen, Published: true,
	})
	if err != nil {
		t.Fatalf("seeding idea: %v", err)
	}

	for want := 1; want <= 2; want++ {
		req := newJSONRequest(t, http.MethodPatch, "/api/ideas/1/like", "",
			map[string]string{"id": "1"})
		w := executeHandler(t, h.LikeIdea, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
		}
		body := unmarshalBody(t, w)
		if body["likes"] != float64(want) {
			t.Errorf("likes = %v; want %d", body["likes"], want)
		}
	}

	// The increment landed in the database.
	got, err := store.New(db).GetIdeaByID(ctx, idea.ID)
	if err != nil {
		t.Fatalf("reading idea back: %v", err)
	}
	if got.Likes != 2 {
		t.Errorf("stored likes = %d; want 2", got.Likes)
	}
}

func TestLikeIdea_NotFound(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPatch, "/api/ideas/999/like", "",
		map[string]string{"id": "999"})
	w := executeHandler(t, h.LikeIdea, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", w.Code)
	}
}

func TestUpdateIdea_OmittedFieldsFallBack(t *testing.T) {
	db, h := testSetup(t)
	ctx := context.Background()

	q := store.New(db)
	idea, err := q.CreateIdea(ctx, store.CreateIdeaParams{
		Title: "Original", Slug: "original", Description: "d",
		Status: model.IdeaStatusOpen, Published: true,
	})
	if err != nil {
		t.Fatalf("seeding idea: %v", err)
	}
	if _, err := q.IncrementIdeaLikes(ctx, idea.ID); err != nil {
		t.Fatalf("seeding likes: %v", err)
	}

	// likes and published are omitted, so the stored values survive.
	req := newJSONRequest(t, http.MethodPut, "/api/ideas/1",
		`{"title": "Renamed", "slug": "original", "description": "d2"}`,
		map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateIdea, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["title"] != "Renamed" {
		t.Errorf("title = %v; want Renamed", body["title"])
	}
	if body["likes"] != float64(1) {
		t.Errorf("likes = %v; want 1 (preserved)", body["likes"])
	}
	if body["published"] != true {
		t.Errorf("published = %v; want true (preserved)", body["published"])
	}
	if body["status"] != model.IdeaStatusOpen {
		t.Errorf("status = %v; want open (preserved)", body["status"])
	}
}

func TestListPublicIdeas_PublishedOnly(t *testing.T) {
	db, h := testSetup(t)
	ctx := context.Background()

	q := store.New(db)
	if _, err := q.CreateIdea(ctx, store.CreateIdeaParams{
		Title: "Hidden", Slug: "hidden", Description: "d", Status: model.IdeaStatusOpen,
	}); err != nil {
		t.Fatalf("seeding idea: %v", err)
	}
	if _, err := q.CreateIdea(ctx, store.CreateIdeaParams{
		Title: "Visible", Slug: "visible", Description: "d",
		Status: model.IdeaStatusOpen, Published: true,
	}); err != nil {
		t.Fatalf("seeding idea: %v", err)
	}

	req := newJSONRequest(t, http.MethodGet, "/api/ideas", "", nil)
	w := executeHandler(t, h.ListPublicIdeas, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	body := unmarshalBody(t, w)
	ideas, ok := body["ideas"].([]any)
	if !ok {
		t.Fatalf("response missing ideas envelope: %s", w.Body.String())
	}
	if len(ideas) != 1 {
		t.Fatalf("got %d ideas; want 1", len(ideas))
	}
	first := ideas[0].(map[string]any)
	if first["slug"] != "visible" {
		t.Errorf("slug = %v; want visible", first["slug"])
	}
}
