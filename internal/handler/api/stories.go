// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
	"github.com/hopeworks/hopeworks-go/internal/util"

	"github.com/go-chi/chi/v5"
)

// contentPolicy strips unsafe HTML from story content on write. Markdown
// text passes through untouched; embedded script/style blocks do not.
var contentPolicy = bluemonday.UGCPolicy()

// storyResource returns the generic admin controller for stories.
func (h *Handler) storyResource() *resource[model.Story] {
	res := newResource(h, cache.ResourceStories,
		h.queries.ListStories,
		h.queries.GetStoryByID,
		h.queries.DeleteStory,
		func(s model.Story) any { return h.renderStory(s, false) })
	res.onDelete = func(s model.Story) {
		h.removeUploadedAssets(s.ImagePath, s.ThumbnailPath)
	}
	return res
}

// ListPublicStories responds with {stories: [...]}, published stories only.
func (h *Handler) ListPublicStories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.queries.ListPublishedStories(r.Context())
	if err != nil {
		writeStoreError(w, err, "stories unavailable")
		return
	}

	rendered := make([]storyResponse, 0, len(stories))
	for _, s := range stories {
		rendered = append(rendered, h.renderStory(s, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": rendered})
}

// GetPublicStory responds with one published story by slug, with the
// markdown content rendered to HTML.
func (h *Handler) GetPublicStory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	story, err := h.queries.GetStoryBySlug(r.Context(), slug)
	if err != nil {
		writeStoreError(w, err, "story not found")
		return
	}
	if !story.IsPublished() {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	writeJSON(w, http.StatusOK, h.renderStory(story, true))
}

// storyForm holds the decoded multipart story fields.
type storyForm struct {
	params store.CreateStoryParams
}

// decodeStoryForm parses and validates the multipart story payload.
// When current is non-nil (update) its stored asset paths carry over
// unless a new image file replaces them.
func (h *Handler) decodeStoryForm(r *http.Request, current *model.Story) (*storyForm, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	form := &storyForm{}
	p := &form.params
	p.Title = r.FormValue("title")
	p.Excerpt = r.FormValue("excerpt")
	p.Content = contentPolicy.Sanitize(r.FormValue("content"))
	p.ReadTime = r.FormValue("readTime")
	p.AuthorName = r.FormValue("authorName")
	p.AuthorBio = r.FormValue("authorBio")
	p.Category = r.FormValue("category")
	p.MetaTitle = r.FormValue("metaTitle")
	p.MetaDescription = r.FormValue("metaDescription")
	p.Featured, _ = strconv.ParseBool(r.FormValue("featured"))

	if p.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if p.Content == "" {
		return nil, fmt.Errorf("content is required")
	}

	if tags := r.FormValue("tags"); tags != "" {
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("tags must be a JSON string array")
		}
	}
	if sections := r.FormValue("sections"); sections != "" {
		if err := json.Unmarshal([]byte(sections), &p.Sections); err != nil {
			return nil, fmt.Errorf("sections must be a JSON array")
		}
	}

	switch publishedAt := r.FormValue("publishedAt"); publishedAt {
	case "":
		// Draft unless updating an already published story.
		if current != nil {
			p.PublishedAt = current.PublishedAt
		}
	case "now":
		p.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
	default:
		t, err := time.Parse(time.RFC3339, publishedAt)
		if err != nil {
			return nil, fmt.Errorf("publishedAt must be RFC3339 or \"now\"")
		}
		p.PublishedAt = sql.NullTime{Time: t, Valid: true}
	}

	if current != nil {
		p.ImagePath = current.ImagePath
		p.ThumbnailPath = current.ThumbnailPath
	}

	// Optional image upload. An absent file keeps the stored asset.
	file, header, err := r.FormFile("image")
	if err == nil {
		defer func() { _ = file.Close() }()
		result, err := h.processor.ProcessImage(file, uuid.NewString(), header.Filename)
		if err != nil {
			return nil, fmt.Errorf("processing image: %v", err)
		}
		p.ImagePath = nullString(result.FilePath)
		p.ThumbnailPath = nullString(result.ThumbnailPath)
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, fmt.Errorf("reading image upload")
	}

	return form, nil
}

// storySlug derives a unique slug for a story, keeping an explicit form
// value when given.
func (h *Handler) storySlug(ctx context.Context, requested, title string, excludeID int64) (string, error) {
	slug := requested
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("invalid slug")
	}

	candidate := slug
	for i := 2; ; i++ {
		taken, err := h.queries.StorySlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

// CreateStory handles POST /api/story (multipart with optional image).
func (h *Handler) CreateStory(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeStoryForm(r, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slug, err := h.storySlug(r.Context(), r.FormValue("slug"), form.params.Title, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	form.params.Slug = slug

	story, err := h.queries.CreateStory(r.Context(), form.params)
	if err != nil {
		writeStoreError(w, err, "story not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceStories)
	h.logMutation(r, model.EventCategoryStory, "story created", story.ID, story.Title)
	writeJSON(w, http.StatusCreated, h.renderStory(story, false))
}

// UpdateStory handles PUT /api/admin/stories/{id} with the same multipart
// contract as create. An absent image file keeps the stored asset.
func (h *Handler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	current, err := h.queries.GetStoryByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "story not found")
		return
	}

	form, err := h.decodeStoryForm(r, &current)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slug, err := h.storySlug(r.Context(), r.FormValue("slug"), form.params.Title, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	form.params.Slug = slug

	story, err := h.queries.UpdateStory(r.Context(), store.UpdateStoryParams{
		ID:                id,
		CreateStoryParams: form.params,
	})
	if err != nil {
		writeStoreError(w, err, "story not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceStories)
	h.logMutation(r, model.EventCategoryStory, "story updated", story.ID, story.Title)
	writeJSON(w, http.StatusOK, h.renderStory(story, false))
}

// logMutation records an audit event for an admin content mutation.
func (h *Handler) logMutation(r *http.Request, category, message string, id int64, title string) {
	var userID *int64
	if user, ok := middleware.GetUser(r); ok {
		userID = &user.ID
	}
	if err := h.events.LogInfo(r.Context(), category, message, userID, util.ClientIP(r),
		map[string]any{"id": id, "title": title}); err != nil {
		slog.Warn("audit log write failed", "category", category, "error", err)
	}
}
