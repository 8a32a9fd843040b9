// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
	"github.com/hopeworks/hopeworks-go/internal/util"
)

// ideaResource returns the generic admin controller for ideas.
func (h *Handler) ideaResource() *resource[model.Idea] {
	return newResource(h, cache.ResourceIdeas,
		h.queries.ListIdeas,
		h.queries.GetIdeaByID,
		h.queries.DeleteIdea,
		func(i model.Idea) any { return renderIdea(i) })
}

// ListPublicIdeas responds with {ideas: [...]}, published ideas only.
func (h *Handler) ListPublicIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.queries.ListPublishedIdeas(r.Context())
	if err != nil {
		writeStoreError(w, err, "ideas unavailable")
		return
	}

	rendered := make([]ideaResponse, 0, len(ideas))
	for _, i := range ideas {
		rendered = append(rendered, renderIdea(i))
	}
	writeJSON(w, http.StatusOK, map[string]any{"ideas": rendered})
}

// LikeIdea handles PATCH /api/ideas/{id}/like. The increment is a single
// SQL statement, so concurrent likes never lose updates.
func (h *Handler) LikeIdea(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	idea, err := h.queries.IncrementIdeaLikes(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "idea not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceIdeas)
	writeJSON(w, http.StatusOK, renderIdea(idea))
}

// ideaPayload is the JSON body for creating or updating an idea.
type ideaPayload struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Author      string `json:"author"`
	Likes       *int64 `json:"likes"`
	Published   *bool  `json:"published"`
}

func (p *ideaPayload) validate() error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.Description == "" {
		return fmt.Errorf("description is required")
	}
	if p.Status != "" && !model.IsValidIdeaStatus(p.Status) {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return nil
}

// ideaSlug derives a unique slug, keeping an explicit value when given.
func (h *Handler) ideaSlug(ctx context.Context, requested, title string, excludeID int64) (string, error) {
	slug := requested
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("invalid slug")
	}

	candidate := slug
	for i := 2; ; i++ {
		taken, err := h.queries.IdeaSlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

// CreateIdea handles POST /api/admin/ideas. New ideas start with zero
// likes; status defaults to "open" and published to false unless given.
func (h *Handler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var payload ideaPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if payload.Status == "" {
		payload.Status = model.IdeaStatusOpen
	}

	slug, err := h.ideaSlug(r.Context(), payload.Slug, payload.Title, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	published := false
	if payload.Published != nil {
		published = *payload.Published
	}

	idea, err := h.queries.CreateIdea(r.Context(), store.CreateIdeaParams{
		Title:       payload.Title,
		Slug:        slug,
		Description: payload.Description,
		Category:    payload.Category,
		Status:      payload.Status,
		Author:      payload.Author,
		Published:   published,
	})
	if err != nil {
		writeStoreError(w, err, "idea not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceIdeas)
	h.logMutation(r, model.EventCategoryIdea, "idea created", idea.ID, idea.Title)
	writeJSON(w, http.StatusCreated, renderIdea(idea))
}

// UpdateIdea handles PUT /api/ideas/{id}: a full JSON draft replaces the
// record. Omitted likes/published fall back to the stored values.
func (h *Handler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	current, err := h.queries.GetIdeaByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "idea not found")
		return
	}

	var payload ideaPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if payload.Status == "" {
		payload.Status = current.Status
	}

	slug, err := h.ideaSlug(r.Context(), payload.Slug, payload.Title, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	likes := current.Likes
	if payload.Likes != nil {
		likes = *payload.Likes
	}
	published := current.Published
	if payload.Published != nil {
		published = *payload.Published
	}

	idea, err := h.queries.UpdateIdea(r.Context(), store.UpdateIdeaParams{
		ID:          id,
		Title:       payload.Title,
		Slug:        slug,
		Description: payload.Description,
		Category:    payload.Category,
		Status:      payload.Status,
		Author:      payload.Author,
		Likes:       likes,
		Published:   published,
	})
	if err != nil {
		writeStoreError(w, err, "idea not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceIdeas)
	h.logMutation(r, model.EventCategoryIdea, "idea updated", idea.ID, idea.Title)
	writeJSON(w, http.StatusOK, renderIdea(idea))
}
