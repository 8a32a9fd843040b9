// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
	"github.com/hopeworks/hopeworks-go/internal/util"
)

// mediaResource returns the generic admin controller for media items.
func (h *Handler) mediaResource() *resource[model.Media] {
	res := newResource(h, cache.ResourceMedia,
		h.queries.ListMedia,
		h.queries.GetMediaByID,
		h.queries.DeleteMedia,
		func(m model.Media) any { return h.renderMedia(m) })
	res.onDelete = func(m model.Media) {
		h.removeUploadedAssets(m.VideoPath, m.ThumbnailPath)
	}
	return res
}

// ListPublicMedia responds with {media: [...]}, published items only.
func (h *Handler) ListPublicMedia(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListPublishedMedia(r.Context())
	if err != nil {
		writeStoreError(w, err, "media unavailable")
		return
	}

	rendered := make([]mediaResponse, 0, len(items))
	for _, m := range items {
		rendered = append(rendered, h.renderMedia(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": rendered})
}

// ViewMedia handles PATCH /api/media/{id}/view with an atomic SQL
// increment, the same mechanism as idea likes.
func (h *Handler) ViewMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.queries.IncrementMediaViews(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "media not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceMedia)
	writeJSON(w, http.StatusOK, h.renderMedia(item))
}

// decodeMediaForm parses and validates the multipart media payload.
// When current is non-nil (update), stored file paths carry over unless
// replaced by videoFile/thumbnailFile uploads.
func (h *Handler) decodeMediaForm(r *http.Request, current *model.Media) (*store.CreateMediaParams, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form")
	}

	p := &store.CreateMediaParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Duration:    r.FormValue("duration"),
		Creator:     r.FormValue("creator"),
		Category:    nullString(r.FormValue("category")),
	}
	p.Featured, _ = strconv.ParseBool(r.FormValue("featured"))
	p.Published, _ = strconv.ParseBool(r.FormValue("published"))

	if p.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	if current != nil {
		p.VideoPath = current.VideoPath
		p.ThumbnailPath = current.ThumbnailPath
	}

	// Optional uploads. Absent files keep the stored assets.
	if file, header, err := r.FormFile("videoFile"); err == nil {
		defer func() { _ = file.Close() }()
		path, _, err := h.processor.SaveVideo(file, uuid.NewString(), header.Filename)
		if err != nil {
			return nil, fmt.Errorf("processing video: %v", err)
		}
		p.VideoPath = nullString(path)
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, fmt.Errorf("reading video upload")
	}

	if file, header, err := r.FormFile("thumbnailFile"); err == nil {
		defer func() { _ = file.Close() }()
		result, err := h.processor.ProcessImage(file, uuid.NewString(), header.Filename)
		if err != nil {
			return nil, fmt.Errorf("processing thumbnail: %v", err)
		}
		p.ThumbnailPath = nullString(result.ThumbnailPath)
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, fmt.Errorf("reading thumbnail upload")
	}

	return p, nil
}

// mediaSlug derives a unique slug, keeping an explicit form value when given.
func (h *Handler) mediaSlug(ctx context.Context, requested, title string, excludeID int64) (string, error) {
	slug := requested
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return "", fmt.Errorf("invalid slug")
	}

	candidate := slug
	for i := 2; ; i++ {
		taken, err := h.queries.MediaSlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

// CreateMedia handles POST /api/admin/media (multipart).
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	params, err := h.decodeMediaForm(r, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slug, err := h.mediaSlug(r.Context(), r.FormValue("slug"), params.Title, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params.Slug = slug

	item, err := h.queries.CreateMedia(r.Context(), *params)
	if err != nil {
		writeStoreError(w, err, "media not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceMedia)
	h.logMutation(r, model.EventCategoryMedia, "media created", item.ID, item.Title)
	writeJSON(w, http.StatusCreated, h.renderMedia(item))
}

// UpdateMedia handles PUT /api/media/{id} (multipart; optional videoFile
// and thumbnailFile uploads replace the stored assets).
func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	current, err := h.queries.GetMediaByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "media not found")
		return
	}

	params, err := h.decodeMediaForm(r, &current)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slug, err := h.mediaSlug(r.Context(), r.FormValue("slug"), params.Title, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params.Slug = slug

	item, err := h.queries.UpdateMedia(r.Context(), store.UpdateMediaParams{
		ID:                id,
		CreateMediaParams: *params,
		Views:             current.Views,
	})
	if err != nil {
		writeStoreError(w, err, "media not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceMedia)
	h.logMutation(r, model.EventCategoryMedia, "media updated", item.ID, item.Title)
	writeJSON(w, http.StatusOK, h.renderMedia(item))
}
