// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/hopeworks/hopeworks-go/internal/cache"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
)

// membershipResource returns the generic admin controller for memberships.
func (h *Handler) membershipResource() *resource[model.Membership] {
	return newResource(h, cache.ResourceMemberships,
		h.queries.ListMemberships,
		h.queries.GetMembershipByID,
		h.queries.DeleteMembership,
		func(m model.Membership) any { return renderMembership(m) })
}

// membershipJoinPayload is the public join form body.
type membershipJoinPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Interest  string `json:"interest"`
}

func (p *membershipJoinPayload) validate() error {
	if p.FirstName == "" {
		return fmt.Errorf("firstName is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("lastName is required")
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	return nil
}

// JoinMembership handles the public POST /api/memberships join form.
// New applications always start in the "New" status.
func (h *Handler) JoinMembership(w http.ResponseWriter, r *http.Request) {
	var payload membershipJoinPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := h.queries.CreateMembership(r.Context(), store.CreateMembershipParams{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Mobile:    nullString(payload.Mobile),
		Interest:  nullString(payload.Interest),
	})
	if err != nil {
		writeStoreError(w, err, "membership not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceMemberships)
	writeJSON(w, http.StatusCreated, renderMembership(membership))
}

// membershipUpdatePayload is the admin update body.
type membershipUpdatePayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Interest  string `json:"interest"`
	Status    string `json:"status"`
}

// UpdateMembership handles PUT /api/admin/memberships/{id}. The status
// must stay within the New/Approved/Rejected domain.
func (h *Handler) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	current, err := h.queries.GetMembershipByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "membership not found")
		return
	}

	var payload membershipUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Omitted fields keep the stored values so a bare status transition
	// works with a minimal body.
	if payload.FirstName == "" {
		payload.FirstName = current.FirstName
	}
	if payload.LastName == "" {
		payload.LastName = current.LastName
	}
	if payload.Email == "" {
		payload.Email = current.Email
	}
	if payload.Mobile == "" {
		payload.Mobile = current.Mobile.String
	}
	if payload.Interest == "" {
		payload.Interest = current.Interest.String
	}
	if payload.Status == "" {
		payload.Status = current.Status
	}

	if !model.IsValidMembershipStatus(payload.Status) {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid status: %s", payload.Status))
		return
	}

	membership, err := h.queries.UpdateMembership(r.Context(), store.UpdateMembershipParams{
		ID:        id,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Mobile:    nullString(payload.Mobile),
		Interest:  nullString(payload.Interest),
		Status:    payload.Status,
	})
	if err != nil {
		writeStoreError(w, err, "membership not found")
		return
	}

	h.cache.Invalidate(r.Context(), cache.ResourceMemberships)
	h.logMutation(r, model.EventCategoryMembership, "membership updated", membership.ID,
		membership.FirstName+" "+membership.LastName)
	writeJSON(w, http.StatusOK, renderMembership(membership))
}
