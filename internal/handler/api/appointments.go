// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/store"
	"github.com/hopeworks/hopeworks-go/internal/util"
)

// appointmentPayload is the public contact/appointment form body.
type appointmentPayload struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (p *appointmentPayload) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if p.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// CreateAppointment handles the public POST /api/appointments form. The
// stored record is enriched with browser, OS, and country breakdowns, and
// a newContact notification is published to the admin feed.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var payload appointmentPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ua := useragent.Parse(r.UserAgent())
	browser := strings.TrimSpace(ua.Name + " " + ua.Version)
	os := strings.TrimSpace(ua.OS + " " + ua.OSVersion)

	ip := util.ClientIP(r)
	country := h.geo.LookupCountry(ip)

	appointment, err := h.queries.CreateAppointment(r.Context(), store.CreateAppointmentParams{
		Name:    payload.Name,
		Mobile:  payload.Mobile,
		Email:   payload.Email,
		Message: payload.Message,
		Browser: nullString(browser),
		OS:      nullString(os),
		Country: nullString(country),
	})
	if err != nil {
		writeStoreError(w, err, "appointment not found")
		return
	}

	// Every submission produces its own notification; no dedup.
	h.hub.Publish(appointment.Name, appointment.Email, appointment.Message)

	if err := h.events.LogContactEvent(r.Context(), model.EventLevelInfo,
		"appointment request received", nil, ip,
		map[string]any{"id": appointment.ID, "email": appointment.Email}); err != nil {
		slog.Warn("audit log write failed", "category", model.EventCategoryContact, "error", err)
	}

	writeJSON(w, http.StatusCreated, renderAppointment(appointment))
}

// ListAppointments handles GET /api/admin/appointments. Opening the
// contacts screen acknowledges the pending notifications, so the feed is
// cleared as a side effect.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.queries.ListAppointments(r.Context())
	if err != nil {
		writeStoreError(w, err, "appointments unavailable")
		return
	}

	h.hub.Clear()

	rendered := make([]appointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		rendered = append(rendered, renderAppointment(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": rendered})
}

// DeleteAppointment handles DELETE /api/admin/appointments/{id}.
func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if _, err := h.queries.GetAppointmentByID(r.Context(), id); err != nil {
		writeStoreError(w, err, "appointment not found")
		return
	}

	if err := h.queries.DeleteAppointment(r.Context(), id); err != nil {
		writeStoreError(w, err, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
