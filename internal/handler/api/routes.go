// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/hopeworks/hopeworks-go/internal/middleware"
	"github.com/hopeworks/hopeworks-go/internal/rbac"
)

// MountPublic registers the unauthenticated endpoints. The caller applies
// rate limiting to the form submission routes.
func (h *Handler) MountPublic(r chi.Router, forms func(chi.Router)) {
	r.Get("/stories", h.ListPublicStories)
	r.Get("/stories/{slug}", h.GetPublicStory)
	r.Get("/ideas", h.ListPublicIdeas)
	r.Patch("/ideas/{id}/like", h.LikeIdea)
	r.Get("/media", h.ListPublicMedia)
	r.Patch("/media/{id}/view", h.ViewMedia)

	// Form posts get their own middleware stack.
	r.Group(func(r chi.Router) {
		if forms != nil {
			forms(r)
		}
		r.Post("/appointments", h.CreateAppointment)
		r.Post("/memberships", h.JoinMembership)
	})
}

// MountAuthenticated registers the capability-gated endpoints that live
// directly under /api. The caller applies session and auth middleware.
func (h *Handler) MountAuthenticated(r chi.Router) {
	r.With(middleware.RequireCapability(rbac.CapManageStories)).
		Post("/story", h.CreateStory)
	r.With(middleware.RequireCapability(rbac.CapManageIdeas)).
		Put("/ideas/{id}", h.UpdateIdea)
	r.With(middleware.RequireCapability(rbac.CapManageMedia)).
		Put("/media/{id}", h.UpdateMedia)
}

// MountAdmin registers the /api/admin endpoints. The caller applies
// session and auth middleware; capability checks happen here.
func (h *Handler) MountAdmin(r chi.Router) {
	r.Get("/nav", h.GetNav)
	r.Get("/me", h.Me)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapSubscribeNotify))
		r.Get("/notifications/stream", h.StreamNotifications)
		r.Get("/notifications", h.ListNotifications)
		r.Delete("/notifications", h.ClearNotifications)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapManageContacts))
		r.Get("/appointments", h.ListAppointments)
		r.Delete("/appointments/{id}", h.DeleteAppointment)
	})

	r.Route("/stories", func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapManageStories))
		stories := h.storyResource()
		r.Get("/", stories.List)
		r.Post("/", h.CreateStory)
		r.Get("/{id}", stories.Get)
		r.Put("/{id}", h.UpdateStory)
		r.Delete("/{id}", stories.Delete)
	})

	r.Route("/ideas", func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapManageIdeas))
		ideas := h.ideaResource()
		r.Get("/", ideas.List)
		r.Post("/", h.CreateIdea)
		r.Get("/{id}", ideas.Get)
		r.Put("/{id}", h.UpdateIdea)
		r.Delete("/{id}", ideas.Delete)
	})

	r.Route("/media", func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapManageMedia))
		media := h.mediaResource()
		r.Get("/", media.List)
		r.Post("/", h.CreateMedia)
		r.Get("/{id}", media.Get)
		r.Put("/{id}", h.UpdateMedia)
		r.Delete("/{id}", media.Delete)
	})

	r.Route("/memberships", func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapMemberships))
		memberships := h.membershipResource()
		r.Get("/", memberships.List)
		r.Get("/{id}", memberships.Get)
		r.Put("/{id}", h.UpdateMembership)
		r.Delete("/{id}", memberships.Delete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireCapability(rbac.CapManageUsers))
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	r.With(middleware.RequireCapability(rbac.CapViewEvents)).
		Get("/events", h.ListEvents)

	r.With(middleware.RequireCapability(rbac.CapViewCacheStats)).
		Get("/cache/stats", h.CacheStats)
}
