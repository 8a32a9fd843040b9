// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package rbac maps user roles to capability sets and derives the admin
// navigation from them. Roles never appear on individual menu items or
// routes; everything is expressed through capabilities so an unknown role
// fails closed in exactly one place.
package rbac

import "github.com/hopeworks/hopeworks-go/internal/model"

// Capability names a single permitted action area.
type Capability string

const (
	CapDashboard       Capability = "dashboard"
	CapManageContacts  Capability = "contacts:manage"
	CapManageStories   Capability = "stories:manage"
	CapManageIdeas     Capability = "ideas:manage"
	CapManageMedia     Capability = "media:manage"
	CapMemberships     Capability = "memberships:manage"
	CapManageUsers     Capability = "users:manage"
	CapViewEvents      Capability = "events:view"
	CapViewCacheStats  Capability = "cache:stats"
	CapSubscribeNotify Capability = "notifications:subscribe"
)

// roleCapabilities is the single source of truth for what each role may do.
var roleCapabilities = map[string][]Capability{
	model.RoleAdmin: {
		CapDashboard,
		CapManageContacts,
		CapManageStories,
		CapManageIdeas,
		CapManageMedia,
		CapMemberships,
		CapManageUsers,
		CapViewEvents,
		CapViewCacheStats,
		CapSubscribeNotify,
	},
	model.RoleHR: {
		CapDashboard,
		CapManageContacts,
		CapMemberships,
		CapSubscribeNotify,
	},
	model.RoleVolunteer: {
		CapDashboard,
	},
}

// CapabilitiesFor returns the capability set for a role. An unknown role
// gets an empty set; callers must not treat it as any known role.
func CapabilitiesFor(role string) map[Capability]bool {
	caps := make(map[Capability]bool)
	for _, c := range roleCapabilities[role] {
		caps[c] = true
	}
	return caps
}

// Allowed reports whether the role grants the capability.
func Allowed(role string, capability Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// NavItem is one entry of the admin navigation.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`

	// requires gates visibility; items without a requirement never exist.
	requires Capability
}

// navMenu is the full admin navigation in display order.
var navMenu = []NavItem{
	{Label: "Dashboard", Path: "/admin", Icon: "home", requires: CapDashboard},
	{Label: "Contacts", Path: "/admin/contacts", Icon: "inbox", requires: CapManageContacts},
	{Label: "Stories", Path: "/admin/stories", Icon: "book", requires: CapManageStories},
	{Label: "Ideas", Path: "/admin/ideas", Icon: "bulb", requires: CapManageIdeas},
	{Label: "Media", Path: "/admin/media", Icon: "film", requires: CapManageMedia},
	{Label: "Memberships", Path: "/admin/memberships", Icon: "users", requires: CapMemberships},
	{Label: "Users", Path: "/admin/users", Icon: "shield", requires: CapManageUsers},
	{Label: "Events", Path: "/admin/events", Icon: "list", requires: CapViewEvents},
}

// NavFor returns the navigation items visible to the role, a pure function
// of the menu definition and the role's capability set. An unknown role
// sees nothing.
func NavFor(role string) []NavItem {
	caps := CapabilitiesFor(role)
	items := make([]NavItem, 0, len(navMenu))
	for _, item := range navMenu {
		if caps[item.requires] {
			items = append(items, item)
		}
	}
	return items
}
