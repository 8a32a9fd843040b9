// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// User roles
const (
	RoleAdmin     = "admin"
	RoleHR        = "hr"
	RoleVolunteer = "volunteer"
)

// User represents a back-office account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsKnownRole reports whether role is one of the defined roles.
// Unknown roles carry no capabilities (fail closed); callers use this
// to surface the distinction instead of silently hiding everything.
func IsKnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleVolunteer:
		return true
	default:
		return false
	}
}
