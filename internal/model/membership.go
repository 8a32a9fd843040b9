// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Membership statuses
const (
	MembershipStatusNew      = "New"
	MembershipStatusApproved = "Approved"
	MembershipStatusRejected = "Rejected"
)

// Membership represents a membership application.
// New records always start in the "New" status.
type Membership struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Mobile    sql.NullString
	Interest  sql.NullString
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidMembershipStatus checks a status against the enumerated domain.
func IsValidMembershipStatus(status string) bool {
	switch status {
	case MembershipStatusNew, MembershipStatusApproved, MembershipStatusRejected:
		return true
	default:
		return false
	}
}
