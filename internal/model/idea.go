// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Idea statuses
const (
	IdeaStatusOpen       = "open"
	IdeaStatusInProgress = "in-progress"
	IdeaStatusPlanned    = "planned"
)

// Idea represents a community improvement idea.
type Idea struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	Category    string
	Status      string
	Author      string
	Likes       int64
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidIdeaStatus checks a status against the enumerated domain.
func IsValidIdeaStatus(status string) bool {
	switch status {
	case IdeaStatusOpen, IdeaStatusInProgress, IdeaStatusPlanned:
		return true
	default:
		return false
	}
}
