// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, services,
// and HTTP handlers.
package model

import (
	"database/sql"
	"time"
)

// StorySection is one ordered block of story content.
type StorySection struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Story represents a published or draft impact story.
// Tags and Sections are persisted as JSON columns.
type Story struct {
	ID              int64
	Title           string
	Slug            string
	Excerpt         string
	Content         string // markdown, sanitized on write
	ImagePath       sql.NullString
	ThumbnailPath   sql.NullString
	Featured        bool
	Tags            []string
	ReadTime        string
	AuthorName      string
	AuthorBio       string
	PublishedAt     sql.NullTime
	Category        string
	MetaTitle       string
	MetaDescription string
	Sections        []StorySection
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPublished reports whether the story has a publish date in the past.
func (s *Story) IsPublished() bool {
	return s.PublishedAt.Valid && !s.PublishedAt.Time.After(time.Now())
}
