// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/auth"
	"github.com/hopeworks/hopeworks-go/internal/model"
	"github.com/hopeworks/hopeworks-go/internal/util"
)

// DefaultAdminEmail is the email of the bootstrap admin account.
const DefaultAdminEmail = "admin@hopeworks.local"

// Seed creates the bootstrap admin account when the users table is empty,
// and optionally seeds demo content.
func Seed(ctx context.Context, db *sql.DB, demo bool) error {
	queries := New(db)

	count, err := queries.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}

	if count == 0 {
		// Bootstrap credential, must be changed after first login.
		hash, err := auth.HashPassword("changeme")
		if err != nil {
			return fmt.Errorf("hashing bootstrap password: %w", err)
		}

		if _, err := queries.CreateUser(ctx, CreateUserParams{
			Name:         "Administrator",
			Email:        DefaultAdminEmail,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		}); err != nil {
			return fmt.Errorf("creating bootstrap admin: %w", err)
		}
		slog.Info("bootstrap admin account created", "email", DefaultAdminEmail)
	}

	if demo {
		if err := seedDemo(ctx, queries); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	return nil
}

// seedDemo inserts sample content so a fresh install has something to show.
// Safe to call repeatedly; it skips seeding when stories already exist.
func seedDemo(ctx context.Context, queries *Queries) error {
	stories, err := queries.ListStories(ctx)
	if err != nil {
		return err
	}
	if len(stories) > 0 {
		return nil
	}

	demoStories := []CreateStoryParams{
		{
			Title:       "A Warm Meal Every Evening",
			Excerpt:     "How our community kitchen grew from ten plates to two hundred.",
			Content:     "When we opened the kitchen in spring, we served ten plates a night...",
			Featured:    true,
			Tags:        []string{"community", "food"},
			ReadTime:    "4 min read",
			AuthorName:  "M. Okafor",
			AuthorBio:   "Program coordinator",
			Category:    "community",
			PublishedAt: sql.NullTime{Time: time.Now().AddDate(0, -1, 0), Valid: true},
		},
		{
			Title:      "Tutoring That Travels",
			Excerpt:    "Volunteers bring homework help to three neighborhoods.",
			Content:    "Every Tuesday a van full of notebooks leaves the office...",
			Tags:       []string{"education"},
			ReadTime:   "3 min read",
			AuthorName: "R. Silva",
			Category:   "education",
		},
	}
	for _, s := range demoStories {
		s.Slug = util.Slugify(s.Title)
		if _, err := queries.CreateStory(ctx, s); err != nil {
			return err
		}
	}

	demoIdeas := []CreateIdeaParams{
		{Title: "Neighborhood Tool Library", Description: "Share rarely used tools between households.", Category: "community", Status: model.IdeaStatusOpen, Author: "J. Doe", Published: true},
		{Title: "Weekend Coding Club", Description: "Laptops and mentors for teenagers.", Category: "education", Status: model.IdeaStatusPlanned, Author: "A. Khan", Published: true},
	}
	for _, i := range demoIdeas {
		i.Slug = util.Slugify(i.Title)
		if _, err := queries.CreateIdea(ctx, i); err != nil {
			return err
		}
	}

	slog.Info("demo content seeded", "stories", len(demoStories), "ideas", len(demoIdeas))
	return nil
}
