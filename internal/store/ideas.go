// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

const ideaColumns = "id, title, slug, description, category, status, author, likes, published, created_at, updated_at"

// CreateIdeaParams holds the fields for creating an idea.
// Likes always start at zero; only IncrementIdeaLikes or a full admin
// update can change the count afterwards.
type CreateIdeaParams struct {
	Title       string
	Slug        string
	Description string
	Category    string
	Status      string
	Author      string
	Published   bool
}

// UpdateIdeaParams holds the full draft for updating an idea.
type UpdateIdeaParams struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	Category    string
	Status      string
	Author      string
	Likes       int64
	Published   bool
}

func scanIdea(row interface{ Scan(...any) error }) (model.Idea, error) {
	var i model.Idea
	err := row.Scan(&i.ID, &i.Title, &i.Slug, &i.Description, &i.Category, &i.Status,
		&i.Author, &i.Likes, &i.Published, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// CreateIdea inserts a new idea and returns the created record.
func (q *Queries) CreateIdea(ctx context.Context, arg CreateIdeaParams) (model.Idea, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO ideas (title, slug, description, category, status, author, likes, published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
		RETURNING `+ideaColumns,
		arg.Title, arg.Slug, arg.Description, arg.Category, arg.Status, arg.Author,
		arg.Published, now, now)
	return scanIdea(row)
}

// UpdateIdea replaces all idea fields and returns the updated record.
func (q *Queries) UpdateIdea(ctx context.Context, arg UpdateIdeaParams) (model.Idea, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE ideas SET title = ?, slug = ?, description = ?, category = ?, status = ?,
			author = ?, likes = ?, published = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+ideaColumns,
		arg.Title, arg.Slug, arg.Description, arg.Category, arg.Status, arg.Author,
		arg.Likes, arg.Published, time.Now(), arg.ID)
	return scanIdea(row)
}

// IncrementIdeaLikes atomically bumps the like count by one and returns
// the updated record. The increment happens in SQL so concurrent likes
// never lose updates.
func (q *Queries) IncrementIdeaLikes(ctx context.Context, id int64) (model.Idea, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE ideas SET likes = likes + 1, updated_at = ?
		WHERE id = ?
		RETURNING `+ideaColumns, time.Now(), id)
	return scanIdea(row)
}

// GetIdeaByID returns an idea by primary key.
func (q *Queries) GetIdeaByID(ctx context.Context, id int64) (model.Idea, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id)
	return scanIdea(row)
}

func (q *Queries) queryIdeas(ctx context.Context, query string, args ...any) ([]model.Idea, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []model.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

// ListIdeas returns all ideas, newest first.
func (q *Queries) ListIdeas(ctx context.Context) ([]model.Idea, error) {
	return q.queryIdeas(ctx, `SELECT `+ideaColumns+` FROM ideas ORDER BY created_at DESC`)
}

// ListPublishedIdeas returns published ideas, newest first.
func (q *Queries) ListPublishedIdeas(ctx context.Context) ([]model.Idea, error) {
	return q.queryIdeas(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE published = 1 ORDER BY created_at DESC`)
}

// IdeaSlugExists reports whether a slug is already taken, optionally
// excluding one record (pass 0 to check all).
func (q *Queries) IdeaSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ideas WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// DeleteIdea removes an idea by primary key.
func (q *Queries) DeleteIdea(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, id)
	return err
}
