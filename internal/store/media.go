// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

const mediaColumns = `id, title, slug, description, type, views, duration, creator,
	featured, published, category, video_path, thumbnail_path, created_at, updated_at`

// CreateMediaParams holds the fields for creating a media item.
type CreateMediaParams struct {
	Title         string
	Slug          string
	Description   string
	Type          string
	Duration      string
	Creator       string
	Featured      bool
	Published     bool
	Category      sql.NullString
	VideoPath     sql.NullString
	ThumbnailPath sql.NullString
}

// UpdateMediaParams holds the fields for updating a media item.
type UpdateMediaParams struct {
	ID int64
	CreateMediaParams
	Views int64
}

func scanMedia(row interface{ Scan(...any) error }) (model.Media, error) {
	var m model.Media
	err := row.Scan(&m.ID, &m.Title, &m.Slug, &m.Description, &m.Type, &m.Views,
		&m.Duration, &m.Creator, &m.Featured, &m.Published, &m.Category,
		&m.VideoPath, &m.ThumbnailPath, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateMedia inserts a new media item and returns the created record.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (model.Media, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO media (title, slug, description, type, views, duration, creator,
			featured, published, category, video_path, thumbnail_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+mediaColumns,
		arg.Title, arg.Slug, arg.Description, arg.Type, arg.Duration, arg.Creator,
		arg.Featured, arg.Published, arg.Category, arg.VideoPath, arg.ThumbnailPath,
		now, now)
	return scanMedia(row)
}

// UpdateMedia replaces all media fields and returns the updated record.
func (q *Queries) UpdateMedia(ctx context.Context, arg UpdateMediaParams) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE media SET title = ?, slug = ?, description = ?, type = ?, views = ?,
			duration = ?, creator = ?, featured = ?, published = ?, category = ?,
			video_path = ?, thumbnail_path = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+mediaColumns,
		arg.Title, arg.Slug, arg.Description, arg.Type, arg.Views, arg.Duration,
		arg.Creator, arg.Featured, arg.Published, arg.Category, arg.VideoPath,
		arg.ThumbnailPath, time.Now(), arg.ID)
	return scanMedia(row)
}

// IncrementMediaViews atomically bumps the view count by one and returns
// the updated record.
func (q *Queries) IncrementMediaViews(ctx context.Context, id int64) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE media SET views = views + 1, updated_at = ?
		WHERE id = ?
		RETURNING `+mediaColumns, time.Now(), id)
	return scanMedia(row)
}

// GetMediaByID returns a media item by primary key.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	return scanMedia(row)
}

func (q *Queries) queryMedia(ctx context.Context, query string, args ...any) ([]model.Media, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// ListMedia returns all media items, newest first.
func (q *Queries) ListMedia(ctx context.Context) ([]model.Media, error) {
	return q.queryMedia(ctx, `SELECT `+mediaColumns+` FROM media ORDER BY created_at DESC`)
}

// ListPublishedMedia returns published media items, newest first.
func (q *Queries) ListPublishedMedia(ctx context.Context) ([]model.Media, error) {
	return q.queryMedia(ctx, `SELECT `+mediaColumns+` FROM media WHERE published = 1 ORDER BY created_at DESC`)
}

// MediaSlugExists reports whether a slug is already taken, optionally
// excluding one record (pass 0 to check all).
func (q *Queries) MediaSlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// DeleteMedia removes a media item by primary key.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	return err
}
