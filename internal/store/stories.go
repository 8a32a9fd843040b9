// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

const storyColumns = `id, title, slug, excerpt, content, image_path, thumbnail_path,
	featured, tags, read_time, author_name, author_bio, published_at, category,
	meta_title, meta_description, sections, created_at, updated_at`

// CreateStoryParams holds the fields for creating a story.
type CreateStoryParams struct {
	Title           string
	Slug            string
	Excerpt         string
	Content         string
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
	Sections        []model.StorySection
}

// UpdateStoryParams holds the fields for updating a story.
// Nil file paths preserve the stored asset.
type UpdateStoryParams struct {
	ID int64
	CreateStoryParams
}

func scanStory(row interface{ Scan(...any) error }) (model.Story, error) {
	var s model.Story
	var tagsJSON, sectionsJSON string
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Excerpt, &s.Content, &s.ImagePath,
		&s.ThumbnailPath, &s.Featured, &tagsJSON, &s.ReadTime, &s.AuthorName,
		&s.AuthorBio, &s.PublishedAt, &s.Category, &s.MetaTitle, &s.MetaDescription,
		&sectionsJSON, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &s.Tags); err != nil {
		s.Tags = nil
	}
	if err := json.Unmarshal([]byte(sectionsJSON), &s.Sections); err != nil {
		s.Sections = nil
	}
	return s, nil
}

func marshalStoryJSON(tags []string, sections []model.StorySection) (string, string) {
	if tags == nil {
		tags = []string{}
	}
	if sections == nil {
		sections = []model.StorySection{}
	}
	tagsJSON, _ := json.Marshal(tags)
	sectionsJSON, _ := json.Marshal(sections)
	return string(tagsJSON), string(sectionsJSON)
}

// CreateStory inserts a new story and returns the created record.
func (q *Queries) CreateStory(ctx context.Context, arg CreateStoryParams) (model.Story, error) {
	now := time.Now()
	tagsJSON, sectionsJSON := marshalStoryJSON(arg.Tags, arg.Sections)
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO stories (title, slug, excerpt, content, image_path, thumbnail_path,
			featured, tags, read_time, author_name, author_bio, published_at, category,
			meta_title, meta_description, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+storyColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.ImagePath, arg.ThumbnailPath,
		arg.Featured, tagsJSON, arg.ReadTime, arg.AuthorName, arg.AuthorBio,
		arg.PublishedAt, arg.Category, arg.MetaTitle, arg.MetaDescription, sectionsJSON,
		now, now)
	return scanStory(row)
}

// UpdateStory replaces all story fields and returns the updated record.
func (q *Queries) UpdateStory(ctx context.Context, arg UpdateStoryParams) (model.Story, error) {
	tagsJSON, sectionsJSON := marshalStoryJSON(arg.Tags, arg.Sections)
	row := q.db.QueryRowContext(ctx, `
		UPDATE stories SET title = ?, slug = ?, excerpt = ?, content = ?, image_path = ?,
			thumbnail_path = ?, featured = ?, tags = ?, read_time = ?, author_name = ?,
			author_bio = ?, published_at = ?, category = ?, meta_title = ?,
			meta_description = ?, sections = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+storyColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.ImagePath, arg.ThumbnailPath,
		arg.Featured, tagsJSON, arg.ReadTime, arg.AuthorName, arg.AuthorBio,
		arg.PublishedAt, arg.Category, arg.MetaTitle, arg.MetaDescription, sectionsJSON,
		time.Now(), arg.ID)
	return scanStory(row)
}

// GetStoryByID returns a story by primary key.
func (q *Queries) GetStoryByID(ctx context.Context, id int64) (model.Story, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = ?`, id)
	return scanStory(row)
}

// GetStoryBySlug returns a story by slug.
func (q *Queries) GetStoryBySlug(ctx context.Context, slug string) (model.Story, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE slug = ?`, slug)
	return scanStory(row)
}

func (q *Queries) queryStories(ctx context.Context, query string, args ...any) ([]model.Story, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []model.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}

// ListStories returns all stories, newest first.
func (q *Queries) ListStories(ctx context.Context) ([]model.Story, error) {
	return q.queryStories(ctx, `SELECT `+storyColumns+` FROM stories ORDER BY created_at DESC`)
}

// ListPublishedStories returns stories whose publish date has passed, newest first.
func (q *Queries) ListPublishedStories(ctx context.Context) ([]model.Story, error) {
	return q.queryStories(ctx, `
		SELECT `+storyColumns+` FROM stories
		WHERE published_at IS NOT NULL AND published_at <= ?
		ORDER BY published_at DESC`, time.Now())
}

// StorySlugExists reports whether a slug is already taken, optionally
// excluding one record (pass 0 to check all).
func (q *Queries) StorySlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stories WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	return n > 0, err
}

// DeleteStory removes a story by primary key.
func (q *Queries) DeleteStory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	return err
}
