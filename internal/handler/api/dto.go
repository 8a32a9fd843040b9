// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"database/sql"
	"log/slog"
	"time"

	"github.com/yuin/goldmark"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

// markdown renders story content for public reads. Content is sanitized on
// write, so the rendered HTML is safe to serve as-is.
var markdown = goldmark.New()

type storyResponse struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Slug            string               `json:"slug"`
	Excerpt         string               `json:"excerpt"`
	Content         string               `json:"content"`
	ContentHTML     string               `json:"contentHtml,omitempty"`
	Image           string               `json:"image,omitempty"`
	Thumbnail       string               `json:"thumbnail,omitempty"`
	Featured        bool                 `json:"featured"`
	Tags            []string             `json:"tags"`
	ReadTime        string               `json:"readTime"`
	AuthorName      string               `json:"authorName"`
	AuthorBio       string               `json:"authorBio,omitempty"`
	PublishedAt     any                  `json:"publishedAt"`
	Category        string               `json:"category"`
	MetaTitle       string               `json:"metaTitle,omitempty"`
	MetaDescription string               `json:"metaDescription,omitempty"`
	Sections        []model.StorySection `json:"sections"`
	CreatedAt       string               `json:"createdAt"`
	UpdatedAt       string               `json:"updatedAt"`
}

func (h *Handler) renderStory(s model.Story, withHTML bool) storyResponse {
	resp := storyResponse{
		ID:              s.ID,
		Title:           s.Title,
		Slug:            s.Slug,
		Excerpt:         s.Excerpt,
		Content:         s.Content,
		Image:           h.publicURL(s.ImagePath.String),
		Thumbnail:       h.publicURL(s.ThumbnailPath.String),
		Featured:        s.Featured,
		Tags:            s.Tags,
		ReadTime:        s.ReadTime,
		AuthorName:      s.AuthorName,
		AuthorBio:       s.AuthorBio,
		PublishedAt:     nullTimeOrNil(s.PublishedAt),
		Category:        s.Category,
		MetaTitle:       s.MetaTitle,
		MetaDescription: s.MetaDescription,
		Sections:        s.Sections,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.Sections == nil {
		resp.Sections = []model.StorySection{}
	}
	if withHTML {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(s.Content), &buf); err != nil {
			slog.Error("rendering story markdown", "story_id", s.ID, "error", err)
		} else {
			resp.ContentHTML = buf.String()
		}
	}
	return resp
}

type ideaResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Author      string `json:"author"`
	Likes       int64  `json:"likes"`
	Published   bool   `json:"published"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func renderIdea(i model.Idea) ideaResponse {
	return ideaResponse{
		ID:          i.ID,
		Title:       i.Title,
		Slug:        i.Slug,
		Description: i.Description,
		Category:    i.Category,
		Status:      i.Status,
		Author:      i.Author,
		Likes:       i.Likes,
		Published:   i.Published,
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   i.UpdatedAt.Format(time.RFC3339),
	}
}

type mediaResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Views        int64  `json:"views"`
	Duration     string `json:"duration"`
	Creator      string `json:"creator"`
	Featured     bool   `json:"featured"`
	Published    bool   `json:"published"`
	Category     string `json:"category,omitempty"`
	VideoURL     string `json:"videoUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func (h *Handler) renderMedia(m model.Media) mediaResponse {
	return mediaResponse{
		ID:           m.ID,
		Title:        m.Title,
		Slug:         m.Slug,
		Description:  m.Description,
		Type:         m.Type,
		Views:        m.Views,
		Duration:     m.Duration,
		Creator:      m.Creator,
		Featured:     m.Featured,
		Published:    m.Published,
		Category:     m.Category.String,
		VideoURL:     h.publicURL(m.VideoPath.String),
		ThumbnailURL: h.publicURL(m.ThumbnailPath.String),
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}
}

type membershipResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile,omitempty"`
	Interest  string `json:"interest,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func renderMembership(m model.Membership) membershipResponse {
	return membershipResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Mobile:    m.Mobile.String,
		Interest:  m.Interest.String,
		Status:    m.Status,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
}

type appointmentResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Browser   string `json:"browser,omitempty"`
	OS        string `json:"os,omitempty"`
	Country   string `json:"country,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func renderAppointment(a model.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		Name:      a.Name,
		Mobile:    a.Mobile,
		Email:     a.Email,
		Message:   a.Message,
		Browser:   a.Browser.String,
		OS:        a.OS.String,
		Country:   a.Country.String,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

type eventResponse struct {
	ID        int64  `json:"id"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	UserID    any    `json:"userId"`
	Metadata  string `json:"metadata"`
	IPAddress string `json:"ipAddress,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func renderEvent(e model.Event) eventResponse {
	var userID any
	if e.UserID.Valid {
		userID = e.UserID.Int64
	}
	return eventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		UserID:    userID,
		Metadata:  e.Metadata,
		IPAddress: e.IPAddress,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

type userResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func renderUser(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// nullString converts an optional form/JSON value to sql.NullString.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
