// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Supported upload MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypeMP4  = "video/mp4"
	MimeTypeWebM = "video/webm"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ThumbnailVariant is the single variant generated for story images and
// media thumbnails.
var ThumbnailVariant = ImageVariantConfig{Width: 480, Height: 360, Quality: 80, Crop: true}

// Media represents a gallery item (video or image) on the public site.
type Media struct {
	ID            int64
	Title         string
	Slug          string
	Description   string
	Type          string // free text, e.g. "documentary", "testimonial"
	Views         int64
	Duration      string
	Creator       string
	Featured      bool
	Published     bool
	Category      sql.NullString
	VideoPath     sql.NullString
	ThumbnailPath sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SupportedImageTypes returns the image MIME types accepted for upload.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// SupportedVideoTypes returns the video MIME types accepted for upload.
func SupportedVideoTypes() []string {
	return []string{MimeTypeMP4, MimeTypeWebM}
}

// IsSupportedImageType checks if a MIME type is an accepted image type.
func IsSupportedImageType(mimeType string) bool {
	for _, t := range SupportedImageTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}

// IsSupportedVideoType checks if a MIME type is an accepted video type.
func IsSupportedVideoType(mimeType string) bool {
	for _, t := range SupportedVideoTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
