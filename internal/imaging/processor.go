// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes uploaded story images and media thumbnails
// using pure Go libraries.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/hopeworks/hopeworks-go/internal/model"
)

// ProcessResult contains the result of processing an uploaded image.
type ProcessResult struct {
	Width         int
	Height        int
	MimeType      string
	Size          int64
	FilePath      string
	ThumbnailPath string
}

// Processor handles image and video upload storage.
type Processor struct {
	uploadDir string
}

// NewProcessor creates a new upload processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// ProcessImage decodes an uploaded image, applies EXIF orientation,
// re-encodes it without metadata, saves the original under the given uuid,
// and generates the thumbnail variant.
func (p *Processor) ProcessImage(reader io.Reader, uuid, filename string) (*ProcessResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	orientation := readExifOrientation(bytes.NewReader(data))
	img = applyOrientation(img, orientation)

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Re-encode drops EXIF; the pure Go encoders do not carry metadata.
	processed, err := encodeImage(img, format, 95)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	filePath, err := p.saveFile(filepath.Join("originals", uuid), filename, processed)
	if err != nil {
		return nil, fmt.Errorf("saving original image: %w", err)
	}

	thumbPath, err := p.createThumbnail(img, uuid, filename, format)
	if err != nil {
		return nil, fmt.Errorf("creating thumbnail: %w", err)
	}

	return &ProcessResult{
		Width:         width,
		Height:        height,
		MimeType:      formatToMimeType(format),
		Size:          int64(len(processed)),
		FilePath:      filePath,
		ThumbnailPath: thumbPath,
	}, nil
}

// createThumbnail renders the thumbnail variant for an already decoded image.
func (p *Processor) createThumbnail(img image.Image, uuid, filename, format string) (string, error) {
	cfg := model.ThumbnailVariant

	var resized image.Image
	if cfg.Crop {
		resized = imaging.Fill(img, cfg.Width, cfg.Height, imaging.Center, imaging.Lanczos)
	} else {
		resized = imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
	}

	processed, err := encodeImage(resized, format, cfg.Quality)
	if err != nil {
		return "", err
	}

	return p.saveFile(filepath.Join("thumbs", uuid), filename, processed)
}

// SaveVideo stores an uploaded video without transcoding. The MIME type is
// sniffed from the first bytes; unsupported types are rejected.
func (p *Processor) SaveVideo(reader io.Reader, uuid, filename string) (path string, mimeType string, err error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", "", fmt.Errorf("reading video data: %w", err)
	}

	mimeType = p.DetectMimeType(data)
	if !model.IsSupportedVideoType(mimeType) {
		return "", "", fmt.Errorf("unsupported video type: %s", mimeType)
	}

	path, err = p.saveFile(filepath.Join("videos", uuid), filename, data)
	if err != nil {
		return "", "", fmt.Errorf("saving video: %w", err)
	}
	return path, mimeType, nil
}

// GetImageDimensions returns the dimensions of an image file.
func (p *Processor) GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = file.Close() }()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("reading image config: %w", err)
	}
	return config.Width, config.Height, nil
}

// DetectMimeType detects the MIME type of uploaded data.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// DeleteFiles removes all stored files for an upload uuid.
func (p *Processor) DeleteFiles(uuid string) error {
	for _, sub := range []string{"originals", "thumbs", "videos"} {
		dir := filepath.Join(p.uploadDir, sub, uuid)
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("deleting %s: %w", sub, err)
		}
	}
	return nil
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation applies the EXIF orientation transform to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// encodeImage encodes an image with the specified format and quality.
// WebP input is re-encoded as JPEG; there is no pure Go WebP encoder.
func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

// formatToMimeType converts a format string to its MIME type.
func formatToMimeType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return model.MimeTypeJPEG
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	case "webp":
		return model.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}

// saveFile creates the directory if needed and writes data to a file.
// The filename is sanitized and the target is validated to stay within
// the upload directory.
func (p *Processor) saveFile(subDir, filename string, data []byte) (string, error) {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory path")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	absTarget := filepath.Join(absBase, cleanSubDir)

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path traversal detected")
	}

	if err := os.MkdirAll(absTarget, 0755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filePath, nil
}
