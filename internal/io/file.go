// Package ioutils provides file system utilities for the cover downloader.
//
// This package contains functions for:
//   - Filename sanitization
//   - File extension detection for downloaded images
//   - Directory creation
//   - File writing
package ioutils

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxFileNameLength is the maximum number of characters SanitizeFileName keeps.
const MaxFileNameLength = 200

var invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFileName turns a playlist name into a filesystem-safe file stem.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?*) → underscore
//   - Leading and trailing dots and spaces → removed
//   - Length → truncated to MaxFileNameLength characters
//
// The result is trimmed again after truncation so that applying
// SanitizeFileName twice gives the same result as applying it once.
//
// Example:
//
//	SanitizeFileName("My Mix: Summer/2024?") // Returns "My Mix_ Summer_2024_"
//	SanitizeFileName("...hidden. ")          // Returns "hidden"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, ". ")

	if runes := []rune(name); len(runes) > MaxFileNameLength {
		name = strings.Trim(string(runes[:MaxFileNameLength]), ". ")
	}

	return name
}

// ImageExtension picks the file extension for a downloaded image.
//
// The Content-Type header is checked first (jpeg/jpg → ".jpg", png → ".png",
// webp → ".webp"). When it is missing or unrecognized, the suffix of the URL
// path decides between ".png" and ".webp". Anything else is ".jpg", which is
// what Spotify serves for nearly every cover.
//
// Example:
//
//	ImageExtension("image/png", "https://i.scdn.co/image/ab67")   // ".png"
//	ImageExtension("", "https://example.com/cover.webp?size=640") // ".webp"
//	ImageExtension("application/octet-stream", "https://x/y")     // ".jpg"
func ImageExtension(contentType, rawURL string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return ".jpg"
	case strings.Contains(ct, "png"):
		return ".png"
	case strings.Contains(ct, "webp"):
		return ".webp"
	}

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".png":
		return ".png"
	case ".webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFile writes data to path, replacing any existing file.
//
// The data is first written to a temporary file in the same directory and
// then renamed over path, so a reader (or a second writer targeting the same
// name) never observes a partially written file. The final file has mode 0644.
//
// The context is checked once before writing; the write itself is not
// interruptible.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cover-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
