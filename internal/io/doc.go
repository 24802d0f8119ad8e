// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Choosing a file extension for a downloaded cover
//   - Directory creation and replace-on-write file output
//   - Reading image dimensions
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("playlist_covers/alice")
//
//	// Write data to file, replacing any previous version
//	err = ioutils.WriteFile(ctx, "playlist_covers/alice/Summer.jpg", data)
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("My Mix: Summer/2024?") // Returns "My Mix_ Summer_2024_"
//
// # Image Inspection
//
//	svc := ioutils.NewImageService()
//	w, h, format, err := svc.Dimensions(ctx, data)
package ioutils
