package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService inspects downloaded cover images.
//
// Only the image header is decoded, which is enough to report the
// dimensions of a cover in the success message without decoding the
// pixel data.
//
// Example usage:
//
//	svc := NewImageService()
//	width, height, format, err := svc.Dimensions(ctx, data)
//	if err == nil {
//	    fmt.Printf("%dx%d %s\n", width, height, format)
//	}
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Dimensions returns the width, height and format name of an encoded image.
//
// JPEG, PNG, GIF and WebP are supported. An error is returned for any other
// data; callers treat that as cosmetic since the file is already on disk.
func (s *ImageService) Dimensions(ctx context.Context, data []byte) (width, height int, format string, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, "", err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", err
	}

	return cfg.Width, cfg.Height, format, nil
}
