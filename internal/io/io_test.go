package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Mix: Summer/2024?", "My Mix_ Summer_2024_"},
		{"normal name", "normal name"},
		{"file<with>brackets", "file_with_brackets"},
		{"file/with\\slashes", "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"file\"with\"quotes", "file_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"...leading dots", "leading dots"},
		{"  padded  ", "padded"},
		{". . mixed . .", "mixed"},
		{"inner   spaces kept", "inner   spaces kept"},
		{"....", ""},
		{"日本語のプレイリスト", "日本語のプレイリスト"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName_Properties(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"My Mix: Summer/2024?",
		" . <>:\"/\\|?* . ",
		strings.Repeat("a", 250),
		strings.Repeat("é", 300),
		strings.Repeat("x", 199) + " tail",
		strings.Repeat("y", 199) + "....z",
		"." + strings.Repeat("b", 205) + ".",
	}

	for _, in := range inputs {
		once := SanitizeFileName(in)
		twice := SanitizeFileName(once)

		assert.Equal(t, once, twice, "not idempotent for %q", in)
		assert.False(t, strings.ContainsAny(once, `<>:"/\|?*`), "invalid char left in %q", once)
		assert.LessOrEqual(t, len([]rune(once)), MaxFileNameLength)
		if once != "" {
			assert.False(t, strings.HasPrefix(once, ".") || strings.HasPrefix(once, " "), "leading trim failed: %q", once)
			assert.False(t, strings.HasSuffix(once, ".") || strings.HasSuffix(once, " "), "trailing trim failed: %q", once)
		}
	}
}

func TestImageExtension(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		url         string
		want        string
	}{
		{"jpeg header", "image/jpeg", "https://i.scdn.co/image/abc", ".jpg"},
		{"jpg header", "image/jpg", "https://i.scdn.co/image/abc.png", ".jpg"},
		{"png header", "image/png", "https://i.scdn.co/image/abc", ".png"},
		{"webp header", "image/webp", "https://i.scdn.co/image/abc", ".webp"},
		{"header case", "IMAGE/PNG", "https://i.scdn.co/image/abc", ".png"},
		{"unknown header png url", "application/octet-stream", "https://x/cover.png", ".png"},
		{"no header webp url", "", "https://x/cover.WEBP", ".webp"},
		{"query ignored", "", "https://x/cover.png?size=640", ".png"},
		{"fallback jpg", "", "https://mosaic.scdn.co/640/abcdef", ".jpg"},
		{"unparseable url", "", "%%%", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageExtension(tt.contentType, tt.url))
		})
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Summer.jpg")
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))
	require.NoError(t, WriteFile(ctx, path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WriteFile(ctx, filepath.Join(t.TempDir(), "x.jpg"), []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnsureDir_Nested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "playlist_covers", "alice")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "second call should be a no-op")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestImageService_Dimensions(t *testing.T) {
	svc := NewImageService()
	ctx := context.Background()

	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	w, h, format, err := svc.Dimensions(ctx, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, "png", format)

	_, _, _, err = svc.Dimensions(ctx, []byte("not an image"))
	assert.Error(t, err)
}
