package model

import "github.com/samber/lo"

// ImageRef describes one rendition of a playlist cover as returned by Spotify.
//
// Spotify usually returns up to three renditions (640, 300 and 60 pixels)
// for generated mosaics and a single one for uploaded covers. Width and
// Height are zero when the API leaves them out, which it does for
// user-uploaded images.
type ImageRef struct {
	// URL is the location of the image on Spotify's CDN.
	URL string

	// Width in pixels, 0 if unknown.
	Width int

	// Height in pixels, 0 if unknown.
	Height int
}

// Area returns Width*Height, treating unknown dimensions as 0.
func (i ImageRef) Area() int {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}
	return i.Width * i.Height
}

// SelectBestImage returns the URL of the largest image in images.
//
// Images without a URL are ignored. Among the rest, the one with the
// largest area wins and ties go to the image that comes first, so the
// result does not depend on Spotify sorting images largest-first.
//
// The second return value is false when images is empty or when no image
// carries a URL.
//
// Example:
//
//	url, ok := SelectBestImage([]ImageRef{
//	    {URL: "a", Width: 300, Height: 300},
//	    {URL: "b", Width: 640, Height: 640},
//	})
//	// url == "b", ok == true
func SelectBestImage(images []ImageRef) (string, bool) {
	candidates := lo.Filter(images, func(img ImageRef, _ int) bool {
		return img.URL != ""
	})
	if len(candidates) == 0 {
		return "", false
	}

	best := lo.MaxBy(candidates, func(a, b ImageRef) bool {
		return a.Area() > b.Area()
	})
	return best.URL, true
}
