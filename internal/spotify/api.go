package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
)

// PageSize is the number of playlists requested per page (the API maximum).
const PageSize = 50

var (
	// ErrAuth is returned when Spotify rejects the credentials or the user
	// denies the authorization request.
	ErrAuth = errors.New("spotify authentication failed")

	// ErrUserNotFound is returned when the requested user ID does not exist.
	ErrUserNotFound = errors.New("spotify user not found")
)

// APIError is any other error response from the Web API.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error (status %d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// PlaylistPage is one page of a playlist listing.
type PlaylistPage struct {
	Items []model.Playlist

	// Offset is the index of the first item in the full listing.
	Offset int

	// Next is the provider's cursor for the following page, empty on the
	// last page.
	Next string
}

// API is the subset of the Spotify Web API the downloader needs.
//
// *Client implements it on top of github.com/zmb3/spotify/v2; tests use
// in-memory fakes.
type API interface {
	// CurrentUser returns the user that authorized the client.
	CurrentUser(ctx context.Context) (*model.User, error)

	// User returns the public profile of userID.
	User(ctx context.Context, userID string) (*model.User, error)

	// ListPlaylists returns one page of playlists for ownerID.
	ListPlaylists(ctx context.Context, ownerID string, limit, offset int) (*PlaylistPage, error)
}

// ListUserPlaylists collects every playlist page for ownerID and keeps only
// the playlists ownerID actually owns.
//
// Listings include playlists the user merely follows, so the owner filter
// is applied after all pages are fetched. The relative order of the
// listing is preserved.
//
// Example:
//
//	playlists, err := spotify.ListUserPlaylists(ctx, client, "alice")
//	if errors.Is(err, spotify.ErrUserNotFound) {
//	    fmt.Println("no such user")
//	}
func ListUserPlaylists(ctx context.Context, api API, ownerID string) ([]model.Playlist, error) {
	var all []model.Playlist

	offset := 0
	for {
		page, err := api.ListPlaylists(ctx, ownerID, PageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("list playlists at offset %d: %w", offset, err)
		}

		all = append(all, page.Items...)

		// An empty page with a cursor would loop forever.
		if page.Next == "" || len(page.Items) == 0 {
			break
		}
		offset = page.Offset + len(page.Items)
	}

	return lo.Filter(all, func(p model.Playlist, _ int) bool {
		return p.OwnerID == ownerID
	}), nil
}
