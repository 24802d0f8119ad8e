package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
	spotifyapi "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Mode selects which listing endpoint ListPlaylists uses.
type Mode int

const (
	// ModeCurrentUser lists the playlists of the authorized user
	// (GET /me/playlists), including private and collaborative ones.
	ModeCurrentUser Mode = iota

	// ModePublic lists the public playlists of any user
	// (GET /users/{id}/playlists).
	ModePublic
)

// Client implements API with github.com/zmb3/spotify/v2.
type Client struct {
	api    *spotifyapi.Client
	mode   Mode
	logger *zap.Logger
}

// NewClient wraps an HTTP client that already carries an OAuth token.
//
// baseURL overrides the Web API endpoint and is only used by tests; pass ""
// for the real API.
func NewClient(httpClient *http.Client, mode Mode, baseURL string, logger *zap.Logger) *Client {
	var opts []spotifyapi.ClientOption
	if baseURL != "" {
		opts = append(opts, spotifyapi.WithBaseURL(baseURL))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		api:    spotifyapi.New(httpClient, opts...),
		mode:   mode,
		logger: logger,
	}
}

// CurrentUser returns the authorized user.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	u, err := c.api.CurrentUser(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &model.User{ID: u.ID, DisplayName: u.DisplayName}, nil
}

// User returns the public profile of userID.
func (c *Client) User(ctx context.Context, userID string) (*model.User, error) {
	u, err := c.api.GetUsersPublicProfile(ctx, spotifyapi.ID(userID))
	if err != nil {
		return nil, mapError(err)
	}
	return &model.User{ID: u.ID, DisplayName: u.DisplayName}, nil
}

// ListPlaylists returns one page of playlists.
//
// In ModeCurrentUser ownerID is not sent to Spotify: the endpoint always
// lists the authorized user's collection.
func (c *Client) ListPlaylists(ctx context.Context, ownerID string, limit, offset int) (*PlaylistPage, error) {
	c.logger.Debug("Requesting playlists page",
		zap.String("owner_id", ownerID),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	var (
		page *spotifyapi.SimplePlaylistPage
		err  error
	)
	switch c.mode {
	case ModePublic:
		page, err = c.api.GetPlaylistsForUser(ctx, ownerID, spotifyapi.Limit(limit), spotifyapi.Offset(offset))
	default:
		page, err = c.api.CurrentUsersPlaylists(ctx, spotifyapi.Limit(limit), spotifyapi.Offset(offset))
	}
	if err != nil {
		c.logger.Debug("Playlists request failed", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, mapError(err)
	}

	items := make([]model.Playlist, 0, len(page.Playlists))
	for _, p := range page.Playlists {
		items = append(items, toPlaylist(p))
	}

	c.logger.Debug("Retrieved playlists page",
		zap.Int("offset", int(page.Offset)),
		zap.Int("items_in_page", len(items)),
		zap.Int("total_items", int(page.Total)))

	return &PlaylistPage{
		Items:  items,
		Offset: int(page.Offset),
		Next:   page.Next,
	}, nil
}

func toPlaylist(p spotifyapi.SimplePlaylist) model.Playlist {
	images := make([]model.ImageRef, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, model.ImageRef{
			URL:    img.URL,
			Width:  int(img.Width),
			Height: int(img.Height),
		})
	}

	return model.Playlist{
		ID:      string(p.ID),
		Name:    p.Name,
		OwnerID: p.Owner.ID,
		Images:  images,
	}
}

// mapError converts provider errors into ErrAuth, ErrUserNotFound or *APIError.
// Transport errors that carry no HTTP status are returned unchanged.
func mapError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: %w", ErrAuth, err)
	}

	status, message, ok := errorStatus(err)
	if !ok {
		return err
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuth, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	default:
		return &APIError{Status: status, Message: message, Err: err}
	}
}

func errorStatus(err error) (int, string, bool) {
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message, true
	}
	var apiErrPtr *spotifyapi.Error
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Status, apiErrPtr.Message, true
	}
	return 0, "", false
}
