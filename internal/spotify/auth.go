package spotify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Options configures how clients reach Spotify.
type Options struct {
	// TokenURL overrides the accounts service token endpoint.
	TokenURL string

	// APIBaseURL overrides the Web API endpoint. Must end with a slash.
	APIBaseURL string

	// OnAuthURL receives the URL the user has to open to authorize the app.
	// Only used by Authorize.
	OnAuthURL func(authURL string)

	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// AppClient authenticates with the client credentials grant. The resulting
// client can read public data only and lists playlists in ModePublic.
//
// Returns ErrAuth (wrapped) if Spotify rejects the credentials.
func AppClient(ctx context.Context, creds model.Credentials, opts Options) (*Client, error) {
	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	cc := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
	}

	// Fetch a token up front so bad credentials fail before any listing.
	if _, err := cc.Token(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuth, err)
	}

	opts.logger().Debug("Obtained client credentials token")

	return NewClient(cc.Client(ctx), ModePublic, opts.APIBaseURL, opts.Logger), nil
}

// Scopes needed to list private and collaborative playlists.
var Scopes = []string{
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistReadCollaborative,
}

type authResult struct {
	client *Client
	err    error
}

// Authorize runs the authorization code flow and returns a client for the
// user who logged in, listing playlists in ModeCurrentUser.
//
// A callback listener is bound on the host and path of creds.RedirectURI,
// the authorize URL is handed to opts.OnAuthURL, and the call blocks until
// Spotify redirects back, the listener fails or ctx ends. Callbacks with a
// wrong state are rejected and the flow keeps waiting.
//
// Returns ErrAuth (wrapped) if the user denies access or the code exchange
// fails.
func Authorize(ctx context.Context, creds model.Credentials, opts Options) (*Client, error) {
	redirect, err := url.Parse(creds.RedirectURI)
	if err != nil || redirect.Host == "" {
		return nil, fmt.Errorf("invalid redirect_uri %q", creds.RedirectURI)
	}
	callbackPath := redirect.Path
	if callbackPath == "" {
		callbackPath = "/"
	}

	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyauth.AuthURL,
			TokenURL: tokenURL,
		},
	}

	state := uuid.NewString()

	log := opts.logger()
	results := make(chan authResult, 1)
	deliver := func(r authResult) {
		select {
		case results <- r:
		default:
		}
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get(callbackPath, func(c *fiber.Ctx) error {
		if reason := c.Query("error"); reason != "" {
			deliver(authResult{err: fmt.Errorf("%w: authorization denied: %s", ErrAuth, reason)})
			return c.Status(fiber.StatusForbidden).SendString("Authorization denied. You can close this window.")
		}

		if c.Query("state") != state {
			log.Warn("Ignoring callback with unexpected state")
			return c.Status(fiber.StatusBadRequest).SendString("State mismatch.")
		}

		token, err := conf.Exchange(ctx, c.Query("code"))
		if err != nil {
			deliver(authResult{err: fmt.Errorf("%w: %w", ErrAuth, err)})
			return c.Status(fiber.StatusForbidden).SendString("Could not get a token. You can close this window.")
		}

		client := NewClient(conf.Client(ctx, token), ModeCurrentUser, opts.APIBaseURL, opts.Logger)
		deliver(authResult{client: client})
		return c.SendString("Login completed. You can close this window.")
	})

	ln, err := net.Listen("tcp", redirect.Host)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", redirect.Host, err)
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listener(ln)
	}()
	defer func() {
		if err := app.Shutdown(); err != nil {
			log.Warn("Failed to stop callback listener", zap.Error(err))
		}
		_ = ln.Close()
	}()

	log.Debug("Waiting for authorization callback", zap.String("redirect_uri", creds.RedirectURI))
	if opts.OnAuthURL != nil {
		opts.OnAuthURL(conf.AuthCodeURL(state))
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-listenErr:
		if err == nil {
			err = errors.New("callback listener stopped")
		}
		return nil, fmt.Errorf("listen on %s: %w", redirect.Host, err)
	case r := <-results:
		return r.client, r.err
	}
}
