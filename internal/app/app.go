// Package app wires configuration, logging, the Spotify client and the
// download manager together and runs the two download flows.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/do"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/config"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/download"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/http"
	ioutils "github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/io"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/logger"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/spotify"
	"go.uber.org/zap"
)

// ClientFactory creates an authenticated Spotify API client.
type ClientFactory func(ctx context.Context) (spotify.API, error)

// Clients holds the factories for both flows.
type Clients struct {
	// Own authorizes the user and lists their own playlists.
	Own ClientFactory

	// Public uses application credentials and lists public playlists.
	Public ClientFactory
}

// Options customizes New.
type Options struct {
	// OnProgress receives every user-facing line. It may be called from
	// several goroutines at once.
	OnProgress func(download.ProgressEvent)

	// Logger replaces the logger built from the config.
	Logger *zap.Logger

	// Clients replaces the Spotify client factories.
	Clients *Clients
}

// App runs the cover download flows.
type App struct {
	di         *do.Injector
	cfg        *config.Config
	log        *zap.Logger
	clients    Clients
	manager    *download.Manager
	onProgress func(download.ProgressEvent)
}

// New builds an App for cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	di := do.New()
	do.ProvideValue(di, cfg)

	if opts.Logger != nil {
		do.ProvideValue(di, opts.Logger)
	} else {
		do.Provide(di, newLogger)
	}

	do.Provide(di, newHTTPClient)
	do.Provide(di, newImageService)
	do.Provide(di, func(i *do.Injector) (*download.Manager, error) {
		return newManager(i, opts.OnProgress)
	})

	if opts.Clients != nil {
		do.ProvideValue(di, *opts.Clients)
	} else {
		do.Provide(di, func(i *do.Injector) (Clients, error) {
			return newClients(i, opts.OnProgress)
		})
	}

	a := &App{di: di, onProgress: opts.OnProgress}

	var err error
	if a.log, err = do.Invoke[*zap.Logger](di); err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}
	if a.manager, err = do.Invoke[*download.Manager](di); err != nil {
		return nil, fmt.Errorf("could not create download manager: %w", err)
	}
	if a.clients, err = do.Invoke[Clients](di); err != nil {
		return nil, fmt.Errorf("could not create spotify clients: %w", err)
	}
	a.cfg = do.MustInvoke[*config.Config](di)

	return a, nil
}

// Manager returns the download manager, for progress polling.
func (a *App) Manager() *download.Manager {
	return a.manager
}

// SetProgressHandler replaces the callback that receives user-facing lines.
// It must not be called while a run is in progress.
func (a *App) SetProgressHandler(onProgress func(download.ProgressEvent)) {
	a.onProgress = onProgress
	a.manager.SetProgressHandler(onProgress)
}

// Config returns the configuration the App was built with.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Shutdown flushes the logger and releases injected services.
func (a *App) Shutdown() error {
	_ = a.log.Sync()
	return a.di.Shutdown()
}

// RunOwn downloads the covers of the playlists the logged-in user owns into
// the configured download folder.
//
// Authorization, user lookup and listing errors abort the run and are
// returned; per-playlist problems only show up in the summary.
func (a *App) RunOwn(ctx context.Context) (model.Summary, error) {
	a.manager.Reset()

	api, err := a.clients.Own(ctx)
	if err != nil {
		return model.Summary{}, err
	}

	user, err := api.CurrentUser(ctx)
	if err != nil {
		return model.Summary{}, fmt.Errorf("get current user: %w", err)
	}
	a.info(fmt.Sprintf("Fetching playlists for user: %s (%s)", user.Name(), user.ID))

	playlists, err := spotify.ListUserPlaylists(ctx, api, user.ID)
	if err != nil {
		return model.Summary{}, err
	}
	a.info(fmt.Sprintf("Found %d user-created playlists", len(playlists)))

	summary := a.manager.DownloadAll(ctx, playlists, a.cfg.DownloadFolder)
	a.report(summary)
	return summary, nil
}

// RunPublic downloads the covers of the public playlists userID owns into
// <download folder>/<userID>.
//
// A failing profile lookup is tolerated; the user ID is shown instead of
// the display name. When the user has no public playlists nothing is
// downloaded and an empty summary is returned.
func (a *App) RunPublic(ctx context.Context, userID string) (model.Summary, error) {
	a.manager.Reset()

	api, err := a.clients.Public(ctx)
	if err != nil {
		return model.Summary{}, err
	}

	if user, err := api.User(ctx, userID); err == nil {
		a.info(fmt.Sprintf("Fetching public playlists for user: %s (%s)", user.Name(), userID))
	} else {
		a.log.Debug("Profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		a.info(fmt.Sprintf("Fetching public playlists for user: %s", userID))
	}

	playlists, err := spotify.ListUserPlaylists(ctx, api, userID)
	if err != nil {
		return model.Summary{}, err
	}
	a.info(fmt.Sprintf("Found %d public playlists", len(playlists)))

	if len(playlists) == 0 {
		a.info("No public playlists found for this user")
		return model.Summary{}, nil
	}

	dest := filepath.Join(a.cfg.DownloadFolder, ioutils.SanitizeFileName(userID))
	summary := a.manager.DownloadAll(ctx, playlists, dest)
	a.report(summary)
	return summary, nil
}

func (a *App) report(s model.Summary) {
	a.progress(download.ProgressEvent{Message: s.Line(), Level: download.LevelSuccess})
	a.info("Images saved to: " + s.Destination)

	a.log.Info("Run finished",
		zap.Int("total", s.Total),
		zap.Int("successful", s.Successful),
		zap.Int("missing_covers", s.MissingCovers),
		zap.Int("missing_url", s.MissingURL),
		zap.Int("failed", s.Failed),
		zap.String("destination", s.Destination))
}

func (a *App) info(msg string) {
	a.progress(download.ProgressEvent{Message: msg, Level: download.LevelInfo})
}

func (a *App) progress(event download.ProgressEvent) {
	if a.onProgress != nil {
		a.onProgress(event)
	}
}

func newLogger(i *do.Injector) (*zap.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
}

func newHTTPClient(i *do.Injector) (*http.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return http.NewClient(cfg.Timeout()), nil
}

func newImageService(_ *do.Injector) (*ioutils.ImageService, error) {
	return ioutils.NewImageService(), nil
}

func newManager(i *do.Injector, onProgress func(download.ProgressEvent)) (*download.Manager, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return download.NewManager(
		do.MustInvoke[*http.Client](i),
		do.MustInvoke[*ioutils.ImageService](i),
		do.MustInvoke[*zap.Logger](i),
		download.Options{BatchSize: cfg.BatchSize, Strategy: cfg.Strategy},
		onProgress,
	), nil
}

func newClients(i *do.Injector, onProgress func(download.ProgressEvent)) (Clients, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*zap.Logger](i)
	creds := cfg.Credentials()

	return Clients{
		Own: func(ctx context.Context) (spotify.API, error) {
			client, err := spotify.Authorize(ctx, creds, spotify.Options{
				Logger: log,
				OnAuthURL: func(authURL string) {
					if onProgress != nil {
						onProgress(download.ProgressEvent{
							Message: "Please log in to Spotify by visiting the following page in your browser:\n\n" + authURL + "\n",
							Level:   download.LevelInfo,
						})
					}
				},
			})
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		Public: func(ctx context.Context) (spotify.API, error) {
			client, err := spotify.AppClient(ctx, creds, spotify.Options{Logger: log})
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}, nil
}
