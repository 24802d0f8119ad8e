package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/samber/lo"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/config"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/http"
	ioutils "github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/io"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// DefaultBatchSize is the number of downloads allowed in flight at once.
const DefaultBatchSize = 20

// Fetcher retrieves an image over HTTP.
type Fetcher interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Options tunes the concurrency of a Manager.
type Options struct {
	// BatchSize is the maximum number of downloads in flight. Values below
	// one use DefaultBatchSize.
	BatchSize int

	// Strategy is config.StrategyBatch (default) or config.StrategyWindow.
	Strategy string
}

// Manager downloads playlist covers.
type Manager struct {
	fetcher      Fetcher
	imageService *ioutils.ImageService
	logger       *zap.Logger
	opts         Options

	total     atomic.Int32
	processed atomic.Int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
//
// onProgress may be called from several goroutines at once.
func NewManager(fetcher Fetcher, images *ioutils.ImageService, logger *zap.Logger, opts Options, onProgress func(ProgressEvent)) *Manager {
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Strategy == "" {
		opts.Strategy = config.StrategyBatch
	}
	if images == nil {
		images = ioutils.NewImageService()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Manager{
		fetcher:      fetcher,
		imageService: images,
		logger:       logger,
		opts:         opts,
		onProgress:   onProgress,
	}
}

// SetProgressHandler replaces the progress callback. It must not be called
// while DownloadAll is running.
func (m *Manager) SetProgressHandler(onProgress func(ProgressEvent)) {
	m.onProgress = onProgress
}

// DownloadAll downloads the cover of every playlist into destDir and
// returns the aggregated summary.
//
// Individual failures never stop the run: every playlist ends up in exactly
// one Summary bucket. If destDir cannot be created every playlist is
// counted as failed.
func (m *Manager) DownloadAll(ctx context.Context, playlists []model.Playlist, destDir string) model.Summary {
	m.total.Store(int32(len(playlists)))
	m.processed.Store(0)

	summary := model.Summary{Destination: destDir}
	if abs, err := filepath.Abs(destDir); err == nil {
		summary.Destination = abs
	}

	outcomes := make([]model.Outcome, len(playlists))

	if err := ioutils.EnsureDir(destDir); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory %s: %v", destDir, err), Level: LevelError})
		for i := range playlists {
			outcomes[i] = model.Outcome{Playlist: &playlists[i], Kind: model.OutcomeFailure, Err: err}
		}
	} else if m.opts.Strategy == config.StrategyWindow {
		m.runWindow(ctx, playlists, destDir, outcomes)
	} else {
		m.runBatches(ctx, playlists, destDir, outcomes)
	}

	for _, o := range outcomes {
		summary.Add(o)
	}
	return summary
}

// Reset clears the progress counters of the previous run.
func (m *Manager) Reset() {
	m.total.Store(0)
	m.processed.Store(0)
}

// GetProgress returns how many playlists have been processed out of the
// current run's total.
func (m *Manager) GetProgress() (processed, total int32) {
	return m.processed.Load(), m.total.Load()
}

// runBatches starts the next group of downloads only after the previous
// one has fully settled.
func (m *Manager) runBatches(ctx context.Context, playlists []model.Playlist, destDir string, outcomes []model.Outcome) {
	indexes := lo.Range(len(playlists))
	batches := lo.Chunk(indexes, m.opts.BatchSize)

	for n, batch := range batches {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Starting batch %d/%d (%d playlists)", n+1, len(batches), len(batch)),
			Level:   LevelVerbose,
		})

		var g errgroup.Group
		for _, i := range batch {
			i := i
			g.Go(func() error {
				outcomes[i] = m.process(ctx, &playlists[i], destDir)
				return nil
			})
		}
		_ = g.Wait()
	}
}

// runWindow keeps up to BatchSize downloads running at all times.
func (m *Manager) runWindow(ctx context.Context, playlists []model.Playlist, destDir string, outcomes []model.Outcome) {
	var g errgroup.Group
	g.SetLimit(m.opts.BatchSize)

	for i := range playlists {
		i := i
		g.Go(func() error {
			outcomes[i] = m.process(ctx, &playlists[i], destDir)
			return nil
		})
	}
	_ = g.Wait()
}

func (m *Manager) process(ctx context.Context, playlist *model.Playlist, destDir string) model.Outcome {
	outcome := m.processPlaylist(ctx, playlist, destDir)
	m.processed.Add(1)
	m.report(outcome)
	return outcome
}

func (m *Manager) processPlaylist(ctx context.Context, playlist *model.Playlist, destDir string) model.Outcome {
	outcome := model.Outcome{Playlist: playlist}

	if !playlist.HasCover() {
		outcome.Kind = model.OutcomeMissingCover
		return outcome
	}

	imageURL, ok := model.SelectBestImage(playlist.Images)
	if !ok {
		outcome.Kind = model.OutcomeMissingURL
		return outcome
	}

	resp, err := m.fetcher.Get(ctx, imageURL)
	if err != nil {
		outcome.Kind = model.OutcomeFailure
		outcome.Err = err
		return outcome
	}

	stem := ioutils.SanitizeFileName(playlist.Name)
	if stem == "" {
		stem = ioutils.SanitizeFileName(playlist.ID)
	}
	fileName := stem + ioutils.ImageExtension(resp.ContentType(), imageURL)

	if err := ioutils.WriteFile(ctx, filepath.Join(destDir, fileName), resp.Body); err != nil {
		outcome.Kind = model.OutcomeFailure
		outcome.Err = err
		return outcome
	}

	outcome.Kind = model.OutcomeSuccess
	outcome.FileName = fileName

	width, height, format, err := m.imageService.Dimensions(ctx, resp.Body)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not read dimensions of %s: %v", fileName, err), Level: LevelVerbose})
		return outcome
	}
	outcome.Width, outcome.Height = width, height

	m.logger.Debug("Decoded cover", zap.String("file", fileName), zap.String("format", format))
	return outcome
}

// report emits the user-facing line for an outcome and logs it.
func (m *Manager) report(o model.Outcome) {
	name := o.Playlist.Name

	switch o.Kind {
	case model.OutcomeSuccess:
		msg := fmt.Sprintf("Downloaded: %s -> %s", name, o.FileName)
		if o.HasDimensions() {
			msg = fmt.Sprintf("Downloaded: %s (%dx%d) -> %s", name, o.Width, o.Height, o.FileName)
		}
		m.progress(ProgressEvent{Message: msg, Level: LevelSuccess})
	case model.OutcomeMissingCover:
		m.progress(ProgressEvent{Message: fmt.Sprintf("No cover image for playlist: %s", name), Level: LevelWarning})
	case model.OutcomeMissingURL:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Could not find image URL for playlist: %s", name), Level: LevelWarning})
	default:
		m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to download %s: %v", name, o.Err), Level: LevelError})
	}

	fields := []zap.Field{
		zap.String("playlist_id", o.Playlist.ID),
		zap.String("playlist", name),
		zap.Stringer("outcome", o.Kind),
	}
	if o.Err != nil {
		m.logger.Warn("Playlist cover not downloaded", append(fields, zap.Error(o.Err))...)
		return
	}
	m.logger.Info("Playlist processed", fields...)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
