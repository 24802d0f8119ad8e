package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/config"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/download"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/spotify"
)

// Exit codes used by the binaries.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// Flags are the command line options shared by all binaries.
type Flags struct {
	Config  string
	Output  string
	Batch   int
	Verbose bool
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", config.DefaultPath, "Path to config file")
	fs.StringVar(&f.Output, "output", "", "Download folder (overrides config)")
	fs.IntVar(&f.Batch, "batch", 0, "Number of concurrent downloads (overrides config)")
	fs.BoolVar(&f.Verbose, "verbose", false, "Show verbose output and debug logs")
	return f
}

// Load reads .env and the config file, then applies the flag overrides.
func (f *Flags) Load() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}

	if f.Output != "" {
		cfg.DownloadFolder = f.Output
	}
	if f.Batch > 0 {
		cfg.BatchSize = f.Batch
	}
	if f.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// Printer returns a progress callback that writes prefixed lines to w.
// Verbose lines are dropped unless verbose is set.
func Printer(w io.Writer, verbose bool) func(download.ProgressEvent) {
	var mu sync.Mutex

	return func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !verbose {
			return
		}

		var prefix string
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = ""
		default:
			prefix = "   "
		}

		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, prefix+event.Message)
	}
}

// ConfigErrorMessage renders a configuration error for the terminal,
// including setup instructions when the file is missing.
func ConfigErrorMessage(err error, path string, withRedirect bool) string {
	var (
		parseErr   *config.ParseError
		missingErr *config.MissingFieldError
	)

	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return fmt.Sprintf("❌ %s file not found!\n\n📝 %s", path, config.SetupInstructions(path, withRedirect))
	case errors.As(err, &parseErr):
		return fmt.Sprintf("❌ Error reading %s: %v", parseErr.Path, parseErr.Err)
	case errors.As(err, &missingErr):
		return fmt.Sprintf("❌ Error loading credentials: %v", missingErr)
	default:
		return fmt.Sprintf("❌ Error loading config: %v", err)
	}
}

// RunErrorMessage renders an error returned by RunOwn or RunPublic.
func RunErrorMessage(err error, userID string) string {
	var apiErr *spotify.APIError

	switch {
	case errors.Is(err, spotify.ErrUserNotFound) && userID != "":
		return fmt.Sprintf("❌ User '%s' not found", userID)
	case errors.Is(err, spotify.ErrAuth):
		return fmt.Sprintf("❌ Spotify authentication failed: %v", err)
	case errors.As(err, &apiErr):
		return fmt.Sprintf("❌ Spotify API error: %v", apiErr)
	default:
		return fmt.Sprintf("❌ Error: %v", err)
	}
}
