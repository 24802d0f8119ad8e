package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "spotify_auth.toml"

// Download strategies.
const (
	StrategyBatch  = "batch"
	StrategyWindow = "window"
)

// Environment variables that override values from the config file.
const (
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvRedirectURI  = "SPOTIFY_REDIRECT_URI"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ParseError is returned when the config file is not valid TOML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError is returned when required credentials are absent.
type MissingFieldError struct {
	Path   string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s must be provided in %s", strings.Join(e.Fields, " and "), e.Path)
}

// InvalidFieldError is returned when an optional setting has an unusable value.
type InvalidFieldError struct {
	Path  string
	Field string
	Rule  string
	Value any
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %v (must satisfy %s)", e.Field, e.Path, e.Value, e.Rule)
}

// Config holds the credentials and download options read from the TOML file.
type Config struct {
	// Credentials
	ClientID     string `toml:"client_id" validate:"required"`
	ClientSecret string `toml:"client_secret" validate:"required"`
	RedirectURI  string `toml:"redirect_uri" validate:"omitempty,url"`

	// Download settings
	DownloadFolder string `toml:"download_folder" validate:"required"`
	BatchSize      int    `toml:"batch_size" validate:"gte=1"`
	RequestTimeout int    `toml:"request_timeout" validate:"gte=1"` // seconds
	Strategy       string `toml:"strategy" validate:"oneof=batch window"`

	// Logging
	LogLevel string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `toml:"log_file"`
}

// Default returns a Config with every optional setting filled in.
func Default() *Config {
	return &Config{
		RedirectURI:    model.DefaultRedirectURI,
		DownloadFolder: "playlist_covers",
		BatchSize:      20,
		RequestTimeout: 30,
		Strategy:       StrategyBatch,
		LogLevel:       "warn",
	}
}

// Load reads the config file at path, applies environment overrides and
// validates the result.
//
// Returns:
//   - ErrConfigNotFound (wrapped) if the file does not exist
//   - *ParseError if the file is not valid TOML
//   - *MissingFieldError if client_id or client_secret is empty
//   - *InvalidFieldError if an optional setting is out of range
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg.applyEnv()

	if err := cfg.validate(path); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables that are already set are left alone and a missing
// file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv(EnvRedirectURI); v != "" {
		c.RedirectURI = v
	}
}

func (c *Config) validate(path string) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
	})

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" && (fe.Field() == "client_id" || fe.Field() == "client_secret") {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Path: path, Fields: missing}
	}

	fe := verrs[0]
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return &InvalidFieldError{Path: path, Field: fe.Field(), Rule: rule, Value: fe.Value()}
}

// Credentials returns the Spotify application credentials.
func (c *Config) Credentials() model.Credentials {
	redirect := c.RedirectURI
	if redirect == "" {
		redirect = model.DefaultRedirectURI
	}
	return model.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURI:  redirect,
	}
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
