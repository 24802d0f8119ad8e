package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvClientSecret, "")
	t.Setenv(EnvRedirectURI, "")
}

func TestLoad_Valid(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
client_id = "id"
client_secret = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	creds := cfg.Credentials()
	assert.Equal(t, "id", creds.ClientID)
	assert.Equal(t, "secret", creds.ClientSecret)
	assert.Equal(t, "http://localhost:8888/callback", creds.RedirectURI)
	assert.Equal(t, "playlist_covers", cfg.DownloadFolder)
	assert.Equal(t, 20, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, StrategyBatch, cfg.Strategy)
}

func TestLoad_AllOptions(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
client_id = "id"
client_secret = "secret"
redirect_uri = "http://127.0.0.1:9090/cb"
download_folder = "covers"
batch_size = 5
request_timeout = 10
strategy = "window"
log_level = "debug"
log_file = "logs/covers.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9090/cb", cfg.Credentials().RedirectURI)
	assert.Equal(t, "covers", cfg.DownloadFolder)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, StrategyWindow, cfg.Strategy)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "logs/covers.log", cfg.LogFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "malformed toml",
			content: `client_id = "unterminated`,
			check: func(t *testing.T, err error) {
				var pe *ParseError
				assert.True(t, errors.As(err, &pe), "got %T", err)
			},
		},
		{
			name:    "missing secret",
			content: `client_id = "id"`,
			check: func(t *testing.T, err error) {
				var mf *MissingFieldError
				require.True(t, errors.As(err, &mf), "got %T", err)
				assert.Equal(t, []string{"client_secret"}, mf.Fields)
			},
		},
		{
			name:    "missing both",
			content: `redirect_uri = "http://localhost:8888/callback"`,
			check: func(t *testing.T, err error) {
				var mf *MissingFieldError
				require.True(t, errors.As(err, &mf), "got %T", err)
				assert.Equal(t, []string{"client_id", "client_secret"}, mf.Fields)
				assert.Contains(t, mf.Error(), "client_id and client_secret must be provided")
			},
		},
		{
			name: "zero batch size",
			content: `
client_id = "id"
client_secret = "secret"
batch_size = 0
`,
			check: func(t *testing.T, err error) {
				var inv *InvalidFieldError
				require.True(t, errors.As(err, &inv), "got %T", err)
				assert.Equal(t, "batch_size", inv.Field)
			},
		},
		{
			name: "unknown strategy",
			content: `
client_id = "id"
client_secret = "secret"
strategy = "yolo"
`,
			check: func(t *testing.T, err error) {
				var inv *InvalidFieldError
				require.True(t, errors.As(err, &inv), "got %T", err)
				assert.Equal(t, "strategy", inv.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvClientID, "env-id")
	t.Setenv(EnvClientSecret, "env-secret")
	t.Setenv(EnvRedirectURI, "")

	cfg, err := Load(writeConfig(t, `client_id = "file-id"`))
	require.NoError(t, err, "env should fill the missing secret")
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
}

func TestSetupInstructions(t *testing.T) {
	own := SetupInstructions(DefaultPath, true)
	assert.Contains(t, own, "client_id = \"your_client_id_here\"")
	assert.Contains(t, own, "Redirect URI")
	assert.Contains(t, own, "5. Create the spotify_auth.toml file")

	public := SetupInstructions(DefaultPath, false)
	assert.False(t, strings.Contains(public, "Redirect URI"))
	assert.Contains(t, public, "4. Create the spotify_auth.toml file")
}
