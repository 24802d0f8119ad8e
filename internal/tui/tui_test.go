package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/download"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/http"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/spotify"
)

type fakeRunner struct {
	gotUserID string
	summary   model.Summary
	err       error
	manager   *download.Manager
}

func (f *fakeRunner) RunPublic(_ context.Context, userID string) (model.Summary, error) {
	f.gotUserID = userID
	return f.summary, f.err
}

func (f *fakeRunner) Manager() *download.Manager { return f.manager }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestModel_EnterStartsRun(t *testing.T) {
	runner := &fakeRunner{summary: model.Summary{Total: 2, Successful: 2, Destination: "/tmp/covers/alice"}}
	m := NewModel(runner, "playlist_covers")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateInput, m.state, "empty input must not start a run")

	m = typeText(t, m, "  alice ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, StateRunning, m.state)
	assert.Equal(t, "alice", m.userID)

	done := m.run(m.userID)()
	assert.Equal(t, "alice", runner.gotUserID)

	m, _ = update(t, m, done)
	assert.Equal(t, StateComplete, m.state)
	assert.Contains(t, m.View(), "Downloaded: 2/2")
	assert.Contains(t, m.View(), "/tmp/covers/alice")
}

func TestModel_UserNotFound(t *testing.T) {
	m := NewModel(&fakeRunner{}, "playlist_covers")
	m.state = StateRunning
	m.userID = "ghost"

	m, _ = update(t, m, DoneMsg{Err: fmt.Errorf("list: %w", spotify.ErrUserNotFound)})

	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "user 'ghost' not found")
}

func TestModel_NoPublicPlaylists(t *testing.T) {
	m := NewModel(&fakeRunner{}, "playlist_covers")
	m.state = StateRunning

	m, _ = update(t, m, DoneMsg{})

	assert.Equal(t, StateComplete, m.state)
	assert.Contains(t, m.View(), "No public playlists found for this user")
}

func TestModel_Cancelled(t *testing.T) {
	m := NewModel(&fakeRunner{}, "playlist_covers")
	m.state = StateRunning

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, DoneMsg{Summary: model.Summary{Total: 1, Failed: 1}})

	assert.Equal(t, StateError, m.state)
	assert.ErrorIs(t, m.err, errCancelled)
}

func TestModel_LogsAreCapped(t *testing.T) {
	m := NewModel(&fakeRunner{}, "playlist_covers")
	m.state = StateRunning

	for i := 0; i < 15; i++ {
		m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: fmt.Sprint("line ", i), Level: download.LevelInfo}})
	}
	m, _ = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "hidden", Level: download.LevelVerbose}})

	require.Len(t, m.logs, maxLogs)
	assert.Equal(t, "line 14", m.logs[maxLogs-1].Message)
	assert.Equal(t, "line 5", m.logs[0].Message)
}

func TestModel_ResetAfterCompletion(t *testing.T) {
	m := NewModel(&fakeRunner{}, "playlist_covers")
	m.state = StateComplete
	m.logs = []LogEntry{{Message: "old"}}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	assert.Equal(t, StateInput, m.state)
	assert.Empty(t, m.logs)
	assert.Contains(t, m.View(), "Enter a Spotify user id:")
}

func TestModel_SecondRunStartsWithoutOldProgress(t *testing.T) {
	manager := download.NewManager(http.NewClient(time.Second), nil, nil, download.Options{}, nil)
	runner := &fakeRunner{manager: manager}
	m := NewModel(runner, "playlist_covers")

	m = typeText(t, m, "alice")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	manager.DownloadAll(context.Background(), []model.Playlist{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}, t.TempDir())
	m, _ = update(t, m, TickMsg{})
	require.Equal(t, int32(2), m.total)

	m, _ = update(t, m, DoneMsg{Summary: model.Summary{Total: 2}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = typeText(t, m, "bob")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})

	assert.Equal(t, StateRunning, m.state)
	assert.Zero(t, m.processed)
	assert.Zero(t, m.total)
	assert.Contains(t, m.View(), "Fetching public playlists of bob")
}
