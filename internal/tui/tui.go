// Package tui provides a Bubble Tea terminal user interface for downloading
// the covers of a user's public playlists.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/app"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/download"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/spotify"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1DB954")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1DB954")).
			Padding(1, 2)
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Runner is the part of app.App the UI drives.
type Runner interface {
	RunPublic(ctx context.Context, userID string) (model.Summary, error)
	Manager() *download.Manager
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	runner    Runner
	folder    string
	logs      []LogEntry
	summary   model.Summary
	userID    string
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	processed int32
	total     int32

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model. folder is only displayed.
func NewModel(runner Runner, folder string) Model {
	ti := textinput.New()
	ti.Placeholder = "spotify user id, e.g. spotify"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		runner:    runner,
		folder:    folder,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one progress line from the run.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// DoneMsg is sent when the run returns.
	DoneMsg struct {
		Summary model.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// errCancelled is shown when the user aborts a run.
var errCancelled = errors.New("cancelled by user")

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
			}

		case "enter":
			if m.state == StateInput {
				if id := strings.TrimSpace(m.textInput.Value()); id != "" {
					m.userID = id
					m.state = StateRunning
					m.processed, m.total = 0, 0
					if mgr := m.runner.Manager(); mgr != nil {
						mgr.Reset()
					}
					return m, tea.Batch(m.run(id), m.spinner.Tick, m.tickProgress())
				}
			}

		case "tab":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.summary = model.Summary{}
				m.processed, m.total = 0, 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case DoneMsg:
		m.summary = msg.Summary
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = describeError(m.userID, msg.Err)
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.state == StateRunning && m.runner.Manager() != nil {
			m.processed, m.total = m.runner.Manager().GetProgress()

			var percent float64
			if m.total > 0 {
				percent = float64(m.processed) / float64(m.total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎨 Spotify Playlist Cover Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download the covers of someone's public playlists"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a Spotify user id:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Find it by opening the profile and clicking share:"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("https://open.spotify.com/user/<id>"))
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Verbose output (tab)\n", verboseCheck)
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download folder: %s", m.folder)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	if m.total == 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Fetching public playlists of %s...", m.userID)))
		b.WriteString("\n\n")
	} else {
		percent := float64(m.processed) / float64(m.total)
		b.WriteString(m.progress.ViewAs(percent))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Playlists: %d/%d", m.processed, m.total)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	if m.summary.Total == 0 {
		b.WriteString(warningStyle.Render("No public playlists found for this user"))
		b.WriteString("\n")
		return b.String()
	}

	s := m.summary
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Download Complete!\n\n"+
			"Downloaded: %d/%d\n"+
			"Missing covers: %d\n"+
			"Missing url: %d\n"+
			"Failed: %d\n\n"+
			"Saved to: %s",
		s.Successful, s.Total,
		s.MissingCovers,
		s.MissingURL,
		s.Failed,
		s.Destination,
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s", m.err.Error())
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • tab: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: another user • q: quit"
	}
	return ""
}

// run downloads the covers in the background.
func (m Model) run(userID string) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		summary, err := runner.RunPublic(ctx, userID)
		return DoneMsg{Summary: summary, Err: err}
	}
}

func describeError(userID string, err error) error {
	switch {
	case errors.Is(err, spotify.ErrUserNotFound):
		return fmt.Errorf("user '%s' not found", userID)
	case errors.Is(err, spotify.ErrAuth):
		return fmt.Errorf("spotify rejected the credentials: %w", err)
	default:
		return err
	}
}

// Run starts the TUI application.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a, a.Config().DownloadFolder), tea.WithAltScreen())

	// Progress lines arrive from download goroutines; Send is safe for that.
	a.SetProgressHandler(func(event download.ProgressEvent) {
		p.Send(ProgressMsg{Event: event})
	})

	_, err := p.Run()
	return err
}
