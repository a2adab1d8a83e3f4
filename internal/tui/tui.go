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
	"github.com/handiism/jacketvid/internal/catalog"
	"github.com/handiism/jacketvid/internal/config"
	"github.com/handiism/jacketvid/internal/pipeline"
	"github.com/handiism/jacketvid/internal/render"
	"github.com/handiism/jacketvid/internal/upload"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
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
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogs is the length of the log tail.
const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateRendering
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	folders   []string
	err       error

	// Batch context
	ctx    context.Context
	cancel context.CancelFunc

	manager *pipeline.Manager
	events  chan pipeline.ProgressEvent

	// Batch progress
	doneFolders  int32
	totalFolders int32
	stats        pipeline.Stats

	// Options
	optionsFocused bool
	upload         bool
	exportAudio    bool
	playlist       bool
	strictImages   bool
	verbose        bool

	width  int
	height int
}

// NewModel creates a new TUI model. Options start from settings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/data/music"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:        StateInput,
		textInput:    ti,
		spinner:      sp,
		progress:     prog,
		settings:     settings,
		logs:         make([]LogEntry, 0),
		ctx:          ctx,
		cancel:       cancel,
		upload:       settings.Upload,
		exportAudio:  settings.ExportAudio,
		playlist:     settings.CreatePlaylist,
		strictImages: settings.AbortOnImageError,
		verbose:      settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the pipeline.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// InitDoneMsg is sent when the folders are enumerated and the manager
	// is ready.
	InitDoneMsg struct {
		Folders []string
		Manager *pipeline.Manager
		Err     error
	}

	// RunDoneMsg is sent when the batch finishes.
	RunDoneMsg struct {
		Stats pipeline.Stats
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
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
			if m.state == StateRendering || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}
			return m, nil

		case "tab":
			if m.state == StateInput {
				m.optionsFocused = !m.optionsFocused
				if m.optionsFocused {
					m.textInput.Blur()
				} else {
					cmds = append(cmds, m.textInput.Focus())
				}
				return m, tea.Batch(cmds...)
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateInitializing
				m.events = make(chan pipeline.ProgressEvent, 64)
				return m, tea.Batch(m.initialize(), m.spinner.Tick, waitForEvent(m.events))
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.reset()
				return m, m.textInput.Focus()
			}
		}

		if m.state == StateInput && m.optionsFocused {
			m.toggle(msg.String())
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.appendLog(msg.Event)
		if m.events != nil {
			cmds = append(cmds, waitForEvent(m.events))
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.folders = msg.Folders
			m.manager = msg.Manager
			m.totalFolders = int32(len(msg.Folders))
			m.state = StateRendering
			cmds = append(cmds, m.startRun(), m.tickProgress())
		}

	case RunDoneMsg:
		m.stats = msg.Stats
		if m.manager != nil {
			m.doneFolders, m.totalFolders = m.manager.GetProgress()
		}
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateRendering {
			m.doneFolders, m.totalFolders = m.manager.GetProgress()

			var percent float64
			if m.totalFolders > 0 {
				percent = float64(m.doneFolders) / float64(m.totalFolders)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput && !m.optionsFocused {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggle(key string) {
	switch key {
	case "u":
		m.upload = !m.upload
	case "a":
		m.exportAudio = !m.exportAudio
	case "p":
		m.playlist = !m.playlist
	case "s":
		m.strictImages = !m.strictImages
	case "v":
		m.verbose = !m.verbose
	}
}

func (m *Model) appendLog(event pipeline.ProgressEvent) {
	if event.Level == pipeline.LevelVerbose && !m.verbose {
		return
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.folders = nil
	m.err = nil
	m.doneFolders = 0
	m.totalFolders = 0
	m.stats = pipeline.Stats{}
	m.manager = nil
	m.events = nil
	m.optionsFocused = false
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next pipeline event. It returns nil once the
// channel is closed, which ends the listening loop.
func waitForEvent(events <-chan pipeline.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ jacketvid"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Render song jackets and audio into videos"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateRendering:
		b.WriteString(m.viewRendering())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Song data root folder:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	header := infoStyle.Render("Options:")
	if m.optionsFocused {
		header = focusStyle.Render("Options:")
	}
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Upload to YouTube (u)\n", checkbox(m.upload)))
	b.WriteString(fmt.Sprintf("  %s Export tagged MP3 (a)\n", checkbox(m.exportAudio)))
	b.WriteString(fmt.Sprintf("  %s Create playlist (p)\n", checkbox(m.playlist)))
	b.WriteString(fmt.Sprintf("  %s Stop on unreadable jacket (s)\n", checkbox(m.strictImages)))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", checkbox(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Music DB: %s", m.settings.MusicDBPath)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning song folders..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewRendering() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(successStyle.Render(fmt.Sprintf("Rendering %d song folder(s)", len(m.folders))))
	b.WriteString("\n\n")

	var percent float64
	if m.totalFolders > 0 {
		percent = float64(m.doneFolders) / float64(m.totalFolders)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Folders: %d/%d", m.doneFolders, m.totalFolders)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"✓ Batch Complete!\n\n"+
			"Folders: %d\n"+
			"Videos: %d\n"+
			"Failed: %d\n"+
			"Skipped: %d\n"+
			"Uploaded: %d",
		m.stats.Folders,
		m.stats.Rendered,
		m.stats.Failed,
		m.stats.Skipped,
		m.stats.Uploaded,
	))

	return box + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
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

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		if m.optionsFocused {
			return "u: upload • a: export • p: playlist • s: strict • v: verbose • tab: folder • enter: start"
		}
		return "enter: start • tab: options • esc: quit"
	case StateInitializing, StateRendering:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// runSettings copies the base settings with the chosen options applied.
func (m Model) runSettings() *config.Settings {
	settings := *m.settings
	settings.Upload = m.upload
	settings.ExportAudio = m.exportAudio
	settings.CreatePlaylist = m.playlist
	settings.AbortOnImageError = m.strictImages
	settings.Verbose = m.verbose
	return &settings
}

// renderOptions converts settings for the TUI. ffmpeg output is never
// passed through to the terminal, since the alt screen owns it; verbose
// only affects which events are shown.
func renderOptions(settings *config.Settings) render.Options {
	opts := settings.ToRenderOptions()
	opts.Verbose = false
	return opts
}

// initialize enumerates the folders and creates the manager.
func (m *Model) initialize() tea.Cmd {
	root := strings.TrimSpace(m.textInput.Value())
	settings := m.runSettings()
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		fail := func(err error) tea.Msg {
			close(events)
			return InitDoneMsg{Err: err}
		}

		folders, err := pipeline.Enumerate(root)
		if err != nil {
			return fail(err)
		}
		if len(folders) == 0 {
			return fail(fmt.Errorf("no song folders in %s", root))
		}

		var uploader pipeline.Uploader
		if settings.Upload {
			u, err := upload.NewUploader(ctx, settings.CredentialsPath, settings.TokenPath, nil)
			if err != nil {
				return fail(err)
			}
			uploader = u
		}

		manager := pipeline.NewManager(
			settings,
			catalog.Open(settings.MusicDBPath),
			render.NewRenderer(renderOptions(settings)),
			uploader,
			func(event pipeline.ProgressEvent) {
				select {
				case events <- event:
				case <-ctx.Done():
				}
			},
		)

		return InitDoneMsg{Folders: folders, Manager: manager}
	}
}

// startRun runs the batch in the background.
func (m *Model) startRun() tea.Cmd {
	manager := m.manager
	folders := m.folders
	ctx := m.ctx
	events := m.events

	return func() tea.Msg {
		err := manager.Run(ctx, folders)
		close(events)
		return RunDoneMsg{Stats: manager.Stats(), Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
