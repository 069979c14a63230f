package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/qr-race/internal/cards"
	"github.com/vovakirdan/qr-race/internal/core"
	"github.com/vovakirdan/qr-race/internal/feed"
	"github.com/vovakirdan/qr-race/internal/grid"
	"github.com/vovakirdan/qr-race/internal/turn"
)

// Options configures a session front end.
type Options struct {
	World    *grid.World
	Settings turn.Settings
	Source   feed.Source
	Table    *feed.TableSource // Set when the keyboard drives the source
	Logger   *log.Logger
	Runtime  core.RuntimeConfig
}

// Model is the Bubble Tea model for one qrrace session.
type Model struct {
	ctx       context.Context
	world     *grid.World
	settings  turn.Settings
	source    feed.Source
	table     *feed.TableSource
	logger    *log.Logger
	scheduler *turn.Scheduler
	session   string
	snap      turn.Snapshot

	screen        *core.Screen
	config        core.RuntimeConfig
	keys          KeyMap
	help          help.Model
	seat          cards.Player
	status        string
	screenshotDir string
	err           error
	quitting      bool
}

// NewModel creates a model and starts the first session.
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	keys.SetEditing(opts.Table != nil)

	dir := ""
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".qrrace", "screenshots")
	}

	m := Model{
		ctx:           ctx,
		world:         opts.World,
		settings:      opts.Settings,
		source:        opts.Source,
		table:         opts.Table,
		logger:        logger,
		screen:        core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		config:        opts.Runtime,
		keys:          keys,
		help:          help.New(),
		seat:          cards.Player1,
		screenshotDir: dir,
	}
	m.newSession()
	return m
}

// newSession replaces the scheduler with a fresh one under a new session id.
func (m *Model) newSession() {
	m.session = uuid.NewString()
	sessionLog := m.logger.With("session", m.session)
	m.scheduler = turn.New(m.world, m.settings, turn.WithLogger(sessionLog))
	m.snap = m.scheduler.Snapshot()
	m.keys.Restart.SetEnabled(false)
	sessionLog.Info("session started",
		"board", fmt.Sprintf("%dx%d", m.world.Cols(), m.world.Rows()),
		"goal", m.world.Goal(),
		"start", m.settings.Start)
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameRate())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.table != nil {
			for _, p := range cards.Players {
				m.table.Clear(p)
			}
		}
		m.newSession()
		m.status = ""
		return m, nil
	}

	if m.table == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Seat):
		if m.seat == cards.Player1 {
			m.seat = cards.Player2
		} else {
			m.seat = cards.Player1
		}
	case key.Matches(msg, m.keys.Remove):
		m.table.Take(m.seat)
	case key.Matches(msg, m.keys.Clear):
		m.table.Clear(m.seat)
	default:
		if cmd, ok := m.keys.CardFor(msg); ok {
			m.table.Place(m.seat, cmd)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	return m, nil
}

// handleTick reads one frame from the source and advances the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame, err := m.source.Next(m.ctx)
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	m.snap = m.scheduler.Tick(frame.Detections, now)
	if m.snap.State.Phase == turn.PhaseFinished && m.table != nil {
		m.keys.Restart.SetEnabled(true)
	}

	return m, tickCmd(m.config.FrameRate())
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		m.status = "screenshot failed: no home directory"
		return
	}

	m.render(m.config.ScreenH)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("qrrace_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

// render draws the session into the screen buffer using the given height.
func (m Model) render(height int) {
	m.screen.Resize(m.config.ScreenW, height)

	v := sessionView{
		world:   m.world,
		snap:    m.snap,
		seat:    m.seat,
		editing: m.table != nil,
		restart: m.keys.Restart.Enabled(),
		status:  m.status,
	}
	if m.table != nil {
		for _, p := range cards.Players {
			v.table[p.Index()] = m.table.Hand(p)
		}
	}
	drawSession(m.screen, v)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := helpStyle.Render(m.help.View(m.keys))
	helpLines := strings.Count(helpView, "\n") + 1

	m.render(max(m.config.ScreenH-helpLines, 1))
	return RenderScreen(m.screen) + "\n" + helpView
}

// Snapshot returns the latest session snapshot.
func (m Model) Snapshot() turn.Snapshot {
	return m.snap
}

// Session returns the current session id.
func (m Model) Session() string {
	return m.session
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and returns when the players quit or the
// source fails.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(ctx, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return fmt.Errorf("tui: %w", m.err)
	}
	return nil
}
