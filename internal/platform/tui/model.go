package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-hero/internal/loop"
	"github.com/vovakirdan/tile-hero/internal/recording"
	"github.com/vovakirdan/tile-hero/internal/storage"
)

// DefaultHoldWindow is used when GameOptions leaves HoldWindow unset.
const DefaultHoldWindow = 120 * time.Millisecond

// GameOptions configures a game Model. Every field is optional.
type GameOptions struct {
	Store      *storage.Store
	User       string
	HoldWindow time.Duration
	Logger     *log.Logger
	Renderer   *lipgloss.Renderer
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one game loop.
type Model struct {
	ctx       context.Context
	loop      *loop.Loop
	keys      *HeldKeys
	keyMapper *KeyMapper
	presenter *Presenter
	store     *storage.Store
	session   storage.Session
	logger    *log.Logger
	now       func() time.Time

	width    int
	height   int
	status   string
	quitting bool
	back     bool

	// standalone models quit on back instead of returning to a menu.
	standalone bool
}

// NewModel creates a model for l and opens a session row when a store is
// configured.
func NewModel(ctx context.Context, l *loop.Loop, opts GameOptions) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	window := opts.HoldWindow
	if window <= 0 {
		window = DefaultHoldWindow
	}

	m := Model{
		ctx:       ctx,
		loop:      l,
		keys:      NewHeldKeys(window),
		keyMapper: NewKeyMapper(),
		presenter: NewPresenter(opts.Renderer),
		store:     opts.Store,
		logger:    logger,
		now:       time.Now,
		width:     80,
		height:    24,
	}

	if m.store != nil {
		sess, err := m.store.StartSession(l.App().ID(), opts.User)
		if err != nil {
			logger.Warn("session not saved", "error", err)
		} else {
			m.session = sess
		}
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.loop.Hz())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keyMapper.MapKey(msg)
	switch k {
	case KeyQuit:
		m.quitting = true
		return m, tea.Quit
	case KeyBack:
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.back = true
		return m, nil
	case KeyRecord:
		m.toggleRecording()
	case KeyPlayback:
		m.togglePlayback()
	default:
		if k.IsButton() {
			now := m.now()
			m.keys.Press(k, now)
			m.keys.Apply(&m.loop.Input().Keyboard, now)
		}
	}
	return m, nil
}

// handleTick runs one frame. The tick itself paces the loop, so the frame
// clock starts when it arrives.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.back || m.quitting {
		return m, nil
	}
	m.keys.Apply(&m.loop.Input().Keyboard, m.now())

	if err := m.loop.Step(m.ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			m.quitting = true
			return m, tea.Quit
		}
		m.logger.Error("frame failed", "error", err)
	}

	return m, tickCmd(m.loop.Hz())
}

func (m *Model) toggleRecording() {
	rec := m.loop.Recorder()
	if rec == nil {
		m.status = "recording disabled"
		return
	}
	if rec.Mode() == recording.Recording {
		m.stopRecording()
		return
	}
	if err := rec.StartRecording(); err != nil {
		m.logger.Warn("cannot start recording", "error", err)
		m.status = "record failed"
		return
	}
	m.status = "recording to " + rec.Path()
}

func (m *Model) togglePlayback() {
	rec := m.loop.Recorder()
	if rec == nil {
		m.status = "playback disabled"
		return
	}
	switch rec.Mode() {
	case recording.Playing:
		//nolint:errcheck // Mode was checked above.
		rec.Stop()
		m.status = "playback stopped"
		return
	case recording.Recording:
		m.stopRecording()
	}
	if err := rec.StartPlayback(); err != nil {
		m.logger.Warn("cannot start playback", "error", err)
		m.status = "nothing to play"
		return
	}
	m.status = "playing " + rec.Path()
}

// stopRecording closes the file and catalogues it.
func (m *Model) stopRecording() {
	rec := m.loop.Recorder()
	if err := rec.Stop(); err != nil {
		m.logger.Warn("cannot stop recording", "error", err)
	}
	m.status = fmt.Sprintf("recorded %d frames", rec.Frames())
	if m.store == nil || m.session.ID == "" {
		return
	}
	if _, err := m.store.SaveRecording(m.session.ID, rec.Path(), rec.Frames()); err != nil {
		m.logger.Warn("recording not catalogued", "error", err)
	}
}

// Finish stops any recording and closes the session row. It is called once
// the model is done, after the program exits or on back-to-menu.
func (m Model) Finish() {
	if rec := m.loop.Recorder(); rec != nil {
		switch rec.Mode() {
		case recording.Recording:
			m.stopRecording()
		case recording.Playing:
			//nolint:errcheck // Nothing to save after a playback.
			rec.Stop()
		}
	}
	if m.store == nil || m.session.ID == "" {
		return
	}
	state := m.loop.State()
	if err := m.store.FinishSession(m.session.ID, state.Frame, state.CurrentMap.String()); err != nil {
		m.logger.Warn("session not closed", "error", err)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// View renders the current frame and a status line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	frame := m.presenter.Render(m.loop.Buffer(), m.width, max(m.height-1, 1))
	return frame + "\n" + statusStyle.Render(m.statusLine())
}

func (m Model) statusLine() string {
	state := m.loop.State()
	mode := recording.None
	if rec := m.loop.Recorder(); rec != nil {
		mode = rec.Mode()
	}
	line := fmt.Sprintf("%s  map %s  frame %d  %s", m.loop.App().Title(), state.CurrentMap, state.Frame, mode)
	if m.status != "" {
		line += "  | " + m.status
	}
	return line
}

// Run starts the Bubble Tea program for l and closes the session when it
// exits. A cancelled ctx ends the program without error.
func Run(ctx context.Context, l *loop.Loop, opts GameOptions) error {
	model := NewModel(ctx, l, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Finish()
	} else {
		model.Finish()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
