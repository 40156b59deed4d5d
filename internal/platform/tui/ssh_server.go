package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/loop"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tilehero/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime, MaxSpeed and HoldWindow configure every session's loop.
	Runtime    core.RuntimeConfig
	MaxSpeed   float64
	HoldWindow time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
		HoldWindow:  DefaultHoldWindow,
	}
}

// SSHServer wraps a Wish SSH server. Each connection gets its own menu and
// loop; audio is never opened for remote sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. The store may be nil, in which case
// sessions are not catalogued.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".tilehero", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if err := os.MkdirAll(hostKeyDir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(sshSession.Context(), s, sshSession.User(), bubbletea.MakeRenderer(sshSession),
		pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// Serve runs the server until ctx is cancelled, then shuts it down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// newLoop builds a silent loop for appID.
func (s *SSHServer) newLoop(appID string) (*loop.Loop, error) {
	app, err := registry.Create(appID)
	if err != nil {
		return nil, err
	}
	return loop.New(app, loop.Options{
		Config:   s.config.Runtime,
		MaxSpeed: s.config.MaxSpeed,
		Logger:   s.logger,
	})
}

// SessionModel manages the full remote flow: menu -> game or sessions
// board -> menu. This is the top-level model used for SSH sessions.
type SessionModel struct {
	server   *SSHServer
	ctx      context.Context
	user     string
	renderer *lipgloss.Renderer
	width    int
	height   int

	menu     MenuModel
	sessions *SessionsModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(ctx context.Context, server *SSHServer, user string, renderer *lipgloss.Renderer, width, height int) SessionModel {
	return SessionModel{
		server:   server,
		ctx:      ctx,
		user:     user,
		renderer: renderer,
		width:    width,
		height:   height,
		menu:     NewMenuModel(width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.sessions != nil:
		return m.updateSessions(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsSessions():
		board := NewSessionsModel(m.server.store, m.width, m.height)
		m.sessions = &board
		return m, board.Init()

	case m.menu.Selected() != nil:
		l, err := m.server.newLoop(m.menu.Selected().AppID)
		if err != nil {
			m.server.logger.Error("cannot start world", "app", m.menu.Selected().AppID, "error", err)
			m.menu = NewMenuModel(m.width, m.height)
			return m, nil
		}
		game := NewModel(m.ctx, l, GameOptions{
			Store:      m.server.store,
			User:       m.user,
			HoldWindow: m.server.config.HoldWindow,
			Logger:     m.server.logger,
			Renderer:   m.renderer,
		})
		game.width, game.height = m.width, m.height
		m.game = &game
		return m, game.Init()
	}

	return m, cmd
}

// updateSessions handles updates while the sessions board is open.
func (m SessionModel) updateSessions(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.sessions.Update(msg)
	if board, ok := newBoard.(SessionsModel); ok {
		m.sessions = &board
	}

	switch {
	case m.sessions.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.sessions.IsGoingBack():
		m.sessions = nil
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.game.Finish()
		m.game = nil
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.game.Finish()
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.game != nil:
		return m.game.View()
	case m.sessions != nil:
		return m.sessions.View()
	}
	return m.menu.View()
}
