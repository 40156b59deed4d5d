package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q, expected 127.0.0.1:0", srv.Addr())
	}
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	srv := &SSHServer{
		config: DefaultSSHServerConfig(),
		logger: log.New(io.Discard),
	}
	return NewSessionModel(context.Background(), srv, "tester", lipgloss.NewRenderer(io.Discard), 80, 24)
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sm, cmd
}

func TestSessionModelGameAndBack(t *testing.T) {
	m := newTestSession(t)
	for i, item := range m.menu.items {
		if item.AppID == "walk" {
			m.menu.cursor = i
		}
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil {
		t.Fatal("enter should start the selected world")
	}
	if cmd == nil {
		t.Error("starting a world should schedule a tick")
	}
	if m.game.loop.App().ID() != "walk" {
		t.Errorf("world = %q, expected walk", m.game.loop.App().ID())
	}
	if m.View() == "" {
		t.Error("game view is empty")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.game != nil {
		t.Fatal("esc should return to the menu")
	}
	if m.quitting {
		t.Error("esc in a game should not end the session")
	}
}

func TestSessionModelSessionsBoard(t *testing.T) {
	m := newTestSession(t)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.sessions == nil {
		t.Fatal("tab should open the sessions board")
	}
	if len(m.sessions.Visible()) != 0 {
		t.Errorf("board without a store shows %d sessions", len(m.sessions.Visible()))
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.sessions != nil {
		t.Fatal("esc should close the board")
	}

	m, cmd := updateSession(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("view after quit should be empty")
	}
}
