package tui

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
	"github.com/vovakirdan/tile-hero/internal/loop"
	"github.com/vovakirdan/tile-hero/internal/recording"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/render"
	"github.com/vovakirdan/tile-hero/internal/storage"
)

// walkApp moves the player one pixel right per frame while Right is held.
type walkApp struct{}

func (walkApp) ID() string    { return "walk" }
func (walkApp) Title() string { return "Walk" }

func (walkApp) Initialize(state *game.State) error {
	state.Resize(8, 4)
	return nil
}

func (walkApp) ProcessInput(in *core.InputState, state *game.State) {
	if in.Keyboard.Right.EndedDown {
		state.Player.X++
	}
}

func (walkApp) Render(_ *core.InputState, _ *game.State, dst *render.Buffer) {
	dst.Fill(core.ColorGrey)
}

func (walkApp) WriteSound(*game.State, []audio.StereoSample) {}

func init() {
	registry.Register("walk", func() registry.Application { return walkApp{} })
}

type modelHarness struct {
	t     *testing.T
	model Model
	now   time.Time
	store *storage.Store
}

func newHarness(t *testing.T) *modelHarness {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.Open(filepath.Join(dir, "tui.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	l, err := loop.New(walkApp{}, loop.Options{
		Config:   core.DefaultConfig(),
		Recorder: recording.New(filepath.Join(dir, "walk.rec")),
	})
	if err != nil {
		t.Fatalf("loop.New() failed: %v", err)
	}

	h := &modelHarness{t: t, now: time.Unix(1000, 0), store: store}
	h.model = NewModel(context.Background(), l, GameOptions{
		Store:      store,
		User:       "tester",
		HoldWindow: 100 * time.Millisecond,
		Renderer:   lipgloss.NewRenderer(io.Discard),
	})
	h.model.now = func() time.Time { return h.now }
	return h
}

func (h *modelHarness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update() returned %T", next)
	}
	h.model = m
	return cmd
}

func (h *modelHarness) tick(advance time.Duration) {
	h.now = h.now.Add(advance)
	if cmd := h.send(TickMsg(h.now)); cmd == nil {
		h.t.Fatal("tick did not schedule the next tick")
	}
}

func TestModelHoldsKeysAcrossTicks(t *testing.T) {
	h := newHarness(t)
	state := h.model.loop.State()

	h.send(runeKey("d"))
	h.tick(0)
	if state.Player.X != 1 {
		t.Fatalf("Player.X = %v, expected 1", state.Player.X)
	}

	h.tick(50 * time.Millisecond)
	if state.Player.X != 2 {
		t.Errorf("Player.X = %v, expected the key to be held", state.Player.X)
	}

	h.tick(100 * time.Millisecond)
	if state.Player.X != 2 {
		t.Errorf("Player.X = %v, expected the key to be released", state.Player.X)
	}
	if state.Frame != 3 {
		t.Errorf("Frame = %d, expected 3", state.Frame)
	}
}

// stepClock is moved by the test only.
type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Sleep(ctx context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	return ctx.Err()
}

func TestModelTickStartsFrameClock(t *testing.T) {
	clock := &stepClock{now: time.Unix(1000, 0)}
	l, err := loop.New(walkApp{}, loop.Options{
		Config: core.DefaultConfig(),
		Audio:  audio.SilentWithChunk(48000, time.Second, 5*time.Millisecond, nil),
		Clock:  clock,
	})
	if err != nil {
		t.Fatalf("loop.New() failed: %v", err)
	}
	m := NewModel(context.Background(), l, GameOptions{Renderer: lipgloss.NewRenderer(io.Discard)})
	m.now = clock.Now

	interval := time.Second/time.Duration(l.Hz()) + 2*time.Millisecond
	for i := 0; i < 5; i++ {
		clock.now = clock.now.Add(interval)
		next, cmd := m.Update(TickMsg(clock.now))
		m = next.(Model)
		if cmd == nil {
			t.Fatal("tick did not schedule the next tick")
		}
		if l.Writer().Latent() {
			t.Errorf("tick %d: audio fill was latent at the start of the frame", i)
		}
		if l.State().FrameDuration != interval {
			t.Errorf("tick %d: FrameDuration = %v, expected %v", i, l.State().FrameDuration, interval)
		}
	}
}

func TestModelRecordingIsCatalogued(t *testing.T) {
	h := newHarness(t)

	h.send(runeKey("r"))
	if h.model.loop.Recorder().Mode() != recording.Recording {
		t.Fatal("r should start recording")
	}
	h.tick(0)
	h.tick(0)
	h.send(runeKey("r"))

	if h.model.loop.Recorder().Mode() != recording.None {
		t.Fatal("second r should stop recording")
	}
	if h.model.status != "recorded 2 frames" {
		t.Errorf("status = %q", h.model.status)
	}

	recs, err := h.store.Recordings(h.model.session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Frames != 2 {
		t.Errorf("Recordings() = %+v, expected one with 2 frames", recs)
	}

	h.send(runeKey("p"))
	if h.model.loop.Recorder().Mode() != recording.Playing {
		t.Error("p should start playback of the recording")
	}
	h.send(runeKey("p"))
	if h.model.loop.Recorder().Mode() != recording.None {
		t.Error("second p should stop playback")
	}
}

func TestModelFinishClosesSession(t *testing.T) {
	h := newHarness(t)
	h.tick(0)
	h.tick(0)

	cmd := h.send(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	h.model.Finish()

	sess, err := h.store.SessionByID(h.model.session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sess.AppID != "walk" || sess.User != "tester" {
		t.Errorf("session = %+v", sess)
	}
	if sess.Frames != 2 || sess.EndedAt.IsZero() {
		t.Errorf("session not finished: %+v", sess)
	}
}

func TestModelBackToMenu(t *testing.T) {
	h := newHarness(t)

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.model.BackToMenu() {
		t.Fatal("esc should go back to the menu")
	}
	if cmd := h.send(TickMsg(h.now)); cmd != nil {
		t.Error("ticks should stop after back")
	}

	h = newHarness(t)
	h.model.standalone = true
	if cmd := h.send(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil || !h.model.IsQuitting() {
		t.Error("esc should quit a standalone game")
	}
}

func TestModelView(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 8, Height: 3})
	h.tick(0)

	view := h.model.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 3 {
		t.Fatalf("view has %d lines, expected 2 frame rows and a status line", len(lines))
	}
	if !strings.Contains(lines[2], "Walk") || !strings.Contains(lines[2], "frame 1") {
		t.Errorf("status line = %q", lines[2])
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(80, 24)

	walk := -1
	for i, item := range m.items {
		if item.AppID == "walk" {
			walk = i
		}
	}
	if walk < 0 {
		t.Fatal("registered application missing from the menu")
	}
	m.cursor = walk

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().AppID != "walk" {
		t.Errorf("Selected() = %v, expected walk", m.Selected())
	}
	if cmd == nil {
		t.Error("selecting should exit the menu")
	}
}

func TestMenuSessionsAndQuit(t *testing.T) {
	m := NewMenuModel(80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsSessions() {
		t.Error("tab should open the sessions board")
	}

	next, _ = m.Update(runeKey("q"))
	if !next.(MenuModel).IsQuitting() {
		t.Error("q should quit the menu")
	}
}

func TestSessionsFilter(t *testing.T) {
	h := newHarness(t)
	if _, err := h.store.StartSession("other", ""); err != nil {
		t.Fatal(err)
	}

	board := NewSessionsModel(h.store, 100, 30)
	if len(board.Visible()) != 2 {
		t.Fatalf("All shows %d sessions, expected 2", len(board.Visible()))
	}

	for board.filters[board.cursor].ID != "walk" {
		next, _ := board.Update(tea.KeyMsg{Type: tea.KeyTab})
		board = next.(SessionsModel)
	}
	visible := board.Visible()
	if len(visible) != 1 || visible[0].AppID != "walk" {
		t.Errorf("walk filter = %+v", visible)
	}

	next, _ := board.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(SessionsModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
