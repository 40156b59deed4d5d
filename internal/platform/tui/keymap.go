package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-hero/internal/core"
)

// Key is a platform key after mapping, either a keyboard button or a
// platform command.
type Key int

const (
	KeyNone Key = iota

	// Buttons of the keyboard controller.
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyJump

	// Platform commands.
	KeyQuit
	KeyBack
	KeyRecord
	KeyPlayback
)

// numButtons bounds the button keys, which come first.
const numButtons = int(KeyJump) + 1

// IsButton reports whether k drives a keyboard button.
func (k Key) IsButton() bool {
	return k > KeyNone && int(k) < numButtons
}

// KeyMapper translates Bubble Tea key messages to platform keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Key {
	switch msg.String() {
	case "ctrl+c", "q":
		return KeyQuit
	case "esc", "b":
		return KeyBack
	case "w", "up":
		return KeyUp
	case "s", "down":
		return KeyDown
	case "a", "left":
		return KeyLeft
	case "d", "right":
		return KeyRight
	case " ":
		return KeyJump
	case "r":
		return KeyRecord
	case "p":
		return KeyPlayback
	}
	return KeyNone
}

// button returns the keyboard button bound to k.
func button(kb *core.ControllerState, k Key) *core.ButtonState {
	switch k {
	case KeyUp:
		return &kb.Up
	case KeyDown:
		return &kb.Down
	case KeyLeft:
		return &kb.Left
	case KeyRight:
		return &kb.Right
	case KeyJump:
		return &kb.A
	}
	return nil
}

// HeldKeys emulates key-up events for terminals, which only report presses.
// A key counts as held for window after its last press or autorepeat.
type HeldKeys struct {
	window time.Duration
	last   [numButtons]time.Time
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	return &HeldKeys{window: window}
}

// Press records a press of k at now. Command keys are ignored.
func (h *HeldKeys) Press(k Key, now time.Time) {
	if !k.IsButton() {
		return
	}
	h.last[k] = now
}

// Held reports whether k is down at now.
func (h *HeldKeys) Held(k Key, now time.Time) bool {
	if !k.IsButton() || h.last[k].IsZero() {
		return false
	}
	return now.Sub(h.last[k]) < h.window
}

// Apply writes the held levels into the keyboard controller. Edges are
// counted by ButtonState.Set.
func (h *HeldKeys) Apply(kb *core.ControllerState, now time.Time) {
	for k := KeyUp; int(k) < numButtons; k++ {
		button(kb, k).Set(h.Held(k, now))
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionSessions
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionSessions
	}
	return MenuActionNone
}
