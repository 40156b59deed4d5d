package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tile-hero/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected Key
	}{
		{runeKey("w"), KeyUp},
		{tea.KeyMsg{Type: tea.KeyUp}, KeyUp},
		{runeKey("s"), KeyDown},
		{runeKey("a"), KeyLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, KeyRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, KeyJump},
		{runeKey("r"), KeyRecord},
		{runeKey("p"), KeyPlayback},
		{runeKey("q"), KeyQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, KeyQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, KeyBack},
		{runeKey("z"), KeyNone},
	}

	for _, tt := range tests {
		if got := km.MapKey(tt.msg); got != tt.expected {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestKeyIsButton(t *testing.T) {
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyJump} {
		if !k.IsButton() {
			t.Errorf("%v should be a button", k)
		}
	}
	for _, k := range []Key{KeyNone, KeyQuit, KeyBack, KeyRecord, KeyPlayback} {
		if k.IsButton() {
			t.Errorf("%v should not be a button", k)
		}
	}
}

func TestHeldKeysWindow(t *testing.T) {
	h := NewHeldKeys(100 * time.Millisecond)
	kb := core.NewInputState().Keyboard
	start := time.Unix(100, 0)

	h.Press(KeyRight, start)
	h.Apply(&kb, start)
	if !kb.Right.EndedDown || kb.Right.HalfTransitions != 1 {
		t.Fatalf("Right = %+v, expected pressed with one edge", kb.Right)
	}

	// Autorepeat keeps the key down without new edges.
	h.Press(KeyRight, start.Add(60*time.Millisecond))
	h.Apply(&kb, start.Add(120*time.Millisecond))
	if !kb.Right.EndedDown || kb.Right.HalfTransitions != 1 {
		t.Errorf("Right = %+v, expected still held", kb.Right)
	}

	h.Apply(&kb, start.Add(160*time.Millisecond))
	if kb.Right.EndedDown || kb.Right.HalfTransitions != 2 {
		t.Errorf("Right = %+v, expected released after the window", kb.Right)
	}
	if kb.Left.EndedDown || kb.Left.HalfTransitions != 0 {
		t.Errorf("Left = %+v, expected untouched", kb.Left)
	}
}

func TestHeldKeysIgnoresCommands(t *testing.T) {
	h := NewHeldKeys(time.Second)
	now := time.Unix(0, 0)
	h.Press(KeyQuit, now)
	if h.Held(KeyQuit, now) {
		t.Error("command keys should never be held")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionSessions},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
