// Package game holds the state shared by every application and the movement
// helpers they are built from. Nothing here does I/O.
package game

import (
	"time"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/world"
)

// DefaultMaxSpeed is the player speed in pixels per second.
const DefaultMaxSpeed = 128

// State is everything that survives between frames. The platform owns it and
// hands it to the application each frame, so an application can be replaced
// without losing the session. All fields are fixed-size so the state can be
// written to recordings wholesale.
type State struct {
	Width, Height uint16
	Sound         audio.SoundState

	// Player is the viewport position of the player's feet, used by
	// applications that navigate between fixed maps.
	Player core.Point2D
	// Coordinate is the world position, used by applications on an unbounded world.
	Coordinate world.Coordinate
	CurrentMap world.TileMapKey

	ScrollX, ScrollY uint16
	JumpTime         float64
	MaxSpeed         float64

	// FrameDuration is the wall-clock length of the previous frame.
	FrameDuration time.Duration
	Frame         uint64
}

// NewState returns defaults for a viewport of the given size.
func NewState(width, height int) State {
	return State{
		Width:         clampU16(width),
		Height:        clampU16(height),
		Sound:         audio.NewSoundState(),
		MaxSpeed:      DefaultMaxSpeed,
		FrameDuration: time.Second / 30,
	}
}

// Viewport returns the window rectangle in y-up pixels.
func (s *State) Viewport() core.Rectangle {
	return core.NewRect(0, 0, float64(s.Height), float64(s.Width))
}

// Resize changes the viewport, keeping the player inside it.
func (s *State) Resize(width, height int) {
	s.Width = clampU16(width)
	s.Height = clampU16(height)
	s.Player.X = core.ClampF(s.Player.X, 0, float64(s.Width))
	s.Player.Y = core.ClampF(s.Player.Y, 0, float64(s.Height))
}

// Speed returns the distance the player may travel this frame.
func (s *State) Speed() float64 {
	return s.FrameDuration.Seconds() * s.MaxSpeed
}

func clampU16(v int) uint16 {
	return uint16(core.Clamp(v, 0, 0xFFFF))
}
