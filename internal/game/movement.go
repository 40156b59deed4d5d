package game

import (
	"math"

	"github.com/vovakirdan/tile-hero/internal/core"
)

// JumpDecay is how much JumpTime falls each frame.
const JumpDecay = 0.033

// Tone mapping for the first enabled controller.
const (
	BaseHertz  = 512
	HertzRange = 256
)

// Delta returns the unit movement direction for this frame. Keyboard arrows
// win; only when they cancel out or are idle does the first enabled
// controller's left stick drive movement. The result is y-up.
func Delta(in *core.InputState) core.Point2D {
	if d := digitalDelta(&in.Keyboard); d != (core.Point2D{}) {
		return d
	}
	c := FirstController(in)
	if c == nil {
		return core.Point2D{}
	}
	if d := digitalDelta(c); d != (core.Point2D{}) {
		return d
	}
	return core.Point2D{X: c.LeftStick.X, Y: c.LeftStick.Y}
}

func digitalDelta(c *core.ControllerState) core.Point2D {
	var d core.Point2D
	if c.Left.EndedDown {
		d.X--
	}
	if c.Right.EndedDown {
		d.X++
	}
	if c.Up.EndedDown {
		d.Y++
	}
	if c.Down.EndedDown {
		d.Y--
	}
	return d
}

// FirstController returns the lowest enabled controller slot, or nil.
func FirstController(in *core.InputState) *core.ControllerState {
	for i := range in.Controllers {
		if in.Controllers[i].Enabled {
			return &in.Controllers[i]
		}
	}
	return nil
}

// JumpPressed reports an A press on the keyboard or any enabled controller.
func JumpPressed(in *core.InputState) bool {
	if in.Keyboard.A.EndedDown {
		return true
	}
	for i := range in.Controllers {
		c := &in.Controllers[i]
		if c.Enabled && c.A.EndedDown {
			return true
		}
	}
	return false
}

// UpdateJump starts a jump when pressed and idle, otherwise decays it.
func (s *State) UpdateJump(pressed bool) {
	if pressed && s.JumpTime == 0 {
		s.JumpTime = 1
		return
	}
	s.JumpTime = math.Max(0, s.JumpTime-JumpDecay)
}

// JumpOffset is the cosmetic vertical displacement for the current jump.
func (s *State) JumpOffset(amplitude float64) float64 {
	return math.Sin(s.JumpTime*2*math.Pi) * amplitude
}

// UpdateTone lets the first enabled controller bend the tone. The d-pad
// overrides the left stick; the keyboard leaves hertz alone.
func (s *State) UpdateTone(in *core.InputState) {
	c := FirstController(in)
	if c == nil {
		return
	}
	left := c.LeftStick.Y
	switch {
	case c.Up.EndedDown:
		left = 1
	case c.Down.EndedDown:
		left = -1
	}
	mid := (left + c.RightStick.Y) / 2
	s.Sound.Hertz = BaseHertz + HertzRange*mid
}

// Scroll moves the cosmetic scroll offsets by a pixel displacement,
// rounded to whole pixels and wrapping on overflow.
func (s *State) Scroll(dx, dy float64) {
	s.ScrollX = uint16(int(s.ScrollX) + int(math.Round(dx)))
	s.ScrollY = uint16(int(s.ScrollY) + int(math.Round(dy)))
}
