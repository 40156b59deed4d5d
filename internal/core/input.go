package core

import "math"

// MaxControllers is the number of controller slots in an InputState.
const MaxControllers = 4

// ButtonState is the state of one digital button at the end of a frame.
type ButtonState struct {
	EndedDown bool
	// HalfTransitions counts press and release edges since the previous frame.
	HalfTransitions uint16
}

// Set records the button's current level, counting an edge when it changes.
func (b *ButtonState) Set(down bool) {
	if b.EndedDown == down {
		return
	}
	b.EndedDown = down
	if b.HalfTransitions < math.MaxUint16 {
		b.HalfTransitions++
	}
}

// WentDown reports whether the button was pressed during this frame.
func (b ButtonState) WentDown() bool {
	return b.EndedDown && b.HalfTransitions > 0
}

// JoystickState holds normalized axis ratios in [-1, 1].
type JoystickState struct {
	X, Y float64
}

// JoystickFromRaw normalizes raw signed 16-bit stick axes with a dead zone.
func JoystickFromRaw(x, y, deadZone int16) JoystickState {
	return JoystickState{
		X: NormalizeAxis(x, deadZone),
		Y: NormalizeAxis(y, deadZone),
	}
}

// NormalizeAxis maps a raw stick value to [-1, 1]. Values inside the dead
// zone map to zero; the remaining range is rescaled so the edge of the dead
// zone starts at zero.
func NormalizeAxis(value, deadZone int16) float64 {
	v := float64(value)
	dz := math.Abs(float64(deadZone))
	switch {
	case math.Abs(v) <= dz:
		return 0
	case v < 0:
		return -((v + dz) / (math.MinInt16 + dz))
	default:
		return (v - dz) / (math.MaxInt16 - dz)
	}
}

// TriggerRatio maps a raw 8-bit trigger to [0, 1], ignoring values below threshold.
func TriggerRatio(value, threshold uint8) float64 {
	if value < threshold {
		return 0
	}
	return float64(value) / math.MaxUint8
}

// ControllerState is the snapshot of one input device for a frame.
// The keyboard is represented as a controller that is always enabled.
type ControllerState struct {
	Enabled bool

	A, B, X, Y                  ButtonState
	LeftShoulder, RightShoulder ButtonState
	Up, Down, Left, Right       ButtonState
	Start, Back                 ButtonState

	LeftStick, RightStick     JoystickState
	LeftTrigger, RightTrigger float64
}

func (c *ControllerState) buttons() [12]*ButtonState {
	return [12]*ButtonState{
		&c.A, &c.B, &c.X, &c.Y,
		&c.LeftShoulder, &c.RightShoulder,
		&c.Up, &c.Down, &c.Left, &c.Right,
		&c.Start, &c.Back,
	}
}

// Clear resets the controller to its zero state.
func (c *ControllerState) Clear() {
	*c = ControllerState{}
}

// MouseState is the cursor position in window pixels and its buttons.
type MouseState struct {
	X, Y                int32
	Left, Middle, Right ButtonState
}

// InputState is the full input snapshot handed to the game each frame.
type InputState struct {
	Keyboard    ControllerState
	Mouse       MouseState
	Controllers [MaxControllers]ControllerState
}

// NewInputState returns an empty snapshot with the keyboard enabled.
func NewInputState() InputState {
	var in InputState
	in.Keyboard.Enabled = true
	return in
}

// Controller returns the controller in slot i, marking it enabled.
// It returns nil for slots outside [0, MaxControllers).
func (in *InputState) Controller(i int) *ControllerState {
	if i < 0 || i >= MaxControllers {
		return nil
	}
	c := &in.Controllers[i]
	c.Enabled = true
	return c
}

// Next returns the snapshot that starts the following frame: button levels
// and analog values carry over, edge counts are reset.
func (in InputState) Next() InputState {
	next := in
	resetTransitions(&next.Keyboard)
	for i := range next.Controllers {
		resetTransitions(&next.Controllers[i])
	}
	next.Mouse.Left.HalfTransitions = 0
	next.Mouse.Middle.HalfTransitions = 0
	next.Mouse.Right.HalfTransitions = 0
	next.Keyboard.Enabled = true
	return next
}

func resetTransitions(c *ControllerState) {
	for _, b := range c.buttons() {
		b.HalfTransitions = 0
	}
}
