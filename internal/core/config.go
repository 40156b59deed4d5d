package core

import "time"

// DefaultRefreshRate is assumed when the display refresh rate is unknown.
const DefaultRefreshRate = 60

// RuntimeConfig contains the viewport and timing parameters the platform
// hands to the game loop.
type RuntimeConfig struct {
	ViewWidth  int // Viewport width in pixels
	ViewHeight int // Viewport height in pixels
	RefreshHz  int // Display refresh rate; 0 or 1 means unknown
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ViewWidth:  960,
		ViewHeight: 540,
		RefreshHz:  DefaultRefreshRate,
	}
}

// GameHz returns the simulation rate: half the display refresh rate.
func (c RuntimeConfig) GameHz() int {
	return GameUpdateHz(c.RefreshHz)
}

// FrameDuration returns the target wall-clock duration of one frame.
func (c RuntimeConfig) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.GameHz())
}

// GameUpdateHz converts a reported refresh rate into the game update rate.
// Some drivers report 0 or 1 for "default"; those fall back to DefaultRefreshRate.
func GameUpdateHz(refreshHz int) int {
	if refreshHz <= 1 {
		refreshHz = DefaultRefreshRate
	}
	hz := refreshHz / 2
	if hz < 1 {
		hz = 1
	}
	return hz
}
