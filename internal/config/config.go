// Package config provides YAML-based settings for tile-hero: display and
// timing, the level file, player, audio, input, recording and storage.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned by Validate for settings that cannot run.
var ErrInvalid = errors.New("config: invalid settings")

// Settings is the full configuration file.
type Settings struct {
	Display   DisplayConfig   `yaml:"display"`
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Audio     AudioConfig     `yaml:"audio"`
	Input     InputConfig     `yaml:"input"`
	Recording RecordingConfig `yaml:"recording"`
	Storage   StorageConfig   `yaml:"storage"`
}

// DisplayConfig defines the viewport and refresh rate. The size applies to
// the overworld; the hub always sizes the viewport to its map.
type DisplayConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	RefreshHz int `yaml:"refresh_hz"` // 0 or 1 means unknown, 60 is assumed
}

// WorldConfig selects the level set and the default application.
type WorldConfig struct {
	Levels string `yaml:"levels"` // Empty uses the embedded level set
	App    string `yaml:"app"`
}

// PlayerConfig defines player movement.
type PlayerConfig struct {
	MaxSpeed float64 `yaml:"max_speed"` // Pixels per second
}

// AudioConfig defines the tone output.
type AudioConfig struct {
	Enabled          bool          `yaml:"enabled"`
	SamplesPerSecond int           `yaml:"samples_per_second"`
	Hertz            float64       `yaml:"hertz"`
	Volume           float64       `yaml:"volume"`
	Buffer           time.Duration `yaml:"buffer"`
}

// InputConfig defines how key events become button state.
type InputConfig struct {
	HoldWindow time.Duration `yaml:"hold_window"` // Terminals have no key-up events
}

// RecordingConfig defines where sessions are recorded.
type RecordingConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig defines the session database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Validate rejects sizes and rates that cannot run.
func (s Settings) Validate() error {
	switch {
	case s.Display.Width <= 0 || s.Display.Height <= 0:
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, s.Display.Width, s.Display.Height)
	case s.Display.RefreshHz < 0:
		return fmt.Errorf("%w: refresh_hz %d", ErrInvalid, s.Display.RefreshHz)
	case s.Player.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed %v", ErrInvalid, s.Player.MaxSpeed)
	case s.Audio.SamplesPerSecond <= 0:
		return fmt.Errorf("%w: samples_per_second %d", ErrInvalid, s.Audio.SamplesPerSecond)
	case s.Audio.Buffer <= 0:
		return fmt.Errorf("%w: audio buffer %v", ErrInvalid, s.Audio.Buffer)
	case s.Input.HoldWindow <= 0:
		return fmt.Errorf("%w: hold_window %v", ErrInvalid, s.Input.HoldWindow)
	}
	return nil
}
