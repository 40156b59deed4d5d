package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tilehero.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the hardcoded defaults, used when no file parses.
func DefaultSettings() Settings {
	return Settings{
		Display: DisplayConfig{
			Width:     960,
			Height:    540,
			RefreshHz: 60,
		},
		World: WorldConfig{
			App: "hub",
		},
		Player: PlayerConfig{
			MaxSpeed: 128,
		},
		Audio: AudioConfig{
			Enabled:          true,
			SamplesPerSecond: 48000,
			Hertz:            256,
			Volume:           500,
			Buffer:           time.Second,
		},
		Input: InputConfig{
			HoldWindow: 120 * time.Millisecond,
		},
		Recording: RecordingConfig{
			Path: "~/.tilehero/session.rec",
		},
		Storage: StorageConfig{
			Path: "~/.tilehero/tilehero.db",
		},
	}
}
