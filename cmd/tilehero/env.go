package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/config"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/loop"
	"github.com/vovakirdan/tile-hero/internal/recording"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/storage"
	"github.com/vovakirdan/tile-hero/internal/world"
)

// env is what every subcommand shares: settings after flag overrides and
// the logger.
type env struct {
	settings config.Settings
	logger   *log.Logger
	logFile  *os.File
}

// setup loads settings and builds the logger. While a terminal UI owns the
// screen, logs go to ~/.tilehero/tilehero.log instead of stderr.
func setup(logToFile bool) (*env, error) {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		settings.Storage.Path = flagDBPath
	}
	if flagHz > 0 {
		settings.Display.RefreshHz = flagHz
	}

	e := &env{settings: settings}

	var w io.Writer = os.Stderr
	if logToFile {
		dir := config.Dir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", dir, err)
		}
		f, err := os.OpenFile(filepath.Join(dir, "tilehero.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		e.logFile = f
		w = f
	}

	e.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilehero",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("bad --log-level: %w", err)
	}
	e.logger.SetLevel(level)

	levels, err := config.ExpandHome(settings.World.Levels)
	if err != nil {
		e.Close()
		return nil, err
	}
	world.SetLevelsPath(levels)

	return e, nil
}

// Close releases the log file.
func (e *env) Close() {
	if e.logFile != nil {
		e.logFile.Close()
		e.logFile = nil
	}
}

func (e *env) runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ViewWidth:  e.settings.Display.Width,
		ViewHeight: e.settings.Display.Height,
		RefreshHz:  e.settings.Display.RefreshHz,
	}
}

func (e *env) sound() audio.SoundState {
	s := audio.NewSoundState()
	s.Hertz = e.settings.Audio.Hertz
	s.Volume = e.settings.Audio.Volume
	s.SamplesPerSecond = uint32(e.settings.Audio.SamplesPerSecond)
	return s
}

// openStore opens the session database. Failure is only logged; worlds
// still run without a catalog.
func (e *env) openStore() *storage.Store {
	store, err := storage.Open(e.settings.Storage.Path)
	if err != nil {
		e.logger.Warn("could not open session database", "error", err)
		return nil
	}
	return store
}

// recorder returns a recorder for the configured recording path.
func (e *env) recorder() (*recording.Recorder, error) {
	path, err := config.ExpandHome(e.settings.Recording.Path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create recording directory: %w", err)
	}
	return recording.New(path), nil
}

// newLoop creates appID and its loop. The returned output is nil when audio
// is off; the caller closes it.
func (e *env) newLoop(appID string, withAudio bool, rec *recording.Recorder) (*loop.Loop, *audio.Output, error) {
	app, err := registry.Create(appID)
	if err != nil {
		return nil, nil, err
	}

	sound := e.sound()
	var out *audio.Output
	if withAudio {
		out = audio.Open(sound.SamplesPerSecond, e.settings.Audio.Buffer, e.logger)
	}

	l, err := loop.New(app, loop.Options{
		Config:   e.runtime(),
		MaxSpeed: e.settings.Player.MaxSpeed,
		Sound:    &sound,
		Audio:    out,
		Recorder: rec,
		Logger:   e.logger,
	})
	if err != nil {
		if out != nil {
			out.Close()
		}
		return nil, nil, err
	}
	return l, out, nil
}

// terminalSize probes stdout. It fails when stdout is not a terminal.
func terminalSize() (width, height int, err error) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, fmt.Errorf("stdout is not a terminal")
	}
	return term.GetSize(fd)
}
