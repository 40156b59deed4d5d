// Package loop sequences one frame: input, process, render, sound, then
// pacing and present. Everything runs on the caller's goroutine.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
	"github.com/vovakirdan/tile-hero/internal/recording"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/render"
)

// Options configures a Loop. Audio, Sound and Recorder are optional.
type Options struct {
	Config   core.RuntimeConfig
	MaxSpeed float64
	Sound    *audio.SoundState // Replaces the default tone settings
	Audio    *audio.Output
	Recorder *recording.Recorder
	Clock    Clock
	Logger   *log.Logger
}

// Loop owns the state that survives between frames.
type Loop struct {
	app    registry.Application
	state  *game.State
	input  core.InputState
	buffer *render.Buffer

	output   *audio.Output
	writer   *audio.Writer
	recorder *recording.Recorder
	pacer    *Pacer
	hz       int
	logger   *log.Logger
}

// New initializes app and sizes the pixel buffer to the viewport it chose.
func New(app registry.Application, opts Options) (*Loop, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if cfg.ViewWidth <= 0 || cfg.ViewHeight <= 0 {
		def := core.DefaultConfig()
		cfg.ViewWidth, cfg.ViewHeight = def.ViewWidth, def.ViewHeight
	}

	state := game.NewState(cfg.ViewWidth, cfg.ViewHeight)
	if opts.MaxSpeed > 0 {
		state.MaxSpeed = opts.MaxSpeed
	}
	state.FrameDuration = cfg.FrameDuration()
	if opts.Sound != nil {
		state.Sound = *opts.Sound
	}
	if err := app.Initialize(&state); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", app.ID(), err)
	}

	l := &Loop{
		app:      app,
		state:    &state,
		input:    core.NewInputState(),
		buffer:   render.NewBuffer(int(state.Width), int(state.Height)),
		output:   opts.Audio,
		recorder: opts.Recorder,
		pacer:    NewPacer(cfg.GameHz(), opts.Clock, logger),
		hz:       cfg.GameHz(),
		logger:   logger,
	}
	if l.output != nil {
		l.writer = audio.NewWriter(l.output.Ring, state.Sound, cfg.GameHz(), logger)
	}
	logger.Info("loop ready", "app", app.ID(), "width", state.Width, "height", state.Height, "hz", cfg.GameHz())
	return l, nil
}

// App returns the running application.
func (l *Loop) App() registry.Application { return l.app }

// State returns the game state.
func (l *Loop) State() *game.State { return l.state }

// Input returns the snapshot the platform fills before each Frame.
func (l *Loop) Input() *core.InputState { return &l.input }

// Buffer returns the pixel buffer of the last rendered frame.
func (l *Loop) Buffer() *render.Buffer { return l.buffer }

// Pacer returns the frame pacer.
func (l *Loop) Pacer() *Pacer { return l.pacer }

// Hz returns the game update rate.
func (l *Loop) Hz() int { return l.hz }

// Writer returns the audio writer, which is nil without an output.
func (l *Loop) Writer() *audio.Writer { return l.writer }

// Recorder returns the recorder, which may be nil.
func (l *Loop) Recorder() *recording.Recorder { return l.recorder }

// Frame runs one frame: record or play back, process input, render and fill
// audio. Audio failures only skip this frame's sound. A cancelled context
// stops the frame before any work.
func (l *Loop) Frame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if l.recorder != nil {
		if err := l.recorder.Apply(&l.input, l.state); err != nil {
			l.logger.Warn("recording stopped", "error", err)
			//nolint:errcheck // Already failing; the session keeps running.
			l.recorder.Stop()
		}
	}

	l.app.ProcessInput(&l.input, l.state)
	l.app.Render(&l.input, l.state, l.buffer)

	if l.writer != nil {
		_, err := l.writer.Fill(l.pacer.Remaining(), func(samples []audio.StereoSample) {
			l.app.WriteSound(l.state, samples)
		})
		if err != nil {
			l.logger.Debug("audio skipped", "error", err)
		}
	}

	l.state.Frame++
	l.input = l.input.Next()
	return nil
}

// EndFrame records the measured frame time for the next frame's movement
// and advances a silent audio device by it.
func (l *Loop) EndFrame() {
	d := l.pacer.Mark()
	if d > 0 {
		l.state.FrameDuration = d
	}
	if l.output != nil {
		l.output.Sync(d)
	}
}

// Step runs one frame for a platform woken by its own timer. The frame
// starts when Step is called: the time since the previous Step becomes the
// frame duration, and the audio target is measured from this moment.
func (l *Loop) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.EndFrame()
	return l.Frame(ctx)
}

// Run drives frames until ctx is cancelled, waiting out each frame before
// handing the buffer to present. A present error ends the loop.
func (l *Loop) Run(ctx context.Context, present func(*render.Buffer) error) error {
	for {
		if err := l.Frame(ctx); err != nil {
			return ignoreCancel(err)
		}
		if err := l.pacer.Wait(ctx); err != nil {
			return ignoreCancel(err)
		}
		if present != nil {
			if err := present(l.buffer); err != nil {
				return fmt.Errorf("present: %w", err)
			}
		}
		l.EndFrame()
	}
}

// RunFrames drives exactly n frames without pacing, as fast as possible.
func (l *Loop) RunFrames(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := l.Frame(ctx); err != nil {
			return ignoreCancel(err)
		}
	}
	return nil
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
