package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Clock abstracts wall time so pacing can be tested.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pacer holds each frame to a target duration.
type Pacer struct {
	target time.Duration
	clock  Clock
	logger *log.Logger
	start  time.Time
}

// NewPacer paces frames at hz updates per second.
func NewPacer(hz int, clock Clock, logger *log.Logger) *Pacer {
	if hz < 1 {
		hz = 1
	}
	if clock == nil {
		clock = SystemClock
	}
	return &Pacer{
		target: time.Second / time.Duration(hz),
		clock:  clock,
		logger: logger,
		start:  clock.Now(),
	}
}

// Target returns the frame duration the pacer aims for.
func (p *Pacer) Target() time.Duration {
	return p.target
}

// Elapsed returns the time spent in the current frame.
func (p *Pacer) Elapsed() time.Duration {
	return p.clock.Now().Sub(p.start)
}

// Remaining returns the share of the target frame still left, in [0, 1].
func (p *Pacer) Remaining() float64 {
	elapsed := p.Elapsed()
	if p.target <= 0 || elapsed >= p.target {
		return 0
	}
	return 1 - float64(elapsed)/float64(p.target)
}

// Wait sleeps out the rest of the frame. A frame that already ran long does
// not wait.
func (p *Pacer) Wait(ctx context.Context) error {
	left := p.target - p.Elapsed()
	if left <= 0 {
		return ctx.Err()
	}
	return p.clock.Sleep(ctx, left)
}

// Mark ends the frame and starts the next one. It returns the measured
// frame duration.
func (p *Pacer) Mark() time.Duration {
	now := p.clock.Now()
	d := now.Sub(p.start)
	p.start = now

	if p.logger != nil && d > 0 {
		p.logger.Debug("frame",
			"ms_per_frame", float64(d)/float64(time.Millisecond),
			"fps", float64(time.Second)/float64(d))
	}
	return d
}
