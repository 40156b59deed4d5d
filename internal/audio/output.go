package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerLatency is the hardware chunk the speaker pulls at a time.
const speakerLatency = 100 * time.Millisecond

var speakerOnce struct {
	sync.Once
	err error
}

// Output owns the ring buffer and, when available, the speaker draining it.
// Without a speaker the ring is advanced by wall-clock time so the writer
// still sees moving cursors.
type Output struct {
	Ring   *RingBuffer
	rate   beep.SampleRate
	live   bool
	logger *log.Logger
}

// Silent returns an output with no speaker attached. Its write cursor leads
// the play cursor by the speaker's chunk, as if a speaker were pulling.
func Silent(samplesPerSecond uint32, bufferDuration time.Duration, logger *log.Logger) *Output {
	return SilentWithChunk(samplesPerSecond, bufferDuration, speakerLatency, logger)
}

// SilentWithChunk is Silent for a device that commits chunk ahead of the
// play cursor.
func SilentWithChunk(samplesPerSecond uint32, bufferDuration, chunk time.Duration, logger *log.Logger) *Output {
	rate := beep.SampleRate(samplesPerSecond)
	return &Output{
		Ring:   NewRingBuffer(ringLength(rate, bufferDuration), rate.N(chunk)),
		rate:   rate,
		logger: logger,
	}
}

// Open starts the speaker. If the audio device cannot be opened the output
// runs silent and the error is only logged.
func Open(samplesPerSecond uint32, bufferDuration time.Duration, logger *log.Logger) *Output {
	out := Silent(samplesPerSecond, bufferDuration, logger)

	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(out.rate, out.rate.N(speakerLatency))
	})
	if speakerOnce.err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, running silent", "error", speakerOnce.err)
		}
		return out
	}

	speaker.Play(out.Ring)
	out.live = true
	if logger != nil {
		logger.Info("audio started", "rate", samplesPerSecond, "buffer", bufferDuration)
	}
	return out
}

// Live reports whether a speaker is draining the ring.
func (o *Output) Live() bool {
	return o.live
}

// Sync advances a silent ring by the time that passed in a frame.
func (o *Output) Sync(elapsed time.Duration) {
	if o.live || elapsed <= 0 {
		return
	}
	o.Ring.Advance(o.rate.N(elapsed))
}

// Close stops the speaker.
func (o *Output) Close() {
	if !o.live {
		return
	}
	speaker.Clear()
	o.live = false
}

func ringLength(rate beep.SampleRate, d time.Duration) int {
	if d <= 0 {
		d = time.Second
	}
	return max(rate.N(d), 2*rate.N(speakerLatency))
}
