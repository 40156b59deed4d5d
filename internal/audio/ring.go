package audio

import (
	"errors"
	"math"
	"sync"
)

// ErrMisaligned is returned for a write offset that splits a stereo sample.
var ErrMisaligned = errors.New("audio: offset is not sample aligned")

// RingBuffer is a software sound buffer. A consumer drains it from the play
// cursor; the write cursor runs one hardware chunk ahead of it, the region a
// sound card would already have committed.
//
// It implements Device for the writer and beep.Streamer for the speaker.
type RingBuffer struct {
	mu      sync.Mutex
	samples []StereoSample
	play    int
	chunk   int
	// played counts every sample consumed since creation.
	played uint64
}

// NewRingBuffer allocates a buffer of length samples whose write cursor
// leads the play cursor by chunk samples.
func NewRingBuffer(length, chunk int) *RingBuffer {
	if length < 1 {
		length = 1
	}
	chunk = max(0, min(chunk, length-1))
	return &RingBuffer{
		samples: make([]StereoSample, length),
		chunk:   chunk,
	}
}

// Size returns the buffer length in bytes.
func (r *RingBuffer) Size() uint32 {
	return uint32(len(r.samples) * BytesPerSample)
}

// Cursors returns the play and write cursors in bytes.
func (r *RingBuffer) Cursors() (play, write uint32, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := (r.play + r.chunk) % len(r.samples)
	return uint32(r.play * BytesPerSample), uint32(w * BytesPerSample), nil
}

// Write copies samples in starting at a byte offset, wrapping at the end.
func (r *RingBuffer) Write(offset uint32, samples []StereoSample) error {
	if offset%BytesPerSample != 0 {
		return ErrMisaligned
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	pos := int(offset/BytesPerSample) % len(r.samples)
	for len(samples) > 0 {
		n := copy(r.samples[pos:], samples)
		samples = samples[n:]
		pos = 0
	}
	return nil
}

// Stream drains samples from the play cursor as floats in [-1, 1].
// Consumed slots are zeroed so a stalled writer plays silence.
func (r *RingBuffer) Stream(out [][2]float64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range out {
		s := r.samples[r.play]
		r.samples[r.play] = StereoSample{}
		out[i][0] = float64(s.Left) / -math.MinInt16
		out[i][1] = float64(s.Right) / -math.MinInt16
		r.play = (r.play + 1) % len(r.samples)
	}
	r.played += uint64(len(out))
	return len(out), true
}

// Err always returns nil; the buffer never ends.
func (r *RingBuffer) Err() error {
	return nil
}

// Advance moves the play cursor by n samples without producing output.
// It stands in for a device clock when no speaker is attached.
func (r *RingBuffer) Advance(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < n; i++ {
		r.samples[r.play] = StereoSample{}
		r.play = (r.play + 1) % len(r.samples)
	}
	r.played += uint64(n)
}

// Played returns the number of samples consumed so far.
func (r *RingBuffer) Played() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.played
}

// Snapshot copies the buffer contents for inspection.
func (r *RingBuffer) Snapshot() []StereoSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]StereoSample(nil), r.samples...)
}
