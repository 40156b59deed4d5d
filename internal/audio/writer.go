package audio

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

//go:generate go tool mockgen -destination=./mocks/device_mock.go -package=mocks . Device

// Device is a circular sound buffer that plays on its own clock.
// Cursors and offsets are in bytes.
type Device interface {
	// Size returns the buffer length in bytes.
	Size() uint32
	// Cursors returns the current play and write cursors.
	Cursors() (play, write uint32, err error)
	// Write copies samples into the buffer starting at the byte offset,
	// wrapping at the end.
	Write(offset uint32, samples []StereoSample) error
}

// BytesPerFrame is the expected number of bytes the device plays during one
// game update.
func BytesPerFrame(samplesPerSecond, bytesPerSample uint32, gameHz int) uint32 {
	if gameHz <= 0 {
		return 0
	}
	return samplesPerSecond * bytesPerSample / uint32(gameHz)
}

// SafetyBytes is the margin kept past the write cursor: half a frame.
func SafetyBytes(samplesPerSecond, bytesPerSample uint32, gameHz int) uint32 {
	return BytesPerFrame(samplesPerSecond, bytesPerSample, gameHz) / 2
}

// RemainingRatio is the share of the target frame still left after elapsed,
// clamped to [0, 1].
func RemainingRatio(elapsed, target time.Duration) float64 {
	if target <= 0 {
		return 0
	}
	r := 1 - float64(elapsed)/float64(target)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// TargetCursor decides where this frame's audio should end.
//
// When the safe write position has already passed the predicted frame
// boundary the audio is latent and the target is one frame past the safe
// write position. Otherwise it is one frame past the boundary.
func TargetCursor(play, write, safety, bytesPerFrame, size uint32, remaining float64) (target uint32, latent bool) {
	safeWrite := uint64(write) + uint64(safety)
	if write < play {
		safeWrite += uint64(size)
	}
	boundary := uint64(play) + uint64(remaining*float64(bytesPerFrame))

	latent = safeWrite >= boundary
	var t uint64
	if latent {
		t = uint64(write) + uint64(safety) + uint64(bytesPerFrame)
	} else {
		t = boundary + uint64(bytesPerFrame)
	}
	if size > 0 {
		t %= uint64(size)
	}
	return uint32(t), latent
}

// BytesToWrite is the wrapped distance from offset up to target.
func BytesToWrite(offset, target, size uint32) uint32 {
	if offset > target {
		return size - offset + target
	}
	return target - offset
}

// Writer fills a Device once per frame, staying ahead of the play cursor
// without blocking on it.
type Writer struct {
	device         Device
	logger         *log.Logger
	bytesPerSample uint32
	bytesPerFrame  uint32
	safety         uint32

	sampleIndex uint64
	primed      bool
	latent      bool
	scratch     []StereoSample
}

// NewWriter prepares a writer for the given tone format and update rate.
func NewWriter(device Device, sound SoundState, gameHz int, logger *log.Logger) *Writer {
	bps := sound.BytesPerSample
	if bps == 0 {
		bps = BytesPerSample
	}
	return &Writer{
		device:         device,
		logger:         logger,
		bytesPerSample: bps,
		bytesPerFrame:  BytesPerFrame(sound.SamplesPerSecond, bps, gameHz),
		safety:         SafetyBytes(sound.SamplesPerSecond, bps, gameHz),
	}
}

// SafetyBytes returns the margin the writer keeps past the write cursor.
func (w *Writer) SafetyBytes() uint32 {
	return w.safety
}

// Latent reports whether the last fill found the device already past the
// frame boundary.
func (w *Writer) Latent() bool {
	return w.latent
}

// SampleIndex returns the running count of samples written.
func (w *Writer) SampleIndex() uint64 {
	return w.sampleIndex
}

// Fill asks synth for as many samples as the device needs this frame and
// copies them in. remaining is the share of the frame still left, see
// RemainingRatio. Nothing is synthesized when the device is already far
// enough ahead. A device failure skips the frame's audio.
func (w *Writer) Fill(remaining float64, synth func([]StereoSample)) (int, error) {
	play, write, err := w.device.Cursors()
	if err != nil {
		return 0, fmt.Errorf("audio: cannot read cursors: %w", err)
	}
	size := w.device.Size()
	if size == 0 {
		return 0, nil
	}
	if !w.primed {
		w.sampleIndex = uint64(write / w.bytesPerSample)
		w.primed = true
	}

	offset := uint32((w.sampleIndex * uint64(w.bytesPerSample)) % uint64(size))
	target, latent := TargetCursor(play, write, w.safety, w.bytesPerFrame, size, remaining)
	w.latent = latent
	bytes := BytesToWrite(offset, target, size)
	if bytes == 0 {
		return 0, nil
	}

	n := int(bytes / w.bytesPerSample)
	if cap(w.scratch) < n {
		w.scratch = make([]StereoSample, n)
	}
	samples := w.scratch[:n]
	clear(samples)
	synth(samples)

	if err := w.device.Write(offset, samples); err != nil {
		return 0, fmt.Errorf("audio: cannot write %d bytes at %d: %w", bytes, offset, err)
	}
	w.sampleIndex += uint64(n)

	if w.logger != nil {
		w.logger.Debug("audio fill",
			"play", play, "write", write, "offset", offset,
			"target", target, "bytes", bytes, "latent", latent)
	}
	return n, nil
}
