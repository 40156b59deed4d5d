package audio_test

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/audio/mocks"
)

const ringBytes = 192000

func TestTargetCursorLatent(t *testing.T) {
	target, latent := audio.TargetCursor(1000, 1050, 200, 800, ringBytes, 0)

	if !latent {
		t.Error("expected latent audio when the frame is used up")
	}
	if target != 2050 {
		t.Errorf("target = %d, expected 2050", target)
	}
}

func TestTargetCursor(t *testing.T) {
	tests := []struct {
		name        string
		play, write uint32
		safety, bpf uint32
		size        uint32
		remaining   float64
		target      uint32
		latent      bool
	}{
		{"on schedule", 1000, 1050, 200, 800, ringBytes, 1, 2600, false},
		{"half frame left", 1000, 1050, 200, 800, ringBytes, 0.5, 2200, false},
		{"quarter frame left", 1000, 1050, 200, 800, ringBytes, 0.25, 2050, true},
		{"wrapped write cursor", 9000, 100, 200, 800, 10000, 1, 1100, true},
		{"target wraps", 9000, 9500, 200, 800, 10000, 0, 500, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target, latent := audio.TargetCursor(tc.play, tc.write, tc.safety, tc.bpf, tc.size, tc.remaining)
			if target != tc.target || latent != tc.latent {
				t.Errorf("TargetCursor() = (%d, %v), expected (%d, %v)", target, latent, tc.target, tc.latent)
			}
		})
	}
}

func TestBytesToWrite(t *testing.T) {
	if got := audio.BytesToWrite(100, 900, 1000); got != 800 {
		t.Errorf("BytesToWrite(100, 900) = %d, expected 800", got)
	}
	if got := audio.BytesToWrite(900, 100, 1000); got != 200 {
		t.Errorf("BytesToWrite(900, 100) = %d, expected 200", got)
	}
	if got := audio.BytesToWrite(500, 500, 1000); got != 0 {
		t.Errorf("BytesToWrite(500, 500) = %d, expected 0", got)
	}
}

func TestSafetyBytes(t *testing.T) {
	if got := audio.BytesPerFrame(48000, 4, 30); got != 6400 {
		t.Errorf("BytesPerFrame() = %d, expected 6400", got)
	}
	if got := audio.SafetyBytes(48000, 4, 30); got != 3200 {
		t.Errorf("SafetyBytes() = %d, expected 3200", got)
	}
	if got := audio.SafetyBytes(48000, 4, 0); got != 0 {
		t.Errorf("SafetyBytes() with no rate = %d, expected 0", got)
	}
}

func TestRemainingRatio(t *testing.T) {
	frame := 33 * time.Millisecond
	tests := []struct {
		elapsed  time.Duration
		expected float64
	}{
		{0, 1},
		{frame, 0},
		{2 * frame, 0},
		{frame / 2, 0.5},
	}
	for _, tc := range tests {
		if got := audio.RemainingRatio(tc.elapsed, frame); got != tc.expected {
			t.Errorf("RemainingRatio(%v) = %v, expected %v", tc.elapsed, got, tc.expected)
		}
	}
}

func TestWriterFill(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dev := mocks.NewMockDevice(ctrl)
	w := audio.NewWriter(dev, audio.NewSoundState(), 30, nil)

	dev.EXPECT().Size().Return(uint32(ringBytes)).AnyTimes()
	gomock.InOrder(
		dev.EXPECT().Cursors().Return(uint32(1000), uint32(1050), nil),
		dev.EXPECT().Write(uint32(1048), gomock.Len(2400)).Return(nil),
		// Second frame: the writer has reached the target already.
		dev.EXPECT().Cursors().Return(uint32(1000), uint32(1048), nil),
	)

	synthCalls := 0
	synth := func(out []audio.StereoSample) {
		synthCalls++
		for i := range out {
			out[i] = audio.StereoSample{Left: 1, Right: 1}
		}
	}

	n, err := w.Fill(0, synth)
	if err != nil {
		t.Fatalf("Fill() failed: %v", err)
	}
	if n != 2400 {
		t.Errorf("Fill() wrote %d samples, expected 2400", n)
	}
	if w.SampleIndex() != 262+2400 {
		t.Errorf("SampleIndex() = %d, expected %d", w.SampleIndex(), 262+2400)
	}

	n, err = w.Fill(0, synth)
	if err != nil {
		t.Fatalf("second Fill() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second Fill() wrote %d samples, expected a skipped frame", n)
	}
	if synthCalls != 1 {
		t.Errorf("synth called %d times, expected 1", synthCalls)
	}
}

func TestWriterFillDeviceErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dev := mocks.NewMockDevice(ctrl)
	w := audio.NewWriter(dev, audio.NewSoundState(), 30, nil)
	boom := errors.New("device lost")

	dev.EXPECT().Cursors().Return(uint32(0), uint32(0), boom)
	if _, err := w.Fill(1, func([]audio.StereoSample) {}); !errors.Is(err, boom) {
		t.Errorf("Fill() error = %v, expected %v", err, boom)
	}

	dev.EXPECT().Size().Return(uint32(ringBytes)).AnyTimes()
	dev.EXPECT().Cursors().Return(uint32(0), uint32(400), nil)
	dev.EXPECT().Write(gomock.Any(), gomock.Any()).Return(boom)
	if _, err := w.Fill(1, func([]audio.StereoSample) {}); !errors.Is(err, boom) {
		t.Errorf("Fill() error = %v, expected %v", err, boom)
	}
	if w.SampleIndex() != 100 {
		t.Errorf("SampleIndex() = %d, expected the primed 100 after a failed write", w.SampleIndex())
	}
}

func TestWriterWithRingBuffer(t *testing.T) {
	ring := audio.NewRingBuffer(48000, 4800)
	sound := audio.NewSoundState()
	w := audio.NewWriter(ring, sound, 30, nil)

	n, err := w.Fill(1, func(out []audio.StereoSample) { audio.Synthesize(&sound, out) })
	if err != nil {
		t.Fatalf("Fill() failed: %v", err)
	}
	if n == 0 {
		t.Fatal("Fill() wrote nothing on the first frame")
	}

	_, write, _ := ring.Cursors()
	written := ring.Snapshot()
	start := int(write / audio.BytesPerSample)
	nonzero := 0
	for i := start; i < start+n; i++ {
		if written[i%len(written)] != (audio.StereoSample{}) {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Error("no tone written after the write cursor")
	}
}
