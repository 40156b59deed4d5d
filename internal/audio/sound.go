// Package audio synthesizes the game tone and keeps a ring-buffer device fed
// a little ahead of its play cursor.
package audio

import "math"

// Sample format defaults.
const (
	DefaultHertz            = 256
	DefaultSamplesPerSecond = 48000
	DefaultVolume           = 500
	BitsPerSample           = 16
	Channels                = 2
	// BytesPerSample is one interleaved left/right pair of 16-bit values.
	BytesPerSample = Channels * BitsPerSample / 8
)

// StereoSample is one interleaved frame of signed 16-bit audio.
type StereoSample struct {
	Left, Right int16
}

// SoundState holds the tone parameters and the running phase.
// All fields are fixed-size so the state can be written to recordings.
type SoundState struct {
	Hertz            float64
	Theta            float64
	Volume           float64
	SamplesPerSecond uint32
	BytesPerSample   uint32
	BitsPerSample    uint16
	Channels         uint16
}

// NewSoundState returns the default 256 Hz tone at 48 kHz.
func NewSoundState() SoundState {
	return SoundState{
		Hertz:            DefaultHertz,
		Volume:           DefaultVolume,
		SamplesPerSecond: DefaultSamplesPerSecond,
		BytesPerSample:   BytesPerSample,
		BitsPerSample:    BitsPerSample,
		Channels:         Channels,
	}
}

// WavePeriod is the number of samples in one cycle of the tone.
// It is zero when the tone is off.
func (s SoundState) WavePeriod() float64 {
	if s.Hertz <= 0 {
		return 0
	}
	return float64(s.SamplesPerSecond) / s.Hertz
}

// TimeDelta is the phase advance per sample in radians.
func (s SoundState) TimeDelta() float64 {
	period := s.WavePeriod()
	if period <= 0 {
		return 0
	}
	return 2 * math.Pi / period
}

// Synthesize fills out with the sine tone, duplicating it to both channels,
// and advances Theta. A hertz change takes effect on the next call with no
// crossfade.
func Synthesize(s *SoundState, out []StereoSample) {
	delta := s.TimeDelta()
	for i := range out {
		v := clampSample(math.Round(math.Sin(s.Theta) * s.Volume))
		out[i] = StereoSample{Left: v, Right: v}
		s.Theta = wrapPhase(s.Theta + delta)
	}
}

func wrapPhase(theta float64) float64 {
	const tau = 2 * math.Pi
	if theta >= tau || theta < 0 {
		theta = math.Mod(theta, tau)
		if theta < 0 {
			theta += tau
		}
	}
	return theta
}

func clampSample(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
