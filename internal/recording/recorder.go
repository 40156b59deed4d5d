// Package recording captures a session as (input, state) pairs and plays it
// back. Every frame is a pure function of the pair, so a playback
// reproduces the recorded frames exactly.
package recording

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
)

// Magic opens every recording file.
const Magic = "THREC"

// Version is the current file layout. Version 2 widened tile map keys
// and tile indices to 64 bits.
const Version uint16 = 2

var (
	// ErrNotActive is returned when stopping a recorder that is idle.
	ErrNotActive = errors.New("recording: not active")
	// ErrBadHeader is returned for a file that is not a recording.
	ErrBadHeader = errors.New("recording: bad header")
	// ErrEmpty is returned when playing a file without frames.
	ErrEmpty = errors.New("recording: no frames")
)

// Mode is the recorder state.
type Mode int

const (
	None Mode = iota
	Recording
	Playing
)

func (m Mode) String() string {
	switch m {
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	default:
		return "none"
	}
}

type header struct {
	Magic   [5]byte
	Version uint16
}

// Frame is one recorded call: the input and the state it was applied to.
type Frame struct {
	Input core.InputState
	State game.State
}

// FrameSize is the encoded size of one Frame.
var FrameSize = binary.Size(Frame{})

var headerSize = int64(binary.Size(header{}))

// Recorder writes frames while recording and overwrites them while playing.
// Playback rewinds to the first frame at end of file, looping the session.
type Recorder struct {
	mode   Mode
	path   string
	file   *os.File
	frames uint64
}

// New returns an idle recorder for the file at path.
func New(path string) *Recorder {
	return &Recorder{path: path}
}

// Mode returns the current state.
func (r *Recorder) Mode() Mode {
	return r.mode
}

// Path returns the recording file.
func (r *Recorder) Path() string {
	return r.path
}

// Frames returns the number of frames written or played since the last start.
func (r *Recorder) Frames() uint64 {
	return r.frames
}

// StartRecording truncates the file and writes the header. Any playback in
// progress is stopped first.
func (r *Recorder) StartRecording() error {
	if r.mode != None {
		_ = r.Stop()
	}
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("recording: cannot create %s: %w", r.path, err)
	}
	h := header{Version: Version}
	copy(h.Magic[:], Magic)
	if err := binary.Write(f, binary.LittleEndian, h); err != nil {
		f.Close()
		return fmt.Errorf("recording: cannot write header: %w", err)
	}
	r.file = f
	r.mode = Recording
	r.frames = 0
	return nil
}

// StartPlayback opens the file and positions it at the first frame.
func (r *Recorder) StartPlayback() error {
	if r.mode != None {
		_ = r.Stop()
	}
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("recording: cannot open %s: %w", r.path, err)
	}
	if err := readHeader(f); err != nil {
		f.Close()
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("recording: cannot stat %s: %w", r.path, err)
	}
	if info.Size() < headerSize+int64(FrameSize) {
		f.Close()
		return ErrEmpty
	}
	r.file = f
	r.mode = Playing
	r.frames = 0
	return nil
}

func readHeader(rd io.Reader) error {
	var h header
	if err := binary.Read(rd, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if string(h.Magic[:]) != Magic {
		return fmt.Errorf("%w: magic %q", ErrBadHeader, h.Magic[:])
	}
	if h.Version != Version {
		return fmt.Errorf("%w: version %d", ErrBadHeader, h.Version)
	}
	return nil
}

// Stop closes the file and returns to None.
func (r *Recorder) Stop() error {
	if r.mode == None {
		return ErrNotActive
	}
	err := r.file.Close()
	r.file = nil
	r.mode = None
	if err != nil {
		return fmt.Errorf("recording: cannot close %s: %w", r.path, err)
	}
	return nil
}

// Apply is called once per frame before the input is processed. While
// recording it appends the pair; while playing it replaces both with the
// next recorded pair.
func (r *Recorder) Apply(in *core.InputState, state *game.State) error {
	switch r.mode {
	case Recording:
		if err := binary.Write(r.file, binary.LittleEndian, Frame{Input: *in, State: *state}); err != nil {
			return fmt.Errorf("recording: cannot write frame %d: %w", r.frames, err)
		}
		r.frames++
	case Playing:
		var f Frame
		err := binary.Read(r.file, binary.LittleEndian, &f)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if _, err := r.file.Seek(headerSize, io.SeekStart); err != nil {
				return fmt.Errorf("recording: cannot rewind: %w", err)
			}
			err = binary.Read(r.file, binary.LittleEndian, &f)
		}
		if err != nil {
			return fmt.Errorf("recording: cannot read frame %d: %w", r.frames, err)
		}
		*in = f.Input
		*state = f.State
		r.frames++
	}
	return nil
}

// Close stops any activity.
func (r *Recorder) Close() error {
	if r.mode == None {
		return nil
	}
	return r.Stop()
}

// ReadAll decodes every frame of a recording.
func ReadAll(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recording: cannot open %s: %w", path, err)
	}
	defer f.Close()

	if err := readHeader(f); err != nil {
		return nil, err
	}
	var frames []Frame
	for {
		var fr Frame
		err := binary.Read(f, binary.LittleEndian, &fr)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("recording: frame %d: %w", len(frames), err)
		}
		frames = append(frames, fr)
	}
}
