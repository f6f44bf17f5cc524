package detector

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ayusman/pinchslice/internal/store"
)

// ErrEndOfRecording is returned by ReplayDetector once every stored frame has
// been played back.
var ErrEndOfRecording = errors.New("end of recording")

// ReplayDetector plays back a stored recording, one frame per Detect call.
// The frame argument is ignored.
type ReplayDetector struct {
	recording *store.Recording
	frames    [][]HandLandmarks
	next      int
}

// NewReplayDetector loads the named recording.
func NewReplayDetector(frames *store.RecordingRepository, name string) (*ReplayDetector, error) {
	rec, err := frames.GetByName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load recording %q", name)
	}

	stored, err := frames.Frames(rec.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "load frames of %q", name)
	}

	d := &ReplayDetector{
		recording: rec,
		frames:    make([][]HandLandmarks, len(stored)),
	}
	for i, f := range stored {
		if err := json.Unmarshal(f.Hands, &d.frames[i]); err != nil {
			return nil, errors.Wrapf(err, "decode frame %d of %q", f.Tick, name)
		}
	}
	return d, nil
}

// Size returns the frame size the recording was captured at.
func (d *ReplayDetector) Size() (width, height int) {
	return d.recording.Width, d.recording.Height
}

// Len returns the number of stored frames.
func (d *ReplayDetector) Len() int {
	return len(d.frames)
}

// Detect returns the next stored frame, or ErrEndOfRecording when none is left.
func (d *ReplayDetector) Detect(_ *gocv.Mat, _ int64) ([]HandLandmarks, error) {
	if d.next >= len(d.frames) {
		return nil, ErrEndOfRecording
	}
	hands := d.frames[d.next]
	d.next++
	if len(hands) == 0 {
		return nil, nil
	}
	return hands, nil
}

// Close is a no-op.
func (d *ReplayDetector) Close() error {
	return nil
}
