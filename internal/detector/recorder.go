package detector

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ayusman/pinchslice/internal/store"
)

// Recorder wraps a Detector and stores the hands it returns for every call
// as one frame of a recording. Calls where the inner detector fails are
// stored as empty frames so a replay stays tick aligned.
type Recorder struct {
	inner     Detector
	frames    *store.RecordingRepository
	recording *store.Recording
	tick      int64
	sized     bool
}

// NewRecorder creates the named recording and returns a Recorder writing to it.
// width and height are the requested camera size; the first real frame
// replaces them with the size the device actually delivers.
func NewRecorder(inner Detector, frames *store.RecordingRepository, name string, width, height int) (*Recorder, error) {
	rec := &store.Recording{Name: name, Width: width, Height: height}
	if err := frames.Create(rec); err != nil {
		return nil, errors.Wrapf(err, "create recording %q", name)
	}
	return &Recorder{inner: inner, frames: frames, recording: rec}, nil
}

// Recording returns the recording being written.
func (r *Recorder) Recording() *store.Recording {
	return r.recording
}

// Detect forwards to the inner detector and appends the result.
func (r *Recorder) Detect(frame *gocv.Mat, timestampMs int64) ([]HandLandmarks, error) {
	if !r.sized && frame != nil && !frame.Empty() {
		if err := r.resize(frame.Cols(), frame.Rows()); err != nil {
			return nil, err
		}
		r.sized = true
	}

	hands, detectErr := r.inner.Detect(frame, timestampMs)

	var stored []HandLandmarks
	if detectErr == nil {
		stored = hands
	}
	if stored == nil {
		stored = []HandLandmarks{}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return hands, errors.Wrap(err, "encode hands")
	}
	tick := r.tick
	r.tick++
	if err := r.frames.AppendFrame(r.recording.ID, tick, data); err != nil {
		return hands, errors.Wrapf(err, "append frame %d", tick)
	}

	return hands, detectErr
}

func (r *Recorder) resize(width, height int) error {
	if width == r.recording.Width && height == r.recording.Height {
		return nil
	}
	if err := r.frames.Resize(r.recording.ID, width, height); err != nil {
		return errors.Wrapf(err, "resize recording %q", r.recording.Name)
	}
	r.recording.Width, r.recording.Height = width, height
	return nil
}

// Close closes the inner detector.
func (r *Recorder) Close() error {
	return r.inner.Close()
}
