package gesture

import (
	"github.com/ayusman/pinchslice/internal/detector"
)

// DefaultPinchThreshold is the thumb-to-index distance, in normalized
// landmark units, below which a hand counts as pinching.
const DefaultPinchThreshold = 0.05

// Config holds the interpreter settings.
type Config struct {
	// Width and Height are the viewport size landmarks are scaled to.
	Width, Height float64
	// PinchThreshold is compared with strict less-than.
	PinchThreshold float64
}

// Interpreter converts landmark frames into interaction events. It keeps the
// smoothed cursor and the pinch state between frames and is not safe for
// concurrent use.
type Interpreter struct {
	cfg      Config
	smoother Smoother
	cursor   Point
	pinching bool
}

// NewInterpreter creates an Interpreter. A nil smoother means EMA with
// alpha 0.5.
func NewInterpreter(cfg Config, smoother Smoother) *Interpreter {
	if cfg.PinchThreshold <= 0 {
		cfg.PinchThreshold = DefaultPinchThreshold
	}
	if smoother == nil {
		smoother = NewEMA(0.5)
	}
	return &Interpreter{cfg: cfg, smoother: smoother}
}

// Update consumes one frame. A nil hand produces no events and leaves the
// cursor and pinch state untouched. Otherwise the events are, in order:
// CursorMoved, an optional PinchStarted or PinchEnded, and TrailSample.
func (in *Interpreter) Update(hand *detector.HandLandmarks) []Event {
	if hand == nil {
		return nil
	}

	raw := in.Project(hand.Points[detector.IndexTip])
	x, y := in.smoother.Smooth(raw.X, raw.Y)
	in.cursor = Point{X: x, Y: y}

	events := make([]Event, 0, 3)
	events = append(events, Event{Kind: CursorMoved, X: x, Y: y})

	pinching := hand.PinchDistance() < in.cfg.PinchThreshold
	switch {
	case pinching && !in.pinching:
		events = append(events, Event{Kind: PinchStarted, X: x, Y: y})
	case !pinching && in.pinching:
		events = append(events, Event{Kind: PinchEnded, X: x, Y: y})
	}
	in.pinching = pinching

	events = append(events, Event{Kind: TrailSample, X: raw.X, Y: raw.Y})
	return events
}

// Project maps a normalized landmark onto the interpreter viewport.
func (in *Interpreter) Project(p detector.Point3D) Point {
	return Mirror(p, in.cfg.Width, in.cfg.Height)
}

// Mirror scales a normalized landmark to a width x height surface with x
// mirrored, so the picture behaves like a mirror for the user.
func Mirror(p detector.Point3D, width, height float64) Point {
	return Point{
		X: width - p.X*width,
		Y: p.Y * height,
	}
}

// Cursor returns the last smoothed cursor position.
func (in *Interpreter) Cursor() Point {
	return in.cursor
}

// Pinching reports the current pinch state.
func (in *Interpreter) Pinching() bool {
	return in.pinching
}
