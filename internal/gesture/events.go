// Package gesture turns per-frame hand landmarks into cursor motion, pinch
// edges and fingertip trail samples.
package gesture

import "fmt"

// EventKind identifies an interaction event.
type EventKind int

const (
	// CursorMoved carries the smoothed cursor position.
	CursorMoved EventKind = iota
	// PinchStarted fires on the frame the pinch distance drops below the threshold.
	PinchStarted
	// PinchEnded fires on the frame it rises back to the threshold or above.
	PinchEnded
	// TrailSample carries the raw, mirrored fingertip position.
	TrailSample
)

func (k EventKind) String() string {
	switch k {
	case CursorMoved:
		return "cursor_moved"
	case PinchStarted:
		return "pinch_started"
	case PinchEnded:
		return "pinch_ended"
	case TrailSample:
		return "trail_sample"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a single interaction event in viewport pixels. Pinch edges carry
// the smoothed cursor position they happened at.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}
