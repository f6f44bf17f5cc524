package gesture

// Trail is a fixed-capacity ring buffer of recent fingertip positions.
// Pushing onto a full trail evicts the oldest point.
type Trail struct {
	points []Point
	start  int
	size   int
}

// DefaultTrailLength is the number of fingertip samples kept for slicing.
const DefaultTrailLength = 20

// NewTrail creates a Trail holding at most capacity points. Non-positive
// capacities fall back to DefaultTrailLength.
func NewTrail(capacity int) *Trail {
	if capacity <= 0 {
		capacity = DefaultTrailLength
	}
	return &Trail{points: make([]Point, capacity)}
}

// Push appends p, evicting the oldest point when the trail is full.
func (t *Trail) Push(p Point) {
	if t.size < len(t.points) {
		t.points[(t.start+t.size)%len(t.points)] = p
		t.size++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
}

// Points returns a copy of the trail, oldest first.
func (t *Trail) Points() []Point {
	out := make([]Point, t.size)
	for i := range out {
		out[i] = t.points[(t.start+i)%len(t.points)]
	}
	return out
}

func (t *Trail) Len() int { return t.size }
func (t *Trail) Cap() int { return len(t.points) }

// Clear empties the trail.
func (t *Trail) Clear() {
	t.start, t.size = 0, 0
}
