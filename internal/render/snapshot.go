package render

import (
	"sync"

	"gocv.io/x/gocv"
)

// Snapshot is a Surface that keeps the last composed frame as JPEG for
// the status server's preview stream. Only every Nth frame is encoded.
type Snapshot struct {
	width, height int
	every         int
	canvas        gocv.Mat
	frames        int

	mu   sync.RWMutex
	jpeg []byte
}

// NewSnapshot creates a Snapshot surface encoding one frame out of every.
func NewSnapshot(width, height, every int) *Snapshot {
	if every < 1 {
		every = 1
	}
	return &Snapshot{width: width, height: height, every: every, canvas: gocv.NewMat()}
}

func (s *Snapshot) Render(frame *gocv.Mat, cmds []Command) {
	s.frames++
	if frame == nil || frame.Empty() || (s.frames-1)%s.every != 0 {
		return
	}
	Compose(frame, &s.canvas, s.width, s.height, cmds)

	buf, err := gocv.IMEncode(".jpg", s.canvas)
	if err != nil {
		return
	}
	data := append([]byte(nil), buf.GetBytes()...)
	buf.Close()

	s.mu.Lock()
	s.jpeg = data
	s.mu.Unlock()
}

// Latest returns the most recent JPEG, or nil before the first frame.
func (s *Snapshot) Latest() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jpeg
}

func (s *Snapshot) Close() error {
	return s.canvas.Close()
}

// Fanout renders every frame to each of its surfaces in order.
type Fanout []Surface

func (f Fanout) Render(frame *gocv.Mat, cmds []Command) {
	for _, s := range f {
		s.Render(frame, cmds)
	}
}
