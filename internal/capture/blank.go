package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// BlankCamera produces black frames of a fixed size. It backs replay
// sessions, where landmarks come from storage and only a backdrop is needed.
type BlankCamera struct {
	width   int
	height  int
	mu      sync.Mutex
	running bool
}

// NewBlankCamera creates a BlankCamera producing width x height frames.
func NewBlankCamera(width, height int) *BlankCamera {
	return &BlankCamera{width: width, height: height}
}

func (c *BlankCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	return nil
}

func (c *BlankCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// ReadFrame returns a new black BGR frame. The caller closes it.
func (c *BlankCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil, ErrCameraNotOpen
	}
	mat := gocv.Zeros(c.height, c.width, gocv.MatTypeCV8UC3)
	return &mat, nil
}

func (c *BlankCamera) SetFPS(fps int) {}
func (c *BlankCamera) FPS() int       { return DefaultFPS }

func (c *BlankCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *BlankCamera) Size() (int, int) {
	return c.width, c.height
}
