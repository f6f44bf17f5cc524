// Package pointer moves and clicks the operating system cursor.
package pointer

import (
	"sync"

	"github.com/go-vgo/robotgo"
)

// Injector drives the OS cursor.
type Injector interface {
	MoveTo(x, y int)
	Click()
	ScreenSize() (width, height int)
}

// Robot is an Injector backed by robotgo.
type Robot struct{}

// NewRobot creates a Robot.
func NewRobot() *Robot {
	return &Robot{}
}

func (r *Robot) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// Click presses and releases the left button at the current position.
func (r *Robot) Click() {
	robotgo.Click("left")
}

func (r *Robot) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

// Action is one call recorded by Recording.
type Action struct {
	Click bool
	X, Y  int
}

// Recording is an Injector that remembers every call instead of touching
// the OS cursor.
type Recording struct {
	width, height int
	mu            sync.Mutex
	actions       []Action
	x, y          int
}

// NewRecording creates a Recording reporting the given screen size.
func NewRecording(width, height int) *Recording {
	return &Recording{width: width, height: height}
}

func (r *Recording) MoveTo(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.x, r.y = x, y
	r.actions = append(r.actions, Action{X: x, Y: y})
}

// Click records a click at the last position moved to.
func (r *Recording) Click() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, Action{Click: true, X: r.x, Y: r.y})
}

func (r *Recording) ScreenSize() (int, int) {
	return r.width, r.height
}

// Actions returns a copy of the recorded calls.
func (r *Recording) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Action(nil), r.actions...)
}

// Clicks returns the recorded clicks.
func (r *Recording) Clicks() []Action {
	var clicks []Action
	for _, a := range r.Actions() {
		if a.Click {
			clicks = append(clicks, a)
		}
	}
	return clicks
}
