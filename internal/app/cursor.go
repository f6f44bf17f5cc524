package app

import (
	"github.com/ayusman/pinchslice/internal/control"
	"github.com/ayusman/pinchslice/internal/gesture"
	"github.com/ayusman/pinchslice/internal/metrics"
	"github.com/ayusman/pinchslice/internal/pointer"
	"github.com/ayusman/pinchslice/internal/render"
	"github.com/ayusman/pinchslice/internal/server"
)

// Sounds are the effects a mode may trigger. *audio.SoundManager implements it.
type Sounds interface {
	PlaySlice()
	PlayMiss()
	PlayGameOver()
	PlayToggle()
}

type silence struct{}

func (silence) PlaySlice()    {}
func (silence) PlayMiss()     {}
func (silence) PlayGameOver() {}
func (silence) PlayToggle()   {}

// CursorMode teleoperates the OS cursor: the smoothed fingertip moves it and
// each pinch clicks once. ToggleEnabled suspends injection; Reset is ignored.
type CursorMode struct {
	pointer pointer.Injector
	sounds  Sounds
	metrics *metrics.Manager
	enabled bool
}

// NewCursorMode creates an enabled CursorMode. sounds and m may be nil.
func NewCursorMode(p pointer.Injector, sounds Sounds, m *metrics.Manager) *CursorMode {
	if sounds == nil {
		sounds = silence{}
	}
	return &CursorMode{pointer: p, sounds: sounds, metrics: m, enabled: true}
}

func (c *CursorMode) Name() string { return "cursor" }

func (c *CursorMode) Tick(t Tick) []render.Command {
	for _, ev := range t.Events {
		switch ev.Kind {
		case gesture.CursorMoved:
			if c.enabled {
				c.pointer.MoveTo(int(ev.X), int(ev.Y))
			}
		case gesture.PinchStarted:
			c.metrics.RecordPinch()
			if c.enabled {
				c.pointer.Click()
				c.metrics.RecordClick()
			}
		}
	}

	var cmds []render.Command
	for i := range t.Hands {
		cmds = append(cmds, render.Skeleton(&t.Hands[i], t.FrameWidth, t.FrameHeight)...)
	}
	if t.Hand() != nil && t.Pinching {
		cmds = append(cmds, render.PinchBanner()...)
	}
	return cmds
}

func (c *CursorMode) Handle(cmd control.Command) {
	if cmd == control.ToggleEnabled {
		c.enabled = !c.enabled
		c.sounds.PlayToggle()
	}
}

func (c *CursorMode) Report(s *server.Status) {
	s.Enabled = c.enabled
}

// Enabled reports whether cursor injection is active.
func (c *CursorMode) Enabled() bool {
	return c.enabled
}
