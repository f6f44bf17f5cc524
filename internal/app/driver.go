// Package app runs the pinchslice tick loop and its two personalities:
// cursor teleoperation and the fruit game.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/pinchslice/internal/capture"
	"github.com/ayusman/pinchslice/internal/control"
	"github.com/ayusman/pinchslice/internal/detector"
	"github.com/ayusman/pinchslice/internal/gesture"
	"github.com/ayusman/pinchslice/internal/logger"
	"github.com/ayusman/pinchslice/internal/metrics"
	"github.com/ayusman/pinchslice/internal/render"
	"github.com/ayusman/pinchslice/internal/server"
)

// Tick is what a Mode sees of one processed frame.
type Tick struct {
	// N is the detector timestamp of this tick, counted from 0.
	N int64
	// Hands is every hand the detector returned. Only Hands[0] drives the
	// interpreter.
	Hands  []detector.HandLandmarks
	Events []gesture.Event
	// Pinching is the interpreter's pinch state after this tick.
	Pinching bool
	// FrameWidth and FrameHeight are the camera frame size.
	FrameWidth, FrameHeight float64
}

// Hand returns the hand that drives the interaction, or nil.
func (t Tick) Hand() *detector.HandLandmarks {
	return detector.First(t.Hands)
}

// Mode is a personality fed by the driver once per tick.
type Mode interface {
	Name() string
	// Tick consumes the tick's events and returns what to draw over the frame.
	Tick(t Tick) []render.Command
	// Handle applies a user command other than Quit.
	Handle(cmd control.Command)
	// Report fills the mode's part of the status snapshot.
	Report(s *server.Status)
}

// Options wires a Driver. Camera, Detector, Interpreter and Mode are
// required; the rest may be nil.
type Options struct {
	Camera      capture.Camera
	Detector    detector.Detector
	Interpreter *gesture.Interpreter
	Mode        Mode
	Surface     render.Surface
	Controls    control.Source
	Metrics     *metrics.Manager
	Logger      logger.Logger
	// OnStatus is called from the loop after every tick.
	OnStatus func(server.Status)
}

// Driver is the single-threaded tick loop: read a frame, detect, interpret,
// let the mode react, render, then poll the controls.
type Driver struct {
	opts Options
	log  logger.Logger
	tick int64

	frameW, frameH float64

	mu     sync.RWMutex
	status server.Status
}

// NewDriver creates a Driver.
func NewDriver(opts Options) *Driver {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Driver{opts: opts, log: log.Named("driver")}
}

// Run opens the camera and loops until ctx is done, a Quit command arrives
// or a replayed recording runs out. The camera is closed on every return.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.opts.Camera.Open(); err != nil {
		return err
	}
	defer func() {
		if err := d.opts.Camera.Close(); err != nil {
			d.log.Warn(ctx, "close camera", logger.Error(err))
		}
	}()

	w, h := d.opts.Camera.Size()
	d.frameW, d.frameH = float64(w), float64(h)
	d.log.Info(ctx, "loop started",
		logger.String("mode", d.opts.Mode.Name()),
		logger.Int("frame_width", w),
		logger.Int("frame_height", h),
	)

	for {
		select {
		case <-ctx.Done():
			d.log.Info(ctx, "loop stopped", logger.String("reason", "context done"))
			return nil
		default:
		}

		if !d.Step(ctx) {
			d.log.Info(ctx, "loop stopped", logger.Int64("ticks", d.tick))
			return nil
		}
	}
}

// Step runs one tick and reports whether the loop should go on.
func (d *Driver) Step(ctx context.Context) bool {
	start := time.Now()

	frame, err := d.opts.Camera.ReadFrame()
	if err != nil {
		d.log.Debug(ctx, "empty frame", logger.Error(err))
		d.opts.Metrics.RecordFrameSkipped()
		return d.pollControls(ctx)
	}
	defer frame.Close()

	hands, ok := d.detect(ctx, frame)
	if !ok {
		return false
	}

	hand := detector.First(hands)
	events := d.opts.Interpreter.Update(hand)

	t := Tick{
		N:           d.tick,
		Hands:       hands,
		Events:      events,
		Pinching:    d.opts.Interpreter.Pinching(),
		FrameWidth:  d.frameW,
		FrameHeight: d.frameH,
	}
	d.tick++

	cmds := d.opts.Mode.Tick(t)
	if d.opts.Surface != nil {
		d.opts.Surface.Render(frame, cmds)
	}

	d.publish(t)
	d.opts.Metrics.RecordTick(time.Since(start))

	return d.pollControls(ctx)
}

// detect runs the detector on frame. Runtime failures count as no hand;
// ok is false only when a replayed recording has ended.
func (d *Driver) detect(ctx context.Context, frame *gocv.Mat) (hands []detector.HandLandmarks, ok bool) {
	start := time.Now()
	hands, err := d.opts.Detector.Detect(frame, d.tick)
	d.opts.Metrics.RecordDetect(time.Since(start), len(hands), err)

	switch {
	case errors.Is(err, detector.ErrEndOfRecording):
		return nil, false
	case err != nil:
		d.log.Warn(ctx, "detect failed", logger.Int64("tick", d.tick), logger.Error(err))
		return nil, true
	}
	return hands, true
}

func (d *Driver) pollControls(ctx context.Context) bool {
	if d.opts.Controls == nil {
		return true
	}
	for {
		cmd := d.opts.Controls.Poll()
		switch cmd {
		case control.None:
			return true
		case control.Quit:
			d.log.Info(ctx, "quit requested")
			return false
		default:
			d.log.Debug(ctx, "command", logger.String("command", cmd.String()))
			d.opts.Mode.Handle(cmd)
		}
	}
}

func (d *Driver) publish(t Tick) {
	cursor := d.opts.Interpreter.Cursor()
	s := server.Status{
		Mode:     d.opts.Mode.Name(),
		Tick:     t.N,
		Hand:     t.Hand() != nil,
		CursorX:  cursor.X,
		CursorY:  cursor.Y,
		Pinching: t.Pinching,
	}
	d.opts.Mode.Report(&s)

	d.mu.Lock()
	d.status = s
	d.mu.Unlock()

	if d.opts.OnStatus != nil {
		d.opts.OnStatus(s)
	}
}

// Status returns the snapshot of the last processed tick. It is safe to
// call from any goroutine.
func (d *Driver) Status() server.Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

// Ticks returns the number of processed ticks.
func (d *Driver) Ticks() int64 {
	return d.tick
}
