package render

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/pinchslice/internal/control"
)

// Surface shows one composed frame per tick.
type Surface interface {
	Render(frame *gocv.Mat, cmds []Command)
}

// Compose writes the mirrored frame into dst, scales it to width x height
// when both are positive, and draws cmds on top.
func Compose(frame *gocv.Mat, dst *gocv.Mat, width, height int, cmds []Command) {
	if width > 0 && height > 0 && (frame.Cols() != width || frame.Rows() != height) {
		flipped := gocv.NewMat()
		defer flipped.Close()
		gocv.Flip(*frame, &flipped, 1)
		gocv.Resize(flipped, dst, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	} else {
		gocv.Flip(*frame, dst, 1)
	}
	Draw(dst, cmds)
}

// Window is a GoCV preview window. It is also a control.Source: keys
// pressed while it has focus map through control.Key.
type Window struct {
	win    *gocv.Window
	width  int
	height int
	canvas gocv.Mat
}

// NewWindow opens a preview window. A positive width and height scale every
// frame to that size; zero keeps the camera size.
func NewWindow(title string, width, height int) *Window {
	return &Window{
		win:    gocv.NewWindow(title),
		width:  width,
		height: height,
		canvas: gocv.NewMat(),
	}
}

// Render composes and shows a frame.
func (w *Window) Render(frame *gocv.Mat, cmds []Command) {
	if frame == nil || frame.Empty() {
		return
	}
	Compose(frame, &w.canvas, w.width, w.height, cmds)
	w.win.IMShow(w.canvas)
}

// Poll pumps the window event loop and returns the command for the key
// pressed, if any.
func (w *Window) Poll() control.Command {
	key := w.win.WaitKey(1)
	if key < 0 {
		return control.None
	}
	return control.Key(rune(key & 0xff))
}

func (w *Window) Close() error {
	w.canvas.Close()
	return w.win.Close()
}

// Headless is a Surface that composes frames without showing them. It keeps
// the commands of the last frame.
type Headless struct {
	width, height int
	canvas        gocv.Mat
	frames        int
	last          []Command
}

// NewHeadless creates a Headless surface of the given size.
func NewHeadless(width, height int) *Headless {
	return &Headless{width: width, height: height, canvas: gocv.NewMat()}
}

func (h *Headless) Render(frame *gocv.Mat, cmds []Command) {
	h.frames++
	h.last = cmds
	if frame == nil || frame.Empty() {
		return
	}
	Compose(frame, &h.canvas, h.width, h.height, cmds)
}

// Frames returns how many frames were rendered.
func (h *Headless) Frames() int { return h.frames }

// Last returns the commands of the last frame.
func (h *Headless) Last() []Command { return h.last }

// Canvas returns the last composed image.
func (h *Headless) Canvas() *gocv.Mat { return &h.canvas }

func (h *Headless) Close() error {
	return h.canvas.Close()
}
