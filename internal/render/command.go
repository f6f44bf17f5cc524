// Package render draws the scene onto camera frames with GoCV and shows
// them in a preview window.
package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Command is a single drawing primitive.
type Command interface {
	Draw(img *gocv.Mat)
}

// Colors used by the scene.
var (
	Green  = color.RGBA{G: 255, A: 255}
	Red    = color.RGBA{R: 255, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
	Cyan   = color.RGBA{G: 255, B: 255, A: 255}
)

// Filled as a thickness fills the shape.
const Filled = -1

type Line struct {
	From, To  image.Point
	Color     color.RGBA
	Thickness int
}

func (l Line) Draw(img *gocv.Mat) {
	gocv.Line(img, l.From, l.To, l.Color, l.Thickness)
}

type Circle struct {
	Center    image.Point
	Radius    int
	Color     color.RGBA
	Thickness int
}

func (c Circle) Draw(img *gocv.Mat) {
	gocv.Circle(img, c.Center, c.Radius, c.Color, c.Thickness)
}

// Ellipse draws an elliptic arc from Start to End degrees, rotated by Angle.
type Ellipse struct {
	Center     image.Point
	Axes       image.Point
	Angle      float64
	Start, End float64
	Color      color.RGBA
	Thickness  int
}

func (e Ellipse) Draw(img *gocv.Mat) {
	gocv.Ellipse(img, e.Center, e.Axes, e.Angle, e.Start, e.End, e.Color, e.Thickness)
}

type Text struct {
	Text      string
	Origin    image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

func (t Text) Draw(img *gocv.Mat) {
	gocv.PutText(img, t.Text, t.Origin, gocv.FontHersheySimplex, t.Scale, t.Color, t.Thickness)
}

// Draw runs every command against img in order.
func Draw(img *gocv.Mat, cmds []Command) {
	for _, c := range cmds {
		c.Draw(img)
	}
}
