package render

import (
	"fmt"
	"image"
	"math"

	"github.com/ayusman/pinchslice/internal/detector"
	"github.com/ayusman/pinchslice/internal/game"
	"github.com/ayusman/pinchslice/internal/gesture"
)

func pt(p gesture.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// Skeleton draws a hand on a width x height surface: green bones for the
// fingers and palm, red dots on the 21 joints.
func Skeleton(hand *detector.HandLandmarks, width, height float64) []Command {
	if hand == nil {
		return nil
	}

	var joints [detector.NumLandmarks]image.Point
	for i, p := range hand.Points {
		joints[i] = pt(gesture.Mirror(p, width, height))
	}

	cmds := make([]Command, 0, len(detector.FingerBones)+len(detector.PalmLinks)+detector.NumLandmarks)
	for _, bones := range [][]detector.Bone{detector.FingerBones, detector.PalmLinks} {
		for _, b := range bones {
			cmds = append(cmds, Line{From: joints[b[0]], To: joints[b[1]], Color: Green, Thickness: 2})
		}
	}
	for _, j := range joints {
		cmds = append(cmds, Circle{Center: j, Radius: 4, Color: Red, Thickness: Filled})
	}
	return cmds
}

// Trail draws the fingertip trail, thicker towards the newest point.
func Trail(points []gesture.Point) []Command {
	if len(points) < 2 {
		return nil
	}
	cmds := make([]Command, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		thickness := 1 + 8*i/len(points)
		cmds = append(cmds, Line{From: pt(points[i-1]), To: pt(points[i]), Color: Cyan, Thickness: thickness})
	}
	return cmds
}

// sliceDrift is how far apart, in pixels per tick, the halves of a cut fruit move.
const sliceDrift = 3

// Fruits draws airborne fruit as filled discs and sliced fruit as two
// halves drifting apart.
func Fruits(fruits []*game.Fruit) []Command {
	cmds := make([]Command, 0, 2*len(fruits))
	for _, f := range fruits {
		center := pt(gesture.Point{X: f.X, Y: f.Y})
		r := int(f.Radius)
		switch f.State {
		case game.Airborne:
			cmds = append(cmds, Circle{Center: center, Radius: r, Color: f.Color, Thickness: Filled})
		case game.Sliced:
			d := sliceDrift * (f.SlicedTicks + 1)
			axes := image.Pt(r, r)
			cmds = append(cmds,
				Ellipse{Center: center.Add(image.Pt(-d, d)), Axes: axes, Start: 90, End: 270, Color: f.Color, Thickness: Filled},
				Ellipse{Center: center.Add(image.Pt(d, d)), Axes: axes, Start: -90, End: 90, Color: f.Color, Thickness: Filled},
			)
		}
	}
	return cmds
}

// HUD draws score and lives, plus a banner when the game is not running.
func HUD(st game.State, width, height float64) []Command {
	cmds := []Command{
		Text{Text: fmt.Sprintf("Score: %d", st.Score), Origin: image.Pt(20, 40), Scale: 1, Color: White, Thickness: 2},
		Text{Text: fmt.Sprintf("Lives: %d", st.Lives), Origin: image.Pt(20, 80), Scale: 1, Color: White, Thickness: 2},
	}

	mid := image.Pt(int(width/2)-120, int(height/2))
	switch st.Phase {
	case game.Paused:
		cmds = append(cmds, Text{Text: "PAUSED", Origin: mid, Scale: 2, Color: Yellow, Thickness: 3})
	case game.GameOver:
		cmds = append(cmds,
			Text{Text: "GAME OVER", Origin: mid, Scale: 2, Color: Red, Thickness: 3},
			Text{Text: "press r to restart", Origin: mid.Add(image.Pt(10, 50)), Scale: 0.8, Color: White, Thickness: 2},
		)
	}
	return cmds
}

// PinchBanner is shown in cursor mode while the hand is pinching.
func PinchBanner() []Command {
	return []Command{Text{Text: "pinch detected", Origin: image.Pt(50, 50), Scale: 1, Color: Green, Thickness: 2}}
}
