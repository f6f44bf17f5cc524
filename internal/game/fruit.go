package game

import (
	"image/color"

	"github.com/google/uuid"
)

// FruitState is the lifecycle stage of a fruit.
type FruitState int

const (
	Airborne FruitState = iota
	Sliced
	Expired
)

func (s FruitState) String() string {
	switch s {
	case Airborne:
		return "airborne"
	case Sliced:
		return "sliced"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Palette holds the fruit colors a spawn picks from.
var Palette = []color.RGBA{
	{R: 220, G: 40, B: 40, A: 255},  // apple
	{R: 255, G: 150, B: 20, A: 255}, // orange
	{R: 250, G: 220, B: 40, A: 255}, // lemon
	{R: 90, G: 200, B: 60, A: 255},  // lime
	{R: 150, G: 60, B: 190, A: 255}, // plum
}

// Fruit is a single thrown fruit.
type Fruit struct {
	ID      uuid.UUID
	X, Y    float64
	VX, VY  float64
	Gravity float64
	Radius  float64
	Color   color.RGBA
	State   FruitState
	// SlicedAt is the tick the fruit was cut; SlicedTicks counts the
	// animation ticks elapsed since.
	SlicedAt    int64
	SlicedTicks int
}

// NewFruit creates an airborne fruit.
func NewFruit(x, y, vx, vy float64, c color.RGBA) *Fruit {
	return &Fruit{
		ID:      uuid.New(),
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Gravity: Gravity,
		Radius:  FruitRadius,
		Color:   c,
		State:   Airborne,
	}
}

// Slice marks an airborne fruit as cut at tick. It reports false, and
// changes nothing, for a fruit that is already sliced or expired.
func (f *Fruit) Slice(tick int64) bool {
	if f.State != Airborne {
		return false
	}
	f.State = Sliced
	f.SlicedAt = tick
	f.SlicedTicks = 0
	return true
}

// step advances the fruit by one unfrozen tick and reports whether it left
// the screen without being cut.
func (f *Fruit) step(height float64) (missed bool) {
	switch f.State {
	case Airborne:
		f.VY += f.Gravity
		f.X += f.VX
		f.Y += f.VY
		if f.Y > height+ExitMargin {
			f.State = Expired
			return true
		}
	case Sliced:
		f.SlicedTicks++
		if f.SlicedTicks >= SliceAnimTicks {
			f.State = Expired
		}
	}
	return false
}
