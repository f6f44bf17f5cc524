package game

import (
	"math"

	"github.com/ayusman/pinchslice/internal/gesture"
)

// Hit reports whether p lies strictly inside the fruit's radius.
func Hit(f *Fruit, p gesture.Point) bool {
	return math.Hypot(p.X-f.X, p.Y-f.Y) < f.Radius
}

// Slice cuts every airborne fruit touched by any trail point and returns the
// newly cut fruit. Fruit already sliced are skipped, so each fruit is
// returned at most once over its lifetime.
func Slice(trail []gesture.Point, fruits []*Fruit, tick int64) []*Fruit {
	var cut []*Fruit
	for _, f := range fruits {
		if f.State != Airborne {
			continue
		}
		for _, p := range trail {
			if Hit(f, p) {
				if f.Slice(tick) {
					cut = append(cut, f)
				}
				break
			}
		}
	}
	return cut
}
