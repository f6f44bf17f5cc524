package gesture

import (
	"math"
	"testing"
)

func TestEMA(t *testing.T) {
	tests := []struct {
		name  string
		alpha float64
		in    [][2]float64
		want  [2]float64
	}{
		{"first step from origin", 0.5, [][2]float64{{100, 50}}, [2]float64{50, 25}},
		{"converges", 0.5, [][2]float64{{100, 100}, {100, 100}}, [2]float64{75, 75}},
		{"no smoothing", 0, [][2]float64{{10, 20}, {30, 40}}, [2]float64{30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEMA(tt.alpha)
			var x, y float64
			for _, p := range tt.in {
				x, y = e.Smooth(p[0], p[1])
			}
			if math.Abs(x-tt.want[0]) > epsilon || math.Abs(y-tt.want[1]) > epsilon {
				t.Errorf("Smooth() = (%f, %f), want %v", x, y, tt.want)
			}
		})
	}
}

func TestKalman(t *testing.T) {
	k := NewKalman()

	x, y := k.Smooth(400, 300)
	if x != 400 || y != 300 {
		t.Errorf("first sample = (%f, %f), want it passed through", x, y)
	}

	// A stationary target keeps the estimate near it.
	for i := 0; i < 30; i++ {
		x, y = k.Smooth(400, 300)
	}
	if math.Abs(x-400) > 1 || math.Abs(y-300) > 1 {
		t.Errorf("stationary estimate = (%f, %f), want near (400, 300)", x, y)
	}

	// A jump is followed but not matched in one step.
	x, _ = k.Smooth(600, 300)
	if x <= 400 || x >= 600 {
		t.Errorf("estimate after jump = %f, want strictly between 400 and 600", x)
	}

	var _ Smoother = k
	var _ Smoother = NewEMA(0.5)
}
