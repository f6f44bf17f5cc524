package gesture

import (
	kalman_filter "github.com/LdDl/kalman-filter"
)

// Smoother filters the raw fingertip position into the cursor position.
type Smoother interface {
	Smooth(x, y float64) (float64, float64)
}

// EMA is a per-axis exponential moving average:
//
//	s = s*alpha + raw*(1-alpha)
//
// The state starts at (0,0), so the first few cursor positions glide in
// from the origin.
type EMA struct {
	alpha float64
	x, y  float64
}

// NewEMA creates an EMA smoother. alpha is the weight of the previous value;
// 0 disables smoothing.
func NewEMA(alpha float64) *EMA {
	return &EMA{alpha: alpha}
}

func (e *EMA) Smooth(x, y float64) (float64, float64) {
	e.x = e.x*e.alpha + x*(1-e.alpha)
	e.y = e.y*e.alpha + y*(1-e.alpha)
	return e.x, e.y
}

// Kalman filter props for cursor tracking, in pixels per tick.
const (
	kalmanDt      = 1.0
	kalmanStdDevA = 2.0
	kalmanStdDevM = 5.0
)

// Kalman smooths the cursor with a constant-velocity 2D Kalman filter. The
// filter is seeded with the first sample, so unlike EMA it does not glide in
// from the origin.
type Kalman struct {
	kf *kalman_filter.Kalman2D
}

// NewKalman creates a Kalman smoother.
func NewKalman() *Kalman {
	return &Kalman{}
}

func (k *Kalman) Smooth(x, y float64) (float64, float64) {
	if k.kf == nil {
		k.kf = kalman_filter.NewKalman2D(kalmanDt, 0, 0, kalmanStdDevA, kalmanStdDevM, kalmanStdDevM, kalman_filter.WithState2D(x, y))
		return x, y
	}
	k.kf.Predict()
	if err := k.kf.Update(x, y); err != nil {
		// Singular innovation; restart from the measurement.
		k.kf = nil
		return x, y
	}
	return k.kf.GetState()
}
