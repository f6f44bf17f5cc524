package gesture

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ayusman/pinchslice/internal/detector"
)

const epsilon = 1e-9

func newTestInterpreter() *Interpreter {
	return NewInterpreter(Config{Width: 1280, Height: 720, PinchThreshold: 0.05}, NewEMA(0.5))
}

func pinchEvents(events []Event) []EventKind {
	var kinds []EventKind
	for _, e := range events {
		if e.Kind == PinchStarted || e.Kind == PinchEnded {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

func TestInterpreter_PinchScenario(t *testing.T) {
	in := newTestInterpreter()

	samples := []float64{0.10, 0.10, 0.03, 0.03, 0.08}
	want := [][]EventKind{nil, nil, {PinchStarted}, nil, {PinchEnded}}

	for i, d := range samples {
		hand := detector.WithPinchDistance(d)
		got := pinchEvents(in.Update(&hand))
		if len(got) != len(want[i]) {
			t.Fatalf("sample %d (%.2f): pinch events = %v, want %v", i, d, got, want[i])
		}
		for j := range got {
			if got[j] != want[i][j] {
				t.Errorf("sample %d: event %d = %v, want %v", i, j, got[j], want[i][j])
			}
		}
	}
}

func TestInterpreter_ThresholdIsStrict(t *testing.T) {
	in := newTestInterpreter()

	hand := detector.WithPinchDistance(0.05)
	if got := pinchEvents(in.Update(&hand)); len(got) != 0 {
		t.Errorf("distance equal to the threshold should not pinch, got %v", got)
	}
	if in.Pinching() {
		t.Error("Pinching() should be false at the threshold")
	}
}

func TestInterpreter_PinchEdgesProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		in := newTestInterpreter()
		prev := false
		var crossingsUp, crossingsDown, started, ended int

		for i := 0; i < 200; i++ {
			d := rng.Float64() * 0.1
			now := d < 0.05
			switch {
			case now && !prev:
				crossingsUp++
			case !now && prev:
				crossingsDown++
			}
			prev = now

			hand := detector.WithPinchDistance(d)
			for _, k := range pinchEvents(in.Update(&hand)) {
				if k == PinchStarted {
					started++
				} else {
					ended++
				}
			}
		}

		if started != crossingsUp || ended != crossingsDown {
			t.Fatalf("run %d: started=%d ended=%d, want %d and %d", run, started, ended, crossingsUp, crossingsDown)
		}
	}
}

func TestInterpreter_ConstantSequences(t *testing.T) {
	tests := []struct {
		name string
		d    float64
		max  int
	}{
		{"always open", 0.2, 0},
		{"always pinched", 0.01, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newTestInterpreter()
			total := 0
			for i := 0; i < 30; i++ {
				hand := detector.WithPinchDistance(tt.d)
				total += len(pinchEvents(in.Update(&hand)))
			}
			if total != tt.max {
				t.Errorf("pinch events = %d, want %d", total, tt.max)
			}
		})
	}
}

func TestInterpreter_EventOrder(t *testing.T) {
	in := newTestInterpreter()

	hand := detector.PinchingAt(0.25, 0.5)
	events := in.Update(&hand)

	want := []EventKind{CursorMoved, PinchStarted, TrailSample}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, e := range events {
		if e.Kind != want[i] {
			t.Errorf("event %d = %v, want %v", i, e.Kind, want[i])
		}
	}
}

func TestInterpreter_MirrorAndSmoothing(t *testing.T) {
	in := newTestInterpreter()

	hand := detector.PointingAt(0.25, 0.5)
	events := in.Update(&hand)

	// raw = (1280 - 0.25*1280, 0.5*720) = (960, 360); first EMA step from (0,0)
	cursor := events[0]
	if math.Abs(cursor.X-480) > epsilon || math.Abs(cursor.Y-180) > epsilon {
		t.Errorf("first cursor = (%f, %f), want (480, 180)", cursor.X, cursor.Y)
	}

	trail := events[len(events)-1]
	if trail.Kind != TrailSample {
		t.Fatalf("last event = %v, want TrailSample", trail.Kind)
	}
	if math.Abs(trail.X-960) > epsilon || math.Abs(trail.Y-360) > epsilon {
		t.Errorf("trail sample = (%f, %f), want raw (960, 360)", trail.X, trail.Y)
	}

	events = in.Update(&hand)
	if math.Abs(events[0].X-720) > epsilon || math.Abs(events[0].Y-270) > epsilon {
		t.Errorf("second cursor = (%f, %f), want (720, 270)", events[0].X, events[0].Y)
	}
	if c := in.Cursor(); c.X != events[0].X || c.Y != events[0].Y {
		t.Errorf("Cursor() = %v, want last CursorMoved", c)
	}
}

func TestInterpreter_NoHand(t *testing.T) {
	in := newTestInterpreter()

	pinch := detector.PinchingAt(0.5, 0.5)
	in.Update(&pinch)
	before := in.Cursor()

	for i := 0; i < 5; i++ {
		if events := in.Update(nil); events != nil {
			t.Fatalf("Update(nil) = %v, want no events", events)
		}
	}

	if in.Cursor() != before {
		t.Error("cursor should be held while no hand is seen")
	}
	if !in.Pinching() {
		t.Error("pinch state should be held while no hand is seen")
	}

	// Re-acquiring the same pinch must not fire a second PinchStarted.
	if got := pinchEvents(in.Update(&pinch)); len(got) != 0 {
		t.Errorf("pinch events after re-acquire = %v, want none", got)
	}
}

func TestNewInterpreter_Defaults(t *testing.T) {
	in := NewInterpreter(Config{Width: 100, Height: 100}, nil)

	hand := detector.WithPinchDistance(0.04)
	if got := pinchEvents(in.Update(&hand)); len(got) != 1 {
		t.Errorf("default threshold should be 0.05, got events %v", got)
	}
}

func TestEventKind_String(t *testing.T) {
	if PinchStarted.String() != "pinch_started" {
		t.Errorf("String() = %q", PinchStarted.String())
	}
	if EventKind(99).String() != "event(99)" {
		t.Errorf("String() = %q", EventKind(99).String())
	}
}

func TestMirror(t *testing.T) {
	tests := []struct {
		name string
		p    detector.Point3D
		want Point
	}{
		{"left edge maps right", detector.Point3D{X: 0, Y: 0}, Point{X: 640, Y: 0}},
		{"right edge maps left", detector.Point3D{X: 1, Y: 1}, Point{X: 0, Y: 480}},
		{"center", detector.Point3D{X: 0.5, Y: 0.5}, Point{X: 320, Y: 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mirror(tt.p, 640, 480); got != tt.want {
				t.Errorf("Mirror() = %v, want %v", got, tt.want)
			}
		})
	}
}
