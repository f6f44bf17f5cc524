package game

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestStateMachine(t *testing.T) {
	convey.Convey("Given a new game", t, func() {
		m := NewStateMachine()

		convey.Convey("It starts Playing with 3 lives and no score", func() {
			convey.So(m.State(), convey.ShouldResemble, State{Score: 0, Lives: 3, Phase: Playing})
		})

		convey.Convey("When a pinch starts", func() {
			eff := m.Apply(PinchStarted)

			convey.Convey("Then the game pauses", func() {
				convey.So(eff.From, convey.ShouldEqual, Playing)
				convey.So(eff.To, convey.ShouldEqual, Paused)
				convey.So(eff.Changed, convey.ShouldBeTrue)
			})

			convey.Convey("And a second pinch resumes it", func() {
				convey.So(m.Apply(PinchStarted).To, convey.ShouldEqual, Playing)
			})

			convey.Convey("And a pinch release changes nothing", func() {
				eff := m.Apply(PinchEnded)
				convey.So(eff.Changed, convey.ShouldBeFalse)
				convey.So(m.State().Phase, convey.ShouldEqual, Paused)
			})

			convey.Convey("And lives are not lost while paused", func() {
				eff := m.Apply(LifeLost)
				convey.So(eff.Changed, convey.ShouldBeFalse)
				convey.So(m.State().Lives, convey.ShouldEqual, 3)
			})

			convey.Convey("And a slice while paused still scores", func() {
				m.Apply(FruitSliced)
				convey.So(m.State().Score, convey.ShouldEqual, 10)
				convey.So(m.State().Phase, convey.ShouldEqual, Paused)
			})
		})

		convey.Convey("When fruit are sliced", func() {
			for i := 0; i < 4; i++ {
				m.Apply(FruitSliced)
			}

			convey.Convey("Then each one is worth 10 points", func() {
				convey.So(m.State().Score, convey.ShouldEqual, 40)
			})
		})

		convey.Convey("When the last life is lost", func() {
			m.Apply(FruitSliced)
			m.Apply(LifeLost)
			m.Apply(LifeLost)
			eff := m.Apply(LifeLost)

			convey.Convey("Then the game is over on that same event", func() {
				convey.So(eff.From, convey.ShouldEqual, Playing)
				convey.So(eff.To, convey.ShouldEqual, GameOver)
				convey.So(m.State().Lives, convey.ShouldEqual, 0)
			})

			convey.Convey("And everything but reset is ignored", func() {
				for _, ev := range []Event{PinchStarted, PinchEnded, FruitSliced, LifeLost} {
					convey.So(m.Apply(ev).Changed, convey.ShouldBeFalse)
				}
				convey.So(m.State(), convey.ShouldResemble, State{Score: 10, Lives: 0, Phase: GameOver})
			})

			convey.Convey("And reset starts a fresh game", func() {
				eff := m.Apply(ResetRequested)
				convey.So(eff.Reset, convey.ShouldBeTrue)
				convey.So(eff.To, convey.ShouldEqual, Playing)
				convey.So(m.State(), convey.ShouldResemble, State{Score: 0, Lives: 3, Phase: Playing})
			})
		})

		convey.Convey("When reset is requested mid game", func() {
			m.Apply(FruitSliced)
			eff := m.Apply(ResetRequested)

			convey.Convey("Then it is ignored", func() {
				convey.So(eff.Reset, convey.ShouldBeFalse)
				convey.So(m.State().Score, convey.ShouldEqual, 10)
			})
		})
	})
}

func TestStateMachine_Invariants(t *testing.T) {
	events := []Event{PinchStarted, FruitSliced, LifeLost, PinchEnded, FruitSliced, PinchStarted,
		LifeLost, ResetRequested, FruitSliced, LifeLost, LifeLost, FruitSliced, ResetRequested, LifeLost}

	m := NewStateMachine()
	sawZero := false
	for i, ev := range events {
		before := m.State()
		eff := m.Apply(ev)
		after := m.State()

		if ev != ResetRequested && after.Lives > before.Lives {
			t.Errorf("step %d (%v): lives rose from %d to %d", i, ev, before.Lives, after.Lives)
		}
		wantScore := before.Score
		if ev == FruitSliced && before.Phase != GameOver {
			wantScore += SlicePoints
		}
		if eff.Reset {
			wantScore = 0
			sawZero = false
		}
		if after.Score != wantScore {
			t.Errorf("step %d (%v): score = %d, want %d", i, ev, after.Score, wantScore)
		}
		if after.Lives <= 0 {
			sawZero = true
		}
		if (after.Phase == GameOver) != sawZero {
			t.Errorf("step %d (%v): phase %v with lives %d", i, ev, after.Phase, after.Lives)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{Playing: "playing", Paused: "paused", GameOver: "game_over", Phase(7): "phase(7)"}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(p), got, want)
		}
	}
}
