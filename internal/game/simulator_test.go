package game

import (
	"math/rand"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func newTestSimulator() *Simulator {
	return NewSimulator(1280, 720, rand.New(rand.NewSource(1)))
}

func TestSimulator(t *testing.T) {
	convey.Convey("Given a simulator", t, func() {
		sim := newTestSimulator()

		convey.Convey("When 59 ticks pass", func() {
			for i := 0; i < SpawnEvery-1; i++ {
				sim.Step(false)
			}

			convey.Convey("Then nothing has spawned yet", func() {
				convey.So(sim.Fruits(), convey.ShouldBeEmpty)
			})

			convey.Convey("And the 60th tick spawns one fruit", func() {
				res := sim.Step(false)
				convey.So(res.Spawned, convey.ShouldHaveLength, 1)
				convey.So(sim.Fruits(), convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When many fruit spawn", func() {
			var spawned []*Fruit
			for i := 0; i < SpawnEvery*50; i++ {
				res := sim.Step(false)
				for _, f := range res.Spawned {
					// Undo the first step to see the spawn values.
					f2 := *f
					f2.Y -= f2.VY
					f2.X -= f2.VX
					f2.VY -= f2.Gravity
					spawned = append(spawned, &f2)
				}
			}

			convey.Convey("Then spawn values stay in range", func() {
				convey.So(spawned, convey.ShouldHaveLength, 50)
				for _, f := range spawned {
					convey.So(f.X, convey.ShouldBeBetweenOrEqual, FruitRadius, 1280-FruitRadius)
					convey.So(f.Y, convey.ShouldAlmostEqual, 720)
					convey.So(f.VX, convey.ShouldBeBetweenOrEqual, MinSpawnVX, MaxSpawnVX)
					convey.So(f.VY, convey.ShouldBeBetweenOrEqual, MinSpawnVY, MaxSpawnVY)
					convey.So(f.Radius, convey.ShouldEqual, FruitRadius)
					convey.So(f.ID.String(), convey.ShouldNotBeEmpty)
				}
			})
		})

		convey.Convey("When a fruit is in flight", func() {
			f := NewFruit(200, 600, 2, -10, Palette[0])
			sim.Add(f)
			sim.Step(false)

			convey.Convey("Then gravity is applied before moving", func() {
				convey.So(f.VY, convey.ShouldEqual, -9.5)
				convey.So(f.X, convey.ShouldEqual, 202)
				convey.So(f.Y, convey.ShouldEqual, 590.5)
			})
		})

		convey.Convey("When a fruit falls off the screen", func() {
			f := NewFruit(200, 720+ExitMargin, 0, 1, Palette[0])
			sim.Add(f)
			res := sim.Step(false)

			convey.Convey("Then it is a miss and is removed", func() {
				convey.So(res.Missed, convey.ShouldEqual, 1)
				convey.So(f.State, convey.ShouldEqual, Expired)
				convey.So(sim.Fruits(), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a fruit is sliced", func() {
			f := NewFruit(200, 600, 0, 50, Palette[0])
			sim.Add(f)
			f.Slice(0)

			convey.Convey("Then it stops moving and expires after the animation without a miss", func() {
				missed := 0
				for i := 0; i < SliceAnimTicks-1; i++ {
					missed += sim.Step(false).Missed
				}
				convey.So(f.Y, convey.ShouldEqual, 600)
				convey.So(sim.Fruits(), convey.ShouldHaveLength, 1)

				missed += sim.Step(false).Missed
				convey.So(f.State, convey.ShouldEqual, Expired)
				convey.So(sim.Fruits(), convey.ShouldBeEmpty)
				convey.So(missed, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When 100 spawn intervals pass frozen", func() {
			f := NewFruit(200, 720+ExitMargin, 0, 1, Palette[0])
			sim.Add(f)
			spawned, missed := 0, 0
			for i := 0; i < SpawnEvery*100; i++ {
				res := sim.Step(true)
				spawned += len(res.Spawned)
				missed += res.Missed
			}

			convey.Convey("Then nothing spawns, moves or is lost", func() {
				convey.So(spawned, convey.ShouldEqual, 0)
				convey.So(missed, convey.ShouldEqual, 0)
				convey.So(f.Y, convey.ShouldEqual, 720+ExitMargin)
				convey.So(sim.Fruits(), convey.ShouldHaveLength, 1)
			})
		})

		convey.Convey("When cleared", func() {
			for i := 0; i < SpawnEvery-1; i++ {
				sim.Step(false)
			}
			sim.Add(NewFruit(1, 1, 0, 0, Palette[0]))
			sim.Clear()

			convey.Convey("Then the fruit are gone and the spawn countdown restarts", func() {
				convey.So(sim.Fruits(), convey.ShouldBeEmpty)
				convey.So(sim.Step(false).Spawned, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestSimulator_Deterministic(t *testing.T) {
	a, b := newTestSimulator(), newTestSimulator()
	for i := 0; i < SpawnEvery*5; i++ {
		ra, rb := a.Step(false), b.Step(false)
		if len(ra.Spawned) != len(rb.Spawned) {
			t.Fatalf("tick %d: spawn counts differ", i)
		}
		for j := range ra.Spawned {
			fa, fb := ra.Spawned[j], rb.Spawned[j]
			if fa.X != fb.X || fa.VX != fb.VX || fa.VY != fb.VY || fa.Color != fb.Color {
				t.Fatalf("tick %d: same seed spawned different fruit", i)
			}
		}
	}
}
