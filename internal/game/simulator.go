package game

import (
	"math/rand"
)

// StepResult reports what a single simulator step did.
type StepResult struct {
	Spawned []*Fruit
	// Missed counts fruit that fell off the screen uncut this step.
	Missed int
}

// Simulator owns the live fruit and advances them one tick at a time.
type Simulator struct {
	width, height float64
	rng           *rand.Rand
	fruits        []*Fruit
	// ticks counts unfrozen steps since the last spawn.
	ticks int
}

// NewSimulator creates a Simulator for a width x height viewport. rng is the
// spawn randomness; nil seeds one from the clock.
func NewSimulator(width, height float64, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Simulator{width: width, height: height, rng: rng}
}

// Step advances the simulation by one tick. A frozen step changes nothing:
// no spawning, no motion, no slice animation and no misses.
func (s *Simulator) Step(frozen bool) StepResult {
	var res StepResult
	if frozen {
		return res
	}

	s.ticks++
	if s.ticks >= SpawnEvery {
		s.ticks = 0
		f := s.spawn()
		s.fruits = append(s.fruits, f)
		res.Spawned = append(res.Spawned, f)
	}

	live := s.fruits[:0]
	for _, f := range s.fruits {
		if f.step(s.height) {
			res.Missed++
		}
		if f.State != Expired {
			live = append(live, f)
		}
	}
	for i := len(live); i < len(s.fruits); i++ {
		s.fruits[i] = nil
	}
	s.fruits = live

	return res
}

func (s *Simulator) spawn() *Fruit {
	x := FruitRadius + s.rng.Float64()*(s.width-2*FruitRadius)
	vx := MinSpawnVX + s.rng.Float64()*(MaxSpawnVX-MinSpawnVX)
	vy := MinSpawnVY + s.rng.Float64()*(MaxSpawnVY-MinSpawnVY)
	c := Palette[s.rng.Intn(len(Palette))]
	return NewFruit(x, s.height, vx, vy, c)
}

// Fruits returns the live fruit. The slice is owned by the simulator and is
// only valid until the next Step.
func (s *Simulator) Fruits() []*Fruit {
	return s.fruits
}

// Add puts a fruit into play.
func (s *Simulator) Add(f *Fruit) {
	s.fruits = append(s.fruits, f)
}

// Clear removes every fruit and restarts the spawn countdown.
func (s *Simulator) Clear() {
	s.fruits = nil
	s.ticks = 0
}
