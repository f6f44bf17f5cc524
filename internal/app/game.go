package app

import (
	"github.com/ayusman/pinchslice/internal/control"
	"github.com/ayusman/pinchslice/internal/game"
	"github.com/ayusman/pinchslice/internal/gesture"
	"github.com/ayusman/pinchslice/internal/metrics"
	"github.com/ayusman/pinchslice/internal/render"
	"github.com/ayusman/pinchslice/internal/server"
)

// GameMode plays the fruit game. The interpreter must share its viewport.
type GameMode struct {
	width, height float64
	sim           *game.Simulator
	machine       *game.StateMachine
	trail         *gesture.Trail
	sounds        Sounds
	metrics       *metrics.Manager
}

// NewGameMode creates a game on a width x height viewport. sounds and m
// may be nil.
func NewGameMode(width, height float64, sim *game.Simulator, trail *gesture.Trail, sounds Sounds, m *metrics.Manager) *GameMode {
	if sounds == nil {
		sounds = silence{}
	}
	g := &GameMode{
		width:   width,
		height:  height,
		sim:     sim,
		machine: game.NewStateMachine(),
		trail:   trail,
		sounds:  sounds,
		metrics: m,
	}
	g.updateGauges()
	return g
}

func (g *GameMode) Name() string { return "game" }

// Tick runs, in order: trail and pinch events, collision (Playing only),
// one simulator step frozen outside Playing, and life loss for misses.
func (g *GameMode) Tick(t Tick) []render.Command {
	for _, ev := range t.Events {
		switch ev.Kind {
		case gesture.TrailSample:
			g.trail.Push(gesture.Point{X: ev.X, Y: ev.Y})
		case gesture.PinchStarted:
			g.metrics.RecordPinch()
			if g.machine.Apply(game.PinchStarted).Changed {
				g.sounds.PlayToggle()
			}
		case gesture.PinchEnded:
			g.machine.Apply(game.PinchEnded)
		}
	}

	var cut []*game.Fruit
	if g.machine.State().Phase == game.Playing {
		cut = game.Slice(g.trail.Points(), g.sim.Fruits(), t.N)
		for range cut {
			g.machine.Apply(game.FruitSliced)
			g.sounds.PlaySlice()
		}
	}

	step := g.sim.Step(g.machine.State().Phase != game.Playing)
	for i := 0; i < step.Missed; i++ {
		eff := g.machine.Apply(game.LifeLost)
		if !eff.Changed {
			continue
		}
		g.sounds.PlayMiss()
		if eff.To == game.GameOver && eff.From != game.GameOver {
			g.sounds.PlayGameOver()
		}
	}

	g.metrics.RecordFruits(len(step.Spawned), len(cut), step.Missed)
	g.updateGauges()

	cmds := render.Fruits(g.sim.Fruits())
	cmds = append(cmds, render.Trail(g.trail.Points())...)
	cmds = append(cmds, render.Skeleton(t.Hand(), g.width, g.height)...)
	cmds = append(cmds, render.HUD(g.machine.State(), g.width, g.height)...)
	return cmds
}

// Handle turns Reset into ResetRequested. A reset that lands clears the
// fruit and the trail; outside GameOver it is ignored.
func (g *GameMode) Handle(cmd control.Command) {
	if cmd != control.Reset {
		return
	}
	if eff := g.machine.Apply(game.ResetRequested); eff.Reset {
		g.sim.Clear()
		g.trail.Clear()
		g.updateGauges()
	}
}

func (g *GameMode) Report(s *server.Status) {
	st := g.machine.State()
	s.Enabled = true
	s.Phase = st.Phase.String()
	s.Score = st.Score
	s.Lives = st.Lives
	s.Fruits = len(g.sim.Fruits())
}

// State returns the current game state.
func (g *GameMode) State() game.State {
	return g.machine.State()
}

// Simulator returns the fruit simulator.
func (g *GameMode) Simulator() *game.Simulator {
	return g.sim
}

func (g *GameMode) updateGauges() {
	st := g.machine.State()
	g.metrics.UpdateGame(st.Score, st.Lives, int(st.Phase))
}
