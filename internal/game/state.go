package game

import "fmt"

// Phase is the top-level game phase.
type Phase int

const (
	Playing Phase = iota
	Paused
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Event is an input to the state machine.
type Event int

const (
	PinchStarted Event = iota
	PinchEnded
	FruitSliced
	LifeLost
	ResetRequested
)

func (e Event) String() string {
	switch e {
	case PinchStarted:
		return "pinch_started"
	case PinchEnded:
		return "pinch_ended"
	case FruitSliced:
		return "fruit_sliced"
	case LifeLost:
		return "life_lost"
	case ResetRequested:
		return "reset_requested"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// State is the score, lives and phase of one game.
type State struct {
	Score int
	Lives int
	Phase Phase
}

// Effect describes what applying an event did.
type Effect struct {
	From, To Phase
	// Changed is set when the state changed at all, score and lives included.
	Changed bool
	// Reset asks the caller to clear the fruit and the trail.
	Reset bool
}

// StateMachine owns the game State. All mutation goes through Apply.
type StateMachine struct {
	state State
}

// NewStateMachine starts a game: Playing, full lives, no score.
func NewStateMachine() *StateMachine {
	return &StateMachine{state: initialState()}
}

func initialState() State {
	return State{Lives: StartLives, Phase: Playing}
}

// State returns a copy of the current state.
func (m *StateMachine) State() State {
	return m.state
}

// Apply feeds one event through the transition table:
//
//	Playing  --PinchStarted-->   Paused
//	Paused   --PinchStarted-->   Playing
//	Playing  --FruitSliced-->    Playing, score +10
//	Paused   --FruitSliced-->    Paused, score +10
//	Playing  --LifeLost-->       Playing, lives -1; GameOver once lives <= 0
//	GameOver --ResetRequested--> Playing, lives 3, score 0
//
// Every other pair is ignored.
func (m *StateMachine) Apply(ev Event) Effect {
	before := m.state
	eff := Effect{From: before.Phase}

	switch before.Phase {
	case Playing:
		switch ev {
		case PinchStarted:
			m.state.Phase = Paused
		case FruitSliced:
			m.state.Score += SlicePoints
		case LifeLost:
			m.state.Lives--
			if m.state.Lives <= 0 {
				m.state.Phase = GameOver
			}
		}
	case Paused:
		switch ev {
		case PinchStarted:
			m.state.Phase = Playing
		case FruitSliced:
			m.state.Score += SlicePoints
		}
	case GameOver:
		if ev == ResetRequested {
			m.state = initialState()
			eff.Reset = true
		}
	}

	eff.To = m.state.Phase
	eff.Changed = m.state != before || eff.Reset
	return eff
}
