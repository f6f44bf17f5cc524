// Package game implements the fruit slicing game: fruit physics, trail
// collision and the Playing/Paused/GameOver state machine.
package game

// Fruit physics, in viewport pixels and ticks.
const (
	Gravity      = 0.5
	FruitRadius  = 40.0
	SpawnEvery   = 60
	MinSpawnVX   = -3.0
	MaxSpawnVX   = 3.0
	MinSpawnVY   = -20.0
	MaxSpawnVY   = -15.0
	ExitMargin   = 100.0
	TicksPerUnit = 30
)

// SliceAnimTicks is how long a sliced fruit stays on screen: half a time
// unit at the nominal tick rate.
const SliceAnimTicks = TicksPerUnit / 2

// Scoring.
const (
	StartLives  = 3
	SlicePoints = 10
)
