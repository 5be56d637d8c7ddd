package core

// Fallbacks for RuntimeConfig fields left at zero.
const (
	DefaultScreenW  = 80
	DefaultScreenH  = 24
	DefaultTickRate = 30
)

// RuntimeConfig is what the platform tells a game when it (re)starts.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // steps per second
	Seed     int64 // board RNG seed; 0 lets the platform pick one
}

// WithDefaults replaces non-positive sizes and tick rate with the
// package defaults. Seed is left alone.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.ScreenW <= 0 {
		c.ScreenW = DefaultScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = DefaultScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	return c
}

// GameState is the summary a game reports to the platform after a step.
type GameState struct {
	Score    int
	Peak     int // highest score of the round
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
