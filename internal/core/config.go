package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  32,
		TickRate: 30,
	}
}

// DeltaSeconds is the fixed simulation step length.
func (c RuntimeConfig) DeltaSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 30.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // The current round has finished (won or lost)
	Paused   bool // Whether the game is paused

	Level   int     // Current level
	Coins   int     // Coins in hand
	Target  int     // Score needed to win the level
	Result  string  // "", "success" or "fail"
	Elapsed float64 // seconds since the round clock started
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
