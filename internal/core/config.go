package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic boards
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what a game reports to the platform after each tick.
// Counters cover the current session only.
type GameState struct {
	Selections   int  // accepted selections
	Cleared      int  // tiles removed by selections
	LargestGroup int  // biggest group removed
	Recreations  int  // deadlocked boards replaced
	Busy         bool // board is mid-cycle and ignores selections
	Paused       bool
	Failed       bool // the game could not start, see its rendered message
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Events lists what happened during the tick, for sound and logging.
	Events []Event
}

// Event is a notable occurrence during a tick.
type Event struct {
	Kind EventKind
	Size int // group size for EventCleared
}

// EventKind classifies an Event.
type EventKind int

const (
	EventCleared   EventKind = iota + 1 // a selected group was removed
	EventRejected                       // a selection was refused
	EventRecreated                      // a deadlocked board was cleared
	EventSettled                        // the board opened for input
)
