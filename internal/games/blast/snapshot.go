package blast

import "github.com/vovakirdan/blast/internal/games/blast/board"

// StateType is the coarse state of a session.
type StateType string

const (
	StatePlaying     StateType = "playing"
	StateBusy        StateType = "busy"
	StatePaused      StateType = "paused"
	StateFailed      StateType = "failed"
	StatePausedSmall StateType = "paused_small_window"
)

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	Tick    uint64
	Variant string
	Cursor  board.Coord
	Board   board.Snapshot
	Sprites int  // sprites on screen, vanishing ones included
	Moving  bool // any animation in flight
	State   StateType
}

// Snapshot returns the current session snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Cursor:  g.cursor,
	}
	if g.ctrl == nil {
		snap.State = StateFailed
		return snap
	}

	snap.Board = g.ctrl.Snapshot()
	snap.Sprites = g.view.Len()
	snap.Moving = g.view.Busy()

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case g.paused:
		snap.State = StatePaused
	case !g.ctrl.InputAllowed():
		snap.State = StateBusy
	default:
		snap.State = StatePlaying
	}
	return snap
}
