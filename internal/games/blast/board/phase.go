package board

// Phase is a step of the board cycle.
type Phase uint8

const (
	PhaseCreate     Phase = iota // fresh full board spawned
	PhaseEvaluate                // tiers assigned, deadlock checked
	PhaseSettle                  // playable board, waiting before input opens
	PhaseAwaitInput              // input allowed, no timeout
	PhaseRemove                  // selected group removed
	PhaseCompact                 // columns compacted
	PhaseRefill                  // empties refilled
	PhaseRecreate                // deadlocked board cleared
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCreate:
		return "Create"
	case PhaseEvaluate:
		return "Evaluate"
	case PhaseSettle:
		return "Settle"
	case PhaseAwaitInput:
		return "AwaitInput"
	case PhaseRemove:
		return "Remove"
	case PhaseCompact:
		return "Compact"
	case PhaseRefill:
		return "Refill"
	case PhaseRecreate:
		return "Recreate"
	default:
		return "Unknown"
	}
}
