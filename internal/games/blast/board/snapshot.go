package board

// Snapshot captures the observable board state for tests and rendering.
type Snapshot struct {
	Phase        Phase
	InputAllowed bool
	Rows         int
	Columns      int
	Colors       [][]int // [x][y], -1 for empty
	Tiers        [][]MatchTier
	Stats        Stats
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Phase:        c.phase,
		InputAllowed: c.inputAllowed,
		Rows:         c.cfg.Rows,
		Columns:      c.cfg.Columns,
		Colors:       c.grid.Colors(),
		Tiers:        c.grid.Tiers(),
		Stats:        c.stats,
	}
}
