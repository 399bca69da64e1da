package board

// Thresholds are the strictly increasing group sizes a component must
// exceed to earn tiers A, B and C.
type Thresholds struct {
	A int
	B int
	C int
}

// TierFor returns the highest tier whose threshold size exceeds.
func (t Thresholds) TierFor(size int) MatchTier {
	tier := TierDefault
	if size > t.A {
		tier = TierA
		if size > t.B {
			tier = TierB
			if size > t.C {
				tier = TierC
			}
		}
	}
	return tier
}

// TierChange records a tier assignment that altered a tile.
type TierChange struct {
	ID   TileID
	Tier MatchTier
}

// Evaluation is the outcome of a full classification pass.
type Evaluation struct {
	Horizontal bool
	Vertical   bool
	Changes    []TierChange
}

// Playable reports whether any minimum run exists on the board.
func (e Evaluation) Playable() bool {
	return e.Horizontal || e.Vertical
}

// Classifier scans the grid for minimum runs and tags components with tiers.
type Classifier struct {
	MinRun     int
	Thresholds Thresholds
}

// Evaluate runs the horizontal pass followed by the vertical pass.
// A tile reached by both keeps the vertical assignment.
func (cl Classifier) Evaluate(g *Grid) Evaluation {
	var changes []TierChange
	h := cl.scan(g, true, &changes)
	v := cl.scan(g, false, &changes)
	return Evaluation{Horizontal: h, Vertical: v, Changes: changes}
}

// ScanHorizontal runs only the pass along the rows axis.
func (cl Classifier) ScanHorizontal(g *Grid) (bool, []TierChange) {
	var changes []TierChange
	found := cl.scan(g, true, &changes)
	return found, changes
}

// ScanVertical runs only the pass along the columns axis.
func (cl Classifier) ScanVertical(g *Grid) (bool, []TierChange) {
	var changes []TierChange
	found := cl.scan(g, false, &changes)
	return found, changes
}

// scan walks every seed that can start a run in one direction.
// The horizontal pass resets each visited seed to Default before testing it;
// the vertical pass only assigns on a run.
func (cl Classifier) scan(g *Grid, horizontal bool, changes *[]TierChange) bool {
	rows, columns := g.Dimensions()
	outer, inner := columns, rows
	dx, dy := 1, 0
	if !horizontal {
		outer, inner = rows, columns
		dx, dy = 0, 1
	}

	assign := func(id TileID, tier MatchTier) {
		if g.SetTier(id, tier) {
			*changes = append(*changes, TierChange{ID: id, Tier: tier})
		}
	}

	found := false
	for o := 0; o < outer; o++ {
		for i := 0; i <= inner-cl.MinRun; i++ {
			seed := C(i, o)
			if !horizontal {
				seed = C(o, i)
			}

			current := g.At(seed)
			if current == nil {
				continue
			}
			if horizontal {
				assign(current.ID, TierDefault)
			}

			if !cl.isRun(g, current, dx, dy) {
				continue
			}
			found = true

			group := mustFloodFill(g, seed)
			tier := cl.Thresholds.TierFor(len(group))
			for _, id := range group {
				assign(id, tier)
			}
		}
	}
	return found
}

// isRun reports whether MinRun cells starting at seed share its color.
func (cl Classifier) isRun(g *Grid, seed *Tile, dx, dy int) bool {
	for step := 1; step < cl.MinRun; step++ {
		next := g.At(seed.Pos.Add(dx*step, dy*step))
		if next == nil || next.Color != seed.Color {
			return false
		}
	}
	return true
}
