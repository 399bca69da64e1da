package board

// FloodFill returns the full same-color component containing seed.
//
// The traversal is iterative with a LIFO worklist, so board size never
// affects stack depth. Size thresholding is left to the caller. Filling
// from an empty cell is a sequencing bug and reports an *InvariantError
// wrapping ErrEmptySeed.
func FloodFill(g *Grid, seed Coord) (Group, error) {
	start := g.At(seed)
	if start == nil {
		return nil, &InvariantError{Op: "FloodFill " + seed.String(), Err: ErrEmptySeed}
	}

	seen := map[TileID]bool{start.ID: true}
	work := []*Tile{start}
	group := make(Group, 0, 8)

	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]
		group = append(group, current.ID)

		for _, n := range current.Pos.Neighbors() {
			neighbor := g.At(n)
			if neighbor == nil || seen[neighbor.ID] {
				continue
			}
			if neighbor.Color != start.Color {
				continue
			}
			seen[neighbor.ID] = true
			work = append(work, neighbor)
		}
	}

	return group, nil
}

// mustFloodFill is FloodFill for callers that have already checked the seed.
func mustFloodFill(g *Grid, seed Coord) Group {
	group, err := FloodFill(g, seed)
	if err != nil {
		panic(err)
	}
	return group
}
