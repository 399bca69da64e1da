package board

import "math/rand"

// Move records a tile displaced by compaction.
type Move struct {
	ID   TileID
	From Coord
	To   Coord
}

// Distance returns how many cells the tile travelled.
func (m Move) Distance() int {
	return m.From.Manhattan(m.To)
}

// Compact drops tiles toward y = 0 in every column.
//
// Each column is scanned once from the bottom; a tile falls by the number
// of empty cells seen below it, so relative order is kept and all empties
// end up contiguous at the top.
func Compact(g *Grid) []Move {
	rows, columns := g.Dimensions()
	var moves []Move

	for x := 0; x < rows; x++ {
		gaps := 0
		for y := 0; y < columns; y++ {
			from := C(x, y)
			id, ok := g.Get(from)
			if !ok {
				gaps++
				continue
			}
			if gaps == 0 {
				continue
			}
			to := C(x, y-gaps)
			g.Move(from, to)
			moves = append(moves, Move{ID: id, From: from, To: to})
		}
	}

	return moves
}

// Refill spawns a uniformly random tile in every empty cell.
// Columns are filled bottom to top.
func Refill(g *Grid, rng *rand.Rand, colors int) []*Tile {
	rows, columns := g.Dimensions()
	var created []*Tile

	for x := 0; x < rows; x++ {
		for y := 0; y < columns; y++ {
			c := C(x, y)
			if _, ok := g.Get(c); ok {
				continue
			}
			created = append(created, g.Spawn(c, Color(rng.Intn(colors))))
		}
	}

	return created
}
