package board

import "fmt"

// Grid stores the board cells and owns every live tile.
// Cells are stored column-major: index = x*columns + y.
type Grid struct {
	rows    int
	columns int
	cells   []TileID
	tiles   map[TileID]*Tile
	nextID  TileID
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, columns int) *Grid {
	return &Grid{
		rows:    rows,
		columns: columns,
		cells:   make([]TileID, rows*columns),
		tiles:   make(map[TileID]*Tile, rows*columns),
		nextID:  1,
	}
}

// NewGridFromColors builds a full grid from a color layout indexed [x][y].
// All rows of the layout must have the same length.
func NewGridFromColors(layout [][]Color) *Grid {
	rows := len(layout)
	columns := 0
	if rows > 0 {
		columns = len(layout[0])
	}
	g := NewGrid(rows, columns)
	for x := range layout {
		for y, color := range layout[x] {
			g.Spawn(C(x, y), color)
		}
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.X*g.columns + c.Y
}

// Dimensions returns (rows, columns).
func (g *Grid) Dimensions() (int, int) {
	return g.rows, g.columns
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.rows && c.Y >= 0 && c.Y < g.columns
}

// Get returns the tile id at c.
// Out-of-range and empty cells both report false.
func (g *Grid) Get(c Coord) (TileID, bool) {
	if !g.InBounds(c) {
		return NoTile, false
	}
	id := g.cells[g.index(c)]
	return id, id != NoTile
}

// Set stores id at c. Out-of-range coordinates are ignored.
// Set does not touch the tile's position cache; use Move for that.
func (g *Grid) Set(c Coord, id TileID) {
	if g.InBounds(c) {
		g.cells[g.index(c)] = id
	}
}

// Clear empties the cell at c without destroying its tile.
func (g *Grid) Clear(c Coord) {
	g.Set(c, NoTile)
}

// Tile returns the live tile with the given id, or nil.
func (g *Grid) Tile(id TileID) *Tile {
	return g.tiles[id]
}

// At returns the tile occupying c, or nil.
func (g *Grid) At(c Coord) *Tile {
	id, ok := g.Get(c)
	if !ok {
		return nil
	}
	return g.tiles[id]
}

// Spawn creates a fresh tile of the given color at c and returns it.
// Returns nil if c is out of range or occupied.
func (g *Grid) Spawn(c Coord, color Color) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	if _, occupied := g.Get(c); occupied {
		return nil
	}
	t := &Tile{ID: g.nextID, Color: color, Pos: c, Tier: TierDefault}
	g.nextID++
	g.tiles[t.ID] = t
	g.Set(c, t.ID)
	return t
}

// Remove destroys the tile at c and returns a copy of it.
func (g *Grid) Remove(c Coord) (Tile, bool) {
	t := g.At(c)
	if t == nil {
		return Tile{}, false
	}
	removed := *t
	delete(g.tiles, t.ID)
	g.Clear(c)
	return removed, true
}

// Move relocates the tile at from into the empty cell to.
func (g *Grid) Move(from, to Coord) bool {
	t := g.At(from)
	if t == nil || !g.InBounds(to) {
		return false
	}
	if _, occupied := g.Get(to); occupied {
		return false
	}
	g.Clear(from)
	g.Set(to, t.ID)
	t.Pos = to
	return true
}

// SetTier assigns a tier to a live tile and reports whether it changed.
// An undefined tier is a programming error and panics.
func (g *Grid) SetTier(id TileID, tier MatchTier) bool {
	if !tier.Valid() {
		panic(&InvariantError{Op: "SetTier", Err: fmt.Errorf("unknown tier %d", uint8(tier))})
	}
	t := g.tiles[id]
	if t == nil || t.Tier == tier {
		return false
	}
	t.Tier = tier
	return true
}

// Live returns the number of live tiles.
func (g *Grid) Live() int {
	return len(g.tiles)
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	count := 0
	for _, id := range g.cells {
		if id == NoTile {
			count++
		}
	}
	return count
}

// Full reports whether every cell is occupied.
func (g *Grid) Full() bool {
	return g.EmptyCount() == 0
}

// Clone returns a deep copy of the grid, tile ids included.
func (g *Grid) Clone() *Grid {
	cells := make([]TileID, len(g.cells))
	copy(cells, g.cells)
	tiles := make(map[TileID]*Tile, len(g.tiles))
	for id, t := range g.tiles {
		cp := *t
		tiles[id] = &cp
	}
	return &Grid{
		rows:    g.rows,
		columns: g.columns,
		cells:   cells,
		tiles:   tiles,
		nextID:  g.nextID,
	}
}

// Colors returns the color layout indexed [x][y]; empty cells hold -1.
func (g *Grid) Colors() [][]int {
	out := make([][]int, g.rows)
	for x := 0; x < g.rows; x++ {
		out[x] = make([]int, g.columns)
		for y := 0; y < g.columns; y++ {
			if t := g.At(C(x, y)); t != nil {
				out[x][y] = int(t.Color)
			} else {
				out[x][y] = -1
			}
		}
	}
	return out
}

// Tiers returns the tier layout indexed [x][y]; empty cells hold TierDefault.
func (g *Grid) Tiers() [][]MatchTier {
	out := make([][]MatchTier, g.rows)
	for x := 0; x < g.rows; x++ {
		out[x] = make([]MatchTier, g.columns)
		for y := 0; y < g.columns; y++ {
			if t := g.At(C(x, y)); t != nil {
				out[x][y] = t.Tier
			}
		}
	}
	return out
}
