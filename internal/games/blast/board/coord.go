package board

import "fmt"

// Coord addresses a grid cell.
// X runs along the rows axis (left to right), Y along the columns axis
// (bottom to top). Gravity pulls tiles toward Y = 0.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors returns the four orthogonal neighbors in left, right, up, down order.
// Diagonals are never adjacent. Results may lie outside the grid.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(-1, 0),
		c.Add(1, 0),
		c.Add(0, 1),
		c.Add(0, -1),
	}
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
