package board

import "fmt"

// TileID identifies a live tile. Zero means "no tile".
// Ids are never reused within a grid.
type TileID uint32

// NoTile is the empty-cell marker.
const NoTile TileID = 0

// Color is a tile color index in [0, colorCount).
type Color uint8

// MatchTier is the cosmetic size class of the group a tile belongs to.
type MatchTier uint8

const (
	TierDefault MatchTier = iota
	TierA
	TierB
	TierC
)

// Valid reports whether t is one of the four defined tiers.
func (t MatchTier) Valid() bool {
	switch t {
	case TierDefault, TierA, TierB, TierC:
		return true
	default:
		return false
	}
}

// String returns the tier name.
func (t MatchTier) String() string {
	switch t {
	case TierDefault:
		return "Default"
	case TierA:
		return "A"
	case TierB:
		return "B"
	case TierC:
		return "C"
	default:
		return fmt.Sprintf("MatchTier(%d)", uint8(t))
	}
}

// Tile is a single colored unit occupying one cell.
type Tile struct {
	ID    TileID
	Color Color
	Pos   Coord // mirrors the grid location while the tile is live
	Tier  MatchTier
}

// Group is a set of same-colored, 4-connected tiles in discovery order.
type Group []TileID

// Contains reports whether id is a member of the group.
func (g Group) Contains(id TileID) bool {
	for _, member := range g {
		if member == id {
			return true
		}
	}
	return false
}
