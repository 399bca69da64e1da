package board

// Presenter is the presentation layer the controller reports results to.
// It is never consulted for logic, and it must not call back into the
// controller from inside a notification.
type Presenter interface {
	// OnTileCreated announces a new tile resting at its final cell.
	// When animated, the tile should enter with a transition.
	OnTileCreated(tile Tile, at Coord, animated bool)

	// OnTileRemoved announces a destroyed tile.
	OnTileRemoved(id TileID, animated bool)

	// OnTileMoved announces a tile that fell from one cell to another.
	OnTileMoved(id TileID, from, to Coord)

	// OnTierChanged announces a new tier for a live tile.
	OnTierChanged(id TileID, tier MatchTier)
}

// NopPresenter ignores every notification.
type NopPresenter struct{}

func (NopPresenter) OnTileCreated(Tile, Coord, bool) {}
func (NopPresenter) OnTileRemoved(TileID, bool) {}
func (NopPresenter) OnTileMoved(TileID, Coord, Coord) {}
func (NopPresenter) OnTierChanged(TileID, MatchTier) {}

var _ Presenter = NopPresenter{}
