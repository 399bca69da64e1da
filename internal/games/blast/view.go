package blast

import (
	"time"

	"github.com/vovakirdan/blast/internal/config"
	"github.com/vovakirdan/blast/internal/core"
	"github.com/vovakirdan/blast/internal/games/blast/board"
)

// spriteState is the animation a sprite is in.
type spriteState int

const (
	spriteIdle spriteState = iota
	spriteAppearing
	spriteVanishing
)

// sprite is the on-screen counterpart of a tile.
type sprite struct {
	id     board.TileID
	color  board.Color
	tier   board.MatchTier
	x, y   float64 // current cell position
	toY    float64 // drop target
	state  spriteState
	clock  time.Duration // time spent in the current state
	length time.Duration // duration of the current state
}

// progress returns 0..1 through the current appear/vanish animation.
func (s *sprite) progress() float64 {
	if s.length <= 0 {
		return 1
	}
	return core.ClampF(float64(s.clock)/float64(s.length), 0, 1)
}

// scale returns the drawn size relative to a settled tile.
func (s *sprite) scale(minScale float64) float64 {
	t := easeOutQuad(s.progress())
	switch s.state {
	case spriteAppearing:
		return minScale + (1-minScale)*t
	case spriteVanishing:
		return 1 - (1-minScale)*t
	default:
		return 1
	}
}

func (s *sprite) falling() bool {
	return s.y != s.toY
}

// View animates the board for the terminal. It implements board.Presenter
// and only ever reads what the controller reports.
type View struct {
	cfg     config.PresentationConfig
	spawnY  float64 // where animated tiles enter, above the top row
	sprites map[board.TileID]*sprite
	order   []board.TileID // creation order, for stable drawing
}

var _ board.Presenter = (*View)(nil)

// NewView creates an empty view for a board with the given number of columns.
func NewView(cfg config.PresentationConfig, columns int) *View {
	return &View{
		cfg:     cfg,
		spawnY:  float64(columns + columns/2),
		sprites: make(map[board.TileID]*sprite),
	}
}

// OnTileCreated adds a sprite. Animated tiles enter above the board, grow in
// and fall to their cell.
func (v *View) OnTileCreated(tile board.Tile, at board.Coord, animated bool) {
	s := &sprite{
		id:    tile.ID,
		color: tile.Color,
		tier:  tile.Tier,
		x:     float64(at.X),
		y:     float64(at.Y),
		toY:   float64(at.Y),
	}
	if animated {
		s.y = max(v.spawnY, s.toY)
	}
	if animated && v.cfg.CreateDuration > 0 {
		s.state = spriteAppearing
		s.length = v.cfg.CreateDuration
	}
	v.sprites[tile.ID] = s
	v.order = append(v.order, tile.ID)
}

// OnTileRemoved shrinks the sprite away, or drops it at once.
func (v *View) OnTileRemoved(id board.TileID, animated bool) {
	s, ok := v.sprites[id]
	if !ok {
		return
	}
	if !animated || v.cfg.RemoveDuration <= 0 {
		v.drop(id)
		return
	}
	s.state = spriteVanishing
	s.clock = 0
	s.length = v.cfg.RemoveDuration
}

// OnTileMoved starts a fall toward the new cell.
func (v *View) OnTileMoved(id board.TileID, _, to board.Coord) {
	if s, ok := v.sprites[id]; ok {
		s.x = float64(to.X)
		s.toY = float64(to.Y)
	}
}

// OnTierChanged swaps the glyph.
func (v *View) OnTierChanged(id board.TileID, tier board.MatchTier) {
	if s, ok := v.sprites[id]; ok {
		s.tier = tier
	}
}

// Advance moves every animation forward by dt.
func (v *View) Advance(dt time.Duration) {
	step := v.cfg.DropSpeed * dt.Seconds()

	var done []board.TileID
	for _, id := range v.order {
		s, ok := v.sprites[id]
		if !ok {
			continue
		}

		if s.falling() {
			s.y -= step
			if s.y < s.toY {
				s.y = s.toY
			}
		}

		if s.state == spriteIdle {
			continue
		}
		s.clock += dt
		if s.clock < s.length {
			continue
		}
		if s.state == spriteVanishing {
			done = append(done, id)
		} else {
			s.state = spriteIdle
		}
	}

	for _, id := range done {
		v.drop(id)
	}
}

// Busy reports whether any sprite is still animating.
func (v *View) Busy() bool {
	for _, s := range v.sprites {
		if s.state != spriteIdle || s.falling() {
			return true
		}
	}
	return false
}

// Len returns the number of sprites on screen, vanishing ones included.
func (v *View) Len() int {
	return len(v.sprites)
}

func (v *View) drop(id board.TileID) {
	delete(v.sprites, id)
	for i, o := range v.order {
		if o == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

// each calls fn for every sprite in creation order.
func (v *View) each(fn func(*sprite)) {
	for _, id := range v.order {
		if s, ok := v.sprites[id]; ok {
			fn(s)
		}
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
