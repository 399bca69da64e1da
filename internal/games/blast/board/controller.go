// Package board implements the collapse-puzzle board engine: flood fill,
// run classification, column compaction, refill and deadlock recreation,
// sequenced by an explicit phase machine.
//
// The package has no knowledge of rendering or input devices. A presentation
// layer observes results through Presenter and drives time through Advance.
package board

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// recreateWarnStreak is the number of back-to-back recreations after which
// each further one is logged as a warning.
const recreateWarnStreak = 8

// maxRecreateStreak bounds back-to-back recreations. Past it the board is
// kept as it is, since a config with a near-impossible min run would
// otherwise recreate forever.
const maxRecreateStreak = 1000

// Stats counts what happened on a board since construction.
type Stats struct {
	Selections   int // accepted selections
	TilesRemoved int
	TilesCreated int
	LargestGroup int
	Recreations  int
	Evaluations  int
}

// Controller owns the grid and is its only mutator.
// It is not safe for concurrent use.
type Controller struct {
	cfg        Config
	grid       *Grid
	classifier Classifier
	presenter  Presenter
	rng        *rand.Rand
	logger     *log.Logger
	layout     [][]Color

	phase        Phase
	wait         time.Duration
	inputAllowed bool
	deadlocked   bool
	streak       int
	gaveUp       bool
	stats        Stats
}

// Option customizes a Controller.
type Option func(*Controller)

// WithRand sets the color source.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = rng
	}
}

// WithSeed seeds a private color source for reproducible boards.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger used for phase tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLayout starts the board from a fixed color layout indexed [x][y]
// instead of random tiles. Later refills and recreations stay random.
func WithLayout(layout [][]Color) Option {
	return func(c *Controller) {
		c.layout = layout
	}
}

// New validates cfg, fills the board without animation and evaluates it.
// A nil presenter is replaced by NopPresenter.
func New(cfg Config, presenter Presenter, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}

	c := &Controller{
		cfg:        cfg,
		grid:       NewGrid(cfg.Rows, cfg.Columns),
		classifier: Classifier{MinRun: cfg.MinRun, Thresholds: cfg.Thresholds},
		presenter:  presenter,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	if c.layout != nil {
		if err := c.placeLayout(); err != nil {
			return nil, err
		}
	}
	c.spawnBoard(false)
	c.phase = PhaseCreate
	c.drain()
	if c.gaveUp {
		return nil, &InvariantError{Op: "New", Err: ErrNoPlayableBoard}
	}
	return c, nil
}

// SelectTile is the player's input. It removes the group at (x, y) and
// starts the removal cycle when input is open and the group reaches the
// minimum run. Any other selection is dropped without side effects.
func (c *Controller) SelectTile(x, y int) bool {
	seed := C(x, y)
	if !c.inputAllowed {
		c.logger.Debug("selection dropped", "at", seed, "phase", c.phase)
		return false
	}
	if _, ok := c.grid.Get(seed); !ok {
		return false
	}

	group := mustFloodFill(c.grid, seed)
	if len(group) < c.cfg.MinRun {
		return false
	}

	c.inputAllowed = false
	for _, id := range group {
		t := c.grid.Tile(id)
		c.grid.Remove(t.Pos)
		c.presenter.OnTileRemoved(id, true)
	}

	c.stats.Selections++
	c.stats.TilesRemoved += len(group)
	if len(group) > c.stats.LargestGroup {
		c.stats.LargestGroup = len(group)
	}
	c.logger.Debug("group removed", "at", seed, "size", len(group))

	c.phase = PhaseRemove
	c.wait = c.cfg.Timing.Remove
	c.drain()
	return true
}

// Advance lets elapsed time pass. Every phase whose settle delay has run
// out is completed in order; overshoot carries into the next phase.
// Advance is a no-op while awaiting input.
func (c *Controller) Advance(elapsed time.Duration) {
	if c.phase == PhaseAwaitInput {
		return
	}
	c.wait -= elapsed
	c.drain()
}

// drain steps through phases until one is still waiting or input is open.
// Deadlock recreation loops here iteratively, never by recursion.
func (c *Controller) drain() {
	for c.phase != PhaseAwaitInput && c.wait <= 0 {
		c.enter(c.next())
	}
}

// next returns the phase that follows the current one.
func (c *Controller) next() Phase {
	switch c.phase {
	case PhaseCreate:
		return PhaseEvaluate
	case PhaseEvaluate:
		if c.deadlocked {
			return PhaseRecreate
		}
		return PhaseSettle
	case PhaseSettle:
		return PhaseAwaitInput
	case PhaseRemove:
		return PhaseCompact
	case PhaseCompact:
		return PhaseRefill
	case PhaseRefill:
		return PhaseEvaluate
	case PhaseRecreate:
		return PhaseCreate
	default:
		return PhaseAwaitInput
	}
}

// enter performs the work of phase p and schedules its settle delay.
func (c *Controller) enter(p Phase) {
	c.logger.Debug("phase", "from", c.phase, "to", p)
	c.phase = p

	switch p {
	case PhaseCreate:
		c.spawnBoard(true)

	case PhaseEvaluate:
		c.evaluate()

	case PhaseSettle:
		c.streak = 0
		c.wait += c.cfg.Timing.Settle

	case PhaseAwaitInput:
		c.wait = 0
		c.inputAllowed = true

	case PhaseCompact:
		for _, m := range Compact(c.grid) {
			c.presenter.OnTileMoved(m.ID, m.From, m.To)
		}
		c.wait += c.cfg.Timing.Drop

	case PhaseRefill:
		c.spawnBoard(true)
		c.wait += c.cfg.Timing.Refill

	case PhaseRecreate:
		c.clearBoard()
		c.wait += c.cfg.Timing.Recreate
	}
}

// evaluate classifies the grid, forwards tier changes and records deadlock.
func (c *Controller) evaluate() {
	eval := c.classifier.Evaluate(c.grid)
	for _, ch := range eval.Changes {
		c.presenter.OnTierChanged(ch.ID, ch.Tier)
	}
	c.stats.Evaluations++
	c.deadlocked = !eval.Playable()
	if !c.deadlocked {
		return
	}
	if c.streak >= maxRecreateStreak {
		c.logger.Error("giving up on recreation, keeping a board without runs",
			"streak", c.streak, "rows", c.cfg.Rows, "columns", c.cfg.Columns,
			"colors", c.cfg.Colors, "min_run", c.cfg.MinRun)
		c.deadlocked = false
		c.gaveUp = true
		return
	}
	c.logger.Info("no moves left, recreating board")
}

// placeLayout spawns the fixed starting layout.
func (c *Controller) placeLayout() error {
	if len(c.layout) != c.cfg.Rows {
		return &ConfigError{Field: "layout", Message: fmt.Sprintf("has %d rows, board has %d", len(c.layout), c.cfg.Rows)}
	}
	for x, column := range c.layout {
		if len(column) != c.cfg.Columns {
			return &ConfigError{Field: "layout", Message: fmt.Sprintf("row %d has %d cells, board has %d", x, len(column), c.cfg.Columns)}
		}
		for y, color := range column {
			if int(color) >= c.cfg.Colors {
				return &ConfigError{Field: "layout", Message: fmt.Sprintf("color %d at %s exceeds palette of %d", color, C(x, y), c.cfg.Colors)}
			}
		}
	}

	for x, column := range c.layout {
		for y, color := range column {
			t := c.grid.Spawn(C(x, y), color)
			c.presenter.OnTileCreated(*t, t.Pos, false)
			c.stats.TilesCreated++
		}
	}
	return nil
}

// spawnBoard fills every empty cell and reports the new tiles.
func (c *Controller) spawnBoard(animated bool) {
	for _, t := range Refill(c.grid, c.rng, c.cfg.Colors) {
		c.presenter.OnTileCreated(*t, t.Pos, animated)
		c.stats.TilesCreated++
	}
}

// clearBoard removes every live tile regardless of color or connectivity.
func (c *Controller) clearBoard() {
	for x := 0; x < c.cfg.Rows; x++ {
		for y := 0; y < c.cfg.Columns; y++ {
			if t, ok := c.grid.Remove(C(x, y)); ok {
				c.presenter.OnTileRemoved(t.ID, true)
			}
		}
	}

	c.stats.Recreations++
	c.streak++
	if c.streak > recreateWarnStreak {
		c.logger.Warn("board keeps deadlocking", "streak", c.streak,
			"rows", c.cfg.Rows, "columns", c.cfg.Columns, "colors", c.cfg.Colors)
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// InputAllowed reports whether SelectTile would currently be considered.
func (c *Controller) InputAllowed() bool {
	return c.inputAllowed
}

// Pending returns the settle time left in the current phase.
func (c *Controller) Pending() time.Duration {
	if c.wait < 0 {
		return 0
	}
	return c.wait
}

// Config returns the configuration the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Stats returns the counters accumulated so far.
func (c *Controller) Stats() Stats {
	return c.stats
}

// TileAt returns a copy of the tile at (x, y).
func (c *Controller) TileAt(x, y int) (Tile, bool) {
	t := c.grid.At(C(x, y))
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// GroupAt returns the cells of the component containing (x, y), or nil for
// an empty or out-of-range cell. The board is not modified.
func (c *Controller) GroupAt(x, y int) []Coord {
	seed := C(x, y)
	if _, ok := c.grid.Get(seed); !ok {
		return nil
	}
	group := mustFloodFill(c.grid, seed)
	cells := make([]Coord, len(group))
	for i, id := range group {
		cells[i] = c.grid.Tile(id).Pos
	}
	return cells
}
