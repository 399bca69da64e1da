package blast

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blast/internal/config"
	"github.com/vovakirdan/blast/internal/core"
	"github.com/vovakirdan/blast/internal/games/blast/board"
	"github.com/vovakirdan/blast/internal/registry"
)

// Game is a blast session on one variant.
type Game struct {
	variant Variant
	cfg     config.BlastConfig
	palette []core.Color

	ctrl *board.Controller
	view *View
	err  error

	tick     uint64
	tickRate int
	cursor   board.Coord
	paused   bool
	wasOpen  bool

	screenW  int
	screenH  int
	tooSmall bool
}

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Describer = (*Game)(nil)
	_ registry.Resizer   = (*Game)(nil)
)

// Package-level settings, applied on the next Reset.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path. Empty means the default search.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger handed to every board controller.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{variant: v}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title }

// Summary returns a one-line description for menus.
func (g *Game) Summary() string { return g.variant.Summary }

// Reset loads the configuration and deals a fresh board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.tick = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.wasOpen = false
	g.ctrl = nil
	g.err = nil

	cfg, err := g.loadConfig()
	if err != nil {
		g.err = err
		logger.Error("blast: config rejected", "variant", g.variant.ID, "err", err)
		return
	}
	palette, err := cfg.PaletteColors()
	if err != nil {
		g.err = err
		logger.Error("blast: palette rejected", "variant", g.variant.ID, "err", err)
		return
	}
	g.cfg = cfg
	g.palette = palette

	opts := []board.Option{
		board.WithSeed(rc.Seed),
		board.WithLogger(logger.With("variant", g.variant.ID)),
	}
	if !g.variant.overridesShape() {
		layout, err := cfg.LayoutColors()
		if err != nil {
			g.err = err
			logger.Error("blast: layout rejected", "variant", g.variant.ID, "err", err)
			return
		}
		if layout != nil {
			opts = append(opts, board.WithLayout(layout))
		}
	}

	g.view = NewView(cfg.Presentation, cfg.Board.Columns)
	ctrl, err := board.New(cfg.ToBoardConfig(), g.view, opts...)
	if err != nil {
		g.err = err
		logger.Error("blast: board rejected", "variant", g.variant.ID, "err", err)
		return
	}
	g.ctrl = ctrl
	g.cursor = board.C(cfg.Board.Rows/2, cfg.Board.Columns/2)
	g.wasOpen = ctrl.InputAllowed()

	g.checkScreenSize()
}

// loadConfig reads the configuration and applies the variant's shape.
func (g *Game) loadConfig() (config.BlastConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.BlastConfig{}, err
	}

	v := g.variant
	if v.Rows != 0 {
		cfg.Board.Rows = v.Rows
	}
	if v.Columns != 0 {
		cfg.Board.Columns = v.Columns
	}
	if v.Colors != 0 {
		cfg.Board.Colors = v.Colors
	}
	if v.overridesShape() {
		cfg.Layout = nil
	}
	if err := cfg.Validate(); err != nil {
		return config.BlastConfig{}, err
	}
	return cfg, nil
}

// Resize follows a terminal resize and keeps the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.ctrl != nil {
		g.checkScreenSize()
	}
}

// checkScreenSize checks if the board fits.
func (g *Game) checkScreenSize() {
	w, h := g.boardSize()
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+footerHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.ctrl == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	var events []core.Event
	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		events = append(events, g.selectAtCursor())
	}

	before := g.ctrl.Stats().Recreations
	dt := time.Second / time.Duration(g.tickRate)
	g.ctrl.Advance(dt)
	g.view.Advance(dt)

	if n := g.ctrl.Stats().Recreations - before; n > 0 {
		for i := 0; i < n; i++ {
			events = append(events, core.Event{Kind: core.EventRecreated})
		}
	}

	open := g.ctrl.InputAllowed()
	if open && !g.wasOpen {
		events = append(events, core.Event{Kind: core.EventSettled})
	}
	g.wasOpen = open

	return core.StepResult{State: g.State(), Events: events}
}

// moveCursor applies directional input. Up moves away from the floor.
func (g *Game) moveCursor(in core.InputFrame) {
	x, y := g.cursor.X, g.cursor.Y
	if in.Has(core.ActionLeft) {
		x--
	}
	if in.Has(core.ActionRight) {
		x++
	}
	if in.Has(core.ActionUp) {
		y++
	}
	if in.Has(core.ActionDown) {
		y--
	}
	g.cursor = board.C(
		core.Clamp(x, 0, g.cfg.Board.Rows-1),
		core.Clamp(y, 0, g.cfg.Board.Columns-1),
	)
}

// selectAtCursor forwards the selection to the controller.
func (g *Game) selectAtCursor() core.Event {
	removed := g.ctrl.Stats().TilesRemoved
	if !g.ctrl.SelectTile(g.cursor.X, g.cursor.Y) {
		return core.Event{Kind: core.EventRejected}
	}
	g.wasOpen = false
	return core.Event{Kind: core.EventCleared, Size: g.ctrl.Stats().TilesRemoved - removed}
}

// State returns the current session state.
func (g *Game) State() core.GameState {
	if g.ctrl == nil {
		return core.GameState{Failed: true}
	}
	st := g.ctrl.Stats()
	return core.GameState{
		Selections:   st.Selections,
		Cleared:      st.TilesRemoved,
		LargestGroup: st.LargestGroup,
		Recreations:  st.Recreations,
		Busy:         !g.ctrl.InputAllowed(),
		Paused:       g.paused,
	}
}

// Err returns why the game could not start, if it could not.
func (g *Game) Err() error {
	return g.err
}

// Config returns the effective configuration of the current session.
func (g *Game) Config() config.BlastConfig {
	return g.cfg
}

// Cursor returns the cursor cell.
func (g *Game) Cursor() board.Coord {
	return g.cursor
}

// Shape returns the board rows, columns and color count of the session.
func (g *Game) Shape() (rows, columns, colors int) {
	b := g.cfg.Board
	return b.Rows, b.Columns, b.Colors
}
