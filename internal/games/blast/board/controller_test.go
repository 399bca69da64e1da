package board

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

type event struct {
	kind     string
	id       TileID
	at       Coord
	to       Coord
	tier     MatchTier
	animated bool
}

type recordingPresenter struct {
	events []event
}

func (r *recordingPresenter) OnTileCreated(tile Tile, at Coord, animated bool) {
	r.events = append(r.events, event{kind: "create", id: tile.ID, at: at, animated: animated})
}

func (r *recordingPresenter) OnTileRemoved(id TileID, animated bool) {
	r.events = append(r.events, event{kind: "remove", id: id, animated: animated})
}

func (r *recordingPresenter) OnTileMoved(id TileID, from, to Coord) {
	r.events = append(r.events, event{kind: "move", id: id, at: from, to: to})
}

func (r *recordingPresenter) OnTierChanged(id TileID, tier MatchTier) {
	r.events = append(r.events, event{kind: "tier", id: id, tier: tier})
}

func (r *recordingPresenter) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (r *recordingPresenter) reset() {
	r.events = nil
}

func scenarioConfig(timing Timing) Config {
	return Config{
		Rows:       3,
		Columns:    3,
		Colors:     2,
		MinRun:     2,
		Thresholds: Thresholds{A: 2, B: 3, C: 5},
		Timing:     timing,
	}
}

func uniformTiming(d time.Duration) Timing {
	return Timing{Remove: d, Drop: d, Refill: d, Settle: d, Recreate: d}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"rows too small", func(c *Config) { c.Rows = 1 }, "rows"},
		{"columns too large", func(c *Config) { c.Columns = 11 }, "columns"},
		{"no colors", func(c *Config) { c.Colors = 0 }, "colors"},
		{"too many colors", func(c *Config) { c.Colors = 7 }, "colors"},
		{"min run of one", func(c *Config) { c.MinRun = 1 }, "min_run"},
		{"min run does not fit", func(c *Config) { c.Rows, c.Columns, c.MinRun = 3, 3, 4 }, "min_run"},
		{"zero threshold", func(c *Config) { c.Thresholds.A = 0 }, "thresholds"},
		{"unordered thresholds", func(c *Config) { c.Thresholds = Thresholds{A: 4, B: 4, C: 9} }, "thresholds"},
		{"negative settle", func(c *Config) { c.Timing.Settle = -time.Millisecond }, "timing.settle"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.edit(&cfg)

			_, err := New(cfg, nil)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("New() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tc.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tc.field)
			}
		})
	}
}

func TestNewRejectsBadLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout [][]Color
	}{
		{"too few rows", [][]Color{{0, 1, 0}, {1, 0, 1}}},
		{"short row", [][]Color{{0, 1, 0}, {1, 0}, {0, 1, 0}}},
		{"color outside palette", [][]Color{{0, 1, 0}, {1, 5, 1}, {0, 1, 0}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(scenarioConfig(Timing{}), nil, WithLayout(tc.layout))
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Field != "layout" {
				t.Errorf("New() error = %v, want layout ConfigError", err)
			}
		})
	}
}

func TestNewFillsBoardWithoutAnimation(t *testing.T) {
	rec := &recordingPresenter{}
	cfg := DefaultConfig()
	cfg.Timing = Timing{}

	c, err := New(cfg, rec, WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}

	if c.Phase() != PhaseAwaitInput || !c.InputAllowed() {
		t.Fatalf("Phase() = %v, InputAllowed() = %v, want AwaitInput and open", c.Phase(), c.InputAllowed())
	}
	// The initial fill is reported before any evaluation.
	for i, e := range rec.events[:cfg.Rows*cfg.Columns] {
		if e.kind != "create" || e.animated {
			t.Fatalf("event %d = %+v, want a creation without animation", i, e)
		}
	}
	snap := c.Snapshot()
	for x := range snap.Colors {
		for y, color := range snap.Colors[x] {
			if color < 0 || color >= cfg.Colors {
				t.Errorf("cell (%d,%d) color %d, want [0, %d)", x, y, color, cfg.Colors)
			}
		}
	}
}

func TestSeededBoardsAreReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing = Timing{}

	a, _ := New(cfg, nil, WithSeed(9))
	b, _ := New(cfg, nil, WithSeed(9))

	ca, cb := a.Snapshot().Colors, b.Snapshot().Colors
	for x := range ca {
		for y := range ca[x] {
			if ca[x][y] != cb[x][y] {
				t.Fatalf("boards differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestWithRandMatchesWithSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing = Timing{}

	a, _ := New(cfg, nil, WithRand(rand.New(rand.NewSource(5))))
	b, _ := New(cfg, nil, WithSeed(5))

	ca, cb := a.Snapshot().Colors, b.Snapshot().Colors
	for x := range ca {
		for y := range ca[x] {
			if ca[x][y] != cb[x][y] {
				t.Fatalf("boards differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestSelectIsolatedTileIsNoop(t *testing.T) {
	rec := &recordingPresenter{}
	c, err := New(scenarioConfig(Timing{}), rec, WithLayout(scenarioLayout()), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	rec.reset()
	before := c.Snapshot()

	tests := []struct {
		name string
		x, y int
	}{
		{"isolated red", 2, 2},
		{"out of range", 3, 0},
		{"negative", -1, -1},
	}
	for _, tc := range tests {
		if c.SelectTile(tc.x, tc.y) {
			t.Errorf("%s: SelectTile(%d, %d) = true, want false", tc.name, tc.x, tc.y)
		}
	}

	after := c.Snapshot()
	if len(rec.events) != 0 {
		t.Errorf("rejected selections produced events: %+v", rec.events)
	}
	if after.Stats != before.Stats || after.Phase != PhaseAwaitInput || !after.InputAllowed {
		t.Errorf("state changed: before %+v, after %+v", before, after)
	}
}

func TestSelectGroupFullCycle(t *testing.T) {
	rec := &recordingPresenter{}
	c, err := New(scenarioConfig(Timing{}), rec, WithLayout(scenarioLayout()), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	rec.reset()

	if !c.SelectTile(0, 0) {
		t.Fatal("SelectTile(0, 0) = false, want true")
	}

	for i := 0; i < 3; i++ {
		if rec.events[i].kind != "remove" || !rec.events[i].animated {
			t.Fatalf("event %d = %+v, want animated removal", i, rec.events[i])
		}
	}

	// Green (0,2) falls two cells, green (1,2) falls one.
	var moves []event
	for _, e := range rec.events {
		if e.kind == "move" {
			moves = append(moves, e)
		}
	}
	if len(moves) != 2 ||
		moves[0].at != C(0, 2) || moves[0].to != C(0, 0) ||
		moves[1].at != C(1, 2) || moves[1].to != C(1, 1) {
		t.Errorf("moves = %+v", moves)
	}

	stats := c.Stats()
	if stats.Selections != 1 || stats.TilesRemoved != 3 || stats.LargestGroup != 3 {
		t.Errorf("Stats() = %+v", stats)
	}
	if c.Phase() != PhaseAwaitInput || !c.InputAllowed() {
		t.Errorf("zero timings should cascade back to input, got %v", c.Phase())
	}
	if tile, ok := c.TileAt(0, 0); !ok || tile.Color != green {
		t.Errorf("TileAt(0, 0) = %+v, %v, want the dropped green tile", tile, ok)
	}
}

func TestPhaseTiming(t *testing.T) {
	const step = 100 * time.Millisecond
	c, err := New(scenarioConfig(uniformTiming(step)), nil, WithLayout(scenarioLayout()), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	if c.Phase() != PhaseSettle || c.InputAllowed() {
		t.Fatalf("after New: Phase() = %v, InputAllowed() = %v", c.Phase(), c.InputAllowed())
	}
	if c.SelectTile(0, 0) {
		t.Error("selection accepted while settling")
	}

	c.Advance(step)
	if c.Phase() != PhaseAwaitInput {
		t.Fatalf("Phase() = %v, want AwaitInput", c.Phase())
	}
	c.Advance(time.Hour)
	if c.Phase() != PhaseAwaitInput || c.Pending() != 0 {
		t.Fatal("Advance while awaiting input must be a no-op")
	}

	if !c.SelectTile(0, 0) {
		t.Fatal("SelectTile(0, 0) rejected")
	}
	if c.SelectTile(1, 0) {
		t.Error("second selection accepted while busy")
	}

	steps := []struct {
		advance time.Duration
		want    Phase
	}{
		{0, PhaseRemove},
		{step / 2, PhaseRemove},
		{step / 2, PhaseCompact},
		{step, PhaseRefill},
		// (0,0) and (1,0) are green after the drop, so the refilled board
		// is playable whatever colors arrive.
		{step, PhaseSettle},
		{step, PhaseAwaitInput},
	}
	for i, s := range steps {
		c.Advance(s.advance)
		if c.Phase() != s.want {
			t.Fatalf("step %d: Phase() = %v, want %v", i, c.Phase(), s.want)
		}
	}
	if !c.InputAllowed() {
		t.Error("input should be open after settling")
	}
}

func TestAdvanceCarriesOvershoot(t *testing.T) {
	const step = 100 * time.Millisecond
	c, err := New(scenarioConfig(uniformTiming(step)), nil, WithLayout(scenarioLayout()), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	c.Advance(step)
	c.SelectTile(0, 0)

	c.Advance(250 * time.Millisecond)
	if c.Phase() != PhaseRefill {
		t.Fatalf("Phase() = %v, want Refill", c.Phase())
	}
	if c.Pending() != 50*time.Millisecond {
		t.Errorf("Pending() = %v, want 50ms", c.Pending())
	}
}

func TestDeadlockRecreation(t *testing.T) {
	const step = 100 * time.Millisecond
	rec := &recordingPresenter{}
	checkerboard := [][]Color{
		{red, green, red},
		{green, red, green},
		{red, green, red},
	}

	c, err := New(scenarioConfig(uniformTiming(step)), rec, WithLayout(checkerboard), WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}

	if c.Phase() != PhaseRecreate || c.InputAllowed() {
		t.Fatalf("Phase() = %v, InputAllowed() = %v, want Recreate and closed", c.Phase(), c.InputAllowed())
	}
	if got := rec.count("remove"); got != 9 {
		t.Errorf("recreation removed %d tiles, want 9", got)
	}
	for _, e := range rec.events[9:] {
		if e.kind != "remove" || !e.animated {
			t.Errorf("event %+v, want animated removal", e)
		}
	}
	if c.Stats().Recreations != 1 {
		t.Errorf("Recreations = %d, want 1", c.Stats().Recreations)
	}
	if c.SelectTile(0, 0) {
		t.Error("selection accepted during recreation")
	}

	for i := 0; c.Phase() != PhaseAwaitInput; i++ {
		if i > 1000 {
			t.Fatal("board never became playable")
		}
		c.Advance(step)
	}

	snap := c.Snapshot()
	for x := range snap.Colors {
		for y := range snap.Colors[x] {
			if snap.Colors[x][y] < 0 {
				t.Fatalf("cell (%d,%d) empty after recreation", x, y)
			}
		}
	}
	if !c.InputAllowed() {
		t.Error("input closed after a playable board was created")
	}
}

func TestGroupAt(t *testing.T) {
	c, err := New(scenarioConfig(Timing{}), nil, WithLayout(scenarioLayout()))
	if err != nil {
		t.Fatal(err)
	}

	if got := len(c.GroupAt(1, 1)); got != 3 {
		t.Errorf("len(GroupAt(1, 1)) = %d, want 3", got)
	}
	if got := c.GroupAt(5, 5); got != nil {
		t.Errorf("GroupAt(out of range) = %v, want nil", got)
	}
	if c.Stats().Selections != 0 {
		t.Error("GroupAt must not count as a selection")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseAwaitInput.String() == "" || PhaseRecreate.String() == PhaseCreate.String() {
		t.Error("phases should have distinct names")
	}
}

// hopelessConfig validates but a horizontal run of ten same-colored tiles
// out of six colors practically never appears.
func hopelessConfig(timing Timing) Config {
	return Config{
		Rows:       10,
		Columns:    2,
		Colors:     6,
		MinRun:     10,
		Thresholds: Thresholds{A: 4, B: 7, C: 9},
		Timing:     timing,
	}
}

func TestNewGivesUpOnHopelessBoard(t *testing.T) {
	cfg := hopelessConfig(Timing{})
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	c, err := New(cfg, nil, WithSeed(1))
	if c != nil {
		t.Error("New() returned a controller for a board that never became playable")
	}
	var inv *InvariantError
	if !errors.As(err, &inv) || !errors.Is(err, ErrNoPlayableBoard) {
		t.Fatalf("New() error = %v, want InvariantError wrapping ErrNoPlayableBoard", err)
	}
}

func TestRecreationStopsAtLimit(t *testing.T) {
	c, err := New(hopelessConfig(uniformTiming(time.Millisecond)), nil, WithSeed(1))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.Phase() != PhaseRecreate {
		t.Fatalf("Phase() = %v, want Recreate", c.Phase())
	}

	c.Advance(2 * maxRecreateStreak * time.Millisecond)

	if !c.InputAllowed() {
		t.Fatalf("InputAllowed() = false in phase %v, want the cycle to stop", c.Phase())
	}
	if got := c.Stats().Recreations; got != maxRecreateStreak {
		t.Errorf("Recreations = %d, want %d", got, maxRecreateStreak)
	}
}
