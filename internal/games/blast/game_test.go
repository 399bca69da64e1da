package blast

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/blast/internal/core"
	"github.com/vovakirdan/blast/internal/games/blast/board"
	"github.com/vovakirdan/blast/internal/registry"
)

// scenarioYAML is a 3x3 two-color board with instant phases.
// Rows are x, digits are y from the floor up:
//
//	x=0: R R G
//	x=1: G R G
//	x=2: G G R
const scenarioYAML = `
board: {rows: 3, columns: 3, colors: 2, min_run: 2}
tiers: {a: 2, b: 3, c: 5}
timing: {remove: 0s, drop: 0s, refill: 0s, settle: 0s, recreate: 0s}
layout: ["001", "101", "110"]
`

func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blast.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
}

func newTestGame(t *testing.T, variant string) *Game {
	t.Helper()
	v, ok := LookupVariant(variant)
	if !ok {
		t.Fatalf("variant %q not found", variant)
	}
	g := New(v)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func hasEvent(events []core.Event, kind core.EventKind) (core.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return core.Event{}, false
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		info, ok := registry.Info(v.ID)
		if !ok {
			t.Errorf("variant %q not registered", v.ID)
			continue
		}
		if info.Title != v.Title || info.Summary != v.Summary {
			t.Errorf("Info(%q) = %+v, want title %q summary %q", v.ID, info, v.Title, v.Summary)
		}
	}
	if _, ok := LookupVariant("nope"); ok {
		t.Error("LookupVariant(nope) found a variant")
	}
}

func TestSelectClearsGroup(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "classic")

	if got := g.Cursor(); got != board.C(1, 1) {
		t.Fatalf("initial cursor = %v, want (1,1)", got)
	}
	if got := len(g.ctrl.GroupAt(1, 1)); got != 3 {
		t.Fatalf("group under cursor = %d tiles, want 3", got)
	}

	res := g.Step(frame(core.ActionSelect))
	ev, ok := hasEvent(res.Events, core.EventCleared)
	if !ok {
		t.Fatalf("events = %v, want a clear", res.Events)
	}
	if ev.Size != 3 {
		t.Errorf("cleared size = %d, want 3", ev.Size)
	}
	if _, ok := hasEvent(res.Events, core.EventSettled); !ok {
		t.Errorf("events = %v, want the board to settle within the tick", res.Events)
	}

	st := res.State
	if st.Selections != 1 || st.Cleared != 3 || st.LargestGroup != 3 {
		t.Errorf("state = %+v, want 1 selection clearing 3", st)
	}
	if st.Busy {
		t.Error("Busy = true with instant phases")
	}
}

func TestSelectIsolatedTileRejected(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "classic")

	g.Step(frame(core.ActionRight, core.ActionUp))
	if got := g.Cursor(); got != board.C(2, 2) {
		t.Fatalf("cursor = %v, want (2,2)", got)
	}

	res := g.Step(frame(core.ActionSelect))
	if _, ok := hasEvent(res.Events, core.EventRejected); !ok {
		t.Errorf("events = %v, want a rejection", res.Events)
	}
	if res.State.Selections != 0 || res.State.Cleared != 0 {
		t.Errorf("state = %+v, want no selection counted", res.State)
	}
}

func TestCursorClamped(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "classic")

	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionLeft, core.ActionDown))
	}
	if got := g.Cursor(); got != board.C(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", got)
	}
	for i := 0; i < 5; i++ {
		g.Step(frame(core.ActionRight, core.ActionUp))
	}
	if got := g.Cursor(); got != board.C(2, 2) {
		t.Errorf("cursor = %v, want (2,2)", got)
	}
}

func TestPauseBlocksSelection(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "classic")

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Paused = false after pause")
	}
	res = g.Step(frame(core.ActionSelect))
	if len(res.Events) != 0 || res.State.Selections != 0 {
		t.Errorf("paused step = %+v, want nothing to happen", res)
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("snapshot state = %v, want paused", g.Snapshot().State)
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Error("Paused = true after second pause")
	}
}

func TestBusyBoardDropsSelection(t *testing.T) {
	useConfig(t, `
board: {rows: 3, columns: 3, colors: 2, min_run: 2}
tiers: {a: 2, b: 3, c: 5}
timing: {remove: 1s, drop: 1s, refill: 1s, settle: 0s, recreate: 0s}
layout: ["001", "101", "110"]
`)
	g := newTestGame(t, "classic")

	res := g.Step(frame(core.ActionSelect))
	if _, ok := hasEvent(res.Events, core.EventCleared); !ok {
		t.Fatalf("events = %v, want a clear", res.Events)
	}
	if !res.State.Busy {
		t.Fatal("Busy = false during removal delay")
	}

	res = g.Step(frame(core.ActionSelect))
	if _, ok := hasEvent(res.Events, core.EventRejected); !ok {
		t.Errorf("events = %v, want the selection dropped", res.Events)
	}
	if res.State.Selections != 1 {
		t.Errorf("Selections = %d, want 1", res.State.Selections)
	}
	if g.Snapshot().State != StateBusy {
		t.Errorf("snapshot state = %v, want busy", g.Snapshot().State)
	}
}

func TestVariantOverridesShape(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "small")

	cfg := g.Config()
	if cfg.Board.Rows != 6 || cfg.Board.Columns != 6 || cfg.Board.Colors != 3 {
		t.Errorf("board = %+v, want 6x6 with 3 colors", cfg.Board)
	}
	if cfg.Layout != nil {
		t.Errorf("Layout = %v, want dropped for a resized variant", cfg.Layout)
	}
	snap := g.Snapshot()
	if snap.Board.Rows != 6 || snap.Board.Columns != 6 {
		t.Errorf("board snapshot = %dx%d, want 6x6", snap.Board.Rows, snap.Board.Columns)
	}
	if snap.Sprites < 36 {
		t.Errorf("Sprites = %d, want at least 36", snap.Sprites)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	useConfig(t, "board: {rows: 1}\n")
	g := New(Variants[0])
	g.Reset(core.DefaultConfig())

	if g.Err() == nil {
		t.Fatal("Err() = nil for an invalid config")
	}
	if !g.State().Failed {
		t.Error("Failed = false for an invalid config")
	}
	res := g.Step(frame(core.ActionSelect))
	if len(res.Events) != 0 {
		t.Errorf("events = %v, want none from a failed game", res.Events)
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Cannot start") {
		t.Error("failed game does not render its error")
	}
}

func TestBoardErrorsFailGame(t *testing.T) {
	const instant = "timing: {remove: 0s, drop: 0s, refill: 0s, settle: 0s, recreate: 0s}\n"
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"layout digit", "board: {rows: 2, columns: 2, colors: 2}\nlayout: [\"0x\", \"01\"]\n", nil},
		{"layout shape", "board: {rows: 2, columns: 2, colors: 2}\nlayout: [\"01\"]\n", nil},
		{"never playable", "board: {rows: 10, columns: 2, colors: 6, min_run: 10}\n" + instant, board.ErrNoPlayableBoard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.yaml)
			g := New(Variants[0])
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})

			err := g.Err()
			if err == nil {
				t.Fatal("Err() = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Err() = %v, want %v", err, tt.want)
			}
			if !g.State().Failed {
				t.Error("Failed = false")
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, "large")
		for i := 0; i < 30; i++ {
			g.Step(frame())
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a.Board.Colors, b.Board.Colors) {
		t.Errorf("same seed produced different boards:\n%v\n%v", a.Board.Colors, b.Board.Colors)
	}
	if a.Tick != 30 {
		t.Errorf("Tick = %d, want 30", a.Tick)
	}
}

func TestRender(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "classic")
	g.Step(frame())

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Blast", "Group: 3", "Select a group", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	v, _ := LookupVariant("large")
	g := New(v)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1})

	scr := core.NewScreen(20, 8)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Errorf("render = %q, want a too-small notice", scr.String())
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("snapshot state = %v, want %v", g.Snapshot().State, StatePausedSmall)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	useConfig(t, scenarioYAML)
	g := newTestGame(t, "classic")
	g.Step(frame(core.ActionSelect))

	g.Resize(10, 5)
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state after shrink = %v, want %v", g.Snapshot().State, StatePausedSmall)
	}
	g.Resize(80, 24)
	if got := g.State().Selections; got != 1 {
		t.Errorf("Selections after resize = %d, want 1", got)
	}
}
