// Package config loads the YAML configuration of the blast board and its
// terminal presentation.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blast/internal/games/blast/board"
)

// BlastConfig is the complete, file-backed configuration.
type BlastConfig struct {
	Board        BoardConfig        `yaml:"board"`
	Tiers        TierConfig         `yaml:"tiers"`
	Timing       TimingConfig       `yaml:"timing"`
	Presentation PresentationConfig `yaml:"presentation"`
	Sound        SoundConfig        `yaml:"sound"`

	// Palette names the terminal color of each tile color, in order.
	Palette []string `yaml:"palette"`

	// Layout optionally fixes the first board. One string per row x,
	// one digit (tile color index) per column y.
	Layout []string `yaml:"layout,omitempty"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows    int `yaml:"rows"`
	Columns int `yaml:"columns"`
	Colors  int `yaml:"colors"`
	MinRun  int `yaml:"min_run"`
}

// TierConfig defines the group sizes a component must exceed for each tier.
type TierConfig struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
	C int `yaml:"c"`
}

// TimingConfig defines the settle delay after each board phase.
type TimingConfig struct {
	Remove   time.Duration `yaml:"remove"`
	Drop     time.Duration `yaml:"drop"`
	Refill   time.Duration `yaml:"refill"`
	Settle   time.Duration `yaml:"settle"`
	Recreate time.Duration `yaml:"recreate"`
}

// PresentationConfig tunes the terminal animations.
type PresentationConfig struct {
	CreateDuration time.Duration `yaml:"create_duration"`
	RemoveDuration time.Duration `yaml:"remove_duration"`
	DropSpeed      float64       `yaml:"drop_speed"` // cells per second
	MinScale       float64       `yaml:"min_scale"`  // size of a tile when it appears or vanishes, 0..1
}

// SoundConfig controls the optional audio cues.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// ToBoardConfig converts the file sections to the board engine configuration.
func (c BlastConfig) ToBoardConfig() board.Config {
	return board.Config{
		Rows:       c.Board.Rows,
		Columns:    c.Board.Columns,
		Colors:     c.Board.Colors,
		MinRun:     c.Board.MinRun,
		Thresholds: board.Thresholds{A: c.Tiers.A, B: c.Tiers.B, C: c.Tiers.C},
		Timing: board.Timing{
			Remove:   c.Timing.Remove,
			Drop:     c.Timing.Drop,
			Refill:   c.Timing.Refill,
			Settle:   c.Timing.Settle,
			Recreate: c.Timing.Recreate,
		},
	}
}

// Validate checks the whole configuration. Board errors are returned as the
// board package reports them.
func (c BlastConfig) Validate() error {
	if err := c.ToBoardConfig().Validate(); err != nil {
		return err
	}

	if len(c.Palette) < c.Board.Colors {
		return fmt.Errorf("config: palette has %d entries, board uses %d colors", len(c.Palette), c.Board.Colors)
	}
	if _, err := c.PaletteColors(); err != nil {
		return err
	}

	p := c.Presentation
	if p.CreateDuration < 0 || p.RemoveDuration < 0 {
		return fmt.Errorf("config: presentation durations must not be negative")
	}
	if p.DropSpeed <= 0 {
		return fmt.Errorf("config: presentation.drop_speed must be positive, got %v", p.DropSpeed)
	}
	if p.MinScale < 0 || p.MinScale > 1 {
		return fmt.Errorf("config: presentation.min_scale must be in [0, 1], got %v", p.MinScale)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("config: sound.volume must be in [0, 1], got %v", c.Sound.Volume)
	}

	if _, err := c.LayoutColors(); err != nil {
		return err
	}
	return nil
}

// LayoutColors parses Layout into a [x][y] color grid, or nil when no layout
// is configured. Dimensions are checked by the board itself.
func (c BlastConfig) LayoutColors() ([][]board.Color, error) {
	if len(c.Layout) == 0 {
		return nil, nil
	}

	out := make([][]board.Color, len(c.Layout))
	for x, row := range c.Layout {
		out[x] = make([]board.Color, 0, len(row))
		for y, ch := range row {
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("config: layout row %d column %d: %q is not a color digit", x, y, ch)
			}
			out[x] = append(out[x], board.Color(ch-'0'))
		}
	}
	return out, nil
}
