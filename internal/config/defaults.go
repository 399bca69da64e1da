package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/blast/internal/games/blast/board"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the built-in configuration. It matches the
// embedded defaults/blast.yaml.
func DefaultBlastConfig() BlastConfig {
	b := board.DefaultConfig()
	return BlastConfig{
		Board: BoardConfig{
			Rows:    b.Rows,
			Columns: b.Columns,
			Colors:  b.Colors,
			MinRun:  b.MinRun,
		},
		Tiers: TierConfig{A: b.Thresholds.A, B: b.Thresholds.B, C: b.Thresholds.C},
		Timing: TimingConfig{
			Remove:   b.Timing.Remove,
			Drop:     b.Timing.Drop,
			Refill:   b.Timing.Refill,
			Settle:   b.Timing.Settle,
			Recreate: b.Timing.Recreate,
		},
		Presentation: PresentationConfig{
			CreateDuration: 200 * time.Millisecond,
			RemoveDuration: 200 * time.Millisecond,
			DropSpeed:      12,
			MinScale:       0.3,
		},
		Sound:   SoundConfig{Enabled: false, Volume: 0.5},
		Palette: []string{"red", "green", "blue", "yellow", "magenta", "cyan"},
	}
}

// DefaultYAML returns the embedded default file, e.g. for `blast config`.
func DefaultYAML() []byte {
	return defaultBlastYAML
}
