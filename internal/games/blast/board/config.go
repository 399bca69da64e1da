package board

import (
	"fmt"
	"time"
)

// Board size and palette limits.
const (
	MinSize       = 2
	MaxSize       = 10
	MinColors     = 1
	MaxColors     = 6
	DefaultMinRun = 2
	MaxMinRun     = 10
)

// Timing holds the settle delay of each phase. The delays exist so the
// presentation layer can finish a transition; they never change results.
type Timing struct {
	Remove   time.Duration // after removal, before compaction
	Drop     time.Duration // after compaction, before refill
	Refill   time.Duration // after refill, before evaluation
	Settle   time.Duration // after a playable evaluation, before input opens
	Recreate time.Duration // after clearing a deadlocked board, before the new one
}

// Config is the construction-time board configuration.
type Config struct {
	Rows       int
	Columns    int
	Colors     int
	MinRun     int
	Thresholds Thresholds
	Timing     Timing
}

// DefaultConfig returns the reference setup: an 8x8 board with four colors.
func DefaultConfig() Config {
	return Config{
		Rows:       8,
		Columns:    8,
		Colors:     4,
		MinRun:     DefaultMinRun,
		Thresholds: Thresholds{A: 4, B: 7, C: 9},
		Timing: Timing{
			Remove:   250 * time.Millisecond,
			Drop:     300 * time.Millisecond,
			Refill:   350 * time.Millisecond,
			Settle:   500 * time.Millisecond,
			Recreate: 600 * time.Millisecond,
		},
	}
}

// Validate rejects configurations the board cannot run with.
func (c Config) Validate() error {
	if c.Rows < MinSize || c.Rows > MaxSize {
		return &ConfigError{Field: "rows", Message: rangeMsg(c.Rows, MinSize, MaxSize)}
	}
	if c.Columns < MinSize || c.Columns > MaxSize {
		return &ConfigError{Field: "columns", Message: rangeMsg(c.Columns, MinSize, MaxSize)}
	}
	if c.Colors < MinColors || c.Colors > MaxColors {
		return &ConfigError{Field: "colors", Message: rangeMsg(c.Colors, MinColors, MaxColors)}
	}
	if c.MinRun < DefaultMinRun || c.MinRun > MaxMinRun {
		return &ConfigError{Field: "min_run", Message: rangeMsg(c.MinRun, DefaultMinRun, MaxMinRun)}
	}
	if c.MinRun > c.Rows && c.MinRun > c.Columns {
		return &ConfigError{
			Field:   "min_run",
			Message: fmt.Sprintf("%d does not fit a %dx%d board", c.MinRun, c.Rows, c.Columns),
		}
	}

	t := c.Thresholds
	if t.A <= 0 {
		return &ConfigError{Field: "thresholds", Message: fmt.Sprintf("A must be positive, got %d", t.A)}
	}
	if t.B <= t.A || t.C <= t.B {
		return &ConfigError{
			Field:   "thresholds",
			Message: fmt.Sprintf("must be strictly increasing, got A=%d B=%d C=%d", t.A, t.B, t.C),
		}
	}

	delays := []struct {
		name string
		d    time.Duration
	}{
		{"timing.remove", c.Timing.Remove},
		{"timing.drop", c.Timing.Drop},
		{"timing.refill", c.Timing.Refill},
		{"timing.settle", c.Timing.Settle},
		{"timing.recreate", c.Timing.Recreate},
	}
	for _, delay := range delays {
		if delay.d < 0 {
			return &ConfigError{Field: delay.name, Message: fmt.Sprintf("negative duration %s", delay.d)}
		}
	}

	return nil
}

func rangeMsg(v, lo, hi int) string {
	return fmt.Sprintf("%d not in [%d, %d]", v, lo, hi)
}
