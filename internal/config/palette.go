package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blast/internal/core"
)

// ParseColorName converts a palette entry to a terminal color.
// Returns ColorDefault and false if the name is not recognized.
func ParseColorName(s string) (core.Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return core.ColorBrightRed, true
	case "green", "g":
		return core.ColorBrightGreen, true
	case "blue", "b":
		return core.ColorBrightBlue, true
	case "yellow", "y":
		return core.ColorBrightYellow, true
	case "magenta", "purple", "m", "p":
		return core.ColorBrightMagenta, true
	case "cyan", "c":
		return core.ColorBrightCyan, true
	case "orange", "o":
		return core.ColorOrange, true
	case "white", "w":
		return core.ColorBrightWhite, true
	default:
		return core.ColorDefault, false
	}
}

// PaletteColors resolves every palette entry.
func (c BlastConfig) PaletteColors() ([]core.Color, error) {
	colors := make([]core.Color, len(c.Palette))
	for i, name := range c.Palette {
		color, ok := ParseColorName(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown palette color %q", name)
		}
		colors[i] = color
	}
	return colors, nil
}
