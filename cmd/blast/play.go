package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blast/internal/games/blast"
	"github.com/vovakirdan/blast/internal/platform/tui"
	"github.com/vovakirdan/blast/internal/registry"
)

var (
	flagConfig string
	flagSound  bool
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a board variant",
	Long: `Start playing the specified board variant.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Space/X/Enter     - Clear the group under the cursor
  P                 - Pause
  R                 - New board
  Esc/Q/Ctrl+C      - Quit
  Ctrl+S            - Save a screenshot to ~/.blast/screenshots

Examples:
  blast play classic
  blast play small --seed 7
  blast play classic --config ./my-blast.yaml
  blast play large --sound`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blast config YAML")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues (overrides sound.enabled)")
}

func runPlay(_ *cobra.Command, args []string) error {
	variantID := args[0]
	if !registry.Exists(variantID) {
		return fmt.Errorf("unknown variant %q, run 'blast list' to see variants", variantID)
	}

	blast.SetConfigPath(flagConfig)
	game, err := registry.Create(variantID)
	if err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	env, closeAudio := newEnv(store, flagConfig, flagSound)
	defer closeAudio()

	if err := tui.Run(game, env, runtimeConfig()); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
