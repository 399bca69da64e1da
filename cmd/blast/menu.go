package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blast/internal/games/blast"
	"github.com/vovakirdan/blast/internal/platform/tui"
	"github.com/vovakirdan/blast/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start blast with a variant picker menu",
	Long: `Start blast in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a board, Tab for
statistics. After a session ends you return to the menu.

Examples:
  blast menu
  blast menu --fps 30
  blast menu --db ./stats.db --sound`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom blast config YAML")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues (overrides sound.enabled)")
}

func runMenu(_ *cobra.Command, _ []string) {
	blast.SetConfigPath(flagConfig)

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	env, closeAudio := newEnv(store, flagConfig, flagSound)
	defer closeAudio()

	cfg := runtimeConfig()
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config

		if res.Quit || (!res.WantsStats && res.GameID == "") {
			return
		}

		if res.WantsStats {
			goBack, err := tui.RunStats(statsSource(store), "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Each pick gets a fresh board unless a seed was forced.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, env, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
