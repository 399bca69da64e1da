// blast is a collapse puzzle for the terminal: clear connected groups of
// same-colored tiles, watch the rest fall, and keep the board alive.
//
// Usage:
//
//	blast list               - List board variants
//	blast play <variant>     - Play a variant
//	blast menu               - Pick variants interactively
//	blast stats [variant]    - Show recorded session statistics
//	blast config             - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.blast/stats.db)
//	--log <path>        - Write logs to a file (default: discard)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blast/internal/games/blast"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Blast - a collapse puzzle in your terminal",
	Long: `Blast is a tile-matching puzzle. Select a group of two or more
touching tiles of one color to clear it; the tiles above fall and new
ones drop in. When no group is left the board is shuffled.

Available commands:
  list     - Show all board variants
  play     - Play a specific variant directly
  menu     - Interactive variant picker
  stats    - View session statistics
  config   - Print or check the configuration

Examples:
  blast list
  blast play classic
  blast play large --sound
  blast menu --seed 42
  blast stats classic
  blast config`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		logger, err := newLogger(flagLogPath, flagLogLevel)
		if err != nil {
			return err
		}
		appLogger = logger
		blast.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blast/stats.db", "Path to statistics database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(statsCmd)
}
