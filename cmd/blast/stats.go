package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blast/internal/platform/tui"
	"github.com/vovakirdan/blast/internal/registry"
	"github.com/vovakirdan/blast/internal/storage"
)

var (
	flagRecent      int
	flagInteractive bool
	flagClear       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [variant]",
	Short: "Show session statistics",
	Long: `Display totals and recent sessions for one variant, or a summary of
every variant when none is given.

Examples:
  blast stats
  blast stats classic --recent 20
  blast stats -i
  blast stats small --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent sessions to list")
	statsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse statistics in the terminal UI")
	statsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded sessions of the variant")
}

func runStats(cmd *cobra.Command, args []string) error {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			return fmt.Errorf("unknown variant %q, run 'blast list' to see variants", variant)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("failed to open statistics database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagClear:
		if variant == "" {
			return fmt.Errorf("--clear needs a variant")
		}
		if err := store.ClearSessions(variant); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared sessions of %s.\n", variant)
		return nil

	case flagInteractive:
		cfg := runtimeConfig()
		_, err := tui.RunStats(store, variant, cfg.ScreenW, cfg.ScreenH)
		return err

	case variant == "":
		return printAllStats(out, store)
	}
	return printVariantStats(out, store, variant)
}

// printAllStats writes one summary line per registered variant.
func printAllStats(out io.Writer, store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  %-10s  %8s  %8s  %6s  %6s  %10s\n", "Variant", "Sessions", "Tiles", "Best", "Avg", "Played")
	fmt.Fprintf(out, "  %-10s  %8s  %8s  %6s  %6s  %10s\n", "-------", "--------", "-----", "----", "---", "------")
	for _, info := range registry.List() {
		s := all[info.ID]
		fmt.Fprintf(out, "  %-10s  %8d  %8d  %6d  %6.1f  %10s\n",
			info.ID, s.Sessions, s.TilesCleared, s.LargestGroup, s.AvgGroup(), s.PlayTime.Round(time.Second))
	}
	return nil
}

// printVariantStats writes the totals and recent sessions of one variant.
func printVariantStats(out io.Writer, store *storage.Store, variant string) error {
	info, _ := registry.Info(variant)
	s, err := store.Stats(variant)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Statistics - %s\n\n", info.Title)
	if s.Sessions == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintf(out, "Play 'blast play %s' and clear a group to record one.\n", variant)
		return nil
	}

	fmt.Fprintf(out, "  Sessions:     %d\n", s.Sessions)
	fmt.Fprintf(out, "  Selections:   %d\n", s.Selections)
	fmt.Fprintf(out, "  Tiles:        %d (%.1f per selection)\n", s.TilesCleared, s.AvgGroup())
	fmt.Fprintf(out, "  Best group:   %d\n", s.LargestGroup)
	fmt.Fprintf(out, "  Reshuffles:   %d\n", s.Recreations)
	fmt.Fprintf(out, "  Play time:    %s\n", s.PlayTime.Round(time.Second))
	fmt.Fprintf(out, "  Last played:  %s\n\n", s.LastPlayed.Format("2006-01-02 15:04"))

	sessions, err := store.RecentSessions(variant, flagRecent)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  %-16s  %-7s  %5s  %7s  %4s  %8s\n", "Date", "Board", "Picks", "Cleared", "Best", "Time")
	for _, rec := range sessions {
		fmt.Fprintf(out, "  %-16s  %-7s  %5d  %7d  %4d  %8s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%dx%d/%d", rec.Rows, rec.Columns, rec.Colors),
			rec.Selections, rec.TilesCleared, rec.LargestGroup, rec.Duration.Round(time.Second))
	}
	return nil
}

// statsSource avoids handing the TUI a typed nil store.
func statsSource(store *storage.Store) tui.StatsSource {
	if store == nil {
		return nil
	}
	return store
}
