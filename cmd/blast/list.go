package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blast/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board variants",
	Long:  `Shows every registered board variant.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Fprintln(out, "No variants available.")
		return
	}

	fmt.Fprintln(out, "Available variants:")
	fmt.Fprintln(out)

	maxIDLen, maxTitleLen := 2, 5
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.ID))
		maxTitleLen = max(maxTitleLen, len(v.Title))
	}

	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board")
	fmt.Fprintf(out, "  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")
	for _, v := range variants {
		fmt.Fprintf(out, "  %-*s  %-*s  %s\n", maxIDLen, v.ID, maxTitleLen, v.Title, v.Summary)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'blast play <id>' to play a variant.")
}
