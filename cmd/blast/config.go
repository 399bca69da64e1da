package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blast/internal/config"
)

var flagCheck string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration or check a file",
	Long: `Print the built-in blast.yaml, ready to copy to
~/.blast/configs/blast.yaml or ./configs/blast.yaml.

With --check, load the given file over the defaults and report whether
it is valid.

Examples:
  blast config > ~/.blast/configs/blast.yaml
  blast config --check ./my-blast.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate this config file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagCheck == "" {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.Load(flagCheck)
	if err != nil {
		return err
	}
	b := cfg.Board
	fmt.Fprintf(out, "%s: ok (%dx%d board, %d colors, min run %d)\n",
		flagCheck, b.Rows, b.Columns, b.Colors, b.MinRun)
	return nil
}
