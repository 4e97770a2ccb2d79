// cmd/stats.go - Region statistics command
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tile-extract/internal/config"
	"tile-extract/internal/writer"
)

// statsCmd summarizes a previously written region by scanning its output tree
var statsCmd = &cobra.Command{
	Use:   "stats <region>",
	Short: "Print statistics for a written region",
	Long: `Scan the output tree of a previously extracted region and print per-zoom
tile counts, file format counts and the column/row ranges actually present,
as JSON. The summary is derived purely from disk state, so it also works for
trees written by earlier runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	regionName := args[0]
	w := writer.NewTileWriter(cfg.Defaults.OutputDir, log.WithField("region", regionName))

	stats, err := w.Statistics(regionName)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
