// cmd/catalog.go - Catalog listing and validation commands
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"tile-extract/internal/config"
	"tile-extract/internal/source"
)

// sourcesCmd lists the configured tile sources
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured tile sources",
	RunE:  runSources,
}

// regionsCmd lists the predefined regions
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the predefined regions",
	RunE:  runRegions,
}

// validateCmd reports configuration problems without extracting anything
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(validateCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(cfg.Sources) == 0 {
		fmt.Println("No sources configured.")
		return nil
	}

	fmt.Printf("Sources (%d):\n", len(cfg.Sources))
	for _, id := range sortedKeysSources(cfg.Sources) {
		src := cfg.Sources[id]
		minZoom, maxZoom := src.ZoomRange(cfg.Defaults)

		fmt.Printf("\n%s\n", id)
		fmt.Printf("  name:   %s\n", src.Name)
		fmt.Printf("  path:   %s\n", src.Path)
		fmt.Printf("  type:   %s (detected: %s)\n", src.Type, source.DetectSourceType(src.Path))
		if bound, ok := src.Bound(); ok {
			fmt.Printf("  bounds: [%g, %g, %g, %g]\n", bound.Left(), bound.Bottom(), bound.Right(), bound.Top())
		}
		fmt.Printf("  zoom:   %d - %d\n", minZoom, maxZoom)
	}

	return nil
}

func runRegions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(cfg.Regions) == 0 {
		fmt.Println("No regions configured.")
		return nil
	}

	fmt.Printf("Regions (%d):\n", len(cfg.Regions))
	for _, id := range sortedKeysRegions(cfg.Regions) {
		region := cfg.Regions[id]

		fmt.Printf("\n%s\n", id)
		fmt.Printf("  name: %s\n", region.Name)
		if bound, ok := region.Bound(); ok {
			fmt.Printf("  bbox: [%g, %g, %g, %g]\n", bound.Left(), bound.Bottom(), bound.Right(), bound.Top())
		}
		fmt.Printf("  zoom: %d (max %d)\n", region.DefaultZoom, region.MaxZoom)
	}

	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration invalid:\n  %v\n", err)
		os.Exit(1)
	}

	warnings := config.Warnings(cfg)
	if len(warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(warnings))
		for _, warning := range warnings {
			fmt.Printf("  - %s\n", warning)
		}
	} else {
		fmt.Println("Configuration valid.")
	}

	fmt.Printf("\n%d sources, %d regions\n", len(cfg.Sources), len(cfg.Regions))
	return nil
}

func sortedKeysSources(m map[string]config.SourceConfig) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysRegions(m map[string]config.RegionConfig) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
