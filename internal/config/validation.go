// internal/config/validation.go - Configuration validation
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/paulmach/orb"

	"tile-extract/internal"
	"tile-extract/internal/geo"
)

// Validate validates the configuration structure and values
func Validate(config *Config) error {
	for id, source := range config.Sources {
		if err := validateSource(source); err != nil {
			return fmt.Errorf("source %q invalid: %w", id, err)
		}
	}

	for id, region := range config.Regions {
		if err := validateRegion(region); err != nil {
			return fmt.Errorf("region %q invalid: %w", id, err)
		}
	}

	if err := validateDefaults(&config.Defaults); err != nil {
		return fmt.Errorf("defaults invalid: %w", err)
	}

	return nil
}

// Warnings reports non-fatal configuration issues, such as source files that
// do not exist yet
func Warnings(config *Config) []string {
	var warnings []string

	if len(config.Sources) == 0 {
		warnings = append(warnings, "no sources defined")
	}
	if len(config.Regions) == 0 {
		warnings = append(warnings, "no regions defined")
	}

	for id, source := range config.Sources {
		if source.Path == "" {
			continue
		}
		if _, err := os.Stat(source.Path); err != nil {
			warnings = append(warnings, fmt.Sprintf("source %q: file not found: %s", id, source.Path))
		}
	}

	return warnings
}

// validateSource validates one source catalog entry
func validateSource(source SourceConfig) error {
	if source.Path == "" {
		return fmt.Errorf("path is required")
	}
	if source.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !internal.SourceType(source.Type).IsValid() {
		return fmt.Errorf("invalid source type %q, must be one of [%s]", source.Type, internal.SourceTypeMBTiles)
	}

	if source.Bounds != nil {
		if err := validateBoundsSlice(source.Bounds); err != nil {
			return fmt.Errorf("bounds: %w", err)
		}
	}

	if err := validateZoomPair(source.MinZoom, source.MaxZoom); err != nil {
		return err
	}

	return nil
}

// validateRegion validates one region catalog entry
func validateRegion(region RegionConfig) error {
	if region.Name == "" {
		return fmt.Errorf("name is required")
	}
	if region.BBox == nil {
		return fmt.Errorf("bbox is required")
	}
	if err := validateBoundsSlice(region.BBox); err != nil {
		return fmt.Errorf("bbox: %w", err)
	}

	if len(region.Center) != 0 && len(region.Center) != 2 {
		return fmt.Errorf("center must hold exactly 2 coordinates")
	}

	if err := validateZoomPair(region.DefaultZoom, region.MaxZoom); err != nil {
		return err
	}

	return nil
}

// validateDefaults validates the default settings
func validateDefaults(defaults *DefaultsConfig) error {
	if defaults.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return validateZoomPair(defaults.MinZoom, defaults.MaxZoom)
}

// validateBoundsSlice checks a [min_lon, min_lat, max_lon, max_lat] slice
func validateBoundsSlice(values []float64) error {
	if len(values) != 4 {
		return fmt.Errorf("must hold exactly 4 coordinates, got %d", len(values))
	}
	bound, _ := boundFromSlice(values)
	return geo.ValidateBound(bound)
}

// validateZoomPair checks an ordered zoom pair within the supported range.
// A max of zero means "unset" and is skipped.
func validateZoomPair(minZoom, maxZoom int) error {
	if maxZoom == 0 {
		return nil
	}
	if minZoom < geo.MinZoom || maxZoom > geo.MaxZoom || minZoom > maxZoom {
		return fmt.Errorf("invalid zoom levels %d-%d: must satisfy %d <= min <= max <= %d",
			minZoom, maxZoom, geo.MinZoom, geo.MaxZoom)
	}
	return nil
}

// ValidateSourceBounds checks that a requested bounding box and zoom range
// fall within a source's declared limits. Violations report both the
// requested and the available bounds.
func ValidateSourceBounds(source SourceConfig, requested orb.Bound, minZoom, maxZoom int) error {
	var problems []string

	if declared, ok := source.Bound(); ok {
		if requested.Left() < declared.Left() || requested.Right() > declared.Right() ||
			requested.Bottom() < declared.Bottom() || requested.Top() > declared.Top() {
			problems = append(problems, fmt.Sprintf(
				"requested area [%g, %g, %g, %g] is outside the source coverage [%g, %g, %g, %g]",
				requested.Left(), requested.Bottom(), requested.Right(), requested.Top(),
				declared.Left(), declared.Bottom(), declared.Right(), declared.Top()))
		}
	}

	if source.MinZoom > 0 && minZoom < source.MinZoom {
		problems = append(problems, fmt.Sprintf("minimum zoom %d is below the source minimum %d", minZoom, source.MinZoom))
	}
	if source.MaxZoom > 0 && maxZoom > source.MaxZoom {
		problems = append(problems, fmt.Sprintf("maximum zoom %d is above the source maximum %d", maxZoom, source.MaxZoom))
	}

	if len(problems) > 0 {
		return internal.NewError(internal.ErrorCodeBounds, strings.Join(problems, "; "), nil)
	}

	return nil
}
