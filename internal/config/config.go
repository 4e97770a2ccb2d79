// internal/config/config.go - Configuration management
package config

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/spf13/viper"

	"tile-extract/internal"
)

// Config represents the complete application configuration: the catalog of
// tile sources and predefined regions plus global defaults.
type Config struct {
	Sources  map[string]SourceConfig `mapstructure:"sources"`
	Regions  map[string]RegionConfig `mapstructure:"regions"`
	Defaults DefaultsConfig          `mapstructure:"defaults"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

// SourceConfig describes one tile container on disk. Bounds and zoom limits
// are the source's declared coverage; requests outside them are rejected
// before extraction begins.
type SourceConfig struct {
	Name    string    `mapstructure:"name"`
	Path    string    `mapstructure:"path"`
	Type    string    `mapstructure:"type"`
	Bounds  []float64 `mapstructure:"bounds"`
	MinZoom int       `mapstructure:"min_zoom"`
	MaxZoom int       `mapstructure:"max_zoom"`
}

// RegionConfig describes a predefined extraction region
type RegionConfig struct {
	Name        string    `mapstructure:"name"`
	BBox        []float64 `mapstructure:"bbox"`
	Center      []float64 `mapstructure:"center"`
	DefaultZoom int       `mapstructure:"default_zoom"`
	MaxZoom     int       `mapstructure:"max_zoom"`
}

// DefaultsConfig contains global default settings
type DefaultsConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	MinZoom   int    `mapstructure:"min_zoom"`
	MaxZoom   int    `mapstructure:"max_zoom"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	LogDir  string `mapstructure:"log_dir"`
	Verbose bool   `mapstructure:"verbose"`
}

// Load loads configuration from viper's configured sources
func Load() (*Config, error) {
	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults configures default values for all configuration options
func setDefaults() {
	viper.SetDefault("defaults.output_dir", "tiles")
	viper.SetDefault("defaults.min_zoom", 0)
	viper.SetDefault("defaults.max_zoom", 18)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.verbose", false)
}

// GetSource returns a source from the catalog by id
func (c *Config) GetSource(id string) (SourceConfig, error) {
	source, ok := c.Sources[id]
	if !ok {
		return SourceConfig{}, internal.NewError(internal.ErrorCodeNotFound,
			fmt.Sprintf("source %q not found in configuration", id), nil)
	}
	return source, nil
}

// GetRegion returns a predefined region from the catalog by id
func (c *Config) GetRegion(id string) (RegionConfig, error) {
	region, ok := c.Regions[id]
	if !ok {
		return RegionConfig{}, internal.NewError(internal.ErrorCodeNotFound,
			fmt.Sprintf("region %q not found in configuration", id), nil)
	}
	return region, nil
}

// SourceType returns the source's declared container type
func (s SourceConfig) SourceType() internal.SourceType {
	if t := internal.SourceType(s.Type); t.IsValid() {
		return t
	}
	return internal.SourceTypeUnknown
}

// Bound returns the source's declared coverage as an orb.Bound; the second
// return value is false when no bounds are declared
func (s SourceConfig) Bound() (orb.Bound, bool) {
	return boundFromSlice(s.Bounds)
}

// ZoomRange returns the source's declared zoom limits, falling back to the
// given defaults where the catalog leaves them unset
func (s SourceConfig) ZoomRange(defaults DefaultsConfig) (int, int) {
	minZoom, maxZoom := s.MinZoom, s.MaxZoom
	if maxZoom == 0 {
		maxZoom = defaults.MaxZoom
	}
	return minZoom, maxZoom
}

// Bound returns the region's bounding box as an orb.Bound; the second return
// value is false when the bbox is absent or malformed
func (r RegionConfig) Bound() (orb.Bound, bool) {
	return boundFromSlice(r.BBox)
}

// boundFromSlice converts a [min_lon, min_lat, max_lon, max_lat] slice
func boundFromSlice(values []float64) (orb.Bound, bool) {
	if len(values) != 4 {
		return orb.Bound{}, false
	}
	return orb.Bound{
		Min: orb.Point{values[0], values[1]},
		Max: orb.Point{values[2], values[3]},
	}, true
}
