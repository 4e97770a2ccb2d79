// internal/writer/stats.go - On-disk tile tree statistics
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tile-extract/internal"
)

// Range is an inclusive min/max interval of tile indices
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ZoomStatistics summarizes the tiles present at one zoom level
type ZoomStatistics struct {
	Tiles   int            `json:"tiles"`
	Formats map[string]int `json:"formats"`
	XRange  *Range         `json:"x_range"`
	YRange  *Range         `json:"y_range"`
}

// RegionStatistics is a diagnostic view of a written region, derived purely
// from the on-disk tree
type RegionStatistics struct {
	Region          string                  `json:"region"`
	TotalZoomLevels int                     `json:"total_zoom_levels"`
	TotalTiles      int                     `json:"total_tiles"`
	ZoomLevels      map[int]*ZoomStatistics `json:"zoom_levels"`
	FileFormats     map[string]int          `json:"file_formats"`
}

// Statistics scans a previously written region and aggregates per-zoom tile
// counts, per-format counts and the inclusive x/y index ranges. It depends
// only on disk state, so it also works for trees written by earlier runs.
func (w *TileWriter) Statistics(regionName string) (*RegionStatistics, error) {
	regionDir := filepath.Join(w.outputDir, regionName)
	entries, err := os.ReadDir(regionDir)
	if err != nil {
		return nil, internal.NewError(internal.ErrorCodeNotFound,
			fmt.Sprintf("region %q has no output directory", regionName), err)
	}

	stats := &RegionStatistics{
		Region:      regionName,
		ZoomLevels:  make(map[int]*ZoomStatistics),
		FileFormats: make(map[string]int),
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		zoom, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		zoomStats := w.zoomStatistics(filepath.Join(regionDir, entry.Name()))
		stats.ZoomLevels[zoom] = zoomStats
		stats.TotalZoomLevels++
		stats.TotalTiles += zoomStats.Tiles

		for format, count := range zoomStats.Formats {
			stats.FileFormats[format] += count
		}
	}

	return stats, nil
}

// zoomStatistics aggregates one zoom directory
func (w *TileWriter) zoomStatistics(zoomDir string) *ZoomStatistics {
	stats := &ZoomStatistics{
		Formats: make(map[string]int),
	}

	columns, err := os.ReadDir(zoomDir)
	if err != nil {
		w.log.WithError(err).Errorf("scanning zoom directory %s failed", zoomDir)
		return stats
	}

	for _, column := range columns {
		if !column.IsDir() {
			continue
		}
		x, err := strconv.Atoi(column.Name())
		if err != nil {
			w.log.Warnf("skipping invalid column directory name %q", column.Name())
			continue
		}

		stats.XRange = extendRange(stats.XRange, x)

		files, err := os.ReadDir(filepath.Join(zoomDir, column.Name()))
		if err != nil {
			w.log.WithError(err).Errorf("scanning column directory %s failed", column.Name())
			continue
		}

		for _, file := range files {
			name := file.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if !tileExtensions[ext] {
				continue
			}

			y, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
			if err != nil {
				w.log.Warnf("skipping invalid tile file name %q", name)
				continue
			}

			stats.YRange = extendRange(stats.YRange, y)
			stats.Tiles++
			stats.Formats[strings.TrimPrefix(ext, ".")]++
		}
	}

	return stats
}

// extendRange grows an interval to include the given value
func extendRange(r *Range, value int) *Range {
	if r == nil {
		return &Range{Min: value, Max: value}
	}
	if value < r.Min {
		r.Min = value
	}
	if value > r.Max {
		r.Max = value
	}
	return r
}
