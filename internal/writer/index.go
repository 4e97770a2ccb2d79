// internal/writer/index.go - Tile index construction
package writer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// IndexFileName is the per-zoom tile index written next to the column dirs
const IndexFileName = "tiles.json"

// tileExtensions are the file extensions recognized when scanning a tile tree
var tileExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pbf":  true,
	".mvt":  true,
}

// TilePoint is one written tile in a zoom level's index
type TilePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileIndex is the JSON document persisted per zoom directory
type TileIndex struct {
	Zoom       int         `json:"zoom"`
	Tiles      []TilePoint `json:"tiles"`
	TotalTiles int         `json:"total_tiles"`
}

// CreateTileIndex builds the tiles.json index for each of the given zoom
// levels by re-scanning the on-disk tree, so the index reflects actual disk
// state even across repeated runs. Index construction is best effort:
// malformed directory or file names are skipped with a warning and write
// failures are logged, never fatal.
func (w *TileWriter) CreateTileIndex(regionName string, zoomLevels []int) {
	regionDir := filepath.Join(w.outputDir, regionName)

	for _, zoom := range zoomLevels {
		zoomDir := filepath.Join(regionDir, strconv.Itoa(zoom))
		if _, err := os.Stat(zoomDir); err != nil {
			continue
		}

		tiles := w.scanZoomDirectory(zoomDir)
		if len(tiles) == 0 {
			continue
		}

		sort.Slice(tiles, func(i, j int) bool {
			if tiles[i].X != tiles[j].X {
				return tiles[i].X < tiles[j].X
			}
			return tiles[i].Y < tiles[j].Y
		})

		index := TileIndex{
			Zoom:       zoom,
			Tiles:      tiles,
			TotalTiles: len(tiles),
		}

		data, err := json.MarshalIndent(index, "", "  ")
		if err != nil {
			w.log.WithError(err).Errorf("encoding tile index for zoom %d failed", zoom)
			continue
		}

		indexPath := filepath.Join(zoomDir, IndexFileName)
		if err := os.WriteFile(indexPath, data, 0644); err != nil {
			w.log.WithError(err).Errorf("writing tile index %s failed", indexPath)
		}
	}
}

// scanZoomDirectory recovers (x, y) pairs from the column/row layout
func (w *TileWriter) scanZoomDirectory(zoomDir string) []TilePoint {
	var tiles []TilePoint

	columns, err := os.ReadDir(zoomDir)
	if err != nil {
		w.log.WithError(err).Errorf("scanning zoom directory %s failed", zoomDir)
		return nil
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

		files, err := os.ReadDir(filepath.Join(zoomDir, column.Name()))
		if err != nil {
			w.log.WithError(err).Errorf("scanning column directory %s failed", column.Name())
			continue
		}

		for _, file := range files {
			name := file.Name()
			if !tileExtensions[strings.ToLower(filepath.Ext(name))] {
				continue
			}

			y, err := strconv.Atoi(strings.TrimSuffix(name, filepath.Ext(name)))
			if err != nil {
				w.log.Warnf("skipping invalid tile file name %q", name)
				continue
			}

			tiles = append(tiles, TilePoint{X: x, Y: y})
		}
	}

	return tiles
}
