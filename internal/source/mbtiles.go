// internal/source/mbtiles.go - MBTiles container extraction
package source

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"

	"tile-extract/internal/geo"
)

// MBTilesExtractor implements the Extractor interface for MBTiles containers.
// MBTiles stores rows bottom-origin (TMS); every emitted record is flipped
// back to top-origin.
type MBTilesExtractor struct {
	path string
	log  *logrus.Entry
}

// NewMBTilesExtractor creates an extractor for the given MBTiles file path
func NewMBTilesExtractor(path string, log *logrus.Entry) *MBTilesExtractor {
	return &MBTilesExtractor{
		path: path,
		log:  log,
	}
}

// ExtractTiles returns all stored tiles intersecting the bound at the given
// zoom level. Failures are logged and yield an empty result so that other
// zoom levels of a multi-zoom extraction are unaffected.
func (e *MBTilesExtractor) ExtractTiles(bound orb.Bound, zoom int) []TileRecord {
	tiles, err := e.queryTiles(bound, zoom)
	if err != nil {
		e.log.WithError(err).Errorf("reading MBTiles file %s failed for zoom %d", e.path, zoom)
		return nil
	}
	return tiles
}

// queryTiles runs the range query against the tiles table
func (e *MBTilesExtractor) queryTiles(bound orb.Bound, zoom int) ([]TileRecord, error) {
	minX, maxX, minY, maxY, err := geo.BoundsToTileRangeTMS(bound, zoom)
	if err != nil {
		return nil, fmt.Errorf("tile range for zoom %d: %w", zoom, err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", e.path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT tile_column, tile_row, tile_data
		FROM tiles
		WHERE zoom_level = ? AND tile_column BETWEEN ? AND ? AND tile_row BETWEEN ? AND ?`,
		zoom, minX, maxX, minY, maxY)
	if err != nil {
		return nil, fmt.Errorf("query tiles: %w", err)
	}
	defer rows.Close()

	var tiles []TileRecord
	for rows.Next() {
		var column, row int
		var data []byte
		if err := rows.Scan(&column, &row, &data); err != nil {
			return nil, fmt.Errorf("scan tile row: %w", err)
		}

		tiles = append(tiles, TileRecord{
			X:    column,
			Y:    geo.FlipRow(row, zoom),
			Data: data,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tiles: %w", err)
	}

	return tiles, nil
}

// ReadMetadata returns the name/value pairs of the MBTiles metadata table
func (e *MBTilesExtractor) ReadMetadata() (map[string]string, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", e.path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan metadata row: %w", err)
		}
		metadata[name] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metadata: %w", err)
	}

	return metadata, nil
}
