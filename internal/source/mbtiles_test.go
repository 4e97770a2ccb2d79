// internal/source/mbtiles_test.go - Unit tests for MBTiles extraction
package source

import (
	"database/sql"
	"path/filepath"
	"sort"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"tile-extract/internal/geo"
)

// ankaraBound covers tile columns 604-606 and top-origin rows 387-388 at zoom 10
var ankaraBound = orb.Bound{
	Min: orb.Point{32.5, 39.7},
	Max: orb.Point{33.2, 40.1},
}

type storedTile struct {
	zoom   int
	column int
	tmsRow int
	data   []byte
}

// newTestMBTiles creates a throwaway MBTiles file containing the given tiles
func newTestMBTiles(t *testing.T, tiles []storedTile) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.mbtiles")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening fixture database: %v", err)
	}
	defer db.Close()

	statements := []string{
		`CREATE TABLE metadata (name TEXT, value TEXT)`,
		`CREATE TABLE tiles (zoom_level INTEGER, tile_column INTEGER, tile_row INTEGER, tile_data BLOB)`,
		`INSERT INTO metadata (name, value) VALUES ('name', 'fixture'), ('format', 'jpg')`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("preparing fixture schema: %v", err)
		}
	}

	for _, tile := range tiles {
		_, err := db.Exec(
			"INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)",
			tile.zoom, tile.column, tile.tmsRow, tile.data)
		if err != nil {
			t.Fatalf("inserting fixture tile: %v", err)
		}
	}

	return path
}

func testLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logger.WithField("component", "test"), hook
}

func TestExtractTilesFlipsRowsToTopOrigin(t *testing.T) {
	// TMS rows 635 and 636 correspond to top-origin rows 388 and 387.
	path := newTestMBTiles(t, []storedTile{
		{zoom: 10, column: 605, tmsRow: 635, data: []byte("south")},
		{zoom: 10, column: 605, tmsRow: 636, data: []byte("north")},
	})

	log, _ := testLogger()
	extractor := NewMBTilesExtractor(path, log)

	tiles := extractor.ExtractTiles(ankaraBound, 10)
	if len(tiles) != 2 {
		t.Fatalf("ExtractTiles() returned %d tiles, want 2", len(tiles))
	}

	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Y < tiles[j].Y })

	if tiles[0].Y != 387 || string(tiles[0].Data) != "north" {
		t.Errorf("northern tile = (%d, %q), want (387, north)", tiles[0].Y, tiles[0].Data)
	}
	if tiles[1].Y != 388 || string(tiles[1].Data) != "south" {
		t.Errorf("southern tile = (%d, %q), want (388, south)", tiles[1].Y, tiles[1].Data)
	}
}

func TestExtractTilesFiltersByRangeAndZoom(t *testing.T) {
	inRange := storedTile{zoom: 10, column: 604, tmsRow: 636, data: []byte("in")}
	tiles := []storedTile{
		inRange,
		{zoom: 10, column: 500, tmsRow: 636, data: []byte("west of range")},
		{zoom: 10, column: 604, tmsRow: 100, data: []byte("row out of range")},
		{zoom: 9, column: 302, tmsRow: 318, data: []byte("wrong zoom")},
	}
	path := newTestMBTiles(t, tiles)

	log, _ := testLogger()
	extractor := NewMBTilesExtractor(path, log)

	got := extractor.ExtractTiles(ankaraBound, 10)
	if len(got) != 1 {
		t.Fatalf("ExtractTiles() returned %d tiles, want 1", len(got))
	}
	if got[0].X != 604 || got[0].Y != geo.FlipRow(636, 10) {
		t.Errorf("extracted tile = (%d, %d), want (604, %d)", got[0].X, got[0].Y, geo.FlipRow(636, 10))
	}
}

func TestExtractTilesEmptyStore(t *testing.T) {
	path := newTestMBTiles(t, nil)

	log, _ := testLogger()
	extractor := NewMBTilesExtractor(path, log)

	if tiles := extractor.ExtractTiles(ankaraBound, 10); len(tiles) != 0 {
		t.Errorf("ExtractTiles() on empty store returned %d tiles", len(tiles))
	}
}

func TestExtractTilesAbsorbsReadFailure(t *testing.T) {
	log, hook := testLogger()
	extractor := NewMBTilesExtractor(filepath.Join(t.TempDir(), "missing.mbtiles"), log)

	tiles := extractor.ExtractTiles(ankaraBound, 10)
	if len(tiles) != 0 {
		t.Errorf("ExtractTiles() on missing file returned %d tiles, want 0", len(tiles))
	}

	if len(hook.Entries) == 0 {
		t.Error("expected a logged error for the failed extraction")
	} else if hook.LastEntry().Level != logrus.ErrorLevel {
		t.Errorf("logged level = %v, want error", hook.LastEntry().Level)
	}
}

func TestReadMetadata(t *testing.T) {
	path := newTestMBTiles(t, nil)

	log, _ := testLogger()
	extractor := NewMBTilesExtractor(path, log)

	metadata, err := extractor.ReadMetadata()
	if err != nil {
		t.Fatalf("ReadMetadata() unexpected error: %v", err)
	}
	if metadata["name"] != "fixture" || metadata["format"] != "jpg" {
		t.Errorf("ReadMetadata() = %v, want name=fixture format=jpg", metadata)
	}
}
