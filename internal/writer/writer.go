// internal/writer/writer.go - Tile output writing implementation
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"tile-extract/internal"
	"tile-extract/internal/source"
)

// extensionMap assigns the on-disk file extension per source type. The
// extension depends on the source type alone, never on per-tile content.
var extensionMap = map[internal.SourceType]string{
	internal.SourceTypeMBTiles: "jpg",
}

// fallbackExtension is used for source types without a mapping
const fallbackExtension = "jpg"

// ProgressReporter receives per-tile write progress. Implementations live at
// the CLI layer; the writer only drives the callbacks.
type ProgressReporter interface {
	StartZoom(zoom, total int)
	Advance()
	FinishZoom()
}

// TileWriter materializes extracted tiles as a directory tree
// outputDir/region/zoom/column/row.ext with a JSON index per zoom level.
type TileWriter struct {
	outputDir string
	log       *logrus.Entry
	progress  ProgressReporter
}

// NewTileWriter creates a writer rooted at the given output directory
func NewTileWriter(outputDir string, log *logrus.Entry) *TileWriter {
	return &TileWriter{
		outputDir: outputDir,
		log:       log,
	}
}

// SetProgressReporter attaches an optional progress reporter
func (w *TileWriter) SetProgressReporter(reporter ProgressReporter) {
	w.progress = reporter
}

// WriteTiles writes the per-zoom tile sequences under the region directory
// and builds the tile index for every requested zoom level. The operation is
// best effort, fully accounted: every attempted tile either succeeds or is
// counted and logged as a failure, and a single bad tile never aborts the
// batch. The returned count is the number of tiles actually written; zero
// means nothing usable was extracted.
func (w *TileWriter) WriteTiles(tilesByZoom map[int][]source.TileRecord, regionName string, sourceType internal.SourceType) int {
	written := 0
	failed := 0

	regionDir := filepath.Join(w.outputDir, regionName)
	if err := os.MkdirAll(regionDir, 0755); err != nil {
		w.log.WithError(err).Errorf("creating region directory %s failed", regionDir)
		return 0
	}

	extension := ExtensionForSourceType(sourceType)

	for _, zoom := range sortedZooms(tilesByZoom) {
		tiles := tilesByZoom[zoom]
		if len(tiles) == 0 {
			w.log.Warnf("no tiles found for zoom %d", zoom)
			continue
		}

		zoomDir := filepath.Join(regionDir, strconv.Itoa(zoom))
		if err := os.MkdirAll(zoomDir, 0755); err != nil {
			w.log.WithError(err).Errorf("creating zoom directory %s failed", zoomDir)
			failed += len(tiles)
			continue
		}

		if w.progress != nil {
			w.progress.StartZoom(zoom, len(tiles))
		}

		for _, tile := range tiles {
			if w.writeSingleTile(zoomDir, tile, extension) {
				written++
			} else {
				failed++
			}
			if w.progress != nil {
				w.progress.Advance()
			}
		}

		if w.progress != nil {
			w.progress.FinishZoom()
		}
	}

	w.CreateTileIndex(regionName, sortedZooms(tilesByZoom))

	if failed > 0 {
		w.log.Warnf("%d tiles could not be written", failed)
	}

	return written
}

// writeSingleTile writes one tile payload to zoomDir/column/row.ext
func (w *TileWriter) writeSingleTile(zoomDir string, tile source.TileRecord, extension string) bool {
	if len(tile.Data) == 0 {
		w.log.Warnf("invalid payload for tile %s: empty data", tile)
		return false
	}

	columnDir := filepath.Join(zoomDir, strconv.Itoa(tile.X))
	if err := os.MkdirAll(columnDir, 0755); err != nil {
		w.log.WithError(err).Errorf("creating column directory %s failed", columnDir)
		return false
	}

	tilePath := filepath.Join(columnDir, fmt.Sprintf("%d.%s", tile.Y, extension))
	if err := os.WriteFile(tilePath, tile.Data, 0644); err != nil {
		w.log.WithError(err).Errorf("writing tile %s failed", tilePath)
		return false
	}

	return true
}

// ExtensionForSourceType returns the file extension used for tiles extracted
// from the given source type
func ExtensionForSourceType(sourceType internal.SourceType) string {
	if ext, ok := extensionMap[sourceType]; ok {
		return ext
	}
	return fallbackExtension
}

// sortedZooms returns the zoom keys in ascending order
func sortedZooms(tilesByZoom map[int][]source.TileRecord) []int {
	zooms := make([]int, 0, len(tilesByZoom))
	for zoom := range tilesByZoom {
		zooms = append(zooms, zoom)
	}
	sort.Ints(zooms)
	return zooms
}
