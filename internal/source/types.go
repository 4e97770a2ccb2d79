// internal/source/types.go - Tile source types
package source

import (
	"fmt"

	"github.com/paulmach/orb"
)

// TileRecord represents a single extracted tile. Y uses the top-origin (XYZ)
// row convention regardless of how the container stores its rows; the payload
// is opaque to everything downstream.
type TileRecord struct {
	X    int
	Y    int
	Data []byte
}

// String returns a string representation of the record's coordinates
func (r TileRecord) String() string {
	return fmt.Sprintf("%d/%d", r.X, r.Y)
}

// Extractor defines the capability interface implemented per container
// format. Extraction is zoom-level-independent: read or query failures are
// absorbed at the source boundary, logged, and yield an empty result for that
// zoom level so a failure at one level never blocks the others.
type Extractor interface {
	ExtractTiles(bound orb.Bound, zoom int) []TileRecord
}
