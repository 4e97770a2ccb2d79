// internal/geo/geo.go - Geographic to tile coordinate conversions
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Zoom level limits for the spherical web-tiling scheme
const (
	MinZoom = 0
	MaxZoom = 22
)

// GeoToTile converts a lat/lon pair to tile coordinates at the given zoom
// level. The returned row is top-origin (row 0 at the north edge). The
// tiling formula is undefined at the poles, so |lat| >= 90 is rejected.
func GeoToTile(lat, lon float64, zoom int) (int, int, error) {
	if err := validateZoom(zoom); err != nil {
		return 0, 0, err
	}
	if math.Abs(lat) >= 90 {
		return 0, 0, fmt.Errorf("latitude %f is outside the projectable range (-90, 90)", lat)
	}

	latRad := lat * math.Pi / 180
	n := math.Exp2(float64(zoom))

	x := int((lon + 180.0) / 360.0 * n)
	y := int((1.0 - math.Asinh(math.Tan(latRad))/math.Pi) / 2.0 * n)

	return x, y, nil
}

// BoundsToTileRange converts a bounding box to an inclusive tile range at the
// given zoom level. Rows are top-origin: the northern edge of the box yields
// the smaller row index.
func BoundsToTileRange(bound orb.Bound, zoom int) (minX, maxX, minY, maxY int, err error) {
	minX, maxY, err = GeoToTile(bound.Bottom(), bound.Left(), zoom)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	maxX, minY, err = GeoToTile(bound.Top(), bound.Right(), zoom)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return minX, maxX, minY, maxY, nil
}

// BoundsToTileRangeTMS converts a bounding box to an inclusive tile range
// using the bottom-origin (TMS) row convention. The flip reverses row order,
// so the bounds are swapped to keep min <= max.
func BoundsToTileRangeTMS(bound orb.Bound, zoom int) (minX, maxX, minY, maxY int, err error) {
	minX, maxX, xyzMinY, xyzMaxY, err := BoundsToTileRange(bound, zoom)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	minY = FlipRow(xyzMaxY, zoom)
	maxY = FlipRow(xyzMinY, zoom)

	return minX, maxX, minY, maxY, nil
}

// FlipRow converts a tile row between the top-origin (XYZ) and bottom-origin
// (TMS) conventions. The conversion is its own inverse.
func FlipRow(row, zoom int) int {
	return (1 << uint(zoom)) - 1 - row
}

// TileToBounds returns the geographic bounding box of a single top-origin
// tile using the inverse Web-Mercator latitude formula.
func TileToBounds(x, y, zoom int) (orb.Bound, error) {
	if err := ValidateCoordinates(zoom, x, y); err != nil {
		return orb.Bound{}, err
	}

	n := math.Exp2(float64(zoom))
	west := float64(x)/n*360.0 - 180.0
	east := float64(x+1)/n*360.0 - 180.0
	north := tileRowToLat(float64(y), n)
	south := tileRowToLat(float64(y+1), n)

	return orb.Bound{
		Min: orb.Point{west, south},
		Max: orb.Point{east, north},
	}, nil
}

// tileRowToLat computes the latitude of a tile row's upper edge
func tileRowToLat(row, n float64) float64 {
	return math.Atan(math.Sinh(math.Pi*(1-2*row/n))) * 180 / math.Pi
}

// ValidateCoordinates ensures tile coordinates are within valid bounds
func ValidateCoordinates(zoom, x, y int) error {
	if err := validateZoom(zoom); err != nil {
		return err
	}

	maxTile := 1 << uint(zoom)
	if x < 0 || x >= maxTile {
		return fmt.Errorf("invalid x coordinate %d for zoom %d: must be between 0 and %d", x, zoom, maxTile-1)
	}
	if y < 0 || y >= maxTile {
		return fmt.Errorf("invalid y coordinate %d for zoom %d: must be between 0 and %d", y, zoom, maxTile-1)
	}

	return nil
}

// ValidateBound ensures a bounding box is well-formed and away from the poles
func ValidateBound(bound orb.Bound) error {
	if bound.Left() >= bound.Right() {
		return fmt.Errorf("invalid bounding box: min_lon %f must be less than max_lon %f", bound.Left(), bound.Right())
	}
	if bound.Bottom() >= bound.Top() {
		return fmt.Errorf("invalid bounding box: min_lat %f must be less than max_lat %f", bound.Bottom(), bound.Top())
	}
	if bound.Left() < -180 || bound.Right() > 180 {
		return fmt.Errorf("invalid bounding box: longitude must be within [-180, 180]")
	}
	if bound.Bottom() <= -90 || bound.Top() >= 90 {
		return fmt.Errorf("invalid bounding box: latitude must be within (-90, 90)")
	}
	return nil
}

func validateZoom(zoom int) error {
	if zoom < MinZoom || zoom > MaxZoom {
		return fmt.Errorf("invalid zoom level %d: must be between %d and %d", zoom, MinZoom, MaxZoom)
	}
	return nil
}
