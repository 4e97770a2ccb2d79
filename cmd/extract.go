// cmd/extract.go - Region extraction command
package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
	pb "gopkg.in/cheggaaa/pb.v1"

	"tile-extract/internal"
	"tile-extract/internal/config"
	"tile-extract/internal/geo"
	"tile-extract/internal/source"
	"tile-extract/internal/writer"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract tiles for a region from a configured source",
	Long: `Extract all tiles covering a geographic area and zoom range from one of
the configured tile sources, writing them as an XYZ directory tree.

The area is either a predefined region from the configuration catalog
(--region) or an explicit bounding box (--bbox "minLon,minLat,maxLon,maxLat").
The zoom range defaults to the source's declared limits.

Examples:
  # Predefined region, source zoom limits
  tile-extract extract --region ankara --source osm_turkey

  # Explicit bounding box and zoom range
  tile-extract extract --source osm_turkey --bbox "32.5,39.7,33.2,40.1" --min-zoom 8 --max-zoom 12 --region-name custom`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("region", "", "predefined region id from the catalog")
	extractCmd.Flags().String("bbox", "", "bounding box as \"minLon,minLat,maxLon,maxLat\"")
	extractCmd.Flags().String("source", "", "source id from the catalog")
	extractCmd.Flags().Int("min-zoom", -1, "minimum zoom level (default: source minimum)")
	extractCmd.Flags().Int("max-zoom", -1, "maximum zoom level (default: source maximum)")
	extractCmd.Flags().String("region-name", "custom", "output directory name when using --bbox")

	extractCmd.MarkFlagRequired("source")
	extractCmd.MarkFlagsMutuallyExclusive("region", "bbox")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	for _, warning := range config.Warnings(cfg) {
		log.Warn(warning)
	}

	sourceID, _ := cmd.Flags().GetString("source")
	regionID, _ := cmd.Flags().GetString("region")
	bboxFlag, _ := cmd.Flags().GetString("bbox")
	minZoomFlag, _ := cmd.Flags().GetInt("min-zoom")
	maxZoomFlag, _ := cmd.Flags().GetInt("max-zoom")
	regionName, _ := cmd.Flags().GetString("region-name")

	src, err := cfg.GetSource(sourceID)
	if err != nil {
		return err
	}

	bound, regionName, err := resolveArea(cfg, regionID, bboxFlag, regionName)
	if err != nil {
		return err
	}

	minZoom, maxZoom := src.ZoomRange(cfg.Defaults)
	if minZoomFlag >= 0 {
		minZoom = minZoomFlag
	}
	if maxZoomFlag >= 0 {
		maxZoom = maxZoomFlag
	}
	if minZoom > maxZoom {
		return fmt.Errorf("invalid zoom range %d-%d: min must not exceed max", minZoom, maxZoom)
	}

	// Bounds and zoom violations are fatal before any extraction starts.
	if err := config.ValidateSourceBounds(src, bound, minZoom, maxZoom); err != nil {
		return err
	}

	sourceType := src.SourceType()
	if detected := source.DetectSourceType(src.Path); detected != internal.SourceTypeUnknown && detected != sourceType {
		log.Warnf("declared source type %s does not match detected type %s", sourceType, detected)
	}

	extractor, err := source.NewExtractor(sourceType, src.Path, log.WithField("source", sourceID))
	if err != nil {
		return err
	}

	log.Infof("region: %s", regionName)
	log.Infof("area: [%g, %g, %g, %g]", bound.Left(), bound.Bottom(), bound.Right(), bound.Top())
	log.Infof("zoom: %d - %d", minZoom, maxZoom)
	log.Infof("source: %s (%s)", src.Path, sourceType)

	tilesByZoom := make(map[int][]source.TileRecord)
	for zoom := minZoom; zoom <= maxZoom; zoom++ {
		log.Infof("extracting zoom %d...", zoom)
		tilesByZoom[zoom] = extractor.ExtractTiles(bound, zoom)
	}

	w := writer.NewTileWriter(cfg.Defaults.OutputDir, log.WithField("region", regionName))
	w.SetProgressReporter(&barReporter{})

	total := w.WriteTiles(tilesByZoom, regionName, sourceType)
	if total > 0 {
		log.Infof("successfully wrote %d tiles", total)
		log.Infof("saved to: %s", filepath.Join(cfg.Defaults.OutputDir, regionName))
	} else {
		log.Warn("no tiles were produced")
	}

	return nil
}

// resolveArea returns the bounding box and output name for the request,
// either from the region catalog or from an explicit bbox flag
func resolveArea(cfg *config.Config, regionID, bboxFlag, regionName string) (orb.Bound, string, error) {
	if regionID != "" {
		region, err := cfg.GetRegion(regionID)
		if err != nil {
			return orb.Bound{}, "", err
		}
		bound, ok := region.Bound()
		if !ok {
			return orb.Bound{}, "", fmt.Errorf("region %q has no usable bbox", regionID)
		}
		return bound, regionID, nil
	}

	if bboxFlag == "" {
		return orb.Bound{}, "", fmt.Errorf("either --region or --bbox must be specified")
	}

	bound, err := parseBoundingBox(bboxFlag)
	if err != nil {
		return orb.Bound{}, "", err
	}
	return bound, regionName, nil
}

// parseBoundingBox parses a "minLon,minLat,maxLon,maxLat" string
func parseBoundingBox(value string) (orb.Bound, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("invalid bbox format: expected \"minLon,minLat,maxLon,maxLat\", got %q", value)
	}

	coords := make([]float64, 4)
	for i, part := range parts {
		coord, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("invalid bbox coordinate %q: %w", part, err)
		}
		coords[i] = coord
	}

	bound := orb.Bound{
		Min: orb.Point{coords[0], coords[1]},
		Max: orb.Point{coords[2], coords[3]},
	}
	if err := geo.ValidateBound(bound); err != nil {
		return orb.Bound{}, err
	}

	return bound, nil
}

// barReporter drives a terminal progress bar per zoom level
type barReporter struct {
	bar *pb.ProgressBar
}

func (r *barReporter) StartZoom(zoom, total int) {
	r.bar = pb.New(total).Prefix(fmt.Sprintf("zoom %d ", zoom))
	r.bar.Start()
}

func (r *barReporter) Advance() {
	if r.bar != nil {
		r.bar.Increment()
	}
}

func (r *barReporter) FinishZoom() {
	if r.bar != nil {
		r.bar.Finish()
		r.bar = nil
	}
}
