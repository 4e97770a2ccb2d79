// internal/writer/stats_test.go - Unit tests for region statistics
package writer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tile-extract/internal"
	"tile-extract/internal/source"
)

func TestStatisticsScansWrittenTree(t *testing.T) {
	w, _, _ := newTestWriter(t)

	tiles := map[int][]source.TileRecord{
		10: {
			{X: 585, Y: 387, Data: []byte("a")},
			{X: 585, Y: 389, Data: []byte("b")},
			{X: 587, Y: 388, Data: []byte("c")},
		},
		11: {
			{X: 1170, Y: 776, Data: []byte("d")},
		},
	}
	if written := w.WriteTiles(tiles, "ankara", internal.SourceTypeMBTiles); written != 4 {
		t.Fatalf("WriteTiles() = %d, want 4", written)
	}

	stats, err := w.Statistics("ankara")
	if err != nil {
		t.Fatalf("Statistics() unexpected error: %v", err)
	}

	want := &RegionStatistics{
		Region:          "ankara",
		TotalZoomLevels: 2,
		TotalTiles:      4,
		ZoomLevels: map[int]*ZoomStatistics{
			10: {
				Tiles:   3,
				Formats: map[string]int{"jpg": 3},
				XRange:  &Range{Min: 585, Max: 587},
				YRange:  &Range{Min: 387, Max: 389},
			},
			11: {
				Tiles:   1,
				Formats: map[string]int{"jpg": 1},
				XRange:  &Range{Min: 1170, Max: 1170},
				YRange:  &Range{Min: 776, Max: 776},
			},
		},
		FileFormats: map[string]int{"jpg": 4},
	}

	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("statistics mismatch (-want +got):\n%s", diff)
	}
}

func TestStatisticsIgnoresIndexFiles(t *testing.T) {
	w, _, _ := newTestWriter(t)

	tiles := map[int][]source.TileRecord{
		3: {{X: 4, Y: 2, Data: []byte("x")}},
	}
	w.WriteTiles(tiles, "indexed", internal.SourceTypeMBTiles)

	// WriteTiles leaves a tiles.json behind; it must not count as a tile.
	stats, err := w.Statistics("indexed")
	if err != nil {
		t.Fatalf("Statistics() unexpected error: %v", err)
	}
	if stats.TotalTiles != 1 {
		t.Errorf("TotalTiles = %d, want 1", stats.TotalTiles)
	}
}

func TestStatisticsMissingRegion(t *testing.T) {
	w, _, _ := newTestWriter(t)

	_, err := w.Statistics("nowhere")
	if err == nil {
		t.Fatal("Statistics() expected error for missing region")
	}

	var appErr *internal.Error
	if !errors.As(err, &appErr) || appErr.Code != internal.ErrorCodeNotFound {
		t.Errorf("Statistics() error = %v, want NOT_FOUND application error", err)
	}
}
