// internal/source/detect_test.go - Unit tests for source type detection
package source

import (
	"os"
	"path/filepath"
	"testing"

	"tile-extract/internal"
)

func TestDetectSourceType(t *testing.T) {
	dir := t.TempDir()

	mbtiles := newTestMBTiles(t, nil)

	fakeMBTiles := filepath.Join(dir, "fake.mbtiles")
	if err := os.WriteFile(fakeMBTiles, []byte("not a database"), 0644); err != nil {
		t.Fatal(err)
	}

	textFile := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want internal.SourceType
	}{
		{name: "valid mbtiles", path: mbtiles, want: internal.SourceTypeMBTiles},
		{name: "mbtiles extension without sqlite header", path: fakeMBTiles, want: internal.SourceTypeUnknown},
		{name: "unrelated extension", path: textFile, want: internal.SourceTypeUnknown},
		{name: "missing file", path: filepath.Join(dir, "nope.mbtiles"), want: internal.SourceTypeUnknown},
		{name: "directory", path: dir, want: internal.SourceTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSourceType(tt.path); got != tt.want {
				t.Errorf("DetectSourceType(%s) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewExtractor(t *testing.T) {
	log, _ := testLogger()

	extractor, err := NewExtractor(internal.SourceTypeMBTiles, "region.mbtiles", log)
	if err != nil {
		t.Fatalf("NewExtractor(mbtiles) unexpected error: %v", err)
	}
	if _, ok := extractor.(*MBTilesExtractor); !ok {
		t.Errorf("NewExtractor(mbtiles) returned %T, want *MBTilesExtractor", extractor)
	}

	if _, err := NewExtractor(internal.SourceTypeUnknown, "region.bin", log); err == nil {
		t.Error("NewExtractor(unknown) expected error, got none")
	}
	if _, err := NewExtractor(internal.SourceType("geopackage"), "region.gpkg", log); err == nil {
		t.Error("NewExtractor(geopackage) expected error, got none")
	}
}
