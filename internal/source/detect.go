// internal/source/detect.go - Source type detection
package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tile-extract/internal"
)

// sqliteMagic is the 16-byte header every SQLite 3 database starts with.
var sqliteMagic = []byte("SQLite format 3\x00")

// DetectSourceType classifies a filesystem path as one of the supported
// container formats. It is used to corroborate a declared source type, not to
// override it; unreadable or unrecognized paths yield SourceTypeUnknown.
func DetectSourceType(path string) internal.SourceType {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return internal.SourceTypeUnknown
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mbtiles":
		if hasSQLiteHeader(path) {
			return internal.SourceTypeMBTiles
		}
	}

	return internal.SourceTypeUnknown
}

// hasSQLiteHeader reports whether the file starts with the SQLite signature
func hasSQLiteHeader(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, len(sqliteMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return false
	}

	return bytes.Equal(header, sqliteMagic)
}
