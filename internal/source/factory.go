// internal/source/factory.go - Extractor factory implementation
package source

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tile-extract/internal"
)

// NewExtractor creates the extractor for a declared source type. Unknown
// types yield a descriptive error rather than a panic; the caller decides
// whether a missing extractor is fatal.
func NewExtractor(sourceType internal.SourceType, path string, log *logrus.Entry) (Extractor, error) {
	switch sourceType {
	case internal.SourceTypeMBTiles:
		return NewMBTilesExtractor(path, log), nil
	default:
		return nil, internal.NewError(internal.ErrorCodeSource,
			fmt.Sprintf("no extractor available for source type %q", sourceType), nil)
	}
}
