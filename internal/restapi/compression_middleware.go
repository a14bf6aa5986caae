package restapi

import (
	"mime"
	"net/http"
	"slices"

	"github.com/klauspost/compress/gzhttp"
)

// Chart formats that are already compressed containers. SVG and JSON are
// left compressible.
var precompressedTypes = []string{
	"image/png",
	xlsxContentType,
}

// CompressionConfig controls gzip response compression.
type CompressionConfig struct {
	MinSize int
	Level   int
	// SkipContentTypes are media types sent uncompressed.
	SkipContentTypes []string
}

func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		MinSize:          1024,
		Level:            6,
		SkipContentTypes: precompressedTypes,
	}
}

// NewCompressionMiddleware gzips responses of at least config.MinSize bytes
// unless their media type is in config.SkipContentTypes or is one of gzhttp's
// default archive and media types.
func NewCompressionMiddleware(config CompressionConfig) func(http.Handler) http.Handler {
	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(config.MinSize),
		gzhttp.CompressionLevel(config.Level),
		gzhttp.ContentTypeFilter(contentTypeFilter(config.SkipContentTypes)),
	)

	return func(next http.Handler) http.Handler {
		if err != nil {
			return gzhttp.GzipHandler(next)
		}
		return wrapper(next)
	}
}

func contentTypeFilter(skip []string) func(ct string) bool {
	return func(ct string) bool {
		if !gzhttp.DefaultContentTypeFilter(ct) {
			return false
		}
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return true
		}
		return !slices.Contains(skip, mediaType)
	}
}

// CompressionMiddleware applies gzip compression with default settings
func CompressionMiddleware(next http.Handler) http.Handler {
	return NewCompressionMiddleware(DefaultCompressionConfig())(next)
}
