package compress

// ZstdCompressor provides Zstandard compression.
//
// The implementation is selected at build time: the pure Go encoder from
// klauspost/compress by default, or the cgo binding to libzstd with the
// gozstd build tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
