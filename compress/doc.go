// Package compress provides the compression codecs used by mdf4.
//
// Two families live here:
//
// Zipped data blocks (##DZ) store a zlib stream of the original block
// payload, optionally after a byte transposition that groups the n-th byte
// of every record together. Unzip and Zip implement both zip types:
//
//	raw, err := compress.Unzip(format.ZipTranspositionDeflate, recordLen, data, origLen)
//
// Export codecs compress the output of the mdf4 command line tool. They
// implement Codec for whole buffers and NewWriter / NewReader for streams:
//   - None: pass-through
//   - Zstd: best ratio (pure Go by default, libzstd with the gozstd build tag)
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// All codecs are safe for concurrent use.
package compress
