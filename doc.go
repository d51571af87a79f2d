// Package zpng implements the pre-filter, framing, dispatch, and
// dictionary-assisted compression pipeline for a lossless pixel codec.
//
// The package turns correlated raw pixel buffers into a low-entropy
// residual stream via a family of channel-count-specialized spatial
// filters, then hands the residual to a general-purpose entropy coder
// (github.com/klauspost/compress/zstd). It also supports encoding a frame
// as a delta against a reference frame of identical geometry.
//
// The package is single-threaded and synchronous: a CompressionContext is
// a mutable session object and must not be shared across goroutines
// without external serialization.
package zpng
