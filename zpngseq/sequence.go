// Package zpngseq drives a multi-frame session through a single shared
// zpng.CompressionContext: frame 0 is intra, every later frame is a delta
// against the previous frame, and the dictionary trained on frame 0's
// residual is reused for the rest of the sequence.
package zpngseq

import (
	"fmt"

	"github.com/pixelforge/zpng"
)

// EncodeSequence compresses frames in order onto a single context. frames
// must all share the same geometry; EncodeSequence does not check this
// itself — zpng.CompressVideoToBuffer rejects a geometry mismatch on the
// first delta frame that exhibits one.
//
// Deltas are taken against the previous *input* frame, not the previous
// decoded frame: the codec is lossless and the reference geometry is
// invariant across a sequence, so the two are byte-identical, and taking
// the input avoids an unnecessary decode-before-encode round trip.
func EncodeSequence(frames []zpng.ImageData, ctx *zpng.CompressionContext) ([]zpng.Buffer, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	out := make([]zpng.Buffer, len(frames))

	first, err := zpng.Compress(frames[0], ctx)
	if err != nil {
		return nil, fmt.Errorf("zpngseq: frame 0: %w", err)
	}
	out[0] = first

	for i := 1; i < len(frames); i++ {
		ref := frames[i-1]
		var buf zpng.Buffer
		if _, err := zpng.CompressVideoToBuffer(&ref, frames[i], &buf, ctx); err != nil {
			return nil, fmt.Errorf("zpngseq: frame %d: %w", i, err)
		}
		out[i] = buf
	}

	return out, nil
}

// DecodeSequence reverses EncodeSequence: buffers[0] must be an intra
// frame, and every later buffer is decoded as a delta against the
// previously decoded frame.
func DecodeSequence(buffers []zpng.Buffer) ([]zpng.ImageData, error) {
	if len(buffers) == 0 {
		return nil, nil
	}

	frames := make([]zpng.ImageData, len(buffers))

	first, err := zpng.Decompress(buffers[0])
	if err != nil {
		return nil, fmt.Errorf("zpngseq: frame 0: %w", err)
	}
	frames[0] = first

	for i := 1; i < len(buffers); i++ {
		ref := frames[i-1]
		frame, err := zpng.DecompressVideo(&ref, buffers[i])
		if err != nil {
			return nil, fmt.Errorf("zpngseq: frame %d: %w", i, err)
		}
		frames[i] = frame
	}

	return frames, nil
}
