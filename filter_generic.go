package zpng

// filterGenericForward implements the generic N-channel spatial predictor
// (specification §4.1): for each of the channels byte-lanes, emit the
// difference to the previous pixel in the same row on that lane, with the
// left-edge predecessor seeded to zero. Output layout is interleaved,
// identical in shape to the input.
//
// This despecializes original_source/zpng.cpp's PackAndFilter<kChannels>
// template family into one loop parameterized by channel count, per the
// specification's "template-specialized kernels" redesign note.
func filterGenericForward(src []byte, channels, width, height int, dst []byte) {
	prev := make([]byte, channels)
	for y := 0; y < height; y++ {
		for c := 0; c < channels; c++ {
			prev[c] = 0
		}
		rowOff := y * width * channels
		for x := 0; x < width; x++ {
			off := rowOff + x*channels
			for c := 0; c < channels; c++ {
				a := src[off+c]
				dst[off+c] = a - prev[c]
				prev[c] = a
			}
		}
	}
}

// filterGenericInverse is the exact inverse of filterGenericForward: a
// running sum per row and lane with the same left-edge seed.
func filterGenericInverse(src []byte, channels, width, height int, dst []byte) {
	prev := make([]byte, channels)
	for y := 0; y < height; y++ {
		for c := 0; c < channels; c++ {
			prev[c] = 0
		}
		rowOff := y * width * channels
		for x := 0; x < width; x++ {
			off := rowOff + x*channels
			for c := 0; c < channels; c++ {
				a := src[off+c] + prev[c]
				dst[off+c] = a
				prev[c] = a
			}
		}
	}
}
