package zpng

import "github.com/klauspost/compress/zstd"

// trainDictionary implements the one-shot dictionary trainer of
// specification §4.7. It slices the filtered residual into height*8
// contiguous, equal-size samples (truncating division; any remainder at
// the end is ignored), then builds a dictionary from them bounded by
// dictCapacity bytes.
//
// sampleSize is derived from byteCount, the pure pixel byte count
// (pixelBytes * pixelCount, excluding any inter-frame overflow-escape
// tail), per original_source/zpng.cpp's
// `sampleSizes[i] = byteCount / imageData->HeightPixels / 8`. residual
// may be longer than byteCount (a delta frame's escape tail is appended
// past it), but samples are only ever cut from residual[:byteCount] —
// the escape tail holds raw literal bytes, not filtered residual, and
// must never leak into the trained dictionary.
func trainDictionary(residual []byte, byteCount, height int, level zstd.EncoderLevel) (*Dictionary, error) {
	numSamples := height * 8
	if numSamples <= 0 {
		return &Dictionary{raw: nil}, nil
	}
	sampleSize := byteCount / numSamples
	if sampleSize <= 0 {
		return &Dictionary{raw: nil}, nil
	}

	pixels := residual[:byteCount]
	samples := make([][]byte, numSamples)
	for i := 0; i < numSamples; i++ {
		off := i * sampleSize
		samples[i] = pixels[off : off+sampleSize]
	}

	params := dictTrainParams{K: 32, D: 8, Steps: 0, SplitPoint: 1, CompressionLevel: int(level)}
	raw := coderTrainDict(samples, dictCapacity, params)
	return &Dictionary{raw: raw}, nil
}
