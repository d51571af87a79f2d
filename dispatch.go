package zpng

// dispatchIntraForward selects and runs the matching forward kernel for an
// intra (non-delta) frame, per the dispatch table of specification §4.5.
// Selection keys on bytes-per-pixel (layout.channels when non-Bayer), not
// on the logical channel count.
func dispatchIntraForward(img ImageData, dst []byte) {
	layout := layoutOf(img)
	w, h := img.WidthPixels, img.HeightPixels
	src := img.Buffer.Data

	switch {
	case layout.bayer:
		filterBayerForward(src, w, h, dst)
	case layout.channels == 3:
		filterColor3Forward(src, w, h, dst)
	case layout.channels == 4:
		filterColor4Forward(src, w, h, dst)
	default:
		filterGenericForward(src, layout.channels, w, h, dst)
	}
}

// dispatchIntraInverse selects and runs the matching inverse kernel for an
// intra frame.
func dispatchIntraInverse(layout pixelLayout, w, h int, residual []byte, dst []byte) {
	switch {
	case layout.bayer:
		filterBayerInverse(residual, w, h, dst)
	case layout.channels == 3:
		filterColor3Inverse(residual, w, h, dst)
	case layout.channels == 4:
		filterColor4Inverse(residual, w, h, dst)
	default:
		filterGenericInverse(residual, layout.channels, w, h, dst)
	}
}

// dispatchVideoForward runs the inter-frame predictor, falling back to the
// Bayer XGGY intra transform (on the full pixel buffer, regardless of
// actual channel layout) when the overflow escape budget is exhausted.
// This fallback call-site behavior is the literal behavior of
// original_source/zpng.cpp's PackAndFilterVideo and is preserved
// verbatim; see filter_video.go. The caller (pipeline.go) additionally
// marks the written header so the resulting residual decodes correctly —
// see DESIGN.md's "Fallback header signaling fix".
func dispatchVideoForward(ref, img ImageData, dst []byte) int {
	byteCount := img.ByteCount()
	overflowCount := filterVideoForward(ref.Buffer.Data, img.Buffer.Data, byteCount, dst)
	if overflowCount == -1 {
		filterBayerForward(img.Buffer.Data, img.WidthPixels, img.HeightPixels, dst)
	}
	return overflowCount
}
