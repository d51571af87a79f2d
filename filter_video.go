package zpng

// overflowSentinel is the escape marker written in place of any residual
// that would otherwise equal 0x80 (-128 signed) or fall outside the safe
// [-127, 127] range. Widening this range breaks round-trip: a genuine
// residual of exactly -128 would then be indistinguishable from the
// escape marker.
const overflowSentinel = 0x80

// maxOverflowBytes is the escape budget per frame (specification §4.4).
const maxOverflowBytes = 1000

// filterVideoForward implements the inter-frame predictor with overflow
// escape (specification §4.4). dst must have capacity for byteCount+1000
// bytes: the main residual occupies dst[0:byteCount], and any overflow
// tail bytes are appended starting at dst[byteCount:], in scan order.
//
// Returns the overflow byte count, or -1 if the budget was exceeded. On
// -1 dst's contents are abandoned; the caller (dispatchVideoForward)
// falls back to the Bayer XGGY intra transform over dst instead
// (specification's documented fallback, preserved verbatim from
// original_source/zpng.cpp's PackAndFilterVideo) and the frame is
// written out as intra — see pipeline.go's header-sentinel handling.
func filterVideoForward(ref, cur []byte, byteCount int, dst []byte) int {
	overflow := dst[byteCount:]
	overflowCount := 0

	for i := 0; i < byteCount; i++ {
		d := int(cur[i]) - int(ref[i])
		if d > 127 || d < -127 {
			if overflowCount == maxOverflowBytes {
				return -1
			}
			dst[i] = overflowSentinel
			overflow[overflowCount] = cur[i]
			overflowCount++
			continue
		}
		dst[i] = byte(int8(d))
	}

	return overflowCount
}

// filterVideoInverse is the exact inverse of filterVideoForward. The
// overflow tail begins at byteCount within residual.
func filterVideoInverse(ref []byte, residual []byte, byteCount int, dst []byte) {
	overflow := residual[byteCount:]
	oi := 0
	for i := 0; i < byteCount; i++ {
		r := residual[i]
		if r == overflowSentinel {
			dst[i] = overflow[oi]
			oi++
			continue
		}
		dst[i] = ref[i] + r
	}
}
