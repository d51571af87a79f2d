package zpng

// filterBayerForward implements the Bayer XGGY planar predictor
// (specification §4.3). Input is a single byte per mosaic site, row-major,
// no interleaving: even rows carry alternating (R, G) sites, odd rows
// carry alternating (G, B) sites. Output is three planes in order R | B |
// G, where R and B each occupy width*height/4 bytes but G occupies
// width*height/2 bytes (it receives contributions from both the even and
// the odd row of every row pair, written continuously, even-row samples
// first).
//
// Grounded on original_source/zpng.cpp's PackAndFilterXGGY, including its
// row/column walk pattern and the continuous (non-reset) G output cursor
// that spans both halves of a row pair.
func filterBayerForward(src []byte, width, height int, dst []byte) {
	planeBytes := (width * height) / 4
	outR := dst[0:planeBytes]
	outB := dst[planeBytes : 2*planeBytes]
	outG := dst[2*planeBytes : 2*planeBytes+2*planeBytes]

	ri, bi, gi := 0, 0, 0
	for row := 0; row < height; row += 2 {
		evenOff := row * width
		oddOff := (row + 1) * width

		var prevR, prevG byte
		for x := 0; x < width; x += 2 {
			r := src[evenOff+x]
			g := src[evenOff+x+1]
			outR[ri] = r - prevR
			outG[gi] = g - prevG
			prevR, prevG = r, g
			ri++
			gi++
		}

		var prevG2, prevB byte
		for x := 0; x < width; x += 2 {
			g := src[oddOff+x]
			b := src[oddOff+x+1]
			outB[bi] = b - prevB
			outG[gi] = g - prevG2
			prevG2, prevB = g, b
			bi++
			gi++
		}
	}
}

// filterBayerInverse is the exact inverse of filterBayerForward. G must be
// consumed in the same order it was produced: the even row's G samples
// within a row pair, then the odd row's.
func filterBayerInverse(src []byte, width, height int, dst []byte) {
	planeBytes := (width * height) / 4
	inR := src[0:planeBytes]
	inB := src[planeBytes : 2*planeBytes]
	inG := src[2*planeBytes : 2*planeBytes+2*planeBytes]

	ri, bi, gi := 0, 0, 0
	for row := 0; row < height; row += 2 {
		evenOff := row * width
		oddOff := (row + 1) * width

		var prevR, prevG byte
		for x := 0; x < width; x += 2 {
			r := inR[ri] + prevR
			g := inG[gi] + prevG
			dst[evenOff+x] = r
			dst[evenOff+x+1] = g
			prevR, prevG = r, g
			ri++
			gi++
		}

		var prevG2, prevB byte
		for x := 0; x < width; x += 2 {
			g := inG[gi] + prevG2
			b := inB[bi] + prevB
			dst[oddOff+x] = g
			dst[oddOff+x+1] = b
			prevG2, prevB = g, b
			bi++
			gi++
		}
	}
}
