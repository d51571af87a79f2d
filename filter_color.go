package zpng

// filterColor3Forward implements the BCIF "GB-RG" color-decorrelating
// predictor for RGB frames (specification §4.2): a horizontal per-lane
// difference identical to filterGenericForward, followed by the fixed
// linear color filter and a planar split into Y | U | V, each plane
// width*height bytes, concatenated in that order.
func filterColor3Forward(src []byte, width, height int, dst []byte) {
	planeBytes := width * height
	outY := dst[0:planeBytes]
	outU := dst[planeBytes : 2*planeBytes]
	outV := dst[2*planeBytes : 3*planeBytes]

	idx := 0
	for y := 0; y < height; y++ {
		var prevR, prevG, prevB byte
		rowOff := y * width * 3
		for x := 0; x < width; x++ {
			off := rowOff + x*3
			r := src[off+0]
			g := src[off+1]
			b := src[off+2]

			dr := r - prevR
			dg := g - prevG
			db := b - prevB
			prevR, prevG, prevB = r, g, b

			outY[idx] = db
			outU[idx] = dg - db
			outV[idx] = dg - dr
			idx++
		}
	}
}

// filterColor3Inverse is the exact inverse of filterColor3Forward.
func filterColor3Inverse(src []byte, width, height int, dst []byte) {
	planeBytes := width * height
	inY := src[0:planeBytes]
	inU := src[planeBytes : 2*planeBytes]
	inV := src[2*planeBytes : 3*planeBytes]

	idx := 0
	for y := 0; y < height; y++ {
		var prevR, prevG, prevB byte
		rowOff := y * width * 3
		for x := 0; x < width; x++ {
			off := rowOff + x*3
			yy := inY[idx]
			u := inU[idx]
			v := inV[idx]
			idx++

			B := yy
			G := u + B
			dr := G - v
			dg := G
			db := B

			r := dr + prevR
			g := dg + prevG
			b := db + prevB

			dst[off+0] = r
			dst[off+1] = g
			dst[off+2] = b
			prevR, prevG, prevB = r, g, b
		}
	}
}

// filterColor4Forward is filterColor3Forward extended with a fourth,
// independently horizontally-differenced alpha plane appended after V.
func filterColor4Forward(src []byte, width, height int, dst []byte) {
	planeBytes := width * height
	outY := dst[0:planeBytes]
	outU := dst[planeBytes : 2*planeBytes]
	outV := dst[2*planeBytes : 3*planeBytes]
	outA := dst[3*planeBytes : 4*planeBytes]

	idx := 0
	for y := 0; y < height; y++ {
		var prevR, prevG, prevB, prevA byte
		rowOff := y * width * 4
		for x := 0; x < width; x++ {
			off := rowOff + x*4
			r := src[off+0]
			g := src[off+1]
			b := src[off+2]
			a := src[off+3]

			dr := r - prevR
			dg := g - prevG
			db := b - prevB
			da := a - prevA
			prevR, prevG, prevB, prevA = r, g, b, a

			outY[idx] = db
			outU[idx] = dg - db
			outV[idx] = dg - dr
			outA[idx] = da
			idx++
		}
	}
}

// filterColor4Inverse is the exact inverse of filterColor4Forward.
func filterColor4Inverse(src []byte, width, height int, dst []byte) {
	planeBytes := width * height
	inY := src[0:planeBytes]
	inU := src[planeBytes : 2*planeBytes]
	inV := src[2*planeBytes : 3*planeBytes]
	inA := src[3*planeBytes : 4*planeBytes]

	idx := 0
	for y := 0; y < height; y++ {
		var prevR, prevG, prevB, prevA byte
		rowOff := y * width * 4
		for x := 0; x < width; x++ {
			off := rowOff + x*4
			yy := inY[idx]
			u := inU[idx]
			v := inV[idx]
			da := inA[idx]
			idx++

			B := yy
			G := u + B
			dr := G - v
			dg := G
			db := B

			r := dr + prevR
			g := dg + prevG
			b := db + prevB
			a := da + prevA

			dst[off+0] = r
			dst[off+1] = g
			dst[off+2] = b
			dst[off+3] = a
			prevR, prevG, prevB, prevA = r, g, b, a
		}
	}
}
