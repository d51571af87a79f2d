package zpng

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// MaximumBufferSize returns the worst-case output size for img: the
// header plus the entropy coder's compress-bound of the pixel byte count
// with the inter-frame overflow-escape slack included, per specification
// §4 buffer management.
func MaximumBufferSize(img ImageData) (int, error) {
	if !img.IsBayerHint() && img.BytesPerPixel() > 8 {
		return 0, ErrUnsupportedGeometry
	}
	byteCount := img.ByteCount()
	return HeaderSize + compressBound(byteCount+maxOverflowBytes), nil
}

// Compress encodes img as an intra frame, allocating the output buffer.
func Compress(img ImageData, ctx *CompressionContext) (Buffer, error) {
	var out Buffer
	if _, err := CompressVideoToBuffer(nil, img, &out, ctx); err != nil {
		return Buffer{}, err
	}
	return out, nil
}

// CompressToBuffer encodes img as an intra frame into out, which must
// either be empty (Data == nil, in which case a buffer is allocated) or
// at least MaximumBufferSize(img) bytes.
func CompressToBuffer(img ImageData, out *Buffer, ctx *CompressionContext) error {
	_, err := CompressVideoToBuffer(nil, img, out, ctx)
	return err
}

// CompressVideoToBuffer encodes img, optionally as a delta against ref,
// into out. ref == nil means an intra frame. Returns the overflow byte
// count (0 if none, -1 if the inter-frame path fell back to an intra
// transform because the overflow escape budget was exhausted).
func CompressVideoToBuffer(ref *ImageData, img ImageData, out *Buffer, ctx *CompressionContext) (int, error) {
	if ref != nil {
		if img.IsBayerHint() {
			return 0, ErrUnsupportedGeometry
		}
		if !sameGeometry(*ref, img) {
			return 0, ErrGeometryMismatch
		}
	}
	if !img.IsBayerHint() && img.BytesPerPixel() > 8 {
		return 0, ErrUnsupportedGeometry
	}
	if len(img.Buffer.Data) != img.ByteCount() {
		return 0, ErrAllocationFailure
	}

	byteCount := img.ByteCount()
	residual := make([]byte, byteCount+maxOverflowBytes)

	var overflowCount int
	isDelta := false
	if ref != nil {
		overflowCount = dispatchVideoForward(*ref, img, residual)
		isDelta = overflowCount >= 0
		if overflowCount > 0 && overflowCount <= maxOverflowBytes && ctx != nil && ctx.Logger != nil {
			ctx.Logger.Printf("zpng: overflow: %d", overflowCount)
		}
	} else {
		dispatchIntraForward(img, residual)
		overflowCount = 0
	}

	residualLen := byteCount
	if overflowCount > 0 {
		residualLen += overflowCount
	}
	payload := residual[:residualLen]

	if len(out.Data) == 0 {
		needed := HeaderSize + compressBound(residualLen)
		out.Data = make([]byte, needed)
	} else {
		maxNeeded, err := MaximumBufferSize(img)
		if err != nil {
			return 0, err
		}
		if len(out.Data) < maxNeeded {
			return 0, ErrInsufficientOutput
		}
	}

	var coded []byte
	var err error
	if ctx != nil {
		var enc *zstd.Encoder
		enc, err = ctx.ensureDictEncoder(payload, byteCount, img.HeightPixels)
		if err == nil {
			coded = enc.EncodeAll(payload, nil)
		}
	} else {
		coded, err = coderCompress(payload)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCoderError, err)
	}

	if len(out.Data) < HeaderSize+len(coded) {
		return 0, ErrInsufficientOutput
	}

	fellBackToBayer := ref != nil && overflowCount == -1

	hdr := frameHeader{
		width:           uint16(img.WidthPixels),
		height:          uint16(img.HeightPixels),
		channels:        uint8(img.Channels),
		bytesPerChannel: uint8(img.BytesPerChannel),
	}
	if isDelta {
		hdr.magic = magicDelta
	} else {
		hdr.magic = magicIntra
	}
	if fellBackToBayer {
		// original_source/zpng.cpp writes header->BytesPerChannel from the
		// frame's own declared geometry even on this fallback path, which
		// leaves the decoder no way to tell the residual was actually
		// produced by the XGGY planar transform rather than the plain
		// per-channel one. Signal it explicitly so dispatch on decode
		// matches what was encoded; see DESIGN.md.
		hdr.bytesPerChannel = bayerFallbackSentinel
	}
	hdr.encode(out.Data[:HeaderSize])
	copy(out.Data[HeaderSize:], coded)
	out.Data = out.Data[:HeaderSize+len(coded)]

	return overflowCount, nil
}

// Decompress decodes an intra-only payload.
func Decompress(buf Buffer) (ImageData, error) {
	return DecompressVideo(nil, buf)
}

// DecompressVideo decodes buf, applying the inverse inter-frame kernel
// against ref if the container magic identifies a delta frame.
func DecompressVideo(ref *ImageData, buf Buffer) (ImageData, error) {
	if len(buf.Data) < HeaderSize {
		return ImageData{}, ErrTruncatedInput
	}

	hdr := decodeHeader(buf.Data)
	if hdr.magic != magicIntra && hdr.magic != magicDelta {
		return ImageData{}, ErrBadMagic
	}
	if ref == nil && hdr.magic != magicIntra {
		return ImageData{}, ErrMissingReference
	}

	img := ImageData{
		WidthPixels:     int(hdr.width),
		HeightPixels:    int(hdr.height),
		Channels:        int(hdr.channels),
		BytesPerChannel: int(hdr.bytesPerChannel),
		IsIFrame:        hdr.magic == magicIntra,
	}
	img.StrideBytes = img.WidthPixels * img.Channels

	if !img.IsIFrame {
		if ref == nil {
			return ImageData{}, ErrMissingReference
		}
		if !sameGeometry(*ref, img) {
			return ImageData{}, ErrGeometryMismatch
		}
	}

	byteCount := img.ByteCount()
	payload := buf.Data[HeaderSize:]
	residual, err := coderDecompress(payload, byteCount+maxOverflowBytes)
	if err != nil {
		return ImageData{}, fmt.Errorf("%w: %v", ErrCoderError, err)
	}
	if len(residual) < byteCount {
		return ImageData{}, ErrCoderError
	}

	outBuf := make([]byte, byteCount)
	if img.IsIFrame {
		layout := layoutOf(img)
		dispatchIntraInverse(layout, img.WidthPixels, img.HeightPixels, residual, outBuf)
	} else {
		filterVideoInverse(ref.Buffer.Data, residual, byteCount, outBuf)
	}

	img.Buffer = Buffer{Data: outBuf}
	return img, nil
}

func sameGeometry(a, b ImageData) bool {
	return a.WidthPixels == b.WidthPixels &&
		a.HeightPixels == b.HeightPixels &&
		a.Channels == b.Channels &&
		a.BytesPerChannel == b.BytesPerChannel
}
