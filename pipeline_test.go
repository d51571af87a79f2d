package zpng

import (
	"bytes"
	"math/rand"
	"testing"
)

func fillRandom(buf []byte, seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Read(buf)
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	geometries := []struct{ w, h int }{
		{1, 1}, {2, 3}, {7, 5}, {64, 64}, {1023, 1}, {1, 1023},
	}

	for _, bpc := range []int{1, 2} {
		for channels := 1; channels <= 4; channels++ {
			for _, g := range geometries {
				img := ImageData{
					WidthPixels:     g.w,
					HeightPixels:    g.h,
					Channels:        channels,
					BytesPerChannel: bpc,
				}
				buf := make([]byte, img.ByteCount())
				fillRandom(buf, int64(channels*1000+bpc*100+g.w*g.h))
				img.Buffer = Buffer{Data: buf}

				out, err := Compress(img, nil)
				if err != nil {
					t.Fatalf("c=%d bpc=%d %dx%d: Compress: %v", channels, bpc, g.w, g.h, err)
				}

				decoded, err := Decompress(out)
				if err != nil {
					t.Fatalf("c=%d bpc=%d %dx%d: Decompress: %v", channels, bpc, g.w, g.h, err)
				}

				if !bytes.Equal(decoded.Buffer.Data, buf) {
					t.Fatalf("c=%d bpc=%d %dx%d: round trip mismatch", channels, bpc, g.w, g.h)
				}
			}
		}
	}
}

func TestCompressRejectsOversizedPixel(t *testing.T) {
	img := ImageData{WidthPixels: 1, HeightPixels: 1, Channels: 5, BytesPerChannel: 2}
	img.Buffer = Buffer{Data: make([]byte, img.ByteCount())}

	_, err := Compress(img, nil)
	if err != ErrUnsupportedGeometry {
		t.Fatalf("err = %v, want ErrUnsupportedGeometry", err)
	}
}

func TestDeltaRoundTripWithEscape(t *testing.T) {
	width, height, channels, bpc := 8, 8, 1, 1
	ref := ImageData{WidthPixels: width, HeightPixels: height, Channels: channels, BytesPerChannel: bpc}
	ref.Buffer = Buffer{Data: make([]byte, ref.ByteCount())}
	fillRandom(ref.Buffer.Data, 42)

	target := ImageData{WidthPixels: width, HeightPixels: height, Channels: channels, BytesPerChannel: bpc}
	targetBuf := make([]byte, target.ByteCount())
	copy(targetBuf, ref.Buffer.Data)
	// Force a few residuals outside [-127, 127] to exercise the escape path:
	// flipping the top bit makes the signed difference exactly +128 or -128.
	targetBuf[0] = ref.Buffer.Data[0] ^ 0x80
	targetBuf[1] = ref.Buffer.Data[1] ^ 0x80
	target.Buffer = Buffer{Data: targetBuf}

	var out Buffer
	overflow, err := CompressVideoToBuffer(&ref, target, &out, nil)
	if err != nil {
		t.Fatalf("CompressVideoToBuffer: %v", err)
	}
	if overflow <= 0 {
		t.Fatalf("overflow = %d, want > 0", overflow)
	}

	decoded, err := DecompressVideo(&ref, out)
	if err != nil {
		t.Fatalf("DecompressVideo: %v", err)
	}
	if !bytes.Equal(decoded.Buffer.Data, targetBuf) {
		t.Fatalf("delta round trip mismatch")
	}
}

func TestDeltaFallback(t *testing.T) {
	// Channels=1, BytesPerChannel=1 (bytes-per-pixel 1) is the one non-Bayer
	// geometry whose raw layout the XGGY fallback transform can actually
	// consume byte-for-byte (one byte per mosaic site, row stride == width);
	// any other geometry would have the fallback silently read past its
	// real row stride. Width and height must also be even for the 2x2
	// mosaic tiling.
	width, height := 64, 64
	ref := ImageData{WidthPixels: width, HeightPixels: height, Channels: 1, BytesPerChannel: 1}
	ref.Buffer = Buffer{Data: make([]byte, ref.ByteCount())}

	target := ImageData{WidthPixels: width, HeightPixels: height, Channels: 1, BytesPerChannel: 1}
	targetBuf := make([]byte, target.ByteCount())
	for i := range targetBuf {
		targetBuf[i] = 255
	}
	target.Buffer = Buffer{Data: targetBuf}

	var out Buffer
	overflow, err := CompressVideoToBuffer(&ref, target, &out, nil)
	if err != nil {
		t.Fatalf("CompressVideoToBuffer: %v", err)
	}
	if overflow != -1 {
		t.Fatalf("overflow = %d, want -1 (fallback)", overflow)
	}

	hdr := decodeHeader(out.Data)
	if hdr.magic != magicIntra {
		t.Fatalf("magic = %#x, want intra magic on fallback", hdr.magic)
	}

	decoded, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decoded.Buffer.Data, targetBuf) {
		t.Fatalf("fallback round trip mismatch")
	}
}

func TestShortBufferIsTruncated(t *testing.T) {
	_, err := Decompress(Buffer{Data: make([]byte, 4)})
	if err != ErrTruncatedInput {
		t.Fatalf("err = %v, want ErrTruncatedInput", err)
	}
}

func TestHeaderIdempotence(t *testing.T) {
	img := ImageData{WidthPixels: 3, HeightPixels: 3, Channels: 3, BytesPerChannel: 1}
	img.Buffer = Buffer{Data: make([]byte, img.ByteCount())}
	fillRandom(img.Buffer.Data, 7)

	out1, err := Compress(img, nil)
	if err != nil {
		t.Fatalf("Compress (1): %v", err)
	}
	out2, err := Compress(img, nil)
	if err != nil {
		t.Fatalf("Compress (2): %v", err)
	}

	if !bytes.Equal(out1.Data[:HeaderSize], out2.Data[:HeaderSize]) {
		t.Fatalf("headers differ across identical encodes")
	}
}

func TestOneByteGrayScenario(t *testing.T) {
	img := ImageData{WidthPixels: 1, HeightPixels: 1, Channels: 1, BytesPerChannel: 1}
	img.Buffer = Buffer{Data: []byte{0x42}}

	out, err := Compress(img, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	hdr := decodeHeader(out.Data)
	if hdr.magic != magicIntra {
		t.Fatalf("magic = %#x, want intra", hdr.magic)
	}

	decoded, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decoded.Buffer.Data, []byte{0x42}) {
		t.Fatalf("decoded = %v, want [0x42]", decoded.Buffer.Data)
	}
}

func TestDeltaSameFramesScenario(t *testing.T) {
	img := ImageData{WidthPixels: 2, HeightPixels: 3, Channels: 3, BytesPerChannel: 1}
	img.Buffer = Buffer{Data: make([]byte, img.ByteCount())}
	fillRandom(img.Buffer.Data, 99)

	var out Buffer
	overflow, err := CompressVideoToBuffer(&img, img, &out, nil)
	if err != nil {
		t.Fatalf("CompressVideoToBuffer: %v", err)
	}
	if overflow != 0 {
		t.Fatalf("overflow = %d, want 0", overflow)
	}
	hdr := decodeHeader(out.Data)
	if hdr.magic != magicDelta {
		t.Fatalf("magic = %#x, want delta", hdr.magic)
	}

	decoded, err := DecompressVideo(&img, out)
	if err != nil {
		t.Fatalf("DecompressVideo: %v", err)
	}
	if !bytes.Equal(decoded.Buffer.Data, img.Buffer.Data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestCompressToBufferReusesCallerBuffer(t *testing.T) {
	img := ImageData{WidthPixels: 4, HeightPixels: 4, Channels: 1, BytesPerChannel: 1}
	img.Buffer = Buffer{Data: make([]byte, img.ByteCount())}
	fillRandom(img.Buffer.Data, 3)

	maxSize, err := MaximumBufferSize(img)
	if err != nil {
		t.Fatalf("MaximumBufferSize: %v", err)
	}

	out := Buffer{Data: make([]byte, maxSize)}
	if err := CompressToBuffer(img, &out, nil); err != nil {
		t.Fatalf("CompressToBuffer: %v", err)
	}

	decoded, err := Decompress(out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decoded.Buffer.Data, img.Buffer.Data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestCompressVideoRejectsGeometryMismatch(t *testing.T) {
	ref := ImageData{WidthPixels: 4, HeightPixels: 4, Channels: 1, BytesPerChannel: 1}
	ref.Buffer = Buffer{Data: make([]byte, ref.ByteCount())}

	target := ImageData{WidthPixels: 8, HeightPixels: 4, Channels: 1, BytesPerChannel: 1}
	target.Buffer = Buffer{Data: make([]byte, target.ByteCount())}

	var out Buffer
	_, err := CompressVideoToBuffer(&ref, target, &out, nil)
	if err != ErrGeometryMismatch {
		t.Fatalf("err = %v, want ErrGeometryMismatch", err)
	}
}

func TestDecompressVideoRejectsMissingReference(t *testing.T) {
	img := ImageData{WidthPixels: 2, HeightPixels: 2, Channels: 1, BytesPerChannel: 1}
	img.Buffer = Buffer{Data: make([]byte, img.ByteCount())}

	var out Buffer
	if _, err := CompressVideoToBuffer(&img, img, &out, nil); err != nil {
		t.Fatalf("CompressVideoToBuffer: %v", err)
	}

	if _, err := DecompressVideo(nil, out); err != ErrMissingReference {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
}

func TestCompressWithDictionaryContext(t *testing.T) {
	ctx := AllocateCompressionContext()
	defer ctx.Free()

	img := ImageData{WidthPixels: 16, HeightPixels: 16, Channels: 1, BytesPerChannel: 1}
	img.Buffer = Buffer{Data: make([]byte, img.ByteCount())}
	fillRandom(img.Buffer.Data, 123)

	out1, err := Compress(img, ctx)
	if err != nil {
		t.Fatalf("Compress (frame 0): %v", err)
	}
	if ctx.dict == nil {
		t.Fatalf("context should have trained a dictionary after the first frame")
	}

	img2 := ImageData{WidthPixels: 16, HeightPixels: 16, Channels: 1, BytesPerChannel: 1}
	img2.Buffer = Buffer{Data: make([]byte, img2.ByteCount())}
	fillRandom(img2.Buffer.Data, 124)

	out2, err := Compress(img2, ctx)
	if err != nil {
		t.Fatalf("Compress (frame 1): %v", err)
	}
	if len(out1.Data) == 0 || len(out2.Data) == 0 {
		t.Fatalf("dictionary-assisted compression produced empty output")
	}
}

// TestDictionaryTrainingExcludesEscapeTail exercises a fresh context whose
// very first trained frame is a delta frame with escaped bytes, so the
// payload handed to the entropy coder is longer than the frame's pure
// pixel byte count. The dictionary trainer must size its samples from the
// pixel byte count alone and never read into the escape tail.
func TestDictionaryTrainingExcludesEscapeTail(t *testing.T) {
	width, height, channels, bpc := 16, 16, 1, 1
	ref := ImageData{WidthPixels: width, HeightPixels: height, Channels: channels, BytesPerChannel: bpc}
	ref.Buffer = Buffer{Data: make([]byte, ref.ByteCount())}
	fillRandom(ref.Buffer.Data, 55)

	target := ImageData{WidthPixels: width, HeightPixels: height, Channels: channels, BytesPerChannel: bpc}
	targetBuf := make([]byte, target.ByteCount())
	copy(targetBuf, ref.Buffer.Data)
	for i := 0; i < 20; i++ {
		targetBuf[i] = ref.Buffer.Data[i] + 200
	}
	target.Buffer = Buffer{Data: targetBuf}

	ctx := AllocateCompressionContext()
	defer ctx.Free()

	var out Buffer
	overflow, err := CompressVideoToBuffer(&ref, target, &out, ctx)
	if err != nil {
		t.Fatalf("CompressVideoToBuffer: %v", err)
	}
	if overflow <= 0 {
		t.Fatalf("overflow = %d, want > 0 (escape path exercised)", overflow)
	}
	if ctx.dict == nil {
		t.Fatalf("context should have trained a dictionary on the first frame")
	}

	decoded, err := DecompressVideo(&ref, out)
	if err != nil {
		t.Fatalf("DecompressVideo: %v", err)
	}
	if !bytes.Equal(decoded.Buffer.Data, targetBuf) {
		t.Fatalf("round trip mismatch")
	}
}
