package zpng

import (
	"bytes"
	"testing"
)

func TestFilterBayerRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
	}{
		{"2x2", 2, 2},
		{"64x64", 64, 64},
		{"8x4", 8, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n := c.width * c.height
			src := make([]byte, n)
			for i := range src {
				src[i] = byte(i*31 + 5)
			}

			residual := make([]byte, n)
			filterBayerForward(src, c.width, c.height, residual)

			got := make([]byte, n)
			filterBayerInverse(residual, c.width, c.height, got)

			if !bytes.Equal(got, src) {
				t.Fatalf("round trip mismatch for %s", c.name)
			}
		})
	}
}

func TestBayerHintDispatch(t *testing.T) {
	width, height := 4, 4
	img := ImageData{
		WidthPixels:     width,
		HeightPixels:    height,
		Channels:        1,
		BytesPerChannel: 16, // Bayer hint: any value > 8
	}
	if !img.IsBayerHint() {
		t.Fatalf("BytesPerChannel=16 should be a Bayer hint")
	}
	if img.BytesPerPixel() != 1 {
		t.Fatalf("Bayer bytes-per-pixel = %d, want 1", img.BytesPerPixel())
	}

	src := make([]byte, img.ByteCount())
	for i := range src {
		src[i] = byte(i * 3)
	}
	img.Buffer = Buffer{Data: src}

	residual := make([]byte, img.ByteCount())
	dispatchIntraForward(img, residual)

	got := make([]byte, img.ByteCount())
	dispatchIntraInverse(layoutOf(img), width, height, residual, got)

	if !bytes.Equal(got, src) {
		t.Fatalf("Bayer-hint round trip mismatch")
	}
}
