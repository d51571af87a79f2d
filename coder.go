package zpng

import (
	"github.com/klauspost/compress/zstd"
)

// coderLevel is the entropy coder's fixed compression level for this
// session. It is deliberately low: higher levels cost speed for
// negligible gain on these residuals, matching
// original_source/zpng.cpp's kCompressionLevel = 1.
const coderLevel = zstd.SpeedFastest

// newStatelessEncoder builds a one-shot encoder with no dictionary, used
// when the caller supplies no CompressionContext (specification §4.7:
// "Without a context, the encoder uses the coder's stateless compress at
// the same low level.").
func newStatelessEncoder() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil,
		zstd.WithEncoderLevel(coderLevel),
		zstd.WithEncoderConcurrency(1),
		zstd.WithLowerEncoderMem(true),
	)
}

func newStatelessDecoder() (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
}

// newDictEncoder builds an encoder bound to a raw content dictionary, for
// the dictionary-assisted path of specification §4.7.
func newDictEncoder(dict []byte) (*zstd.Encoder, error) {
	return zstd.NewWriter(nil,
		zstd.WithEncoderLevel(coderLevel),
		zstd.WithEncoderConcurrency(1),
		zstd.WithLowerEncoderMem(true),
		zstd.WithEncoderDictRaw(0, dict),
	)
}

// compressBound mirrors the growth formula of libzstd's ZSTD_compressBound
// (visible in original_source/zpng.cpp's ZPNG_MaximumBufferSize), since
// klauspost/compress/zstd exposes no bound function of its own.
func compressBound(n int) int {
	bound := n + (n >> 8) + 64
	if n < 128*1024 {
		bound += (128*1024 - n) >> 11
	}
	return bound
}

// coderCompress runs the stateless entropy-coder compress operation.
func coderCompress(data []byte) ([]byte, error) {
	enc, err := newStatelessEncoder()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// coderDecompress runs the stateless entropy-coder decompress operation.
// The public decode API (specification §6) takes no dictionary
// parameter, so this is the only decompress path this module exposes;
// see DESIGN.md for the inherited original_source limitation this
// mirrors (dictionary-compressed frames are not separately
// dictionary-decompressed).
func coderDecompress(data []byte, sizeHint int) ([]byte, error) {
	dec, err := newStatelessDecoder()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	dst := make([]byte, 0, sizeHint)
	return dec.DecodeAll(data, dst)
}

// dictTrainParams is the pass-through trainer configuration of
// specification §4.7, matching original_source/zpng.cpp's
// ZDICT_cover_params_t{32, 8, 0, 1, {L, 0, 0}} field-for-field. K and D
// describe the COVER segment/d-mer geometry a real trainer would use.
// The struct is accepted for interface fidelity with a future
// COVER-capable backend, but none of its fields is consumed by
// coderTrainDict below, since no Go library in this module's dependency
// set ports that algorithm (see DESIGN.md).
type dictTrainParams struct {
	K                int
	D                int
	Steps            int
	SplitPoint       int
	CompressionLevel int
}

// dictCapacity is the dictionary buffer capacity of specification §4.7.
const dictCapacity = 100_000

// coderTrainDict builds a raw content dictionary from sample slices of a
// filtered residual. Real ZDICT COVER training selects short, maximally
// representative segments across the samples; absent a ported trainer,
// this builds a deterministic substitute by concatenating the tail of
// each sample (the part nearest to what the encoder's match finder will
// see first) until the capacity budget is spent. This is a hand-rolled
// routine, not a third-party library, because no Go package in the
// ecosystem exposes libzstd's COVER/FastCover algorithm in pure Go.
func coderTrainDict(samples [][]byte, capacity int, _ dictTrainParams) []byte {
	if capacity <= 0 || len(samples) == 0 {
		return nil
	}

	dict := make([]byte, 0, capacity)
	perSample := capacity / len(samples)
	if perSample < 1 {
		perSample = 1
	}

	for _, s := range samples {
		if len(dict) >= capacity {
			break
		}
		take := perSample
		if take > len(s) {
			take = len(s)
		}
		tail := s[len(s)-take:]
		room := capacity - len(dict)
		if len(tail) > room {
			tail = tail[len(tail)-room:]
		}
		dict = append(dict, tail...)
	}

	return dict
}
