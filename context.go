package zpng

import (
	"log"

	"github.com/klauspost/compress/zstd"
)

// Dictionary is an opaque handle owning a coder-trained dictionary. Its
// lifetime is bound to the CompressionContext session that trained it.
type Dictionary struct {
	raw []byte
}

// Free releases d. d must not be used afterwards.
func (d *Dictionary) Free() {
	if d == nil {
		return
	}
	d.raw = nil
}

// CompressionContext owns coder state for one encoder session: a
// dictionary slot (trained lazily on first use, per specification §4.7)
// and the zstd encoder bound to it. A context is not safe for concurrent
// use — see specification §5 — and is intended to be allocated once and
// reused across every frame of a session.
type CompressionContext struct {
	dict *Dictionary
	enc  *zstd.Encoder

	// Logger, if non-nil, receives optional diagnostic telemetry for
	// non-fallback overflow counts (specification §9's open question on
	// the original's diagnostic printf). Nil means silent, the default.
	Logger *log.Logger
}

// AllocateCompressionContext creates a new compression session.
func AllocateCompressionContext() *CompressionContext {
	return &CompressionContext{}
}

// Free releases ctx and any dictionary it owns. ctx must not be used
// afterwards.
func (ctx *CompressionContext) Free() {
	if ctx == nil {
		return
	}
	if ctx.enc != nil {
		ctx.enc.Close()
		ctx.enc = nil
	}
	ctx.dict = nil
}

// ensureDictEncoder lazily trains a dictionary from residual (if the
// context has none yet) and returns an encoder bound to it, per
// specification §4.7: trained once per session, reused for every
// subsequent frame. byteCount is the pure pixel byte count of the frame
// that triggered training (residual may carry extra inter-frame
// overflow-escape bytes past it, which must not feed the trainer).
func (ctx *CompressionContext) ensureDictEncoder(residual []byte, byteCount, height int) (*zstd.Encoder, error) {
	if ctx.dict == nil {
		dict, err := trainDictionary(residual, byteCount, height, coderLevel)
		if err != nil {
			return nil, err
		}
		ctx.dict = dict

		enc, err := newDictEncoder(dict.raw)
		if err != nil {
			return nil, err
		}
		ctx.enc = enc
	}
	return ctx.enc, nil
}
