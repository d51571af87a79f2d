package zpng

import "errors"

// Error kinds observable by callers, matching the error table of the
// specification. Encoders return these alongside a zero Buffer; decoders
// return these alongside a zero ImageData.
var (
	// ErrUnsupportedGeometry is returned when bytes_per_pixel exceeds 8
	// for a non-Bayer frame.
	ErrUnsupportedGeometry = errors.New("zpng: unsupported pixel geometry")

	// ErrAllocationFailure is returned when the input frame's Buffer is not
	// exactly ByteCount() bytes, so the residual scratch cannot be sized
	// from the declared geometry.
	ErrAllocationFailure = errors.New("zpng: allocation failure")

	// ErrCoderError is returned when the entropy coder reports an error
	// on compress or decompress.
	ErrCoderError = errors.New("zpng: entropy coder error")

	// ErrInsufficientOutput is returned when a caller-supplied output
	// buffer is smaller than MaximumBufferSize.
	ErrInsufficientOutput = errors.New("zpng: output buffer too small")

	// ErrBadMagic is returned when a header's magic matches neither the
	// intra nor the delta constant.
	ErrBadMagic = errors.New("zpng: bad container magic")

	// ErrMissingReference is returned when a decoder sees a delta magic
	// but the caller supplied no reference frame.
	ErrMissingReference = errors.New("zpng: delta frame requires a reference")

	// ErrTruncatedInput is returned when the input is shorter than the
	// container header.
	ErrTruncatedInput = errors.New("zpng: truncated input")

	// ErrGeometryMismatch is returned when a reference frame's geometry
	// does not match the target frame's geometry.
	ErrGeometryMismatch = errors.New("zpng: reference geometry mismatch")
)
