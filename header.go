package zpng

import "encoding/binary"

// HeaderSize is the fixed on-wire size of the container header.
const HeaderSize = 8

const (
	magicIntra uint16 = 0xFBF8
	magicDelta uint16 = 0xF8FB
)

// frameHeader is the 8-byte fixed container header. Multi-byte fields are
// written little-endian, pinning the "open question — header endianness"
// of the specification for cross-platform interoperability.
type frameHeader struct {
	magic           uint16
	width           uint16
	height          uint16
	channels        uint8
	bytesPerChannel uint8
}

func (h frameHeader) encode(dst []byte) {
	binary.LittleEndian.PutUint16(dst[0:2], h.magic)
	binary.LittleEndian.PutUint16(dst[2:4], h.width)
	binary.LittleEndian.PutUint16(dst[4:6], h.height)
	dst[6] = h.channels
	dst[7] = h.bytesPerChannel
}

func decodeHeader(src []byte) frameHeader {
	return frameHeader{
		magic:           binary.LittleEndian.Uint16(src[0:2]),
		width:           binary.LittleEndian.Uint16(src[2:4]),
		height:          binary.LittleEndian.Uint16(src[4:6]),
		channels:        src[6],
		bytesPerChannel: src[7],
	}
}
