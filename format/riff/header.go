package riff

import "encoding/binary"

const (
	// HeaderSize is the size in bytes of the outer RIFF/BW64 header:
	// 4-byte id, 4-byte little-endian size, 4-byte type.
	HeaderSize = 12
	// ChunkDataOffset is the size of a chunk header (id + size) — the
	// offset of a chunk's data relative to the start of the chunk.
	ChunkDataOffset = 8
	// unknownSize32 is the sentinel outer size (0xFFFFFFFF) that signals a
	// BW64 ds64 override is expected to follow.
	unknownSize32 = 0xFFFFFFFF
)

// DecodeUint32LE decodes a little-endian u32 from the first 4 bytes of b.
func DecodeUint32LE(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b[:4])
}

// Header is a decoded chunk header: id + declared size. It does not carry
// list-type, since only list chunks (RIFF/LIST/BW64) have one and it lives
// past the header in the chunk's own data.
type Header struct {
	ID   FourCC
	Size uint64
}

// Pad reports whether a chunk of this size carries a trailing pad byte.
func (h Header) Pad() uint64 {
	return h.Size & 1
}

// DecodeHeader decodes an 8-byte chunk header (id + little-endian u32
// size) from buf. buf must be at least 8 bytes; callers read exactly 8
// bytes before calling this.
func DecodeHeader(buf []byte) Header {
	return Header{
		ID:   ParseFourCC(buf[:4]),
		Size: uint64(DecodeUint32LE(buf[4:8])),
	}
}

// IsOuterID reports whether id is a valid outer-container id: "RIFF"
// always, "BW64" only when 64-bit sizes are enabled at build time.
func IsOuterID(id FourCC) bool {
	if id == IDRiff {
		return true
	}
	return BW64Enabled && id == IDBW64
}

// NeedsDS64Override reports whether an outer header with the given
// declared size and first-child id signals a BW64 ds64 size override:
// the declared size is the 32-bit sentinel and the first child is "ds64".
func NeedsDS64Override(outerSize uint64, firstChildID FourCC) bool {
	return BW64Enabled && outerSize == unknownSize32 && firstChildID == IDds64
}

// DecodeDS64Size combines the first 8 bytes of a ds64 chunk's data (low
// 32 bits LE, then high 32 bits LE) into the true 64-bit list size.
func DecodeDS64Size(data []byte) uint64 {
	low := uint64(DecodeUint32LE(data[0:4]))
	high := uint64(DecodeUint32LE(data[4:8]))
	return low | (high << 32)
}
