package navigator

import (
	"go.uber.org/zap"

	"github.com/ADM228/libriff-X/format/riff"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// Open installs source into h and reads the outer header and the first
// contained chunk's header. size is the known total
// length of the RIFF data, or 0 if unknown; it is cross-checked against the
// declared outer size once the BW64 ds64 override (if any) is applied.
//
// Open must be called exactly once on a freshly Allocate()d Handle. It is
// the shared implementation behind the file/mem/custom adapters in
// pkg/riffopen.
func (h *Handle) Open(source riffio.Source, size uint64) error {
	h.source = source
	h.fileSize = size
	h.pos = 0

	var buf [riff.HeaderSize]byte
	n := h.source.Read(buf[:])
	h.pos += uint64(n)
	if n != riff.HeaderSize {
		h.diag(riff.EOF, "short read of outer header", zap.Int("bytes_read", n))
		return riff.EOF
	}

	outerID := riff.ParseFourCC(buf[0:4])
	outerSize := uint64(riff.DecodeUint32LE(buf[4:8]))
	outerType := riff.ParseFourCC(buf[8:12])

	if !riff.IsOuterID(outerID) {
		h.diag(riff.ILLID, "invalid outer id", zap.String("id", outerID.String()))
		return riff.ILLID
	}

	// cl starts out as the outer chunk itself: pos_start is the logical
	// start of the source, depth 0 means "current list frame is the file".
	h.cl = listFrame{id: outerID, size: outerSize, typ: outerType, posStart: 0}
	h.level = 0
	h.stack = make([]listFrame, 0, initialStackCap)

	if err := h.readChunkHeader(); err != nil {
		return err
	}

	if riff.NeedsDS64Override(h.cl.size, h.cID) {
		var ds64 [8]byte
		got := h.readInChunkRaw(ds64[:])
		if got != 8 {
			h.diag(riff.ICSIZE, "ds64 chunk too small")
			return riff.ICSIZE
		}
		h.cl.size = riff.DecodeDS64Size(ds64[:])
	}

	h.opened = true

	if h.fileSize != 0 && h.fileSize != h.cl.size+riff.ChunkDataOffset {
		if h.fileSize >= h.cl.size+riff.ChunkDataOffset {
			h.diag(riff.EXDAT, "declared size smaller than source size", zap.Uint64("file_size", h.fileSize))
			return riff.EXDAT
		}
		h.diag(riff.EOF, "declared size larger than source size", zap.Uint64("file_size", h.fileSize))
		return riff.EOF
	}

	return nil
}

// readInChunkRaw is ReadInChunk without the opened precondition check, used
// internally by Open before h.opened is set (reading the ds64 override).
func (h *Handle) readInChunkRaw(dst []byte) int {
	left := h.cSize - h.cPos
	want := uint64(len(dst))
	if want > left {
		want = left
		dst = dst[:want]
	}
	n := h.source.Read(dst)
	h.pos += uint64(n)
	h.cPos += uint64(n)
	return n
}
