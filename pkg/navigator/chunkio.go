package navigator

import (
	"go.uber.org/zap"

	"github.com/ADM228/libriff-X/format/riff"
)

// readChunkHeader reads the 8-byte header (id + size) of the chunk at the
// handle's current position, and cross-checks it against the enclosing
// list and file:
//   - ILLID if the id contains non-printable bytes
//   - ICSIZE if the chunk's declared end exceeds its list's end
//   - EOF if the chunk's declared end exceeds a known file size
//
// On success it leaves the handle positioned at AtChunkHeader for the new
// current chunk, with c_pos == 0.
func (h *Handle) readChunkHeader() error {
	var buf [riff.ChunkDataOffset]byte
	n := h.source.Read(buf[:])
	if n != riff.ChunkDataOffset {
		h.diag(riff.EOF, "short read of chunk header", zap.Int("bytes_read", n))
		return riff.EOF
	}

	hdr := riff.DecodeHeader(buf[:])

	h.cPosStart = h.pos
	h.pos += riff.ChunkDataOffset

	h.cID = hdr.ID
	h.cSize = hdr.Size
	h.pad = hdr.Pad()
	h.cPos = 0

	if !h.cID.Valid() {
		h.diag(riff.ILLID, "illegal chunk id", zap.String("id", h.cID.String()))
		return riff.ILLID
	}

	cposend := h.cPosStart + riff.ChunkDataOffset + h.cSize + h.pad
	listend := h.cl.end()
	if cposend > listend {
		h.diag(riff.ICSIZE, "chunk size exceeds list level", zap.Uint64("cposend", cposend), zap.Uint64("listend", listend))
		return riff.ICSIZE
	}

	if h.fileSize > 0 && cposend > h.fileSize {
		h.diag(riff.EOF, "chunk size exceeds file size", zap.Uint64("cposend", cposend), zap.Uint64("file_size", h.fileSize))
		return riff.EOF
	}

	return nil
}

// seekAbs moves the source's logical position and mirrors it into pos,
// without touching c_pos — callers update c_pos themselves since its
// relationship to pos differs across operations (chunk-relative vs
// list-relative seeks).
func (h *Handle) seekAbs(abs uint64) {
	h.source.Seek(int64(abs))
	h.pos = abs
}
