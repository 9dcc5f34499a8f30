package navigator

import "github.com/ADM228/libriff-X/format/riff"

// ReadInChunk reads up to len(dst) bytes from the current chunk's data,
// clamped to the bytes remaining (c_size - c_pos), and advances pos/c_pos
// by the amount actually read. The pad byte is never visible here.
func (h *Handle) ReadInChunk(dst []byte) (int, error) {
	if err := h.checkOpened(); err != nil {
		return 0, err
	}
	return h.readInChunkRaw(dst), nil
}

// SeekInChunk moves to byte offset within the current chunk's data.
// Seeking to c_size is legal (the next read then returns 0).
func (h *Handle) SeekInChunk(offset uint64) error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	if offset > h.cSize {
		return riff.EOC
	}
	h.pos = h.cPosStart + riff.ChunkDataOffset + offset
	h.cPos = offset
	h.source.Seek(int64(h.pos))
	return nil
}

// SeekChunkStart positions at the current chunk's data offset 0.
func (h *Handle) SeekChunkStart() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	h.seekAbs(h.cPosStart + riff.ChunkDataOffset)
	h.cPos = 0
	return nil
}

// IsLastChunkInLevel reports whether the current chunk is the last one in
// its level, without mutating navigator state.
func (h *Handle) IsLastChunkInLevel() bool {
	if h.checkOpened() != nil {
		return false
	}
	next := h.cPosStart + riff.ChunkDataOffset + h.cSize + h.pad
	return next+riff.ChunkDataOffset > h.cl.end()
}

// SeekNextChunk seeks to and reads the header of the next sibling chunk in
// the current level. Returns EOCL if there is no more room for another
// header, or EXDAT if 1-7 stray trailing bytes remain (a badly padded
// list, non-fatal).
func (h *Handle) SeekNextChunk() error {
	if err := h.checkOpened(); err != nil {
		return err
	}

	next := h.cPosStart + riff.ChunkDataOffset + h.cSize + h.pad
	listend := h.cl.end()

	if listend < next+riff.ChunkDataOffset {
		if listend > next {
			h.diag(riff.EXDAT, "excess bytes at end of chunk list")
			return riff.EXDAT
		}
		return riff.EOCL
	}

	h.seekAbs(next)
	h.cPos = 0
	return h.readChunkHeader()
}

// SeekLevelStart positions at the first chunk of the current level (after
// its 4-byte type id) and reads its header.
func (h *Handle) SeekLevelStart() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	h.seekAbs(h.cl.posStart + riff.ChunkDataOffset + 4)
	h.cPos = 0
	return h.readChunkHeader()
}

// Rewind pops the level stack down to depth 0, then seeks to the start of
// the outer level.
func (h *Handle) Rewind() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	for h.level > 0 {
		h.pop()
	}
	h.counter.reset()
	return h.SeekLevelStart()
}

// CanBeChunkList reports whether the current chunk's id permits it to
// contain a nested sub-list (RIFF, LIST, or BW64 when enabled).
func (h *Handle) CanBeChunkList() bool {
	if h.checkOpened() != nil {
		return false
	}
	return h.cID.IsListType()
}

// SeekLevelSub steps into the current chunk's sub-list: legal only when
// CanBeChunkList is true and the chunk is at least 4 bytes (room for the
// sub-list's type id). Pushes the current list frame onto the stack and
// reads the first contained chunk's header.
func (h *Handle) SeekLevelSub() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	if !h.cID.IsListType() {
		h.diag(riff.ILLID, "chunk id cannot contain sublevel chunks")
		return riff.ILLID
	}
	if h.cSize < 4 {
		h.diag(riff.ICSIZE, "chunk too small to contain sublevel chunks")
		return riff.ICSIZE
	}

	if h.cPos > 0 {
		h.seekAbs(h.cPosStart + riff.ChunkDataOffset)
		h.cPos = 0
	}

	var typeBuf [4]byte
	n := h.source.Read(typeBuf[:])
	h.pos += uint64(n)
	subType := riff.ParseFourCC(typeBuf[:])
	if !subType.Valid() {
		h.diag(riff.ILLID, "illegal sublevel type id")
		return riff.ILLID
	}

	child := listFrame{id: h.cID, size: h.cSize, posStart: h.cPosStart}
	h.push(child, subType)
	h.counter.reset()

	return h.readChunkHeader()
}

// LevelParent steps back out of the current sub-list without changing the
// source position — the caller is left notionally inside the parent
// chunk's data, past the sub-list it just exited. At depth 0 this is a
// non-critical "already at top" condition, reported as EOCL since there is
// nowhere further out to go.
func (h *Handle) LevelParent() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	if h.level <= 0 {
		return riff.EOCL
	}
	h.pop()
	h.counter.reset()
	return nil
}

// SeekLevelParentStart is LevelParent followed by SeekChunkStart.
func (h *Handle) SeekLevelParentStart() error {
	if err := h.LevelParent(); err != nil {
		return err
	}
	return h.SeekChunkStart()
}

// SeekLevelParentNext is LevelParent followed by SeekNextChunk.
func (h *Handle) SeekLevelParentNext() error {
	if err := h.LevelParent(); err != nil {
		return err
	}
	return h.SeekNextChunk()
}
