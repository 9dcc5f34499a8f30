package navigator

import "github.com/ADM228/libriff-X/format/riff"

// initialStackCap is the level stack's starting capacity; it doubles on
// overflow and never shrinks.
const initialStackCap = 16

// push moves the current list frame onto the stack and promotes child (the
// chunk being entered) to be the new current list frame, with subType as
// its freshly read sub-list type. Used by SeekLevelSub.
func (h *Handle) push(child listFrame, subType riff.FourCC) {
	if h.level >= cap(h.stack) {
		newCap := cap(h.stack) * 2
		if newCap == 0 {
			newCap = initialStackCap
		}
		grown := make([]listFrame, len(h.stack), newCap)
		copy(grown, h.stack)
		h.stack = grown
	}
	h.stack = append(h.stack[:h.level], h.cl)
	h.cl = listFrame{id: child.id, size: child.size, typ: subType, posStart: child.posStart}
	h.level++
}

// pop restores the top stack frame into the current list frame, and
// restores the "current chunk" view so it points back at the chunk the
// user stepped into — with c_pos recomputed from pos.
// Used by levelParent; no-op at depth 0.
func (h *Handle) pop() {
	if h.level <= 0 {
		return
	}
	h.level--
	parent := h.stack[h.level]

	h.cID = h.cl.id
	h.cSize = h.cl.size
	h.cPosStart = h.cl.posStart
	h.cl = parent

	h.pad = h.cSize & 1
	h.cPos = h.pos - h.cPosStart - riff.ChunkDataOffset
}
