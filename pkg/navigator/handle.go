// Package navigator implements the RIFF/BW64 navigation engine: the state
// machine that maintains "current chunk" and a stack of enclosing list
// chunks, and translates every user operation into bounded reads and seeks
// against a riffio.Source.
package navigator

import (
	"io"

	"go.uber.org/zap"

	"github.com/ADM228/libriff-X/format/riff"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// listFrame is a stack entry recording an enclosing list chunk, so the
// navigator can recompute its end boundary after stepping back out
// (pos_start + 8 + size). It is also used, held "hot", as the handle's
// current list frame.
type listFrame struct {
	id       riff.FourCC
	size     uint64
	typ      riff.FourCC
	posStart uint64
}

// end returns the absolute byte position one past the end of this frame's
// declared data (its header's data-offset plus its declared size).
func (f listFrame) end() uint64 {
	return f.posStart + riff.ChunkDataOffset + f.size
}

// Handle is the single live navigator object: current position, current
// list frame, current chunk, and the level stack. It is single-owner,
// single-threaded — a Handle must be used by one logical
// caller at a time, and its byte source is borrowed, never closed or freed
// by the navigator (Free closes only a closer installed via SetCloser).
type Handle struct {
	source   riffio.Source
	fileSize uint64 // 0 = unknown
	opened   bool

	pos uint64

	cl listFrame // current list frame

	cID       riff.FourCC
	cSize     uint64
	cPosStart uint64
	cPos      uint64
	pad       uint64

	stack []listFrame // depth 0..level-1; does not include cl
	level int

	log *zap.Logger

	counter counter

	lastErr error // trailing non-fatal condition from the most recent count

	closer io.Closer // set by adapters (e.g. riffopen) that own the source
}

// Allocate returns a freshly initialized, unopened Handle with diagnostic
// logging disabled (a no-op logger).
func Allocate() *Handle {
	h := &Handle{log: zap.NewNop()}
	h.counter.init(h)
	return h
}

// Free releases the level stack and detaches the borrowed source. By
// default it never closes the source — the caller retains ownership
// — unless an owning adapter installed a closer via
// SetCloser, in which case Free closes it too. Free is safe to call
// multiple times and balances every Open call, including on error paths,
// pairing with Allocate the way a resource's open/close pair should.
func (h *Handle) Free() error {
	var err error
	if h.closer != nil {
		err = h.closer.Close()
		h.closer = nil
	}
	h.source = nil
	h.stack = nil
	h.level = 0
	h.opened = false
	h.counter.reset()
	return err
}

// SetCloser installs c as the resource Free closes alongside detaching the
// source. Adapters that open their own file (riffopen.OpenFilePath) use
// this so callers don't have to track the underlying *os.File separately.
func (h *Handle) SetCloser(c io.Closer) {
	h.closer = c
}

// SetLogger installs l as the diagnostic sink invoked for critical errors
// and for EXDAT. Passing nil reinstalls the no-op sink, silencing
// diagnostics entirely — this logger is the caller-replaceable diagnostic
// seam, not a raw printf.
func (h *Handle) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	h.log = l
}

func (h *Handle) diag(code riff.Code, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Int("code", int(code)), zap.Uint64("pos", h.pos))
	if code.Critical() {
		h.log.Error(msg, fields...)
	} else {
		h.log.Warn(msg, fields...)
	}
}

// checkOpened is the INVALID_HANDLE precondition check every entry point
// performs first: it returns InvalidHandle for a nil *Handle and for a
// Handle on which Open has not yet been run.
func (h *Handle) checkOpened() error {
	if h == nil || !h.opened {
		return riff.InvalidHandle
	}
	return nil
}

// LastError returns the trailing non-fatal condition (currently only
// riff.EXDAT) left behind by the most recent CountChunksInLevel or
// CountChunksInLevelWithId call, or nil if that walk ran clean to EOCL.
// A cache hit reports the same condition the original walk ended on.
// SeekLevelSub, LevelParent, Rewind and Free clear it back to nil.
func (h *Handle) LastError() error {
	return h.lastErr
}

// FileSize returns the total source size recorded at open time, or 0 if
// unknown.
func (h *Handle) FileSize() uint64 { return h.fileSize }

// Pos returns the current absolute byte position in the source.
func (h *Handle) Pos() uint64 { return h.pos }

// CurrentChunkID returns the id of the chunk the handle is positioned at.
func (h *Handle) CurrentChunkID() riff.FourCC { return h.cID }

// CurrentChunkSize returns the declared size of the current chunk.
func (h *Handle) CurrentChunkSize() uint64 { return h.cSize }

// CurrentChunkPos returns the offset into the current chunk's data.
func (h *Handle) CurrentChunkPos() uint64 { return h.cPos }

// CurrentChunkStart returns the absolute position of the current chunk's
// header.
func (h *Handle) CurrentChunkStart() uint64 { return h.cPosStart }

// CurrentListID returns the id of the list chunk enclosing the current
// chunk ("RIFF", "LIST" or "BW64").
func (h *Handle) CurrentListID() riff.FourCC { return h.cl.id }

// CurrentListType returns the type FourCC of the enclosing list chunk.
func (h *Handle) CurrentListType() riff.FourCC { return h.cl.typ }

// CurrentListSize returns the declared size of the enclosing list chunk.
func (h *Handle) CurrentListSize() uint64 { return h.cl.size }

// CurrentListStart returns the absolute position of the enclosing list
// chunk's header.
func (h *Handle) CurrentListStart() uint64 { return h.cl.posStart }

// Level returns the current stack depth; 0 means the current list frame is
// the file's outer RIFF/BW64 chunk.
func (h *Handle) Level() int { return h.level }

// LevelStackEntry describes one frame of the level stack, returned by
// GetLevelStackEntry for introspection.
type LevelStackEntry struct {
	ID       riff.FourCC
	Type     riff.FourCC
	Size     uint64
	PosStart uint64
}

// GetLevelStackEntry returns the stack entry for the given level, including
// the current level (level == h.Level()). It returns false if level is out
// of range.
func (h *Handle) GetLevelStackEntry(level int) (LevelStackEntry, bool) {
	if level < 0 || level > h.level {
		return LevelStackEntry{}, false
	}
	var f listFrame
	if level == h.level {
		f = h.cl
	} else {
		f = h.stack[level]
	}
	return LevelStackEntry{ID: f.id, Type: f.typ, Size: f.size, PosStart: f.posStart}, true
}
