package navigator

import (
	"fmt"

	"github.com/goburrow/cache"

	"github.com/ADM228/libriff-X/format/riff"
)

// countKey identifies a memoized count: the level being walked (by its
// list frame's absolute start, which is stable for the handle's lifetime)
// and the id filter (the zero FourCC means "count every chunk").
type countKey struct {
	levelStart uint64
	id         riff.FourCC
}

// counter memoizes CountChunksInLevelWithId per (level, id), the way the
// teacher's qcow2 reader memoizes L1/L2 tables per on-disk offset
// — a repeated count of the same level doesn't re-walk
// it. The cache is scoped to one Handle and reset whenever the handle
// steps into a different level, so staleness cannot leak across handles or
// across a handle's own level changes.
type counter struct {
	h *Handle
	c cache.LoadingCache
}

func (c *counter) init(h *Handle) {
	c.h = h
	c.c = cache.NewLoadingCache(c.load, cache.WithMaximumSize(256))
}

func (c *counter) reset() {
	if c.c != nil {
		c.c.InvalidateAll()
	}
	if c.h != nil {
		c.h.lastErr = nil
	}
}

// countResult is what the cache actually stores: the tally plus whatever
// non-fatal condition (EXDAT) the walk that produced it ended on, so a
// cache hit can still surface that condition to the caller exactly as a
// fresh walk would.
type countResult struct {
	count int64
	warn  error
}

func (c *counter) load(key cache.Key) (cache.Value, error) {
	k := key.(countKey)
	h := c.h
	n, warn := h.countChunksInLevelUncached(k.id, k.id != riff.FourCC{})
	if warn != nil && n < 0 {
		return nil, warn
	}
	return countResult{count: n, warn: warn}, nil
}

// CountChunksInLevel counts every chunk in the current level. On any
// critical error it returns -1; EXDAT is non-fatal and the count is still
// returned.
func (h *Handle) CountChunksInLevel() (int64, error) {
	if err := h.checkOpened(); err != nil {
		return -1, err
	}
	return h.countWithCache(riff.FourCC{}, false)
}

// CountChunksInLevelWithId counts chunks in the current level whose id
// matches id.
func (h *Handle) CountChunksInLevelWithId(id riff.FourCC) (int64, error) {
	if err := h.checkOpened(); err != nil {
		return -1, err
	}
	return h.countWithCache(id, true)
}

func (h *Handle) countWithCache(id riff.FourCC, filtered bool) (int64, error) {
	key := countKey{levelStart: h.cl.posStart}
	if filtered {
		key.id = id
	}
	v, err := h.counter.c.Get(key)
	if err != nil {
		h.lastErr = err
		return -1, err
	}
	res, ok := v.(countResult)
	if !ok {
		return -1, fmt.Errorf("navigator: unexpected cache value type %T", v)
	}
	h.lastErr = res.warn
	return res.count, nil
}

// countChunksInLevelUncached performs the actual level walk backing both
// counting operations; it is the loader behind the memoizing cache.
func (h *Handle) countChunksInLevelUncached(id riff.FourCC, filtered bool) (int64, error) {
	var counter int64
	var warn error

	if err := h.SeekLevelStart(); err != nil {
		return -1, err
	}
	for {
		if !filtered || h.cID == id {
			counter++
		}
		err := h.SeekNextChunk()
		if err == nil {
			continue
		}
		if err == riff.EOCL {
			break
		}
		if err == riff.EXDAT {
			warn = err
			break
		}
		return -1, err
	}
	return counter, warn
}
