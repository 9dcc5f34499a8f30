package navigator

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ADM228/libriff-X/format/riff"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// countingSource wraps a Source and tallies Read calls, so tests can prove
// a cache hit doesn't re-walk the underlying bytes.
type countingSource struct {
	riffio.Source
	reads int
}

func (s *countingSource) Read(dst []byte) int {
	s.reads++
	return s.Source.Read(dst)
}

func buildCountingFile() []byte {
	b := &chunkBuilder{}
	b.writeList("RIFF", "TEST", func(inner *chunkBuilder) {
		inner.writeChunk("ck1 ", []byte{1})
		inner.writeChunk("ck2 ", []byte{2})
		inner.writeChunk("ck1 ", []byte{3})
	})
	return b.bytes()
}

func TestCountChunksInLevel(t *testing.T) {
	buf := buildCountingFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	n, err := h.CountChunksInLevel()
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestCountChunksInLevelWithId(t *testing.T) {
	buf := buildCountingFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	n, err := h.CountChunksInLevelWithId(riff.FourCC{'c', 'k', '1', ' '})
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	n, err = h.CountChunksInLevelWithId(riff.FourCC{'c', 'k', '2', ' '})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestCountCacheAvoidsRewalk(t *testing.T) {
	buf := buildCountingFile()
	cs := &countingSource{Source: riffio.NewMemSource(buf)}
	h := Allocate()
	require.NoError(t, h.Open(cs, uint64(len(buf))))
	defer h.Free()

	n1, err := h.CountChunksInLevel()
	require.NoError(t, err)
	readsAfterFirst := cs.reads

	n2, err := h.CountChunksInLevel()
	require.NoError(t, err)

	require.Equal(t, n1, n2)
	require.Equal(t, readsAfterFirst, cs.reads, "second count should be served from cache without re-reading the source")
}

func TestCountLastErrorOnTrailingExdat(t *testing.T) {
	buf := buildSimpleFile()
	// Widen the outer declared size so the level includes 3 stray bytes
	// after the last chunk, the same non-fatal excess-bytes condition
	// exercised in navigator_test.go.
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf)-8+3))
	buf = append(buf, 0, 0, 0)

	h := Allocate()
	require.NoError(t, h.Open(riffio.NewMemSource(buf), uint64(len(buf))))
	defer h.Free()

	require.Nil(t, h.LastError())

	n, err := h.CountChunksInLevel()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, riff.EXDAT, h.LastError())

	// A cache hit must still surface the same trailing condition.
	n2, err := h.CountChunksInLevel()
	require.NoError(t, err)
	require.Equal(t, n, n2)
	require.Equal(t, riff.EXDAT, h.LastError())
}

func TestCountLastErrorClearedByCleanWalk(t *testing.T) {
	buf := buildCountingFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	_, err := h.CountChunksInLevel()
	require.NoError(t, err)
	require.Nil(t, h.LastError(), "a walk that reaches EOCL cleanly must not leave a stale warning")
}

func TestCountCacheResetsOnRewind(t *testing.T) {
	buf := buildCountingFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	_, err := h.CountChunksInLevel()
	require.NoError(t, err)

	require.NoError(t, h.Rewind())

	n, err := h.CountChunksInLevel()
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}
