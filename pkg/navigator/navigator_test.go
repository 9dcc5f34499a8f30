package navigator

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ADM228/libriff-X/format/riff"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// chunkBuilder assembles a RIFF-family buffer one chunk at a time, padding
// odd-sized chunks the way the wire format requires.
type chunkBuilder struct {
	buf []byte
}

func (b *chunkBuilder) bytes() []byte { return b.buf }

func (b *chunkBuilder) writeChunk(id string, data []byte) {
	var hdr [8]byte
	copy(hdr[:4], id)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(data)))
	b.buf = append(b.buf, hdr[:]...)
	b.buf = append(b.buf, data...)
	if len(data)%2 == 1 {
		b.buf = append(b.buf, 0)
	}
}

func (b *chunkBuilder) writeList(id, typ string, body func(*chunkBuilder)) {
	inner := &chunkBuilder{}
	inner.buf = append(inner.buf, []byte(typ)...)
	body(inner)

	var hdr [8]byte
	copy(hdr[:4], id)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(inner.buf)))
	b.buf = append(b.buf, hdr[:]...)
	b.buf = append(b.buf, inner.buf...)
	if len(inner.buf)%2 == 1 {
		b.buf = append(b.buf, 0)
	}
}

// buildSimpleFile builds a flat "RIFF"/"TEST" container with two data
// chunks, the second carrying an odd size (exercising the pad byte).
func buildSimpleFile() []byte {
	b := &chunkBuilder{}
	b.writeList("RIFF", "TEST", func(inner *chunkBuilder) {
		inner.writeChunk("ck1 ", []byte{1, 2, 3, 4})
		inner.writeChunk("ck2 ", []byte{5, 6, 7})
	})
	return b.bytes()
}

// buildNestedFile builds a container with a nested LIST between two
// top-level chunks.
func buildNestedFile() []byte {
	b := &chunkBuilder{}
	b.writeList("RIFF", "TEST", func(inner *chunkBuilder) {
		inner.writeChunk("ck1 ", []byte{1, 2, 3, 4})
		inner.writeList("LIST", "subt", func(sub *chunkBuilder) {
			sub.writeChunk("cka ", []byte{9})
			sub.writeChunk("ckb ", []byte{8, 7})
		})
		inner.writeChunk("ck2 ", []byte{5, 6})
	})
	return b.bytes()
}

func openBytes(t *testing.T, buf []byte, size uint64) *Handle {
	t.Helper()
	h := Allocate()
	err := h.Open(riffio.NewMemSource(buf), size)
	require.NoError(t, err)
	return h
}

func TestOpenSimpleFile(t *testing.T) {
	buf := buildSimpleFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	require.Equal(t, riff.IDRiff, h.CurrentListID())
	require.Equal(t, riff.FourCC{'T', 'E', 'S', 'T'}, h.CurrentListType())
	require.Equal(t, riff.FourCC{'c', 'k', '1', ' '}, h.CurrentChunkID())
	require.Equal(t, uint64(4), h.CurrentChunkSize())

	data := make([]byte, 4)
	n, err := h.ReadInChunk(data)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte{1, 2, 3, 4}, data)

	require.NoError(t, h.SeekNextChunk())
	require.Equal(t, riff.FourCC{'c', 'k', '2', ' '}, h.CurrentChunkID())
	require.Equal(t, uint64(3), h.CurrentChunkSize())

	require.True(t, h.IsLastChunkInLevel())
	require.Equal(t, riff.EOCL, h.SeekNextChunk())
}

func TestSeekInChunkAndChunkStart(t *testing.T) {
	buf := buildSimpleFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	require.NoError(t, h.SeekInChunk(2))
	data := make([]byte, 2)
	n, err := h.ReadInChunk(data)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{3, 4}, data)

	require.NoError(t, h.SeekChunkStart())
	n, err = h.ReadInChunk(data)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte{1, 2}, data)

	require.Equal(t, riff.EOC, h.SeekInChunk(5))
}

func TestNestedLevels(t *testing.T) {
	buf := buildNestedFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	require.Equal(t, riff.FourCC{'c', 'k', '1', ' '}, h.CurrentChunkID())
	require.NoError(t, h.SeekNextChunk()) // LIST subt
	require.Equal(t, riff.IDList, h.CurrentChunkID())
	require.True(t, h.CanBeChunkList())
	require.Equal(t, 0, h.Level())

	require.NoError(t, h.SeekLevelSub())
	require.Equal(t, 1, h.Level())
	require.Equal(t, riff.FourCC{'s', 'u', 'b', 't'}, h.CurrentListType())

	require.NoError(t, h.SeekLevelStart())
	require.Equal(t, riff.FourCC{'c', 'k', 'a', ' '}, h.CurrentChunkID())
	require.NoError(t, h.SeekNextChunk())
	require.Equal(t, riff.FourCC{'c', 'k', 'b', ' '}, h.CurrentChunkID())
	require.Equal(t, riff.EOCL, h.SeekNextChunk())

	require.NoError(t, h.SeekLevelParentNext())
	require.Equal(t, 0, h.Level())
	require.Equal(t, riff.FourCC{'c', 'k', '2', ' '}, h.CurrentChunkID())
	require.Equal(t, riff.EOCL, h.SeekNextChunk())
}

func TestLevelParentAtTopIsEOCL(t *testing.T) {
	buf := buildSimpleFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	require.Equal(t, riff.EOCL, h.LevelParent())
}

func TestRewind(t *testing.T) {
	buf := buildNestedFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	require.Equal(t, riff.FourCC{'c', 'k', '1', ' '}, h.CurrentChunkID())
	require.NoError(t, h.SeekNextChunk())
	require.NoError(t, h.SeekLevelSub())
	require.Equal(t, 1, h.Level())

	require.NoError(t, h.Rewind())
	require.Equal(t, 0, h.Level())
	require.Equal(t, riff.FourCC{'c', 'k', '1', ' '}, h.CurrentChunkID())
}

func TestIllegalID(t *testing.T) {
	buf := buildSimpleFile()
	buf[12] = 0x01 // corrupt the first chunk's id (non-printable byte)
	h := Allocate()
	err := h.Open(riffio.NewMemSource(buf), uint64(len(buf)))
	require.Equal(t, riff.ILLID, err)
}

func TestChunkSizeExceedsList(t *testing.T) {
	buf := buildSimpleFile()
	binary.LittleEndian.PutUint32(buf[16:20], 0xFFFF) // ck1's declared size now huge
	h := Allocate()
	err := h.Open(riffio.NewMemSource(buf), uint64(len(buf)))
	require.Equal(t, riff.ICSIZE, err)
}

func TestFileValidateSucceeds(t *testing.T) {
	buf := buildNestedFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()
	require.NoError(t, h.FileValidate())
}

func TestLevelValidateSucceeds(t *testing.T) {
	buf := buildSimpleFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()
	require.NoError(t, h.LevelValidate())
}

func TestExcessTrailingBytesIsNonFatal(t *testing.T) {
	buf := buildSimpleFile()
	// Widen the outer declared size so the list frame includes 3 stray
	// bytes after the last chunk, without another full header fitting.
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(buf)-8+3))
	buf = append(buf, 0, 0, 0)

	h := Allocate()
	err := h.Open(riffio.NewMemSource(buf), uint64(len(buf)))
	require.NoError(t, err)
	defer h.Free()

	require.NoError(t, h.SeekNextChunk()) // ck2
	require.Equal(t, riff.EXDAT, h.SeekNextChunk())
}

func TestGetLevelStackEntry(t *testing.T) {
	buf := buildNestedFile()
	h := openBytes(t, buf, uint64(len(buf)))
	defer h.Free()

	entry, ok := h.GetLevelStackEntry(0)
	require.True(t, ok)
	require.Equal(t, riff.IDRiff, entry.ID)

	_, ok = h.GetLevelStackEntry(5)
	require.False(t, ok)
}

func TestUnopenedHandleReturnsInvalidHandle(t *testing.T) {
	h := Allocate()
	_, err := h.ReadInChunk(make([]byte, 1))
	require.Equal(t, riff.InvalidHandle, err)
}
