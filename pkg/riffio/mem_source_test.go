package riffio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemSourceReadSeek(t *testing.T) {
	buf := []byte("0123456789")
	s := NewMemSource(buf)
	require.Equal(t, int64(10), s.Size())

	dst := make([]byte, 4)
	n := s.Read(dst)
	require.Equal(t, 4, n)
	require.Equal(t, "0123", string(dst))

	s.Seek(8)
	n = s.Read(dst)
	require.Equal(t, 2, n)
	require.Equal(t, "89", string(dst[:n]))

	n = s.Read(dst)
	require.Equal(t, 0, n)
}

func TestMemSourceSeekPastEnd(t *testing.T) {
	s := NewMemSource([]byte("abc"))
	s.Seek(100)
	dst := make([]byte, 4)
	require.Equal(t, 0, s.Read(dst))
}
