package riffio

import "os"

// FileSource wraps an *os.File already positioned at the start of the RIFF
// data (the data may be embedded inside a larger file — the file's position
// at construction time defines the logical zero of the stream).
// The caller retains ownership: FileSource never closes f.
type FileSource struct {
	f     *os.File
	base  int64
	size  int64
	known bool
}

// NewFileSource builds a Source over f, whose current offset becomes the
// logical zero. size is the known total length of the RIFF data (0 if
// unknown, which disables the stricter size cross-checks).
func NewFileSource(f *os.File, size int64) (*FileSource, error) {
	base, err := f.Seek(0, os.SEEK_CUR)
	if err != nil {
		return nil, err
	}
	return &FileSource{f: f, base: base, size: size, known: size > 0}, nil
}

func (s *FileSource) Read(dst []byte) int {
	n, err := s.f.Read(dst)
	if n < 0 {
		return 0
	}
	_ = err // short/zero reads signal EOF to the navigator, not an error value
	return n
}

func (s *FileSource) Seek(abs int64) int64 {
	// Errors here (e.g. a detached pipe) simply leave the file position
	// wherever the OS left it; the next Read will come up short and the
	// navigator reports riff.EOF, matching the "seek never fails" contract.
	_, _ = s.f.Seek(s.base+abs, os.SEEK_SET)
	return abs
}

func (s *FileSource) Size() int64 {
	if s.known {
		return s.size
	}
	return 0
}
