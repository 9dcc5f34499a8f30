// Package riffopen provides the small, concrete entry points a caller
// actually reaches for: open a file on disk, open an in-memory buffer, or
// open a hand-rolled riffio.Source, each returning a ready-to-use
// *navigator.Handle.
package riffopen

import (
	"os"

	"github.com/pkg/errors"

	"github.com/ADM228/libriff-X/pkg/navigator"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// OpenFile opens the RIFF data starting at f's current position. The
// returned Handle takes no ownership of f: the caller must close it once
// done, after calling Handle.Free.
func OpenFile(f *os.File) (*navigator.Handle, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat riff source file")
	}

	cur, err := f.Seek(0, os.SEEK_CUR)
	if err != nil {
		return nil, errors.Wrap(err, "locating riff source file position")
	}

	size := info.Size() - cur
	if size < 0 {
		size = 0
	}

	src, err := riffio.NewFileSource(f, size)
	if err != nil {
		return nil, errors.Wrap(err, "opening riff source file")
	}

	h := navigator.Allocate()
	if err := h.Open(src, uint64(size)); err != nil {
		if codeErr, ok := err.(interface{ Critical() bool }); ok && codeErr.Critical() {
			h.Free()
			return nil, err
		}
		return h, err
	}
	return h, nil
}

// OpenFilePath opens the named file and reads it as a RIFF container from
// its first byte. The Handle owns the *os.File once this call succeeds and
// closes it on Free.
func OpenFilePath(name string) (*navigator.Handle, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening riff source file")
	}
	h, err := OpenFile(f)
	if h == nil {
		f.Close()
		return nil, err
	}
	h.SetCloser(f)
	return h, err
}
