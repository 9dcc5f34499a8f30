package riffopen

import (
	"github.com/ADM228/libriff-X/pkg/navigator"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// OpenMem opens the RIFF data held in buf. buf is borrowed: the returned
// Handle never mutates or retains it past the calls made on it.
func OpenMem(buf []byte) (*navigator.Handle, error) {
	src := riffio.NewMemSource(buf)
	h := navigator.Allocate()
	if err := h.Open(src, uint64(len(buf))); err != nil {
		if codeErr, ok := err.(interface{ Critical() bool }); ok && codeErr.Critical() {
			h.Free()
			return nil, err
		}
		return h, err
	}
	return h, nil
}
