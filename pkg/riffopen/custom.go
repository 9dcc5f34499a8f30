package riffopen

import (
	"github.com/ADM228/libriff-X/pkg/navigator"
	"github.com/ADM228/libriff-X/pkg/riffio"
)

// OpenCustom opens RIFF data from a caller-supplied Source, for any byte
// origin that isn't a plain file or in-memory buffer (a network stream
// wrapper, a decompressing reader, etc.). size is the known total length,
// or 0 if unknown.
func OpenCustom(src riffio.Source, size uint64) (*navigator.Handle, error) {
	h := navigator.Allocate()
	if err := h.Open(src, size); err != nil {
		if codeErr, ok := err.(interface{ Critical() bool }); ok && codeErr.Critical() {
			h.Free()
			return nil, err
		}
		return h, err
	}
	return h, nil
}
