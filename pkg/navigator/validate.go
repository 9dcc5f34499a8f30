package navigator

import "github.com/ADM228/libriff-X/format/riff"

// LevelValidate walks the current level from its first chunk to the last,
// header to header, surfacing the first critical error.
// EOCL at the end of the level is success, not an error.
func (h *Handle) LevelValidate() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	if err := h.SeekLevelStart(); err != nil {
		return err
	}
	for {
		err := h.SeekNextChunk()
		if err == nil {
			continue
		}
		if err == riff.EOCL {
			return nil
		}
		return err
	}
}

// FileValidate rewinds to the start of the file, then recursively
// descends: at every chunk whose id permits a sub-list, it steps in,
// recurses, and steps back out. Returns the first critical error
// encountered.
func (h *Handle) FileValidate() error {
	if err := h.checkOpened(); err != nil {
		return err
	}
	if err := h.Rewind(); err != nil {
		return err
	}
	return h.recursiveLevelValidate()
}

func (h *Handle) recursiveLevelValidate() error {
	for {
		if h.cID.IsListType() {
			if err := h.SeekLevelSub(); err != nil {
				return err
			}
			if err := h.recursiveLevelValidate(); err != nil {
				return err
			}
		}
		err := h.SeekNextChunk()
		if err != nil {
			if err == riff.EOCL {
				if h.level > 0 {
					return h.LevelParent()
				}
				return nil
			}
			return err
		}
	}
}
