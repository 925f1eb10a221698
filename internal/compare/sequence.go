package compare

import "framediff-go/internal/raster"

// Sequence is an ordered, fixed-length set of frames sharing one
// resolution. Frame sources normalize stray-sized images to the
// sequence resolution at load time so the invariant holds.
type Sequence struct {
	Frames []*raster.Frame
	Width  int
	Height int
}

func (s *Sequence) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}
