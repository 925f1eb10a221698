package raster

// Scratch is a reusable frame buffer tagged by its current shape. It
// reallocates only when the requested shape differs from the current
// one; otherwise the existing storage is reused. One Scratch must not
// be shared across concurrently rendering panels.
type Scratch struct {
	frame Frame
}

// Ensure returns a frame of the given shape with every pixel zeroed.
// Pixels outside a later partial fill must read as black, never as
// stale data from a previous call.
func (s *Scratch) Ensure(width, height int) *Frame {
	f := s.Reserve(width, height)
	clear(f.Pix)
	return f
}

// Reserve returns a frame of the given shape without clearing it, for
// callers that overwrite every pixel.
func (s *Scratch) Reserve(width, height int) *Frame {
	if s.frame.Pix == nil || s.frame.Width != width || s.frame.Height != height {
		s.frame = Frame{
			Pix:    make([]uint8, width*height*3),
			Width:  width,
			Height: height,
		}
	}
	return &s.frame
}
