package raster

import "cmp"

// Frame is a row-major, contiguous 8-bit RGB raster. Stride is always
// Width*3 bytes; there is no padding between rows.
type Frame struct {
	Pix    []uint8
	Width  int
	Height int
}

func New(width, height int) *Frame {
	return &Frame{
		Pix:    make([]uint8, width*height*3),
		Width:  width,
		Height: height,
	}
}

func (f *Frame) Stride() int {
	return f.Width * 3
}

// At reads the pixel at (x, y). Callers on the hot path index Pix
// directly; At exists for probes and tests and does not bounds-check.
func (f *Frame) At(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

func (f *Frame) Set(x, y int, r, g, b uint8) {
	i := (y*f.Width + x) * 3
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

func (f *Frame) Clone() *Frame {
	out := New(f.Width, f.Height)
	copy(out.Pix, f.Pix)
	return out
}

// Fill sets every pixel to one color.
func (f *Frame) Fill(r, g, b uint8) {
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
	}
}

// Clamp bounds v to [lo, hi]. Every clamp site in the viewport and
// probe math goes through here.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
