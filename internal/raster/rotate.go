package raster

// Rotate returns the frame rotated clockwise by angle degrees, which
// must be one of 0, 90, 180 or 270. Rotation is an exact pixel
// permutation; 90 and 270 swap width and height. Angle 0 returns the
// input frame unchanged.
func Rotate(f *Frame, angle int) *Frame {
	switch angle {
	case 90:
		return rotate90(f)
	case 180:
		return rotate180(f)
	case 270:
		return rotate270(f)
	default:
		return f
	}
}

func rotate90(f *Frame) *Frame {
	out := New(f.Height, f.Width)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			src := (y*f.Width + x) * 3
			dst := (x*out.Width + (f.Height - 1 - y)) * 3
			out.Pix[dst] = f.Pix[src]
			out.Pix[dst+1] = f.Pix[src+1]
			out.Pix[dst+2] = f.Pix[src+2]
		}
	}
	return out
}

func rotate180(f *Frame) *Frame {
	out := New(f.Width, f.Height)
	n := f.Width * f.Height
	for i := 0; i < n; i++ {
		src := i * 3
		dst := (n - 1 - i) * 3
		out.Pix[dst] = f.Pix[src]
		out.Pix[dst+1] = f.Pix[src+1]
		out.Pix[dst+2] = f.Pix[src+2]
	}
	return out
}

func rotate270(f *Frame) *Frame {
	out := New(f.Height, f.Width)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			src := (y*f.Width + x) * 3
			dst := ((f.Width-1-x)*out.Width + y) * 3
			out.Pix[dst] = f.Pix[src]
			out.Pix[dst+1] = f.Pix[src+1]
			out.Pix[dst+2] = f.Pix[src+2]
		}
	}
	return out
}
