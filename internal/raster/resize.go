package raster

// ResizeBilinear resamples src to width x height with bilinear
// interpolation, sampling at pixel centers. Used to align a comparison
// frame to the reference resolution.
func ResizeBilinear(src *Frame, width, height int) *Frame {
	if src.Width == width && src.Height == height {
		return src
	}
	out := New(width, height)
	ResizeBilinearInto(src, out)
	return out
}

// ResizeBilinearInto is ResizeBilinear writing into a caller-owned
// frame whose shape determines the output size.
func ResizeBilinearInto(src, dst *Frame) {
	scaleX := float64(src.Width) / float64(dst.Width)
	scaleY := float64(src.Height) / float64(dst.Height)

	for dy := 0; dy < dst.Height; dy++ {
		sy := (float64(dy)+0.5)*scaleY - 0.5
		if sy < 0 {
			sy = 0
		}
		y0 := int(sy)
		y1 := y0 + 1
		if y1 > src.Height-1 {
			y1 = src.Height - 1
		}
		fy := sy - float64(y0)

		row0 := y0 * src.Stride()
		row1 := y1 * src.Stride()
		dstRow := dy * dst.Stride()

		for dx := 0; dx < dst.Width; dx++ {
			sx := (float64(dx)+0.5)*scaleX - 0.5
			if sx < 0 {
				sx = 0
			}
			x0 := int(sx)
			x1 := x0 + 1
			if x1 > src.Width-1 {
				x1 = src.Width - 1
			}
			fx := sx - float64(x0)

			for c := 0; c < 3; c++ {
				tl := float64(src.Pix[row0+x0*3+c])
				tr := float64(src.Pix[row0+x1*3+c])
				bl := float64(src.Pix[row1+x0*3+c])
				br := float64(src.Pix[row1+x1*3+c])
				top := tl + (tr-tl)*fx
				bot := bl + (br-bl)*fx
				dst.Pix[dstRow+dx*3+c] = uint8(top + (bot-top)*fy + 0.5)
			}
		}
	}
}

// ResizeNearestInto resamples src into dst with nearest-neighbor
// interpolation. Nearest is intentional on the viewport path: it keeps
// interactive zoom and pan within the frame budget and shows true
// pixel boundaries at high zoom.
func ResizeNearestInto(src, dst *Frame) {
	for dy := 0; dy < dst.Height; dy++ {
		sy := dy * src.Height / dst.Height
		srcRow := sy * src.Stride()
		dstRow := dy * dst.Stride()
		for dx := 0; dx < dst.Width; dx++ {
			sx := dx * src.Width / dst.Width
			si := srcRow + sx*3
			di := dstRow + dx*3
			dst.Pix[di] = src.Pix[si]
			dst.Pix[di+1] = src.Pix[si+1]
			dst.Pix[di+2] = src.Pix[si+2]
		}
	}
}
