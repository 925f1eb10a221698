package compare

import "framediff-go/internal/raster"

// Diff renders the per-pixel difference of two equally sized frames.
// The magnitude is the Chebyshev distance (maximum channel difference)
// mapped to a red/blue ramp: identical pixels come out (0,0,255),
// maximally different ones (255,0,0). Pure function; callers skip it
// entirely when the difference view is hidden.
func Diff(a, b *raster.Frame) *raster.Frame {
	out := raster.New(a.Width, a.Height)
	for i := 0; i < len(a.Pix); i += 3 {
		d := chebyshev(a.Pix[i:i+3:i+3], b.Pix[i:i+3:i+3])
		out.Pix[i] = d
		out.Pix[i+2] = 255 - d
	}
	return out
}

// FrameStats summarizes one diff: the mean and maximum Chebyshev
// magnitude over all pixels, plus the fraction of pixels that differ
// at all.
type FrameStats struct {
	Mean    float64
	Max     uint8
	Changed float64
}

func DiffStats(a, b *raster.Frame) FrameStats {
	var stats FrameStats
	var sum uint64
	var changed int
	n := a.Width * a.Height
	if n == 0 {
		return stats
	}
	for i := 0; i < len(a.Pix); i += 3 {
		d := chebyshev(a.Pix[i:i+3:i+3], b.Pix[i:i+3:i+3])
		sum += uint64(d)
		if d > stats.Max {
			stats.Max = d
		}
		if d > 0 {
			changed++
		}
	}
	stats.Mean = float64(sum) / float64(n)
	stats.Changed = float64(changed) / float64(n)
	return stats
}

func chebyshev(a, b []uint8) uint8 {
	var d uint8
	for c := 0; c < 3; c++ {
		var v uint8
		if a[c] > b[c] {
			v = a[c] - b[c]
		} else {
			v = b[c] - a[c]
		}
		if v > d {
			d = v
		}
	}
	return d
}
