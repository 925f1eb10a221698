// Package simulator builds synthetic frame sequences so the comparator
// runs and can be exercised without any input files.
package simulator

import (
	"math"
	"math/rand"

	"framediff-go/internal/compare"
	"framediff-go/internal/raster"
)

// Sequences returns a reference/comparison pair of the given shape.
// Both show a gaussian blob orbiting the image center; the comparison
// blob trails the reference by a small phase offset and carries pixel
// noise, so every frame produces a non-trivial difference view.
func Sequences(frames, width, height int) (ref, comp *compare.Sequence) {
	ref = &compare.Sequence{Width: width, Height: height}
	comp = &compare.Sequence{Width: width, Height: height}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < frames; i++ {
		phase := 2 * math.Pi * float64(i) / float64(frames)
		ref.Frames = append(ref.Frames, blobFrame(width, height, phase, nil))
		comp.Frames = append(comp.Frames, blobFrame(width, height, phase+0.15, rng))
	}
	return ref, comp
}

func blobFrame(width, height int, phase float64, rng *rand.Rand) *raster.Frame {
	f := raster.New(width, height)
	radius := float64(min(width, height)) / 4
	cx := float64(width)/2 + radius*math.Cos(phase)
	cy := float64(height)/2 + radius*math.Sin(phase)
	sigma2 := float64(width*height) / 40

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			v := 255 * math.Exp(-(dx*dx+dy*dy)/sigma2)
			if rng != nil {
				v += rng.NormFloat64() * 4
			}
			level := uint8(raster.Clamp(v, 0, 255))
			f.Set(x, y, level, level/2, 255-level)
		}
	}
	return f
}
