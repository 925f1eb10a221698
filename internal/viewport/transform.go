package viewport

import "framediff-go/internal/raster"

// Transformer turns one raw frame into the raster a panel displays,
// applying rotation, zoom and pan. Each panel owns its own Transformer
// so the scratch buffers underneath are never shared.
type Transformer struct {
	crop raster.Scratch
	out  raster.Scratch
}

// Render maps the viewport onto the frame and produces an
// outWidth x outHeight raster:
//
//  1. rotate (exact permutation, 90/270 swap the aspect),
//  2. size the crop window from the zoom factor, rounded down to even
//     so centering has no half-pixel ambiguity,
//  3. clamp the pan so the crop stays inside the rotated image and
//     write the clamped value back into state,
//  4. copy the overlapping part of the crop into a zeroed scratch
//     buffer, centered, leaving any off-image remainder black,
//  5. resize nearest-neighbor to the output shape.
//
// The returned frame is contiguous row-major RGB backed by the
// transformer's output buffer; it is valid until the next Render call.
func (t *Transformer) Render(frame *raster.Frame, state *State, outWidth, outHeight int) *raster.Frame {
	if frame == nil || outWidth <= 0 || outHeight <= 0 {
		return nil
	}

	img := raster.Rotate(frame, state.Rotation)

	cropH := cropSpan(outHeight, state.Zoom)
	cropW := cropSpan(outWidth, state.Zoom)
	scratch := t.crop.Ensure(cropW, cropH)

	halfImgH := img.Height / 2
	halfImgW := img.Width / 2
	state.PanY = clampPan(state.PanY, halfImgH, cropH/2)
	state.PanX = clampPan(state.PanX, halfImgW, cropW/2)

	centerY := halfImgH + state.PanY
	centerX := halfImgW + state.PanX

	srcY0 := max(0, centerY-cropH/2)
	srcY1 := min(img.Height, centerY+cropH/2)
	srcX0 := max(0, centerX-cropW/2)
	srcX1 := min(img.Width, centerX+cropW/2)

	if srcY1 > srcY0 && srcX1 > srcX0 {
		h := srcY1 - srcY0
		w := srcX1 - srcX0
		dstY0 := (cropH - h) / 2
		dstX0 := (cropW - w) / 2
		for row := 0; row < h; row++ {
			src := (srcY0+row)*img.Stride() + srcX0*3
			dst := (dstY0+row)*scratch.Stride() + dstX0*3
			copy(scratch.Pix[dst:dst+w*3], img.Pix[src:src+w*3])
		}
	}

	out := t.out.Reserve(outWidth, outHeight)
	raster.ResizeNearestInto(scratch, out)
	return out
}

// cropSpan is the crop window extent for one axis: the output extent
// divided by the zoom factor, rounded down to an even number of
// pixels, never below 2.
func cropSpan(out int, zoom float64) int {
	span := int(float64(out)/zoom) / 2 * 2
	if span < 2 {
		span = 2
	}
	return span
}

// clampPan bounds a pan offset so the crop window stays inside the
// image. When the crop is larger than the image the valid range
// collapses and the pan is forced to 0: the image is fully visible and
// centered.
func clampPan(pan, halfImg, halfCrop int) int {
	lo := -halfImg + halfCrop
	hi := halfImg - halfCrop
	if lo > hi {
		return 0
	}
	return raster.Clamp(pan, lo, hi)
}
