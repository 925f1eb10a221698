package viewport

// MapDisplayToImage inverse-maps a display-space point to raster
// coordinates for a raster fitted (aspect-preserving, centered) into a
// labelWidth x labelHeight region. ok is false when the point falls in
// the letterbox margin or the raster has no extent.
func MapDisplayToImage(px, py float64, rasterWidth, rasterHeight, labelWidth, labelHeight int) (ix, iy int, ok bool) {
	if rasterWidth <= 0 || rasterHeight <= 0 {
		return 0, 0, false
	}

	scale := min(
		float64(labelWidth)/float64(rasterWidth),
		float64(labelHeight)/float64(rasterHeight),
	)
	if scale <= 0 {
		return 0, 0, false
	}

	offsetX := (float64(labelWidth) - float64(rasterWidth)*scale) / 2
	offsetY := (float64(labelHeight) - float64(rasterHeight)*scale) / 2

	x := (px - offsetX) / scale
	y := (py - offsetY) / scale
	if x < 0 || x >= float64(rasterWidth) || y < 0 || y >= float64(rasterHeight) {
		return 0, 0, false
	}
	return int(x), int(y), true
}
