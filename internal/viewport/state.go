package viewport

import "framediff-go/internal/raster"

const (
	ZoomMin = 0.1
	ZoomMax = 8.0
)

// State is the viewport a session controller owns: zoom factor, pan
// offset in rotation-adjusted source pixels, and rotation in 90 degree
// steps. Render clamps the pan and writes the clamped value back here,
// so panning hits a wall instead of drifting the image out of frame.
type State struct {
	Zoom     float64
	PanX     int
	PanY     int
	Rotation int
}

func NewState() *State {
	return &State{Zoom: 1.0}
}

// ZoomStep grows with the zoom level so wheel steps feel proportional
// at both ends of the range.
func (s *State) ZoomStep() float64 {
	return raster.Clamp(s.Zoom/10, 0.1, 0.4)
}

// StepZoom zooms in (dir > 0) or out (dir < 0) by one step, clamped to
// the valid range.
func (s *State) StepZoom(dir int) {
	if dir == 0 {
		return
	}
	step := s.ZoomStep()
	if dir < 0 {
		step = -step
	}
	s.SetZoom(s.Zoom + step)
}

func (s *State) SetZoom(zoom float64) {
	s.Zoom = raster.Clamp(zoom, ZoomMin, ZoomMax)
}

func (s *State) Pan(dx, dy int) {
	s.PanX += dx
	s.PanY += dy
}

// RotateRight turns the view 90 degrees clockwise. Rotation changes
// the pan coordinate frame, so pan resets.
func (s *State) RotateRight() {
	s.Rotation = (s.Rotation + 90) % 360
	s.PanX, s.PanY = 0, 0
}

func (s *State) RotateLeft() {
	s.Rotation = (s.Rotation + 270) % 360
	s.PanX, s.PanY = 0, 0
}

func (s *State) ResetRotation() {
	s.Rotation = 0
	s.PanX, s.PanY = 0, 0
}

// FitToScreen picks the zoom that shows the whole rotated image inside
// the output region and recenters the pan.
func (s *State) FitToScreen(imgWidth, imgHeight, outWidth, outHeight int) {
	if imgWidth <= 0 || imgHeight <= 0 {
		return
	}
	if s.Rotation == 90 || s.Rotation == 270 {
		outWidth, outHeight = outHeight, outWidth
	}
	s.SetZoom(min(
		float64(outWidth)/float64(imgWidth),
		float64(outHeight)/float64(imgHeight),
	))
	s.PanX, s.PanY = 0, 0
}
