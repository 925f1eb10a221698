package viewport

import "testing"

func TestZoomClamping(t *testing.T) {
	s := NewState()
	s.SetZoom(100)
	if s.Zoom != ZoomMax {
		t.Fatalf("zoom not clamped to max: %v", s.Zoom)
	}
	s.SetZoom(-5)
	if s.Zoom != ZoomMin {
		t.Fatalf("zoom not clamped to min: %v", s.Zoom)
	}
}

func TestStepZoomNeverLeavesRange(t *testing.T) {
	s := NewState()
	for i := 0; i < 100; i++ {
		s.StepZoom(1)
	}
	if s.Zoom != ZoomMax {
		t.Fatalf("zoom drifted past max: %v", s.Zoom)
	}
	for i := 0; i < 1000; i++ {
		s.StepZoom(-1)
	}
	if s.Zoom != ZoomMin {
		t.Fatalf("zoom drifted past min: %v", s.Zoom)
	}
}

func TestZoomStepGrowsWithZoom(t *testing.T) {
	s := NewState()
	s.Zoom = 0.5
	if s.ZoomStep() != 0.1 {
		t.Fatalf("unexpected step at low zoom: %v", s.ZoomStep())
	}
	s.Zoom = 2.0
	if s.ZoomStep() != 0.2 {
		t.Fatalf("unexpected step at mid zoom: %v", s.ZoomStep())
	}
	s.Zoom = 8.0
	if s.ZoomStep() != 0.4 {
		t.Fatalf("unexpected step at max zoom: %v", s.ZoomStep())
	}
}

func TestRotationCyclesAndResetsPan(t *testing.T) {
	s := NewState()
	s.Pan(30, -10)

	s.RotateRight()
	if s.Rotation != 90 || s.PanX != 0 || s.PanY != 0 {
		t.Fatalf("unexpected state after right turn: %+v", s)
	}

	for i := 0; i < 3; i++ {
		s.RotateRight()
	}
	if s.Rotation != 0 {
		t.Fatalf("four right turns should return to 0, got %d", s.Rotation)
	}

	s.RotateLeft()
	if s.Rotation != 270 {
		t.Fatalf("left turn from 0 should give 270, got %d", s.Rotation)
	}
	for i := 0; i < 3; i++ {
		s.RotateLeft()
	}
	if s.Rotation != 0 {
		t.Fatalf("four left turns should return to 0, got %d", s.Rotation)
	}
}

func TestFitToScreen(t *testing.T) {
	s := NewState()
	s.Pan(10, 10)
	s.FitToScreen(200, 100, 400, 100)
	if s.Zoom != 1.0 {
		t.Fatalf("unexpected fit zoom: %v", s.Zoom)
	}
	if s.PanX != 0 || s.PanY != 0 {
		t.Fatalf("fit did not recenter pan")
	}

	// Rotated 90 the aspect swaps, so the binding axis changes.
	s.Rotation = 90
	s.FitToScreen(200, 100, 400, 100)
	if s.Zoom != 0.5 {
		t.Fatalf("unexpected rotated fit zoom: %v", s.Zoom)
	}
}
