// Package session is the comparator's controller: it owns the pair
// store, the viewport state and playback, and produces the rendered
// triplet each displayed frame.
package session

import (
	"sync"
	"time"

	"framediff-go/internal/compare"
	"framediff-go/internal/raster"
	"framediff-go/internal/viewport"
)

const (
	SpeedMin = 0.1
	SpeedMax = 5.0

	// baseInterval is the playback period at speed 1 (about 30 fps);
	// minInterval bounds how fast playback may tick at high speeds.
	baseInterval = 33 * time.Millisecond
	minInterval  = 2 * time.Millisecond
)

// Session serializes all comparator operations behind one mutex, so
// websocket handlers and the playback loop never interleave inside the
// core. Render must only be called from one goroutine (the display
// loop): the returned triplet aliases per-panel scratch buffers that
// the next Render call overwrites.
type Session struct {
	mu    sync.Mutex
	store *compare.PairStore
	view  viewport.State

	refPanel  viewport.Transformer
	compPanel viewport.Transformer
	diffPanel viewport.Transformer

	outWidth  int
	outHeight int

	playing     bool
	loop        bool
	speed       float64
	diffVisible bool
}

// Triplet is one displayed frame: the rendered reference, comparison
// and difference rasters plus the cursor position. Diff is nil while
// the difference view is hidden.
type Triplet struct {
	Index int
	Total int
	Ref   *raster.Frame
	Comp  *raster.Frame
	Diff  *raster.Frame
}

// ProbeResult reports the source pixel under a display coordinate.
type ProbeResult struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Frame int      `json:"frame"`
	Ref   [3]uint8 `json:"ref"`
	Comp  [3]uint8 `json:"comp"`
}

func New(store *compare.PairStore, outWidth, outHeight int) *Session {
	return &Session{
		store:       store,
		view:        viewport.State{Zoom: 1.0},
		outWidth:    outWidth,
		outHeight:   outHeight,
		loop:        true,
		speed:       1.0,
		diffVisible: true,
	}
}

// SetReference installs a new reference sequence and resets the view,
// matching the behavior after any successful load.
func (s *Session) SetReference(seq *compare.Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetReference(seq)
	s.resetViewLocked()
}

func (s *Session) SetComparison(seq *compare.Sequence) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetComparison(seq)
	s.resetViewLocked()
}

func (s *Session) resetViewLocked() {
	s.view = viewport.State{Zoom: 1.0}
	s.playing = false
}

// Interval is the playback period for the current speed, floored so a
// large speed cannot degenerate into a busy loop.
func (s *Session) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	interval := time.Duration(float64(baseInterval) / s.speed)
	if interval < minInterval {
		interval = minInterval
	}
	return interval
}

func (s *Session) SetSpeed(speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = raster.Clamp(speed, SpeedMin, SpeedMax)
}

func (s *Session) SetPlaying(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.FrameCount() == 0 {
		s.playing = false
		return
	}
	s.playing = on
}

func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *Session) SetLoop(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = on
}

func (s *Session) SetDiffVisible(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diffVisible = on
}

// Resize updates the output (display) size used for rendering.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width > 0 && height > 0 {
		s.outWidth, s.outHeight = width, height
	}
}

func (s *Session) Seek(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Seek(index)
}

// Advance moves the cursor one frame forward for playback. At the end
// of the range it wraps when looping, otherwise stops playback and
// returns false.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.store.FrameCount()
	if n == 0 {
		s.playing = false
		return false
	}
	next := s.store.Cursor() + 1
	if next >= n {
		if !s.loop {
			s.playing = false
			return false
		}
		next = 0
	}
	s.store.Seek(next)
	return true
}

func (s *Session) StepZoom(dir int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.StepZoom(dir)
}

func (s *Session) Pan(dx, dy int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Pan(dx, dy)
}

func (s *Session) RotateRight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.RotateRight()
}

func (s *Session) RotateLeft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.RotateLeft()
}

func (s *Session) ResetRotation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ResetRotation()
}

func (s *Session) FitToScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ref := s.store.Reference(); ref.Count() > 0 {
		s.view.FitToScreen(ref.Width, ref.Height, s.outWidth, s.outHeight)
	}
}

func (s *Session) Swap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Swap()
}

// Render produces the triplet for the current cursor. The diff is
// computed only while the difference view is visible. Returns nil when
// no pair is loaded.
func (s *Session) Render() *Triplet {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, comp, diff := s.store.Pair(s.store.Cursor(), s.diffVisible)
	if ref == nil {
		return nil
	}

	out := &Triplet{
		Index: s.store.Cursor(),
		Total: s.store.FrameCount(),
		Ref:   s.refPanel.Render(ref, &s.view, s.outWidth, s.outHeight),
		Comp:  s.compPanel.Render(comp, &s.view, s.outWidth, s.outHeight),
	}
	if diff != nil {
		out.Diff = s.diffPanel.Render(diff, &s.view, s.outWidth, s.outHeight)
	}
	return out
}

// Probe maps a display coordinate back through the fit scaling and
// reads the source pixel from both sides at the current cursor. The
// coordinate space is the untransformed source frame: inspection is
// defined against the original resolution, independent of the current
// zoom, pan and rotation.
func (s *Session) Probe(px, py float64, labelWidth, labelHeight int) (ProbeResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ix, iy, ok := viewport.MapDisplayToImage(px, py, s.outWidth, s.outHeight, labelWidth, labelHeight)
	if !ok {
		return ProbeResult{}, false
	}
	ref, comp, ok := s.store.PixelAt(ix, iy)
	if !ok {
		return ProbeResult{}, false
	}
	return ProbeResult{
		X:     ix,
		Y:     iy,
		Frame: s.store.Cursor(),
		Ref:   ref,
		Comp:  comp,
	}, true
}

// Status summarizes the session for the HTTP status endpoint.
func (s *Session) Status() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := map[string]any{
		"frame":        s.store.Cursor(),
		"frame_count":  s.store.FrameCount(),
		"zoom":         s.view.Zoom,
		"pan_x":        s.view.PanX,
		"pan_y":        s.view.PanY,
		"rotation":     s.view.Rotation,
		"playing":      s.playing,
		"loop":         s.loop,
		"speed":        s.speed,
		"diff_visible": s.diffVisible,
	}
	if ref, comp, _ := s.store.Pair(s.store.Cursor(), false); ref != nil {
		stats := compare.DiffStats(ref, comp)
		status["diff_mean"] = stats.Mean
		status["diff_max"] = stats.Max
		status["diff_changed"] = stats.Changed
	}
	return status
}
