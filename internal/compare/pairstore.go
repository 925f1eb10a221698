package compare

import "framediff-go/internal/raster"

// PairStore owns the reference and comparison sequences and a cursor
// into their common index range. The comparison frame is aligned to
// the reference resolution on demand; the aligned frame is cached for
// the current cursor only, so repeated pixel probes against the same
// index do not pay the resize twice.
type PairStore struct {
	ref  *Sequence
	comp *Sequence

	cursor     int
	alignedIdx int
	aligned    *raster.Frame
}

func NewPairStore() *PairStore {
	return &PairStore{alignedIdx: -1}
}

// SetReference replaces the reference sequence and resets the cursor.
// The comparison side is left untouched.
func (p *PairStore) SetReference(seq *Sequence) {
	p.ref = seq
	p.reset()
}

// SetComparison replaces the comparison sequence and resets the cursor.
func (p *PairStore) SetComparison(seq *Sequence) {
	p.comp = seq
	p.reset()
}

// Swap exchanges the reference and comparison sequences in place,
// keeping the cursor.
func (p *PairStore) Swap() {
	p.ref, p.comp = p.comp, p.ref
	p.aligned = nil
	p.alignedIdx = -1
}

func (p *PairStore) reset() {
	p.cursor = 0
	p.aligned = nil
	p.alignedIdx = -1
}

// FrameCount is the number of comparable index positions: the shorter
// of the two sequences, or 0 when either side is missing or empty.
func (p *PairStore) FrameCount() int {
	if p.ref.Count() == 0 || p.comp.Count() == 0 {
		return 0
	}
	if p.ref.Count() < p.comp.Count() {
		return p.ref.Count()
	}
	return p.comp.Count()
}

func (p *PairStore) Cursor() int {
	return p.cursor
}

// Seek clamps index into the valid range and moves the cursor without
// resolving any frames. Returns the clamped index (0 when empty).
func (p *PairStore) Seek(index int) int {
	n := p.FrameCount()
	if n == 0 {
		return 0
	}
	p.cursor = raster.Clamp(index, 0, n-1)
	return p.cursor
}

func (p *PairStore) Reference() *Sequence {
	return p.ref
}

func (p *PairStore) Comparison() *Sequence {
	return p.comp
}

// Pair returns the frames at index: the reference frame, the
// comparison frame aligned to the reference resolution, and the diff.
// The index is clamped into the valid range and becomes the cursor.
// When computeDiff is false the diff is not computed at all; that is
// the performance contract for playback with the diff panel hidden.
// All results are nil when no pair is loaded.
func (p *PairStore) Pair(index int, computeDiff bool) (ref, comp, diff *raster.Frame) {
	n := p.FrameCount()
	if n == 0 {
		return nil, nil, nil
	}

	index = raster.Clamp(index, 0, n-1)
	p.cursor = index

	ref = p.ref.Frames[index]
	comp = p.alignedComparison(index)

	if !computeDiff {
		return ref, comp, nil
	}
	return ref, comp, Diff(ref, comp)
}

// PixelAt reads the RGB values under (x, y) in reference coordinates
// from both sides at the current cursor. ok is false when nothing is
// loaded or the coordinate is outside the reference frame.
func (p *PairStore) PixelAt(x, y int) (ref, comp [3]uint8, ok bool) {
	if p.FrameCount() == 0 {
		return ref, comp, false
	}
	if x < 0 || x >= p.ref.Width || y < 0 || y >= p.ref.Height {
		return ref, comp, false
	}

	rf := p.ref.Frames[p.cursor]
	cf := p.alignedComparison(p.cursor)
	ref[0], ref[1], ref[2] = rf.At(x, y)
	comp[0], comp[1], comp[2] = cf.At(x, y)
	return ref, comp, true
}

func (p *PairStore) alignedComparison(index int) *raster.Frame {
	frame := p.comp.Frames[index]
	if frame.Width == p.ref.Width && frame.Height == p.ref.Height {
		return frame
	}
	if p.alignedIdx == index && p.aligned != nil {
		return p.aligned
	}
	p.aligned = raster.ResizeBilinear(frame, p.ref.Width, p.ref.Height)
	p.alignedIdx = index
	return p.aligned
}
