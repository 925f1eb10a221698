package compare

import "testing"

func solidSequence(n, w, h int, r, g, b uint8) *Sequence {
	seq := &Sequence{Width: w, Height: h}
	for i := 0; i < n; i++ {
		seq.Frames = append(seq.Frames, solid(w, h, r, g, b))
	}
	return seq
}

func TestFrameCountIsMinOfBothSides(t *testing.T) {
	p := NewPairStore()
	if p.FrameCount() != 0 {
		t.Fatalf("empty store should report 0 frames")
	}

	p.SetReference(solidSequence(10, 4, 4, 0, 0, 0))
	if p.FrameCount() != 0 {
		t.Fatalf("store with one side should report 0 frames")
	}

	p.SetComparison(solidSequence(7, 4, 4, 0, 0, 0))
	if p.FrameCount() != 7 {
		t.Fatalf("unexpected frame count: %d", p.FrameCount())
	}
}

func TestPairClampsIndex(t *testing.T) {
	p := NewPairStore()
	p.SetReference(solidSequence(5, 2, 2, 1, 1, 1))
	p.SetComparison(solidSequence(5, 2, 2, 2, 2, 2))

	for _, idx := range []int{-100, -1, 5, 99} {
		ref, comp, _ := p.Pair(idx, false)
		if ref == nil || comp == nil {
			t.Fatalf("Pair(%d) returned nil frames", idx)
		}
		want := 0
		if idx > 0 {
			want = 4
		}
		if p.Cursor() != want {
			t.Fatalf("Pair(%d) left cursor at %d, want %d", idx, p.Cursor(), want)
		}
	}
}

func TestPairSkipsDiffWhenNotRequested(t *testing.T) {
	p := NewPairStore()
	p.SetReference(solidSequence(3, 2, 2, 0, 0, 0))
	p.SetComparison(solidSequence(3, 2, 2, 9, 9, 9))

	_, _, diff := p.Pair(1, false)
	if diff != nil {
		t.Fatalf("diff computed despite computeDiff=false")
	}
	_, _, diff = p.Pair(1, true)
	if diff == nil {
		t.Fatalf("diff missing despite computeDiff=true")
	}
}

func TestPairResizesComparisonToReference(t *testing.T) {
	p := NewPairStore()
	p.SetReference(solidSequence(2, 8, 6, 0, 0, 0))
	p.SetComparison(solidSequence(2, 4, 3, 50, 60, 70))

	_, comp, _ := p.Pair(0, false)
	if comp.Width != 8 || comp.Height != 6 {
		t.Fatalf("comparison not aligned: %dx%d", comp.Width, comp.Height)
	}
	r, g, b := comp.At(3, 3)
	if r != 50 || g != 60 || b != 70 {
		t.Fatalf("unexpected aligned pixel: (%d,%d,%d)", r, g, b)
	}

	// Same index again must hit the cached aligned frame.
	_, again, _ := p.Pair(0, false)
	if again != comp {
		t.Fatalf("aligned frame not cached for repeated access at one index")
	}
}

func TestPairPassesComparisonThroughWhenSameSize(t *testing.T) {
	p := NewPairStore()
	p.SetReference(solidSequence(1, 4, 4, 0, 0, 0))
	comp := solidSequence(1, 4, 4, 1, 2, 3)
	p.SetComparison(comp)

	_, got, _ := p.Pair(0, false)
	if got != comp.Frames[0] {
		t.Fatalf("same-size comparison frame should pass through unchanged")
	}
}

func TestPixelAt(t *testing.T) {
	p := NewPairStore()
	ref := solidSequence(1, 4, 4, 10, 20, 30)
	comp := solidSequence(1, 4, 4, 40, 50, 60)
	p.SetReference(ref)
	p.SetComparison(comp)
	p.Pair(0, false)

	r, c, ok := p.PixelAt(2, 1)
	if !ok {
		t.Fatalf("expected a hit inside the frame")
	}
	if r != [3]uint8{10, 20, 30} || c != [3]uint8{40, 50, 60} {
		t.Fatalf("unexpected pixel values: %v %v", r, c)
	}

	if _, _, ok := p.PixelAt(4, 0); ok {
		t.Fatalf("expected no hit outside the frame")
	}
	if _, _, ok := p.PixelAt(0, -1); ok {
		t.Fatalf("expected no hit outside the frame")
	}
}

func TestSwapExchangesSides(t *testing.T) {
	p := NewPairStore()
	p.SetReference(solidSequence(2, 2, 2, 1, 0, 0))
	p.SetComparison(solidSequence(2, 2, 2, 0, 0, 1))

	p.Swap()
	ref, comp, _ := p.Pair(0, false)
	if r, _, _ := ref.At(0, 0); r != 0 {
		t.Fatalf("swap did not move comparison to reference")
	}
	if _, _, b := comp.At(0, 0); b != 0 {
		t.Fatalf("swap did not move reference to comparison")
	}
}

// End-to-end: ten solid-red reference frames against ten solid-blue
// comparison frames.
func TestRedBlueScenario(t *testing.T) {
	p := NewPairStore()
	p.SetReference(solidSequence(10, 4, 4, 255, 0, 0))
	p.SetComparison(solidSequence(10, 4, 4, 0, 0, 255))

	if p.FrameCount() != 10 {
		t.Fatalf("unexpected frame count: %d", p.FrameCount())
	}

	_, _, diff := p.Pair(3, true)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b := diff.At(x, y)
			if r != 255 || g != 0 || b != 0 {
				t.Fatalf("diff pixel (%d,%d) = (%d,%d,%d)", x, y, r, g, b)
			}
		}
	}

	refA, compA, diffA := p.Pair(20, true)
	refB, compB, diffB := p.Pair(9, true)
	if refA != refB || compA != compB {
		t.Fatalf("out-of-range index did not clamp to the last frame")
	}
	if diffA.Pix[0] != diffB.Pix[0] || diffA.Pix[2] != diffB.Pix[2] {
		t.Fatalf("clamped diff differs from in-range diff")
	}
}
