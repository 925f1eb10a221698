package stream

import (
	"testing"

	"framediff-go/internal/compare"
	"framediff-go/internal/raster"
	"framediff-go/internal/wire"
)

func imageMessage(w, h int, value uint8) wire.Message {
	f := raster.New(w, h)
	f.Fill(value, value, value)
	return wire.Message{Type: wire.TypeImage, Width: w, Height: h, Pix: f.Pix}
}

func TestBuilderAssemblesSequence(t *testing.T) {
	b, err := newBuilder(wire.Message{Type: wire.TypeStart, Role: wire.RoleComparison, Width: 4, Height: 4, Count: 2})
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	if b.role != wire.RoleComparison {
		t.Fatalf("unexpected role: %q", b.role)
	}

	if err := b.add(imageMessage(4, 4, 10)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := b.add(imageMessage(4, 4, 20)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if b.seq.Count() != 2 || b.seq.Width != 4 || b.seq.Height != 4 {
		t.Fatalf("unexpected sequence: %d frames %dx%d", b.seq.Count(), b.seq.Width, b.seq.Height)
	}
}

func TestBuilderRejectsInvalidStart(t *testing.T) {
	if _, err := newBuilder(wire.Message{Type: wire.TypeStart, Width: 0, Height: 4}); err == nil {
		t.Fatalf("expected an error for a zero-width start")
	}
	if _, err := newBuilder(wire.Message{Type: wire.TypeStart, Width: 4, Height: -1}); err == nil {
		t.Fatalf("expected an error for a negative-height start")
	}
}

func TestBuilderRejectsTruncatedPayload(t *testing.T) {
	b, err := newBuilder(wire.Message{Type: wire.TypeStart, Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	if err := b.add(wire.Message{Type: wire.TypeImage, Width: 4, Height: 4, Pix: []byte{1, 2, 3}}); err == nil {
		t.Fatalf("expected an error for a truncated payload")
	}
	if b.seq.Count() != 0 {
		t.Fatalf("truncated frame must not be appended")
	}
}

func TestBuilderNormalizesMismatchedFrames(t *testing.T) {
	// A sender that declares one resolution and ships another must not
	// be able to break the shared-resolution invariant: an undersized
	// frame indexed by the declared width would read out of range.
	b, err := newBuilder(wire.Message{Type: wire.TypeStart, Role: wire.RoleReference, Width: 4, Height: 4})
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}
	if err := b.add(imageMessage(2, 2, 80)); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := b.seq.Frames[0]
	if got.Width != 4 || got.Height != 4 {
		t.Fatalf("frame not normalized to declared shape: %dx%d", got.Width, got.Height)
	}

	store := compare.NewPairStore()
	store.SetReference(b.seq)
	store.SetComparison(b.seq)
	ref, _, ok := store.PixelAt(3, 3)
	if !ok {
		t.Fatalf("corner pixel read failed on a normalized sequence")
	}
	if ref[0] != 80 {
		t.Fatalf("unexpected corner value: %d", ref[0])
	}
}
