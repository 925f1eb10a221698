package wire

import (
	"bytes"
	"testing"

	"framediff-go/internal/raster"
)

func TestImageMessageRoundTrip(t *testing.T) {
	frame := raster.New(3, 2)
	for i := range frame.Pix {
		frame.Pix[i] = uint8(i)
	}

	data, err := EncodeImage(4, frame)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeImage || msg.Index != 4 {
		t.Fatalf("unexpected envelope: %+v", msg)
	}

	got, err := msg.Frame()
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if got.Width != 3 || got.Height != 2 {
		t.Fatalf("unexpected shape: %dx%d", got.Width, got.Height)
	}
	if !bytes.Equal(got.Pix, frame.Pix) {
		t.Fatalf("pixels changed in transit")
	}
}

func TestStartMessage(t *testing.T) {
	data, err := EncodeStart(RoleReference, 640, 480, 42)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeStart || msg.Role != RoleReference {
		t.Fatalf("unexpected envelope: %+v", msg)
	}
	if msg.Width != 640 || msg.Height != 480 || msg.Count != 42 {
		t.Fatalf("unexpected dimensions: %+v", msg)
	}
}

func TestFrameRejectsShortPayload(t *testing.T) {
	msg := Message{Type: TypeImage, Width: 4, Height: 4, Pix: []byte{1, 2, 3}}
	if _, err := msg.Frame(); err == nil {
		t.Fatalf("expected an error for a truncated payload")
	}
}

func TestFrameRejectsNonImage(t *testing.T) {
	msg := Message{Type: TypeEnd}
	if _, err := msg.Frame(); err == nil {
		t.Fatalf("expected an error for a non-image message")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not cbor at all")); err == nil {
		t.Fatalf("expected a decode error")
	}
}
