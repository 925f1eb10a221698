// Package wire defines the CBOR message format used both for frame
// sequences streamed over ZMQ and for rendered panels pushed to
// websocket clients. Pixel payloads travel as raw row-major RGB bytes
// next to explicit width/height fields.
package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"framediff-go/internal/raster"
)

const (
	TypeStart = "start"
	TypeImage = "image"
	TypeEnd   = "end"
)

const (
	RoleReference  = "reference"
	RoleComparison = "comparison"
)

// Message is one ZMQ stream message. A sequence is a start message
// carrying the role and declared resolution, count image messages in
// index order, and an end message.
type Message struct {
	Type   string `cbor:"type"`
	Role   string `cbor:"role,omitempty"`
	Index  int    `cbor:"index,omitempty"`
	Count  int    `cbor:"count,omitempty"`
	Width  int    `cbor:"width,omitempty"`
	Height int    `cbor:"height,omitempty"`
	Pix    []byte `cbor:"pix,omitempty"`
}

func EncodeStart(role string, width, height, count int) ([]byte, error) {
	return cbor.Marshal(Message{
		Type:   TypeStart,
		Role:   role,
		Width:  width,
		Height: height,
		Count:  count,
	})
}

func EncodeImage(index int, frame *raster.Frame) ([]byte, error) {
	return cbor.Marshal(Message{
		Type:   TypeImage,
		Index:  index,
		Width:  frame.Width,
		Height: frame.Height,
		Pix:    frame.Pix,
	})
}

func EncodeEnd() ([]byte, error) {
	return cbor.Marshal(Message{Type: TypeEnd})
}

func Decode(data []byte) (Message, error) {
	var msg Message
	if err := cbor.Unmarshal(data, &msg); err != nil {
		return Message{}, err
	}
	if msg.Type == "" {
		return Message{}, errors.New("message has no type")
	}
	return msg, nil
}

// Frame converts an image message payload into a frame, validating
// that the byte count matches the declared shape.
func (m Message) Frame() (*raster.Frame, error) {
	if m.Type != TypeImage {
		return nil, fmt.Errorf("message type %q carries no frame", m.Type)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("invalid frame shape %dx%d", m.Width, m.Height)
	}
	if len(m.Pix) != m.Width*m.Height*3 {
		return nil, fmt.Errorf("frame payload is %d bytes, want %d", len(m.Pix), m.Width*m.Height*3)
	}
	return &raster.Frame{Pix: m.Pix, Width: m.Width, Height: m.Height}, nil
}

// Panel is one rendered view inside a websocket push.
type Panel struct {
	Name   string `cbor:"name"`
	Width  int    `cbor:"width"`
	Height int    `cbor:"height"`
	Pix    []byte `cbor:"pix"`
}

// Triplet is the per-frame websocket payload: the rendered reference,
// comparison and (when visible) difference panels plus the cursor
// position.
type Triplet struct {
	Type   string  `cbor:"type"`
	Index  int     `cbor:"index"`
	Total  int     `cbor:"total"`
	Panels []Panel `cbor:"panels"`
}

func EncodeTriplet(index, total int, panels []Panel) ([]byte, error) {
	return cbor.Marshal(Triplet{
		Type:   "triplet",
		Index:  index,
		Total:  total,
		Panels: panels,
	})
}
