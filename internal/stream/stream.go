// Package stream moves frame sequences over ZMQ as CBOR messages, so
// a comparator can ingest sources produced on another machine.
package stream

import (
	"context"
	"fmt"
	"log"

	"github.com/pebbe/zmq4"

	"framediff-go/internal/compare"
	"framediff-go/internal/raster"
	"framediff-go/internal/wire"
)

// Incoming is one fully received sequence together with the role the
// sender assigned to it.
type Incoming struct {
	Role string
	Seq  *compare.Sequence
}

// Pull connects a PULL socket to the endpoint and emits a sequence on
// the returned channel each time a start/image.../end run completes.
// Decode errors are logged every logEveryth occurrence and the message
// is skipped; the channel closes when ctx is done.
func Pull(ctx context.Context, endpoint string, logEvery int) (<-chan Incoming, error) {
	if logEvery < 1 {
		logEvery = 1
	}
	socket, err := zmq4.NewSocket(zmq4.PULL)
	if err != nil {
		return nil, err
	}
	if err := socket.Connect(endpoint); err != nil {
		_ = socket.Close()
		return nil, err
	}

	out := make(chan Incoming, 1)
	go func() {
		defer close(out)
		defer socket.Close()

		var pending *builder
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			data, err := socket.RecvBytes(0)
			if err != nil {
				logEveryN(logEvery, "stream recv error: %v", err)
				continue
			}

			msg, err := wire.Decode(data)
			if err != nil {
				logEveryN(logEvery, "stream decode error: %v", err)
				continue
			}

			switch msg.Type {
			case wire.TypeStart:
				pending, err = newBuilder(msg)
				if err != nil {
					logEveryN(logEvery, "stream bad start: %v", err)
					continue
				}
			case wire.TypeImage:
				if pending == nil {
					logEveryN(logEvery, "stream image before start, dropped")
					continue
				}
				if err := pending.add(msg); err != nil {
					logEveryN(logEvery, "stream bad frame: %v", err)
					continue
				}
			case wire.TypeEnd:
				if pending == nil || pending.seq.Count() == 0 {
					pending = nil
					continue
				}
				done := Incoming{Role: pending.role, Seq: pending.seq}
				pending = nil
				select {
				case <-ctx.Done():
					return
				case out <- done:
				}
			default:
				logEveryN(logEvery, "stream ignoring message type %q", msg.Type)
			}
		}
	}()

	return out, nil
}

// builder assembles one sequence from a start/image.../end run.
type builder struct {
	role string
	seq  *compare.Sequence
}

func newBuilder(start wire.Message) (*builder, error) {
	if start.Width <= 0 || start.Height <= 0 {
		return nil, fmt.Errorf("start declares invalid shape %dx%d", start.Width, start.Height)
	}
	return &builder{
		role: start.Role,
		seq:  &compare.Sequence{Width: start.Width, Height: start.Height},
	}, nil
}

// add appends one image message. Frames whose shape differs from the
// declared resolution are resized to it, the same normalization the
// folder loader applies, so a remote sender can never produce a
// sequence that breaks the shared-resolution invariant.
func (b *builder) add(msg wire.Message) error {
	frame, err := msg.Frame()
	if err != nil {
		return err
	}
	if frame.Width != b.seq.Width || frame.Height != b.seq.Height {
		frame = raster.ResizeBilinear(frame, b.seq.Width, b.seq.Height)
	}
	b.seq.Frames = append(b.seq.Frames, frame)
	return nil
}

// Push binds a PUSH socket to the endpoint and sends the sequence as
// one start/image.../end run.
func Push(ctx context.Context, endpoint, role string, seq *compare.Sequence) error {
	socket, err := zmq4.NewSocket(zmq4.PUSH)
	if err != nil {
		return err
	}
	defer socket.Close()
	if err := socket.Bind(endpoint); err != nil {
		return err
	}

	start, err := wire.EncodeStart(role, seq.Width, seq.Height, seq.Count())
	if err != nil {
		return err
	}
	if _, err := socket.SendBytes(start, 0); err != nil {
		return fmt.Errorf("send start: %w", err)
	}

	for i, frame := range seq.Frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		data, err := wire.EncodeImage(i, frame)
		if err != nil {
			return err
		}
		if _, err := socket.SendBytes(data, 0); err != nil {
			return fmt.Errorf("send frame %d: %w", i, err)
		}
	}

	end, err := wire.EncodeEnd()
	if err != nil {
		return err
	}
	if _, err := socket.SendBytes(end, 0); err != nil {
		return fmt.Errorf("send end: %w", err)
	}
	return nil
}

var logCounter int

func logEveryN(n int, format string, args ...any) {
	logCounter++
	if logCounter%n == 0 {
		log.Printf(format, args...)
	}
}
