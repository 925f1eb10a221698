package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"framediff-go/internal/compare"
	"framediff-go/internal/simulator"
	"framediff-go/internal/source"
	"framediff-go/internal/stream"
	"framediff-go/internal/wire"
)

func main() {
	var (
		path        = flag.String("path", "", "Video file or image folder to send")
		endpoint    = flag.String("endpoint", "tcp://*:31001", "ZMQ endpoint to bind")
		role        = flag.String("role", wire.RoleReference, "Role assigned to the sequence (reference or comparison)")
		debug       = flag.Bool("debug", false, "Send a simulated sequence instead of a file")
		debugFrames = flag.Int("debug-frames", 120, "Simulated sequence length")
		debugWidth  = flag.Int("debug-width", 320, "Simulated frame width")
		debugHeight = flag.Int("debug-height", 240, "Simulated frame height")
	)
	flag.Parse()

	if *role != wire.RoleReference && *role != wire.RoleComparison {
		log.Fatalf("unknown role %q", *role)
	}

	var seq *compare.Sequence
	if *debug {
		ref, comp := simulator.Sequences(*debugFrames, *debugWidth, *debugHeight)
		seq = ref
		if *role == wire.RoleComparison {
			seq = comp
		}
	} else {
		if *path == "" {
			log.Fatal("missing -path")
		}
		loaded, err := source.Load(*path)
		if err != nil {
			log.Fatalf("load %s: %v", *path, err)
		}
		seq = loaded
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("sending %s sequence: %d frames %dx%d via %s", *role, seq.Count(), seq.Width, seq.Height, *endpoint)
	if err := stream.Push(ctx, *endpoint, *role, seq); err != nil {
		log.Fatalf("send failed: %v", err)
	}
	log.Printf("done")
}
