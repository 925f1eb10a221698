package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"framediff-go/internal/compare"
	"framediff-go/internal/config"
	"framediff-go/internal/server"
	"framediff-go/internal/session"
	"framediff-go/internal/simulator"
	"framediff-go/internal/source"
	"framediff-go/internal/stream"
	"framediff-go/internal/wire"
)

func main() {
	var (
		port        = flag.Int("port", 8888, "HTTP port for the web UI")
		refPath     = flag.String("ref", "", "Reference video file or image folder")
		compPath    = flag.String("comp", "", "Comparison video file or image folder")
		endpoint    = flag.String("endpoint", "", "ZMQ endpoint to pull sequences from (optional)")
		viewWidth   = flag.Int("view-width", 640, "Rendered panel width in pixels")
		viewHeight  = flag.Int("view-height", 480, "Rendered panel height in pixels")
		debug       = flag.Bool("debug", false, "Run with simulated sequences")
		debugFrames = flag.Int("debug-frames", 120, "Simulated sequence length")
		debugWidth  = flag.Int("debug-width", 320, "Simulated frame width")
		debugHeight = flag.Int("debug-height", 240, "Simulated frame height")
		logEvery    = flag.Int("log-every", 100, "Log every Nth stream decode error")
	)
	flag.Parse()

	cfg := config.AppConfig{
		Port:        *port,
		RefPath:     *refPath,
		CompPath:    *compPath,
		Endpoint:    *endpoint,
		ViewWidth:   *viewWidth,
		ViewHeight:  *viewHeight,
		Debug:       *debug,
		DebugFrames: *debugFrames,
		DebugWidth:  *debugWidth,
		DebugHeight: *debugHeight,
		LogEvery:    *logEvery,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := compare.NewPairStore()
	sess := session.New(store, cfg.ViewWidth, cfg.ViewHeight)

	if cfg.Debug {
		ref, comp := simulator.Sequences(cfg.DebugFrames, cfg.DebugWidth, cfg.DebugHeight)
		sess.SetReference(ref)
		sess.SetComparison(comp)
		log.Printf("loaded simulated pair: %d frames %dx%d", cfg.DebugFrames, cfg.DebugWidth, cfg.DebugHeight)
	} else {
		if cfg.RefPath != "" {
			seq, err := source.Load(cfg.RefPath)
			if err != nil {
				log.Fatalf("failed to load reference %s: %v", cfg.RefPath, err)
			}
			sess.SetReference(seq)
			log.Printf("loaded reference %s: %d frames %dx%d", cfg.RefPath, seq.Count(), seq.Width, seq.Height)
		}
		if cfg.CompPath != "" {
			seq, err := source.Load(cfg.CompPath)
			if err != nil {
				log.Fatalf("failed to load comparison %s: %v", cfg.CompPath, err)
			}
			sess.SetComparison(seq)
			log.Printf("loaded comparison %s: %d frames %dx%d", cfg.CompPath, seq.Count(), seq.Width, seq.Height)
		}
	}

	renderRequests := make(chan struct{}, 1)
	requestRender := func() {
		select {
		case renderRequests <- struct{}{}:
		default:
		}
	}

	if cfg.Endpoint != "" {
		incoming, err := stream.Pull(ctx, cfg.Endpoint, cfg.LogEvery)
		if err != nil {
			log.Fatalf("failed to start pulling from %s: %v", cfg.Endpoint, err)
		}
		go func() {
			for in := range incoming {
				switch in.Role {
				case wire.RoleComparison:
					sess.SetComparison(in.Seq)
				default:
					sess.SetReference(in.Seq)
				}
				log.Printf("received %s sequence: %d frames %dx%d", in.Role, in.Seq.Count(), in.Seq.Width, in.Seq.Height)
				requestRender()
			}
		}()
	}

	frames := make(chan []byte, 4)

	// The display loop is the only goroutine calling Render: the
	// returned triplet aliases scratch buffers that the next call
	// overwrites, so the payload must be encoded before looping.
	go func() {
		timer := time.NewTimer(sess.Interval())
		defer timer.Stop()
		render := func() {
			trip := sess.Render()
			if trip == nil {
				return
			}
			panels := []wire.Panel{
				{Name: "reference", Width: trip.Ref.Width, Height: trip.Ref.Height, Pix: trip.Ref.Pix},
				{Name: "comparison", Width: trip.Comp.Width, Height: trip.Comp.Height, Pix: trip.Comp.Pix},
			}
			if trip.Diff != nil {
				panels = append(panels, wire.Panel{Name: "diff", Width: trip.Diff.Width, Height: trip.Diff.Height, Pix: trip.Diff.Pix})
			}
			payload, err := wire.EncodeTriplet(trip.Index, trip.Total, panels)
			if err != nil {
				log.Printf("failed to encode triplet: %v", err)
				return
			}
			select {
			case <-ctx.Done():
			case frames <- payload:
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-renderRequests:
				render()
			case <-timer.C:
				if sess.Playing() && sess.Advance() {
					render()
				}
				timer.Reset(sess.Interval())
			}
		}
	}()

	log.Printf("Starting web UI at http://localhost:%d\n", cfg.Port)
	if err := server.Run(ctx, cfg, sess, frames, requestRender); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped: %v", err)
	}
}
