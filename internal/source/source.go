// Package source loads frame sequences from videos and image folders.
// It is the frame-source collaborator: failures are reported to the
// caller as errors with the offending path and never touch sequences
// that are already loaded.
package source

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"framediff-go/internal/compare"
	"framediff-go/internal/raster"
)

// maxVideoFrames caps how many frames a video load retains; longer
// videos are subsampled with a fixed stride that preserves temporal
// order.
const maxVideoFrames = 300

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
	".flv": true,
	".wmv": true,
}

// Load dispatches on the path: directories load as sorted image
// folders, files with a known video extension as videos.
func Load(path string) (*compare.Sequence, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFolder(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !videoExts[ext] {
		return nil, fmt.Errorf("unsupported file type %q: %s", ext, path)
	}
	return LoadVideo(path)
}

// LoadFolder reads every image in the directory in lexicographic
// filename order. The sequence resolution comes from the first
// decodable image; stray-sized images are resized to it so the
// sequence invariant holds. Unreadable files are skipped with a
// warning, not a failure; zero valid frames is an error.
func LoadFolder(dir string) (*compare.Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder %s: %w", dir, err)
	}

	seq := &compare.Sequence{}
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		frame, err := loadImage(path)
		if err != nil {
			log.Printf("skipping unreadable image %s: %v", path, err)
			continue
		}
		if seq.Count() == 0 {
			seq.Width = frame.Width
			seq.Height = frame.Height
		} else if frame.Width != seq.Width || frame.Height != seq.Height {
			log.Printf("resizing %s from %dx%d to sequence resolution %dx%d",
				path, frame.Width, frame.Height, seq.Width, seq.Height)
			frame = raster.ResizeBilinear(frame, seq.Width, seq.Height)
		}
		seq.Frames = append(seq.Frames, frame)
	}

	if seq.Count() == 0 {
		return nil, fmt.Errorf("no readable images in folder %s", dir)
	}
	log.Printf("loaded %d images from %s (%dx%d)", seq.Count(), dir, seq.Width, seq.Height)
	return seq, nil
}

func loadImage(path string) (*raster.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return fromImage(img), nil
}

func fromImage(img image.Image) *raster.Frame {
	bounds := img.Bounds()
	out := raster.New(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out.Pix[i] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return out
}

// sampleStride is the frame-keep interval for a video with total
// decoded frames: every strideth frame is retained so at most about
// maxVideoFrames survive.
func sampleStride(total int) int {
	stride := total / maxVideoFrames
	if stride < 1 {
		stride = 1
	}
	return stride
}
