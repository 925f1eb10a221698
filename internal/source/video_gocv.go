//go:build gocv

package source

import (
	"fmt"
	"log"

	"gocv.io/x/gocv"

	"framediff-go/internal/compare"
	"framediff-go/internal/raster"
)

// LoadVideo decodes a video through OpenCV, keeping every strideth
// frame so at most about maxVideoFrames are retained.
func LoadVideo(path string) (*compare.Sequence, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	defer capture.Close()

	total := int(capture.Get(gocv.VideoCaptureFrameCount))
	stride := sampleStride(total)

	seq := &compare.Sequence{
		Width:  int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}

	bgr := gocv.NewMat()
	defer bgr.Close()
	rgb := gocv.NewMat()
	defer rgb.Close()

	for i := 0; capture.Read(&bgr); i++ {
		if i%stride != 0 {
			continue
		}
		gocv.CvtColor(bgr, &rgb, gocv.ColorBGRToRGB)
		seq.Frames = append(seq.Frames, matToFrame(&rgb))
	}

	if seq.Count() == 0 {
		return nil, fmt.Errorf("no frames decoded from video %s", path)
	}
	log.Printf("loaded video %s: %dx%d, %d frames (stride %d)",
		path, seq.Width, seq.Height, seq.Count(), stride)
	return seq, nil
}

func matToFrame(m *gocv.Mat) *raster.Frame {
	out := raster.New(m.Cols(), m.Rows())
	copy(out.Pix, m.ToBytes())
	return out
}
