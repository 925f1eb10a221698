//go:build !gocv

package source

import (
	"fmt"

	"framediff-go/internal/compare"
)

func LoadVideo(path string) (*compare.Sequence, error) {
	return nil, fmt.Errorf("video decoding not enabled; build with -tags gocv to load %s", path)
}
