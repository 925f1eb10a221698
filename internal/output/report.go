package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"framediff-go/internal/compare"
)

// WriteDiffReport writes per-frame difference statistics as CSV and
// returns the file path.
func WriteDiffReport(outputDir string, stats []compare.FrameStats) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("%s_diff_report.csv", Timestamp()))
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}

	_, _ = fmt.Fprintln(f, "frame, mean, max, changed_fraction")
	for i, s := range stats {
		_, _ = fmt.Fprintf(f, "%d, %.4f, %d, %.6f\n", i, s.Mean, s.Max, s.Changed)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filename, nil
}

func Timestamp() string {
	return time.Now().Format("20060102_150405")
}
