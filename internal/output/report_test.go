package output

import (
	"os"
	"strings"
	"testing"

	"framediff-go/internal/compare"
)

func TestWriteDiffReport(t *testing.T) {
	dir := t.TempDir()
	stats := []compare.FrameStats{
		{Mean: 1.5, Max: 200, Changed: 0.25},
		{Mean: 0, Max: 0, Changed: 0},
	}

	path, err := WriteDiffReport(dir, stats)
	if err != nil {
		t.Fatalf("WriteDiffReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected line count: %d", len(lines))
	}
	if lines[0] != "frame, mean, max, changed_fraction" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "0, 1.5000, 200, 0.250000" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
