package main

import (
	"flag"
	"fmt"
	"log"

	"framediff-go/internal/compare"
	"framediff-go/internal/output"
	"framediff-go/internal/source"
)

func main() {
	refPath := flag.String("ref", "", "Reference video file or image folder")
	compPath := flag.String("comp", "", "Comparison video file or image folder")
	outputDir := flag.String("output-dir", "output", "Directory for the CSV report")
	flag.Parse()

	if *refPath == "" || *compPath == "" {
		log.Fatal("missing -ref or -comp")
	}

	ref, err := source.Load(*refPath)
	if err != nil {
		log.Fatalf("load reference %s: %v", *refPath, err)
	}
	comp, err := source.Load(*compPath)
	if err != nil {
		log.Fatalf("load comparison %s: %v", *compPath, err)
	}

	store := compare.NewPairStore()
	store.SetReference(ref)
	store.SetComparison(comp)

	n := store.FrameCount()
	if n == 0 {
		log.Fatal("no overlapping frames to compare")
	}

	stats := make([]compare.FrameStats, 0, n)
	for i := 0; i < n; i++ {
		r, c, _ := store.Pair(i, false)
		stats = append(stats, compare.DiffStats(r, c))
	}

	var worst int
	var meanSum float64
	for i, s := range stats {
		meanSum += s.Mean
		if s.Mean > stats[worst].Mean {
			worst = i
		}
	}
	fmt.Printf("frames compared: %d\n", n)
	fmt.Printf("mean difference: %.4f\n", meanSum/float64(n))
	fmt.Printf("worst frame: %d (mean %.4f, max %d, changed %.6f)\n",
		worst, stats[worst].Mean, stats[worst].Max, stats[worst].Changed)

	path, err := output.WriteDiffReport(*outputDir, stats)
	if err != nil {
		log.Fatalf("write report: %v", err)
	}
	fmt.Printf("report written to %s\n", path)
}
