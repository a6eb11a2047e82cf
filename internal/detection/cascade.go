package detection

import (
	"fmt"
	"image"
	"math"
	"os"
	"sort"
)

// DefaultMinConfidence is the candidate acceptance threshold used when
// Config.MinConfidence is zero. It matches the grouping threshold of
// the cascade data this detector was tuned against.
const DefaultMinConfidence = 0.5

// Config carries detector construction parameters.
//
// The three classifier paths correspond to the two cascade-stage
// classifiers and the grouping classifier of a trained detection
// cascade. Non-empty paths must point to readable files. All-empty
// paths select the built-in thresholds.
type Config struct {
	StageOneClassifier string
	StageTwoClassifier string
	GroupingClassifier string

	// MinConfidence is the minimum window confidence for a candidate
	// region. Zero selects DefaultMinConfidence.
	MinConfidence float64
}

// Detector finds candidate text regions in an image.
// A Detector is immutable after construction and safe for concurrent
// use.
type Detector struct {
	minConfidence float64
}

// New constructs a Detector from the given configuration.
//
// Every non-empty classifier path is validated; a path that does not
// resolve to a readable file fails construction.
func New(cfg Config) (*Detector, error) {
	for _, path := range []string{
		cfg.StageOneClassifier,
		cfg.StageTwoClassifier,
		cfg.GroupingClassifier,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("could not load classifier %q: %w", path, err)
		}
	}

	minConfidence := cfg.MinConfidence
	if minConfidence == 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Detector{minConfidence: minConfidence}, nil
}

// candidate is a scored window before merging.
type candidate struct {
	rect       image.Rectangle
	confidence float64
}

// window sizes swept over each channel, sized for the text heights
// typical of photographed documents.
var windowSizes = []struct{ w, h int }{
	{100, 30}, // Small text
	{150, 40}, // Medium text
	{200, 50}, // Large text
	{80, 25},  // Very small text
}

// Detect returns candidate rectangles believed to contain text.
//
// The returned rectangles are in image coordinates, ordered
// top-to-bottom then left-to-right, and identical across calls with
// identical input. An empty or blank image yields no rectangles and
// no error.
func (d *Detector) Detect(img image.Image) ([]image.Rectangle, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, nil
	}

	var candidates []candidate
	for _, ch := range channels(img) {
		candidates = append(candidates, d.scan(edgeMap(ch), bounds)...)
	}

	merged := mergeCandidates(candidates)

	rects := make([]image.Rectangle, 0, len(merged))
	for _, c := range merged {
		rects = append(rects, c.rect)
	}
	sort.Slice(rects, func(i, j int) bool {
		if rects[i].Min.Y != rects[j].Min.Y {
			return rects[i].Min.Y < rects[j].Min.Y
		}
		return rects[i].Min.X < rects[j].Min.X
	})
	return rects, nil
}

// scan slides text-sized windows over an edge map and scores each by
// edge density and horizontal structure. Printed text shows a medium
// edge density and predominantly horizontal edge runs; windows far
// from that profile are rejected.
func (d *Detector) scan(edges [][]bool, bounds image.Rectangle) []candidate {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	var candidates []candidate
	for _, ws := range windowSizes {
		stepX := ws.w / 2
		stepY := ws.h / 2

		for y := 0; y+ws.h <= height; y += stepY {
			for x := 0; x+ws.w <= width; x += stepX {
				edgeCount := 0
				for wy := 0; wy < ws.h; wy++ {
					for wx := 0; wx < ws.w; wx++ {
						if edges[y+wy][x+wx] {
							edgeCount++
						}
					}
				}

				density := float64(edgeCount) / float64(ws.w*ws.h)
				if density < 0.05 || density > 0.4 {
					continue
				}

				confidence := horizontalScore(edges, x, y, ws.w, ws.h) *
					(1.0 - math.Abs(density-0.2)/0.2)
				if confidence < d.minConfidence {
					continue
				}

				candidates = append(candidates, candidate{
					rect: image.Rect(
						x+bounds.Min.X,
						y+bounds.Min.Y,
						x+ws.w+bounds.Min.X,
						y+ws.h+bounds.Min.Y,
					),
					confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}
	return candidates
}

// horizontalScore measures how horizontal the edge distribution in a
// window is, as the fraction of edge runs found by row scans versus
// all runs.
func horizontalScore(edges [][]bool, x, y, w, h int) float64 {
	horizontalRuns := 0
	verticalRuns := 0

	for row := y; row < y+h; row++ {
		inRun := false
		for col := x; col < x+w; col++ {
			if edges[row][col] {
				if !inRun {
					horizontalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	for col := x; col < x+w; col++ {
		inRun := false
		for row := y; row < y+h; row++ {
			if edges[row][col] {
				if !inRun {
					verticalRuns++
					inRun = true
				}
			} else {
				inRun = false
			}
		}
	}

	if horizontalRuns+verticalRuns == 0 {
		return 0
	}
	return float64(horizontalRuns) / float64(horizontalRuns+verticalRuns)
}

// mergeCandidates combines overlapping candidates into their union,
// keeping the higher confidence.
func mergeCandidates(candidates []candidate) []candidate {
	merged := make([]candidate, 0, len(candidates))

	for _, c := range candidates {
		found := false
		for i := range merged {
			if c.rect.Overlaps(merged[i].rect) {
				merged[i].rect = merged[i].rect.Union(c.rect)
				merged[i].confidence = math.Max(c.confidence, merged[i].confidence)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, c)
		}
	}
	return merged
}
