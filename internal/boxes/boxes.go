// Package boxes implements deduplication of candidate text rectangles
// and the area heuristic that picks the OCR decomposition strategy.
//
// Region detectors on noisy images produce rectangle sets with exact
// duplicates, full containments, and partial overlaps. Dedupe reduces
// such a set to one where no rectangle contains another and no two
// rectangles intersect with positive area, without ever reshaping a
// surviving rectangle.
package boxes

import "image"

// Dedupe removes redundant rectangles from a candidate set.
//
// Two filtering passes run in sequence:
//
//  1. Containment: a rectangle fully contained in another (both corners
//     inside its bounds) is dropped. Exact duplicates count as mutual
//     containment; the earliest occurrence survives.
//  2. Overlap: of two rectangles with a positive-area intersection, the
//     smaller is dropped. On an exact area tie the earlier rectangle in
//     the input survives.
//
// Surviving rectangles keep their original geometry. The input slice is
// not modified; the result preserves input order and is identical across
// calls with identical input. An empty input yields an empty output.
func Dedupe(rects []image.Rectangle) []image.Rectangle {
	return removeOverlapping(removeContained(rects))
}

// removeContained drops every rectangle fully contained in another.
func removeContained(rects []image.Rectangle) []image.Rectangle {
	kept := make([]image.Rectangle, 0, len(rects))

outer:
	for i, r := range rects {
		for j, other := range rects {
			if i == j || !contains(other, r) {
				continue
			}
			if contains(r, other) && i < j {
				// Exact duplicate; first occurrence wins.
				continue
			}
			continue outer
		}
		kept = append(kept, r)
	}
	return kept
}

// removeOverlapping drops the smaller of every pair of rectangles with a
// positive-area intersection. Input must already be containment-free.
func removeOverlapping(rects []image.Rectangle) []image.Rectangle {
	dropped := make([]bool, len(rects))

	for i := 0; i < len(rects); i++ {
		if dropped[i] {
			continue
		}
		for j := i + 1; j < len(rects); j++ {
			if dropped[j] {
				continue
			}
			if area(rects[i].Intersect(rects[j])) == 0 {
				continue
			}
			if area(rects[j]) > area(rects[i]) {
				dropped[i] = true
				break
			}
			// Smaller or equal area: the earlier rectangle wins.
			dropped[j] = true
		}
	}

	kept := make([]image.Rectangle, 0, len(rects))
	for i, r := range rects {
		if !dropped[i] {
			kept = append(kept, r)
		}
	}
	return kept
}

// contains reports whether a fully contains b, corners inclusive.
func contains(a, b image.Rectangle) bool {
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y &&
		b.Max.X <= a.Max.X && b.Max.Y <= a.Max.Y
}

// SumArea returns the total pixel area of all rectangles. Overlapping
// regions are counted once per rectangle, matching the coverage
// heuristic used by DominatesImage.
func SumArea(rects []image.Rectangle) int {
	total := 0
	for _, r := range rects {
		total += area(r)
	}
	return total
}

// DominatesImage reports whether the rectangles cover at least half of
// the image area. When they do, the image is treated as dominated by
// text and recognized as a single block instead of per-rectangle crops;
// the threshold is inclusive and uses integer halving.
func DominatesImage(rects []image.Rectangle, bounds image.Rectangle) bool {
	return SumArea(rects) >= area(bounds)/2
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
