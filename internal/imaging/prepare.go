package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/textsieve/textsieve/internal/boxes"
)

// PrepareAreas materializes the text areas for one recognition call.
//
// When the deduplicated rectangles cover at least half of the image, a
// noisy detector has usually over-segmented a page of dense text; in
// that regime per-box cropping adds cost without accuracy, so the whole
// image is converted to grayscale and emitted as a single area. Below
// that coverage each rectangle becomes an independent crop, converted
// to grayscale and binarized so the recognizer sees clean dark-on-light
// glyphs.
//
// An empty rectangle set yields no areas. Rectangles are processed in
// the order given; the returned areas keep that order.
func PrepareAreas(img image.Image, rects []image.Rectangle) []image.Image {
	if len(rects) == 0 {
		return nil
	}

	if boxes.DominatesImage(rects, img.Bounds()) {
		return []image.Image{Grayscale(img)}
	}

	areas := make([]image.Image, 0, len(rects))
	for _, r := range rects {
		areas = append(areas, Binarize(CropBox(img, r)))
	}
	return areas
}

// Grayscale converts an image to its grayscale equivalent.
func Grayscale(img image.Image) *image.NRGBA {
	return imaging.Grayscale(img)
}

// CropBox extracts a rectangular region from an image. The rectangle
// is clipped to the image bounds first.
func CropBox(img image.Image, r image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, r.Intersect(img.Bounds()))
}

// Binarize converts an image to a two-level black and white image
// using a global threshold selected by Otsu's method over the
// grayscale intensity histogram.
func Binarize(img image.Image) *image.Gray {
	gray := imaging.Grayscale(img)
	return segment.Threshold(gray, otsuLevel(gray))
}

// otsuLevel selects the global threshold that maximizes between-class
// variance of the intensity histogram. The returned value is the lowest
// intensity classified as foreground, matching segment.Threshold's
// inclusive comparison.
func otsuLevel(img *image.NRGBA) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Grayscale pixels carry intensity in every channel.
			hist[img.NRGBAAt(x, y).R]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, weightB, maxVariance float64
	var level uint8
	for t := 0; t < 256; t++ {
		weightB += float64(hist[t])
		if weightB == 0 {
			continue
		}
		weightF := float64(total) - weightB
		if weightF == 0 {
			break
		}

		sumB += float64(t) * float64(hist[t])
		meanB := sumB / weightB
		meanF := (sum - sumB) / weightF
		variance := weightB * weightF * (meanB - meanF) * (meanB - meanF)
		if variance > maxVariance {
			maxVariance = variance
			// t is the last background intensity; foreground
			// starts one level above it.
			level = uint8(t) + 1
		}
	}
	return level
}
