package detection

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/lucasb-eyer/go-colorful"
)

// sobelEdgeLevel is the minimum Sobel magnitude counted as an edge.
const sobelEdgeLevel = 128

// blurRadius smooths sensor noise before edge extraction.
const blurRadius = 1.4

// channels decomposes an image into the intensity planes the detector
// scans: red, green, blue and lightness, followed by the complements
// of the color planes so light-on-dark text registers as well.
func channels(img image.Image) []image.Image {
	base := []image.Image{
		colorChannel(img, 0),
		colorChannel(img, 1),
		colorChannel(img, 2),
		lightnessChannel(img),
	}

	out := make([]image.Image, 0, 2*len(base)-1)
	out = append(out, base...)
	for _, ch := range base[:len(base)-1] {
		out = append(out, effect.Invert(ch))
	}
	return out
}

// colorChannel extracts a single color plane (0 = red, 1 = green,
// 2 = blue) as a grayscale image.
func colorChannel(img image.Image, idx int) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			var v uint32
			switch idx {
			case 0:
				v = r
			case 1:
				v = g
			default:
				v = bl
			}
			out.SetGray(x, y, color.Gray{Y: uint8(v >> 8)})
		}
	}
	return out
}

// lightnessChannel extracts perceptual lightness as a grayscale image.
func lightnessChannel(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			_, _, l := c.Hsl()
			out.SetGray(x, y, color.Gray{Y: uint8(l*255 + 0.5)})
		}
	}
	return out
}

// edgeMap blurs a channel, applies a Sobel filter and thresholds the
// magnitudes into a boolean edge grid indexed [y][x] from the top-left
// corner of the channel.
func edgeMap(ch image.Image) [][]bool {
	sobel := effect.Sobel(blur.Gaussian(ch, blurRadius))

	b := sobel.Bounds()
	edges := make([][]bool, b.Dy())
	for y := range edges {
		edges[y] = make([]bool, b.Dx())
		for x := range edges[y] {
			r, _, _, _ := sobel.At(b.Min.X+x, b.Min.Y+y).RGBA()
			edges[y][x] = uint8(r>>8) >= sobelEdgeLevel
		}
	}
	return edges
}
