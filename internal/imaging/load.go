package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// Load reads and decodes an image file.
//
// Supported formats are PNG, JPEG, and GIF. The concrete type of the
// returned image depends on the source format and color model (e.g.
// *image.RGBA, *image.NRGBA, *image.YCbCr).
//
// Returns an error if the file cannot be opened or is not a valid
// image in a supported format.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
