// Package imaging loads source images and prepares recognizer-ready
// text areas from them.
//
// A text area is either the whole source image converted to grayscale,
// or a single rectangle crop converted to grayscale and binarized with
// an automatic Otsu threshold. Which of the two is produced depends on
// how much of the image the detected rectangles cover; see
// PrepareAreas.
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner. Regions use an inclusive top-left and exclusive bottom-right
// corner, matching the standard library image.Rectangle convention.
//
// Prepared areas are ephemeral: they exist for one recognition call
// and hold no reference back to the source image.
package imaging
