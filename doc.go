// Package textsieve locates and reads machine-printed text in noisy,
// low-quality photographic images.
//
// A Recognizer runs a fixed pipeline per image: a region detector
// proposes candidate rectangles, the candidates are deduplicated so no
// rectangle contains or overlaps another, an area heuristic decides
// between one whole-image grayscale text area or one binarized crop
// per rectangle, each area is recognized by a session-scoped OCR
// engine, and the cleaned per-area fragments are concatenated into the
// result string.
//
//	r, err := textsieve.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := r.FromFile("receipt.jpg")
//
// An empty result string means no readable text was found; it is not
// an error. Unreadable individual regions are skipped silently, so a
// few bad detections never sink a whole recognition.
//
// Recognizers are independent: each holds its own configuration and
// opens its own engine session per call, so concurrent Recognizers
// with different configurations do not interfere.
package textsieve
