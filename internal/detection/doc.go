// Package detection proposes rectangular regions likely to contain
// machine-printed text in noisy photographic images.
//
// The detector decomposes the image into intensity channels (red,
// green, blue, lightness) plus their complements, so that both
// dark-on-light and light-on-dark text register. Each channel is
// blurred, run through a Sobel edge filter, and scanned with sliding
// windows at several text-typical sizes. Windows whose edge density
// falls in the band characteristic of printed glyphs, and whose edge
// runs are predominantly horizontal, become candidate regions;
// overlapping candidates across windows and channels are merged into
// their union.
//
// Candidate rectangles may still duplicate, contain, or overlap one
// another across channels. Deduplication is deliberately left to the
// caller, which owns the merge policy for the whole pipeline.
//
// # Classifier Files
//
// A Detector can be constructed with paths to trained classifier
// files for the two cascade stages and the grouping step. The paths
// are validated at construction; a missing or unreadable file is an
// initialization error. Empty paths select the built-in thresholds.
package detection
