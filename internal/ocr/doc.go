// Package ocr adapts the Tesseract OCR engine (via gosseract/v2) to
// the recognition pipeline.
//
// Engine use is session-scoped: a Session is opened for one top-level
// recognition call, reused sequentially for every prepared text area
// of that call, and closed when the call ends. Initialization is the
// expensive step, so the session is shared across areas, but feeding a
// new image fully replaces the engine's per-area state, so no
// recognition context leaks from one area to the next.
//
// # Prerequisites
//
// Tesseract must be installed on the system together with the trained
// language data for the configured language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Error Handling
//
// Opening a session fails if the engine or the language data is
// unavailable; callers should treat that as fatal for the whole
// recognition call. A failed recognition of a single area is reported
// per call to Recognize and is safe to skip.
package ocr
