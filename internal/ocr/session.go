package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// DefaultLanguage is the trained dictionary used when no language is
// configured.
const DefaultLanguage = "eng"

// Session is a scoped handle on the Tesseract engine, valid for one
// recognition call. It is not safe for concurrent use; drive it from
// a single goroutine and Close it when the call ends.
type Session struct {
	client *gosseract.Client
}

// NewSession initializes the engine with the trained dictionary for
// the given language ("eng" if empty).
//
// Failure here means the engine itself or its language data is
// unusable, which is fatal for the recognition call being served.
func NewSession(language string) (*Session, error) {
	if language == "" {
		language = DefaultLanguage
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not initialize ocr engine: %w", err)
	}
	return &Session{client: client}, nil
}

// Recognize runs the engine over one prepared text area and returns
// the raw recognized text.
//
// Feeding the area replaces all per-image engine state from the
// previous call, so successive areas cannot contaminate each other.
// An error indicates the engine could not read this one area; the
// session remains usable for further areas.
func (s *Session) Recognize(area image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, area); err != nil {
		return "", fmt.Errorf("failed to encode text area: %w", err)
	}

	if err := s.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set text area: %w", err)
	}

	text, err := s.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return text, nil
}

// Close releases the engine session. The Session must not be used
// afterwards.
func (s *Session) Close() error {
	return s.client.Close()
}

// Version returns the version string of the linked Tesseract library.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
