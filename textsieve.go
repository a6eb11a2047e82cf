package textsieve

import (
	"fmt"
	"image"

	"github.com/textsieve/textsieve/internal/boxes"
	"github.com/textsieve/textsieve/internal/detection"
	"github.com/textsieve/textsieve/internal/imaging"
	"github.com/textsieve/textsieve/internal/ocr"
	"github.com/textsieve/textsieve/internal/textproc"
)

// DefaultLanguage is the trained OCR dictionary used unless
// WithLanguage overrides it.
const DefaultLanguage = ocr.DefaultLanguage

// Detector proposes candidate rectangles believed to contain text.
// Implementations may return duplicates, containments and overlaps;
// the Recognizer deduplicates. A Detect error is fatal for the
// recognition call it serves.
type Detector interface {
	Detect(img image.Image) ([]image.Rectangle, error)
}

// Engine is an OCR engine session scoped to one recognition call. It
// is driven sequentially: one Recognize per prepared text area, then
// Close. A Recognize error marks that single area unreadable and is
// not fatal.
type Engine interface {
	Recognize(area image.Image) (string, error)
	Close() error
}

// EngineFactory opens a fresh engine session for one recognition call,
// initialized with the given trained language. A factory error is
// fatal for the call.
type EngineFactory func(language string) (Engine, error)

// Recognizer reads machine-printed text from images. Construct with
// New; the zero value is not usable.
//
// A Recognizer is safe for concurrent use: configuration is immutable
// after New, and every call opens its own engine session.
type Recognizer struct {
	detector       Detector
	newEngine      EngineFactory
	language       string
	normalizeWords bool

	classifiers detection.Config
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithLanguage sets the trained OCR dictionary identifier (for
// example "eng").
func WithLanguage(language string) Option {
	return func(r *Recognizer) { r.language = language }
}

// WithClassifiers sets the paths to the two cascade-stage classifier
// files and the grouping classifier file used by the built-in
// detector. The paths are validated during New. The setting belongs
// to this Recognizer only; other instances are unaffected.
func WithClassifiers(stageOne, stageTwo, grouping string) Option {
	return func(r *Recognizer) {
		r.classifiers.StageOneClassifier = stageOne
		r.classifiers.StageTwoClassifier = stageTwo
		r.classifiers.GroupingClassifier = grouping
	}
}

// WithDetector replaces the built-in region detector.
func WithDetector(d Detector) Option {
	return func(r *Recognizer) { r.detector = d }
}

// WithEngineFactory replaces the default Tesseract engine factory.
func WithEngineFactory(f EngineFactory) Option {
	return func(r *Recognizer) { r.newEngine = f }
}

// WithWordNormalization drops repeated identical words from the final
// result, keeping first occurrences. Off by default.
func WithWordNormalization() Option {
	return func(r *Recognizer) { r.normalizeWords = true }
}

// New constructs a Recognizer.
//
// Unless overridden by options, the Recognizer uses the built-in
// region detector and a per-call Tesseract session with the default
// language. New fails if a configured classifier file cannot be
// loaded.
func New(opts ...Option) (*Recognizer, error) {
	r := &Recognizer{
		language:  DefaultLanguage,
		newEngine: defaultEngineFactory,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.detector == nil {
		d, err := detection.New(r.classifiers)
		if err != nil {
			return nil, fmt.Errorf("failed to create text detector: %w", err)
		}
		r.detector = d
	}
	return r, nil
}

func defaultEngineFactory(language string) (Engine, error) {
	return ocr.NewSession(language)
}

// FromFile recognizes text in an image file.
//
// Fails with an input error if the path is empty or the file cannot
// be decoded into an image; otherwise behaves like FromImage.
func (r *Recognizer) FromFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("bad file name")
	}

	img, err := imaging.Load(path)
	if err != nil {
		return "", err
	}
	return r.FromImage(img)
}

// FromImage recognizes text in an already-decoded image.
//
// The image is only read for the duration of the call. The returned
// string is the space-separated concatenation of the cleaned per-area
// fragments, each followed by a single separating space; an empty
// string means no text was found and is not an error.
func (r *Recognizer) FromImage(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", fmt.Errorf("empty image")
	}

	rects, err := r.detector.Detect(img)
	if err != nil {
		return "", fmt.Errorf("text detection failed: %w", err)
	}
	if len(rects) == 0 {
		return "", nil
	}

	areas := imaging.PrepareAreas(img, boxes.Dedupe(rects))

	engine, err := r.newEngine(r.language)
	if err != nil {
		return "", fmt.Errorf("could not initialize ocr engine: %w", err)
	}
	defer engine.Close()

	fragments := make([]string, 0, len(areas))
	for _, area := range areas {
		raw, err := engine.Recognize(area)
		if err != nil {
			// The engine could not read this one region; its
			// absence reduces the result but never aborts the call.
			continue
		}
		if clean := textproc.Sanitize(raw); clean != "" {
			fragments = append(fragments, clean)
		}
	}

	result := textproc.Assemble(fragments)
	if r.normalizeWords {
		result = textproc.NormalizeWords(result)
	}
	return result, nil
}
