package textsieve

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubDetector returns a fixed rectangle set.
type stubDetector struct {
	rects []image.Rectangle
	err   error
}

func (d *stubDetector) Detect(image.Image) ([]image.Rectangle, error) {
	return d.rects, d.err
}

// stubEngine maps successive areas to canned raw fragments.
type stubEngine struct {
	fragments []string
	errs      []error
	calls     int
	closed    bool
}

func (e *stubEngine) Recognize(area image.Image) (string, error) {
	i := e.calls
	e.calls++
	if i < len(e.errs) && e.errs[i] != nil {
		return "", e.errs[i]
	}
	if i < len(e.fragments) {
		return e.fragments[i], nil
	}
	return "", nil
}

func (e *stubEngine) Close() error {
	e.closed = true
	return nil
}

func stubFactory(engine *stubEngine) EngineFactory {
	return func(string) (Engine, error) { return engine, nil }
}

// createTwoWordImage draws two dark blocks on a light background,
// standing in for two well-separated printed words.
func createTwoWordImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{230, 230, 230, 255})
		}
	}
	for y := 20; y < 40; y++ {
		for x := 10; x < 80; x++ {
			img.Set(x, y, color.RGBA{20, 20, 20, 255})
		}
		for x := 110; x < 180; x++ {
			img.Set(x, y, color.RGBA{20, 20, 20, 255})
		}
	}
	return img
}

func TestFromImage_TwoRegions(t *testing.T) {
	engine := &stubEngine{fragments: []string{"Hello", "World!"}}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(10, 20, 80, 40),
			image.Rect(110, 20, 180, 40),
		}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got != "Hello World! " {
		t.Errorf("result: got %q, want %q", got, "Hello World! ")
	}
	if engine.calls != 2 {
		t.Errorf("engine calls: got %d, want 2", engine.calls)
	}
	if !engine.closed {
		t.Error("engine session was not closed")
	}
}

func TestFromImage_SanitizesRawFragments(t *testing.T) {
	engine := &stubEngine{fragments: []string{
		"  He!!o\x01\x02  World\n\n\n",
		"\x00\x1f@#$",
		"second  region ",
	}}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(0, 0, 40, 20),
			image.Rect(50, 0, 90, 20),
			image.Rect(100, 0, 140, 20),
		}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	// The all-noise middle fragment sanitizes to empty and is dropped.
	want := "He!!o World second region "
	if got != want {
		t.Errorf("result: got %q, want %q", got, want)
	}
}

func TestFromImage_NoRegionsShortCircuits(t *testing.T) {
	factoryCalled := false
	r, err := New(
		WithDetector(&stubDetector{}),
		WithEngineFactory(func(string) (Engine, error) {
			factoryCalled = true
			return &stubEngine{}, nil
		}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got != "" {
		t.Errorf("result: got %q, want empty string", got)
	}
	if factoryCalled {
		t.Error("engine session opened despite empty detection")
	}
}

func TestFromImage_UnreadableAreaSkipped(t *testing.T) {
	engine := &stubEngine{
		fragments: []string{"first", "", "third"},
		errs:      []error{nil, errors.New("unreadable region"), nil},
	}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(0, 0, 40, 20),
			image.Rect(50, 0, 90, 20),
			image.Rect(100, 0, 140, 20),
		}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage should not fail for a single unreadable area: %v", err)
	}
	if got != "first third " {
		t.Errorf("result: got %q, want %q", got, "first third ")
	}
}

func TestFromImage_EngineInitFailureIsFatal(t *testing.T) {
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{image.Rect(0, 0, 40, 20)}}),
		WithEngineFactory(func(string) (Engine, error) {
			return nil, errors.New("no trained data")
		}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = r.FromImage(createTwoWordImage())
	if err == nil {
		t.Fatal("FromImage should fail when the engine cannot initialize")
	}
	if !strings.Contains(err.Error(), "initialize") {
		t.Errorf("error should mention initialization: %v", err)
	}
}

func TestFromImage_DetectorFailureIsFatal(t *testing.T) {
	r, err := New(
		WithDetector(&stubDetector{err: errors.New("cascade exploded")}),
		WithEngineFactory(stubFactory(&stubEngine{})),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = r.FromImage(createTwoWordImage())
	if err == nil {
		t.Fatal("FromImage should propagate detector errors")
	}
	if !strings.Contains(err.Error(), "cascade exploded") {
		t.Errorf("original diagnostic lost: %v", err)
	}
}

func TestFromImage_DeduplicatesDetectorOutput(t *testing.T) {
	// Duplicate and contained rectangles collapse to one area.
	engine := &stubEngine{fragments: []string{"once", "twice", "thrice"}}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(10, 20, 80, 40),
			image.Rect(10, 20, 80, 40),
			image.Rect(20, 25, 70, 35),
		}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("engine calls: got %d, want 1 after dedup", engine.calls)
	}
	if got != "once " {
		t.Errorf("result: got %q, want %q", got, "once ")
	}
}

func TestFromImage_WholeImageStrategy(t *testing.T) {
	// A single rectangle covering over half the image collapses the
	// call to one whole-frame area.
	engine := &stubEngine{fragments: []string{"whole frame"}}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{image.Rect(0, 0, 200, 60)}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img := createTwoWordImage() // 200x100, rect covers 12000 of 20000 px
	got, err := r.FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if engine.calls != 1 {
		t.Fatalf("engine calls: got %d, want 1", engine.calls)
	}
	if got != "whole frame " {
		t.Errorf("result: got %q, want %q", got, "whole frame ")
	}
}

func TestFromImage_WordNormalization(t *testing.T) {
	engine := &stubEngine{fragments: []string{"stop ahead", "stop now"}}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(0, 0, 40, 20),
			image.Rect(50, 0, 90, 20),
		}}),
		WithEngineFactory(stubFactory(engine)),
		WithWordNormalization(),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if got != "stop ahead now" {
		t.Errorf("normalized result: got %q, want %q", got, "stop ahead now")
	}
}

func TestFromImage_NilAndEmpty(t *testing.T) {
	r, err := New(
		WithDetector(&stubDetector{}),
		WithEngineFactory(stubFactory(&stubEngine{})),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := r.FromImage(nil); err == nil {
		t.Error("FromImage(nil) should fail")
	}
	if _, err := r.FromImage(image.NewRGBA(image.Rectangle{})); err == nil {
		t.Error("FromImage of zero-sized image should fail")
	}
}

func TestFromFile_EmptyPath(t *testing.T) {
	r, err := New(
		WithDetector(&stubDetector{}),
		WithEngineFactory(stubFactory(&stubEngine{})),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := r.FromFile(""); err == nil {
		t.Error("FromFile(\"\") should fail")
	}
}

func TestFromFile_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r, err := New(
		WithDetector(&stubDetector{}),
		WithEngineFactory(stubFactory(&stubEngine{})),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := r.FromFile(path); err == nil {
		t.Error("FromFile should fail for an undecodable file")
	}
}

func TestFromFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	if err := png.Encode(f, createTwoWordImage()); err != nil {
		f.Close()
		t.Fatalf("failed to encode test image: %v", err)
	}
	f.Close()

	engine := &stubEngine{fragments: []string{"Hello", "World"}}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(10, 20, 80, 40),
			image.Rect(110, 20, 180, 40),
		}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if got != "Hello World " {
		t.Errorf("result: got %q, want %q", got, "Hello World ")
	}
}

func TestNew_ClassifierValidation(t *testing.T) {
	_, err := New(WithClassifiers("/nonexistent/stage1.xml", "", ""))
	if err == nil {
		t.Error("New should fail for a missing classifier file")
	}

	dir := t.TempDir()
	stage1 := filepath.Join(dir, "stage1.xml")
	if err := os.WriteFile(stage1, []byte("<classifier/>"), 0644); err != nil {
		t.Fatalf("failed to write classifier stub: %v", err)
	}
	if _, err := New(WithClassifiers(stage1, "", "")); err != nil {
		t.Errorf("New with existing classifier failed: %v", err)
	}
}

func TestNew_InstancesAreIndependent(t *testing.T) {
	dir := t.TempDir()
	stage1 := filepath.Join(dir, "stage1.xml")
	if err := os.WriteFile(stage1, []byte("<classifier/>"), 0644); err != nil {
		t.Fatalf("failed to write classifier stub: %v", err)
	}

	configured, err := New(WithClassifiers(stage1, "", ""))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// A second instance must not see the first one's classifier paths.
	plain, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if plain.classifiers == configured.classifiers {
		t.Error("classifier configuration leaked across Recognizer instances")
	}
	if configured.classifiers.StageOneClassifier != stage1 {
		t.Errorf("configured instance lost its classifier path: %+v", configured.classifiers)
	}
	if plain.classifiers.StageOneClassifier != "" {
		t.Errorf("plain instance picked up a classifier path: %+v", plain.classifiers)
	}
}

// Stand-in end-to-end run with the detector stubbed to tight boxes
// around two synthetic words.
func TestEndToEnd_TwoStubbedWords(t *testing.T) {
	raw := []string{"First\x01", " Second. \n"}
	engine := &stubEngine{fragments: raw}
	r, err := New(
		WithDetector(&stubDetector{rects: []image.Rectangle{
			image.Rect(10, 20, 80, 40),
			image.Rect(110, 20, 180, 40),
		}}),
		WithEngineFactory(stubFactory(engine)),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := r.FromImage(createTwoWordImage())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	want := "First Second. "
	if got != want {
		t.Errorf("result: got %q, want %q", got, want)
	}
	for _, c := range got {
		if c < 0x20 && c != '\n' {
			t.Errorf("control character %q leaked into the result", c)
		}
	}
}
