// services/ocr/ocr.go
//
// Text recognition over captured stills. Recognition itself is an external
// collaborator (Tesseract); this package only shapes its output into the
// fragment stream the pipeline consumes.
package ocr

import (
	"context"
	"os"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

// Engine recognizes text fragments in an image file, in the order the
// underlying model emits them.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, imagePath string) ([]string, error)
}

// FragmentStream is a finite, non-restartable view over recognized fragments.
// Once drained it stays empty.
type FragmentStream struct {
	fragments []string
	i         int
}

func NewFragmentStream(fragments []string) *FragmentStream {
	return &FragmentStream{fragments: fragments}
}

// Next returns the next fragment, or ok=false once the stream is exhausted.
func (s *FragmentStream) Next() (string, bool) {
	if s.i >= len(s.fragments) {
		return "", false
	}
	f := s.fragments[s.i]
	s.i++
	return f, true
}

// Collect drains the remainder of the stream.
func (s *FragmentStream) Collect() []string {
	rest := s.fragments[s.i:]
	s.i = len(s.fragments)
	return append([]string(nil), rest...)
}

// DetectText runs recognition on the image at path. Malformed input and model
// load failures surface as ocr_model errors.
func DetectText(ctx context.Context, engine Engine, imagePath string) (*FragmentStream, error) {
	const op = "ocr.detect_text"

	if _, err := os.Stat(imagePath); err != nil {
		return nil, errcode.New(errcode.OCRModel, op, err)
	}
	fragments, err := engine.Recognize(ctx, imagePath)
	if err != nil {
		return nil, errcode.New(errcode.OCRModel, op, err)
	}
	return NewFragmentStream(fragments), nil
}
