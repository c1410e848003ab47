// services/ocr/tesseract.go
package ocr

import (
	"context"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine using the gosseract client.
type TesseractEngine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine. Languages default
// to English, matching the deployed trained data.
func NewTesseractEngine(languages ...string) *TesseractEngine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &TesseractEngine{languages: languages, clientFactory: gosseract.NewClient}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize returns one fragment per recognized text line, in emission order.
func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImage(imagePath); err != nil {
		return nil, err
	}
	if err := c.SetLanguage(e.languages...); err != nil {
		return nil, err
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		// Some builds lack iterator support; fall back to the whole page.
		text, terr := c.Text()
		if terr != nil {
			return nil, terr
		}
		return splitLines(text), nil
	}

	fragments := make([]string, 0, len(boxes))
	for _, b := range boxes {
		if f := strings.TrimSpace(b.Word); f != "" {
			fragments = append(fragments, f)
		}
	}
	return fragments, nil
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
