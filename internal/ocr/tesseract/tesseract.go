package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Engine performs OCR with a local Tesseract installation
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New returns a Tesseract engine; languages default to English.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{languages: languages, clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs Tesseract on a single image. A client is created per call
// because gosseract clients are not safe for concurrent use.
func (e *Engine) Recognize(ctx context.Context, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract OCR failed: %w", err)
	}
	return text, nil
}
