package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/paperdigest/internal/document"
	"github.com/lehigh-university-libraries/paperdigest/internal/images"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of images recognized at once.
const DefaultConcurrency = 4

// Engine recognizes text in a single PNG image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, png []byte) (string, error)
}

// Service handles OCR extraction from images
type Service struct {
	engine      Engine
	concurrency int
	prepare     func([]byte) (*images.Prepared, error)
}

// NewService creates a new OCR service
func NewService(engine Engine, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Service{
		engine:      engine,
		concurrency: concurrency,
		prepare:     images.PrepareForOCR,
	}
}

// Engine returns the name of the configured engine
func (s *Service) Engine() string {
	return s.engine.Name()
}

// TranscribeAll recognizes text in every image and returns one trimmed
// transcript per image, in input order. A failure on one image yields an
// empty transcript for that image and never affects the others.
func (s *Service) TranscribeAll(ctx context.Context, imgs []document.Image) []string {
	transcripts := make([]string, len(imgs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, img := range imgs {
		g.Go(func() error {
			text, err := s.transcribe(ctx, img)
			if err != nil {
				slog.Warn("OCR failed, continuing without text for image",
					"engine", s.engine.Name(), "page", img.Page, "image_index", img.Index, "ext", img.Ext, "err", err)
				return nil
			}
			transcripts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("Extracted OCR text", "engine", s.engine.Name(), "images", len(imgs))
	return transcripts
}

func (s *Service) transcribe(ctx context.Context, img document.Image) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ocr engine panic: %v", r)
		}
	}()

	prepared, err := s.prepare(img.Data)
	if err != nil {
		return "", err
	}

	slog.Debug("Prepared image for OCR", "page", img.Page, "image_index", img.Index,
		"source_format", prepared.Format, "width", prepared.Width, "height", prepared.Height)

	text, err = s.engine.Recognize(ctx, prepared.PNG)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
