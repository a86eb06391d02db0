// Package extraction runs the first phase of the pipeline: reading the
// text layer of an upload, or its figures together with their OCR text.
package extraction

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/lehigh-university-libraries/paperdigest/internal/document"
	"github.com/lehigh-university-libraries/paperdigest/internal/merge"
	"github.com/lehigh-university-libraries/paperdigest/internal/models"
)

// Extractor reads PDF bytes.
type Extractor interface {
	ExtractText(data []byte) (string, error)
	ExtractImages(data []byte) ([]document.Image, error)
}

// Transcriber recognizes text in extracted images, one transcript per image.
type Transcriber interface {
	TranscribeAll(ctx context.Context, imgs []document.Image) []string
}

// Service handles the extraction endpoints
type Service struct {
	extractor   Extractor
	transcriber Transcriber
}

// NewService creates an extraction service. A nil transcriber disables OCR.
func NewService(extractor Extractor, transcriber Transcriber) *Service {
	return &Service{extractor: extractor, transcriber: transcriber}
}

// Text returns the text layer of the document.
func (s *Service) Text(data []byte) (*models.TextResponse, error) {
	text, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, err
	}
	slog.Info("Extracted text", "bytes", len(data), "chars", len(text))
	return &models.TextResponse{Text: text}, nil
}

// Images returns every embedded image, base64 encoded, plus the merged OCR
// transcript of all of them.
func (s *Service) Images(ctx context.Context, data []byte) (*models.ImagesResponse, error) {
	imgs, err := s.extractor.ExtractImages(data)
	if err != nil {
		return nil, err
	}

	resp := &models.ImagesResponse{Images: make([]models.ExtractedImage, 0, len(imgs))}
	for _, img := range imgs {
		resp.Images = append(resp.Images, models.ExtractedImage{
			Page:       img.Page,
			ImageIndex: img.Index,
			Ext:        img.Ext,
			Base64:     base64.StdEncoding.EncodeToString(img.Data),
		})
	}

	if s.transcriber != nil && len(imgs) > 0 {
		resp.OCRText = merge.Transcripts(s.transcriber.TranscribeAll(ctx, imgs))
	}

	slog.Info("Extracted images", "count", len(imgs), "ocr_chars", len(resp.OCRText))
	return resp, nil
}
