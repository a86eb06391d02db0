package ocr

import (
	"context"

	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
)

// VisionEngine performs OCR with a vision-capable LLM
type VisionEngine struct {
	provider providers.Provider
	model    string
}

// NewVisionEngine uses provider for recognition; an empty model selects the
// provider's default.
func NewVisionEngine(provider providers.Provider, model string) *VisionEngine {
	return &VisionEngine{provider: provider, model: model}
}

func (v *VisionEngine) Name() string {
	return "vision-" + v.provider.Name()
}

func (v *VisionEngine) Recognize(ctx context.Context, png []byte) (string, error) {
	return v.provider.GenerateText(ctx, providers.Config{
		Model:       v.model,
		Temperature: 0.0, // Zero temperature for exact OCR
		Prompt:      buildOCRPrompt(),
		Image:       &providers.Image{MIMEType: "image/png", Data: png},
	})
}

func buildOCRPrompt() string {
	return `You are performing OCR (Optical Character Recognition) on a figure taken from a research paper.

Your task is to extract ALL visible text from the image exactly as it appears, including:
- Titles and captions
- Axis labels and tick values
- Legends and annotations
- Table cells, row by row

INSTRUCTIONS:
1. Read the image from top to bottom, left to right
2. Preserve the original line breaks
3. Do not describe the figure or interpret the data
4. If the image contains no text, respond with an empty message

OUTPUT FORMAT:
Provide ONLY the extracted text. Do not include phrases like "Here is the text:" or "The image contains:".`
}
