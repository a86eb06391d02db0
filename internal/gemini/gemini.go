package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// DefaultModel is used when a call does not name a model
const DefaultModel = "gemini-1.5-pro"

// Gemini is a provider for Google Gemini
type Gemini struct {
	client *genai.Client
	model  string
}

// New creates the Gemini client once; it is shared by every request.
func New(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("GOOGLE_API_KEY environment variable not set")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

// Close releases the underlying client
func (g *Gemini) Close() error {
	return g.client.Close()
}

// GenerateText generates content for the given prompt using Gemini. Provider
// errors are returned as-is so their message reaches the caller unchanged.
func (g *Gemini) GenerateText(ctx context.Context, config providers.Config) (string, error) {
	name := config.Model
	if name == "" {
		name = g.model
	}

	model := g.client.GenerativeModel(name)
	model.SetTemperature(float32(config.Temperature))

	parts := make([]genai.Part, 0, 2)
	if config.Image != nil {
		parts = append(parts, genai.ImageData(strings.TrimPrefix(config.Image.MIMEType, "image/"), config.Image.Data))
	}
	parts = append(parts, genai.Text(config.Prompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	return responseText(resp)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}

	return sb.String(), nil
}

// CheckAuth lists models, which fails when the API key is rejected
func (g *Gemini) CheckAuth(ctx context.Context) error {
	it := g.client.ListModels(ctx)
	_, err := it.Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
