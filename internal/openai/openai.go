package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
	goopenai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when a call does not name a model
const DefaultModel = "gpt-4o"

// OpenAI is a provider for OpenAI and OpenAI-compatible servers (Ollama's
// /v1 endpoint, LM Studio, vLLM).
type OpenAI struct {
	client *goopenai.Client
	model  string
}

// New returns a new OpenAI provider. An empty baseURL targets api.openai.com.
func New(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}
	if model == "" {
		model = DefaultModel
	}

	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAI{
		client: goopenai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// GenerateText sends the prompt as a single user message. Provider errors
// are returned as-is so their message reaches the caller unchanged.
func (o *OpenAI) GenerateText(ctx context.Context, config providers.Config) (string, error) {
	model := config.Model
	if model == "" {
		model = o.model
	}

	message := goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser}
	if config.Image != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", config.Image.MIMEType, base64.StdEncoding.EncodeToString(config.Image.Data))
		message.MultiContent = []goopenai.ChatMessagePart{
			{Type: goopenai.ChatMessagePartTypeText, Text: config.Prompt},
			{
				Type: goopenai.ChatMessagePartTypeImageURL,
				ImageURL: &goopenai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: goopenai.ImageURLDetailAuto,
				},
			},
		}
	} else {
		message.Content = config.Prompt
	}

	resp, err := o.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    []goopenai.ChatCompletionMessage{message},
		Temperature: float32(config.Temperature),
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// CheckAuth lists models, which requires a valid API key
func (o *OpenAI) CheckAuth(ctx context.Context) error {
	_, err := o.client.ListModels(ctx)
	return err
}
