package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "llama3.2-vision"
)

// Ollama is a provider for a local Ollama server
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// New returns a new Ollama provider
func New(baseURL, model string) *Ollama {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}
}

func (o *Ollama) Name() string { return "ollama" }

// GenerateText sends the prompt, and the image if any, to /api/generate
func (o *Ollama) GenerateText(ctx context.Context, config providers.Config) (string, error) {
	model := config.Model
	if model == "" {
		model = o.model
	}

	body := map[string]any{
		"model":  model,
		"prompt": config.Prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": config.Temperature,
		},
	}
	if config.Image != nil {
		body["images"] = []string{base64.StdEncoding.EncodeToString(config.Image.Data)}
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}

// CheckAuth confirms the server is reachable and the model is pulled.
func (o *Ollama) CheckAuth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create new request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("failed to decode model list: %w", err)
	}
	for _, m := range tags.Models {
		if m.Name == o.model || strings.TrimSuffix(m.Name, ":latest") == o.model {
			return nil
		}
	}
	return fmt.Errorf("model %s is not available on %s; run `ollama pull %s`", o.model, o.baseURL, o.model)
}

// statusError surfaces Ollama's own error message when it sends one.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	return fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
}
