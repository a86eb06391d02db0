package providers

import (
	"context"
)

// Config represents the configuration for a single LLM call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// Image is sent alongside the prompt when set; requires a vision-capable model.
	Image *Image
}

// Image is an encoded image attached to a prompt
type Image struct {
	MIMEType string // e.g. "image/png"
	Data     []byte
}

// Provider defines the interface for an LLM provider
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// GenerateText sends the prompt and returns the generated text unmodified.
	GenerateText(ctx context.Context, config Config) (string, error)
	// CheckAuth verifies the configured credential is accepted by the provider.
	CheckAuth(ctx context.Context) error
}
