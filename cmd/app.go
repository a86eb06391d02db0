package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/paperdigest/internal/config"
	"github.com/lehigh-university-libraries/paperdigest/internal/document"
	"github.com/lehigh-university-libraries/paperdigest/internal/extraction"
	"github.com/lehigh-university-libraries/paperdigest/internal/gemini"
	"github.com/lehigh-university-libraries/paperdigest/internal/ocr"
	"github.com/lehigh-university-libraries/paperdigest/internal/ocr/tesseract"
	"github.com/lehigh-university-libraries/paperdigest/internal/ollama"
	"github.com/lehigh-university-libraries/paperdigest/internal/openai"
	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
	"github.com/lehigh-university-libraries/paperdigest/internal/summarizing"
)

// app holds the services shared by every command, built once per process.
type app struct {
	cfg        *config.Config
	provider   providers.Provider
	extraction *extraction.Service
	summarizer *summarizing.Service
	closers    []func() error
}

// newProvider constructs the configured summarization provider.
func newProvider(ctx context.Context, cfg *config.Config) (providers.Provider, func() error, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := gemini.New(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	case config.ProviderOpenAI:
		o, err := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		if err != nil {
			return nil, nil, err
		}
		return o, func() error { return nil }, nil
	case config.ProviderOllama:
		return ollama.New(cfg.OllamaURL, cfg.OllamaModel), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported summary provider %q", cfg.Provider)
	}
}

// newTranscriber returns nil when OCR is disabled.
func newTranscriber(cfg *config.Config, provider providers.Provider) (extraction.Transcriber, error) {
	var engine ocr.Engine
	switch cfg.OCREngine {
	case config.OCRNone:
		return nil, nil
	case config.OCRTesseract:
		engine = tesseract.New(cfg.OCRLanguages...)
	case config.OCRVision:
		if provider == nil {
			return nil, fmt.Errorf("OCR engine %q needs a summarization provider", cfg.OCREngine)
		}
		engine = ocr.NewVisionEngine(provider, cfg.Model())
	default:
		return nil, fmt.Errorf("unsupported OCR engine %q", cfg.OCREngine)
	}
	svc := ocr.NewService(engine, cfg.OCRConcurrency)
	slog.Info("OCR enabled", "engine", svc.Engine(), "concurrency", cfg.OCRConcurrency)
	return svc, nil
}

// buildApp wires the pipeline. withProvider is false for commands that only
// extract and whose OCR engine does not need a model.
func buildApp(ctx context.Context, cfg *config.Config, withProvider bool) (*app, error) {
	a := &app{cfg: cfg}

	if withProvider || cfg.OCREngine == config.OCRVision {
		provider, closer, err := newProvider(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
		}
		a.provider = provider
		a.closers = append(a.closers, closer)
		a.summarizer = summarizing.NewService(provider, summarizing.Options{
			Model:       cfg.Model(),
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
	}

	transcriber, err := newTranscriber(cfg, a.provider)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.extraction = extraction.NewService(document.NewExtractor(), transcriber)

	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			slog.Warn("Failed to close client", "err", err)
		}
	}
}
