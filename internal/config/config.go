// Package config loads service settings from defaults, an optional YAML
// file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	OCRTesseract = "tesseract"
	OCRVision    = "vision"
	OCRNone      = "none"
)

// Config is the resolved service configuration.
type Config struct {
	Port string `mapstructure:"port"`

	Provider    string        `mapstructure:"summary_provider"`
	Temperature float64       `mapstructure:"summary_temperature"`
	Timeout     time.Duration `mapstructure:"summary_timeout"`

	GoogleAPIKey string `mapstructure:"google_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`

	OllamaURL   string `mapstructure:"ollama_url"`
	OllamaModel string `mapstructure:"ollama_model"`

	OCREngine      string   `mapstructure:"ocr_engine"`
	OCRLanguages   []string `mapstructure:"ocr_languages"`
	OCRConcurrency int      `mapstructure:"ocr_concurrency"`

	MaxUploadMB        int64    `mapstructure:"max_upload_mb"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	LogLevel           string   `mapstructure:"log_level"`
}

// env lists the environment variables read for each key. The first name is
// the canonical one.
var env = map[string][]string{
	"port":                 {"PORT"},
	"summary_provider":     {"SUMMARY_PROVIDER"},
	"summary_temperature":  {"SUMMARY_TEMPERATURE"},
	"summary_timeout":      {"SUMMARY_TIMEOUT"},
	"google_api_key":       {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	"gemini_model":         {"GEMINI_MODEL"},
	"openai_api_key":       {"OPENAI_API_KEY"},
	"openai_base_url":      {"OPENAI_BASE_URL"},
	"openai_model":         {"OPENAI_MODEL"},
	"ollama_url":           {"OLLAMA_URL"},
	"ollama_model":         {"OLLAMA_MODEL"},
	"ocr_engine":           {"OCR_ENGINE"},
	"ocr_languages":        {"OCR_LANGUAGES"},
	"ocr_concurrency":      {"OCR_CONCURRENCY"},
	"max_upload_mb":        {"MAX_UPLOAD_MB"},
	"cors_allowed_origins": {"CORS_ALLOWED_ORIGINS"},
	"log_level":            {"LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("summary_provider", ProviderGemini)
	v.SetDefault("summary_temperature", 0.2)
	v.SetDefault("summary_timeout", 120*time.Second)
	v.SetDefault("gemini_model", "gemini-1.5-pro")
	v.SetDefault("openai_model", "gpt-4o")
	v.SetDefault("ollama_url", "http://localhost:11434")
	v.SetDefault("ollama_model", "llama3.2-vision")
	v.SetDefault("ocr_engine", OCRTesseract)
	v.SetDefault("ocr_languages", []string{"eng"})
	v.SetDefault("ocr_concurrency", 4)
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("cors_allowed_origins", []string{"*"})
	v.SetDefault("log_level", "info")
}

// Load resolves configuration. configFile may be empty. Flags in flags that
// share a name with a key (for example "port") take precedence over the
// environment when set.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, names := range env {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("port", f); err != nil {
				return nil, fmt.Errorf("bind flag port: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.OCREngine = strings.ToLower(strings.TrimSpace(cfg.OCREngine))
	cfg.OCRLanguages = splitList(cfg.OCRLanguages)
	cfg.CORSAllowedOrigins = splitList(cfg.CORSAllowedOrigins)

	return &cfg, nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the settings every provider-backed command needs. A
// missing credential for the selected provider is an error.
func (c *Config) Validate() error {
	if err := c.validateProvider(); err != nil {
		return err
	}
	if err := c.ValidateOCR(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("summary timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %dMB", c.MaxUploadMB)
	}
	return nil
}

// ValidateOCR checks only what extraction needs; the provider credential is
// required only when figures are read by a vision model.
func (c *Config) ValidateOCR() error {
	switch c.OCREngine {
	case OCRTesseract, OCRNone:
		return nil
	case OCRVision:
		return c.validateProvider()
	default:
		return fmt.Errorf("unsupported OCR engine %q", c.OCREngine)
	}
}

func (c *Config) validateProvider() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return errors.New("GOOGLE_API_KEY environment variable not set")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY environment variable not set")
		}
	case ProviderOllama:
		if c.OllamaURL == "" {
			return errors.New("OLLAMA_URL environment variable not set")
		}
	default:
		return fmt.Errorf("unsupported summary provider %q", c.Provider)
	}
	return nil
}

// Model returns the model configured for the selected provider.
func (c *Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIModel
	case ProviderOllama:
		return c.OllamaModel
	default:
		return c.GeminiModel
	}
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
