package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/paperdigest/internal/config"
	"github.com/lehigh-university-libraries/paperdigest/internal/testpdf"
	"gopkg.in/yaml.v3"
)

func TestNewTranscriber(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantNil bool
		wantErr bool
	}{
		{"disabled", config.Config{OCREngine: config.OCRNone}, true, false},
		{"tesseract", config.Config{OCREngine: config.OCRTesseract, OCRLanguages: []string{"eng"}}, false, false},
		{"vision without provider", config.Config{OCREngine: config.OCRVision}, true, true},
		{"unknown", config.Config{OCREngine: "abbyy"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := newTranscriber(&tt.cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newTranscriber() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (tr == nil) != tt.wantNil {
				t.Errorf("Expected nil transcriber = %v, got %v", tt.wantNil, tr)
			}
		})
	}
}

func TestBuildAppWithOpenAIProvider(t *testing.T) {
	cfg := &config.Config{
		Provider:     config.ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
		OpenAIModel:  "gpt-4o",
		OCREngine:    config.OCRNone,
	}

	a, err := buildApp(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("buildApp() error = %v", err)
	}
	defer a.Close()

	if a.provider == nil || a.provider.Name() != "openai" {
		t.Errorf("Expected openai provider, got %v", a.provider)
	}
	if a.summarizer == nil || a.extraction == nil {
		t.Error("Expected summarizer and extraction services")
	}
}

func TestBuildAppWithoutProvider(t *testing.T) {
	a, err := buildApp(context.Background(), &config.Config{OCREngine: config.OCRNone}, false)
	if err != nil {
		t.Fatalf("buildApp() error = %v", err)
	}
	if a.provider != nil || a.summarizer != nil {
		t.Error("Expected no provider for extraction-only use")
	}
}

func TestWriteOutput(t *testing.T) {
	out := extractOutput{Text: "Intro."}

	var buf bytes.Buffer
	if err := writeOutput(&buf, "yaml", out); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if decoded["text"] != "Intro." {
		t.Errorf("Expected text in YAML output, got %v", decoded)
	}
	if _, ok := decoded["images"]; ok {
		t.Error("Expected images to be omitted when not requested")
	}
}

func TestExtractCommand(t *testing.T) {
	t.Setenv("OCR_ENGINE", "none")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, testpdf.Build("Deep residual learning.", "Results."), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"extract", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	var out extractOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("Unable to decode output %q: %v", stdout.String(), err)
	}
	if !strings.Contains(out.Text, "Deep residual learning.") || !strings.Contains(out.Text, "Results.") {
		t.Errorf("Unexpected text %q", out.Text)
	}
	if out.Images != nil {
		t.Errorf("Expected images to be omitted without --images, got %+v", out.Images)
	}
}

func TestExtractCommandScannedPaper(t *testing.T) {
	t.Setenv("OCR_ENGINE", "none")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "scan.pdf")
	data := testpdf.BuildWithImages([]testpdf.Figure{{Width: 32, Height: 24}}, testpdf.Page{Figures: []int{0}})
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"extract", path, "--images"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("extract --images failed on a PDF without text: %v", err)
	}

	var out extractOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("Unable to decode output %q: %v", stdout.String(), err)
	}
	if out.Text != "" {
		t.Errorf("Expected empty text, got %q", out.Text)
	}
	if len(out.Images) != 1 || out.Images[0].Page != 1 || out.Images[0].ImageIndex != 1 {
		t.Errorf("Expected one figure on page 1, got %+v", out.Images)
	}

	root = NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extract", path})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected an error without --images when there is no text layer")
	}
}

func TestExtractCommandRejectsUnknownFormat(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extract", "paper.pdf", "--format", "xml"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected an error for an unsupported format")
	}
}
