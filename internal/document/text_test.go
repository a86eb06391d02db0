package document

import (
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/paperdigest/internal/apperror"
	"github.com/lehigh-university-libraries/paperdigest/internal/testpdf"
)

func TestExtractTextKeepsPageOrder(t *testing.T) {
	pages := []string{
		"Introduction to graph sampling",
		"Methodology section with random walks",
		"Results and conclusions",
	}

	text, err := ExtractText(testpdf.Build(pages...))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}

	last := -1
	for _, p := range pages {
		idx := strings.Index(text, p)
		if idx < 0 {
			t.Fatalf("Expected text to contain %q, got %q", p, text)
		}
		if idx <= last {
			t.Errorf("Expected %q after previous page, got index %d (previous %d)", p, idx, last)
		}
		last = idx
		if len(text) < len(p) {
			t.Errorf("Concatenation shorter than page text %q", p)
		}
	}
}

func TestExtractTextSkipsEmptyPages(t *testing.T) {
	text, err := ExtractText(testpdf.Build("", "Only the second page has text"))
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(text, "Only the second page has text") {
		t.Errorf("Expected second page text, got %q", text)
	}
}

func TestExtractTextErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind apperror.Kind
	}{
		{"no text layer", testpdf.Build("", ""), apperror.KindNoTextFound},
		{"not a pdf", []byte("this is definitely not a PDF"), apperror.KindInvalidDocument},
		{"empty input", nil, apperror.KindInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.data)
			if err == nil {
				t.Fatalf("Expected error, got text %q", text)
			}
			if got := apperror.KindOf(err); got != tt.kind {
				t.Errorf("Expected kind %s, got %s (%v)", tt.kind, got, err)
			}
		})
	}
}

func TestExtractTextNoTextMessage(t *testing.T) {
	_, err := ExtractText(testpdf.Build(""))
	if got := apperror.Message(err); got != "No text extracted from PDF" {
		t.Errorf("Expected distinct NoTextFound message, got %q", got)
	}
}
