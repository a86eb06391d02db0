package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/paperdigest/internal/providers"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New("test-key", srv.URL+"/v1", "test-model")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", "", ""); err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestGenerateText(t *testing.T) {
	var gotModel, gotPrompt, gotAuth string
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotModel = req.Model
		if len(req.Messages) > 0 {
			gotPrompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"- contribution\n- method"}}]}`))
	})

	out, err := p.GenerateText(context.Background(), providers.Config{Prompt: "Summarize this"})
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if out != "- contribution\n- method" {
		t.Errorf("Expected verbatim content, got %q", out)
	}
	if gotModel != "test-model" {
		t.Errorf("Expected default model, got %q", gotModel)
	}
	if gotPrompt != "Summarize this" {
		t.Errorf("Expected prompt to be sent, got %q", gotPrompt)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
}

func TestGenerateTextSendsImage(t *testing.T) {
	var body string
	p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"Figure 1"}}]}`))
	})

	_, err := p.GenerateText(context.Background(), providers.Config{
		Prompt: "Transcribe",
		Image:  &providers.Image{MIMEType: "image/png", Data: []byte{1, 2, 3}},
	})
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if !strings.Contains(body, "data:image/png;base64,AQID") {
		t.Errorf("Expected data URL in request body, got %s", body)
	}
}

func TestCheckAuth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:   "valid key",
			status: http.StatusOK,
			body:   `{"object":"list","data":[{"id":"gpt-4o","object":"model"}]}`,
		},
		{
			name:    "revoked key",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantErr: "Incorrect API key provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/models" {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := p.CheckAuth(context.Background())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
