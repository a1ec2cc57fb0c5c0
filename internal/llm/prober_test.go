package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProber_Available(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		status  int
		body    string
		want    bool
		wantErr bool
	}{
		{
			name:   "model listed",
			model:  "qwen",
			status: http.StatusOK,
			body:   `{"data":[{"id":"llama"},{"id":"qwen"}]}`,
			want:   true,
		},
		{
			name:   "model missing",
			model:  "qwen",
			status: http.StatusOK,
			body:   `{"data":[{"id":"llama"}]}`,
			want:   false,
		},
		{
			name:   "listed but not loaded",
			model:  "qwen",
			status: http.StatusOK,
			body:   `{"data":[{"id":"qwen","in_cache":false}]}`,
			want:   false,
		},
		{
			name:   "any model accepted",
			model:  "",
			status: http.StatusOK,
			body:   `{"data":[{"id":"llama","in_cache":true}]}`,
			want:   true,
		},
		{
			name:    "server error",
			model:   "qwen",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/models" {
					t.Errorf("expected /v1/models, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewProber(server.URL, "", time.Second)
			got, err := p.Available(context.Background(), tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Available() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProber_EmptyBaseURL(t *testing.T) {
	p := NewProber("", "", time.Second)
	got, err := p.Available(context.Background(), "any")
	if err != nil {
		t.Errorf("Available() error = %v, want nil", err)
	}
	if got {
		t.Error("Available() = true, want false without a base URL")
	}
}
