package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prober checks at startup whether a model server can serve a given model.
type Prober struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewProber creates a new prober. Probes time out after timeout.
func NewProber(baseURL, apiKey string, timeout time.Duration) *Prober {
	return &Prober{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// ModelStatus represents one entry of the /v1/models listing.
// InCache is only reported by llama.cpp servers.
type ModelStatus struct {
	ID      string `json:"id"`
	InCache *bool  `json:"in_cache,omitempty"`
}

// ModelsResponse represents the response from the /v1/models endpoint.
type ModelsResponse struct {
	Data []ModelStatus `json:"data"`
}

// Available reports whether modelName is listed by the server and loaded
// where the server reports load state. An empty modelName accepts any model.
func (p *Prober) Available(ctx context.Context, modelName string) (bool, error) {
	if p.baseURL == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/v1/models", p.baseURL), nil)
	if err != nil {
		return false, fmt.Errorf("failed to create status request: %w", err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to check model status: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var modelsResp ModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&modelsResp); err != nil {
		return false, fmt.Errorf("failed to decode models response: %w", err)
	}

	for _, model := range modelsResp.Data {
		if modelName != "" && model.ID != modelName {
			continue
		}
		if model.InCache != nil && !*model.InCache {
			continue
		}
		return true, nil
	}

	return false, nil
}
