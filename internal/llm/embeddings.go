package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"insig8-ai/internal/service"
)

// DefaultEmbedBatchSize caps the number of inputs sent in one request.
const DefaultEmbedBatchSize = 32

// EmbeddingsClient is a client for an OpenAI compatible embeddings API.
type EmbeddingsClient struct {
	BaseURL string
	APIKey  string
	Model   string

	// ExpectedSize is the vector dimension every returned embedding must have. 0 disables the check.
	ExpectedSize int

	// BatchSize splits large inputs across several requests.
	BatchSize int

	MaxRetries uint64
	client     *http.Client
}

// NewEmbeddingsClient creates a new embeddings client for the given model and vector dimension.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		BatchSize:    DefaultEmbedBatchSize,
		MaxRetries:   2,
		client:       newHTTPClient(),
	}
}

// EmbeddingsRequest represents the request payload for embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbedTexts returns one vector per input text, in input order.
// Inputs beyond BatchSize are sent in consecutive requests.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	size := c.BatchSize
	if size <= 0 {
		size = DefaultEmbedBatchSize
	}

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		batch, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to embed inputs %d-%d: %w", start, end-1, err)
		}
		result = append(result, batch...)
	}
	return result, nil
}

func (c *EmbeddingsClient) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(EmbeddingsRequest{Model: c.Model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var data []EmbeddingData
	operation := func() error {
		out, err := c.post(ctx, body)
		if err != nil {
			var se *statusError
			if errors.As(err, &se) && !se.retryable() {
				return backoff.Permanent(err)
			}
			return err
		}
		data = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, c.MaxRetries), ctx)); err != nil {
		return nil, service.External("embeddings", err)
	}

	if len(data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(data))
	}

	// Servers that omit index answer in input order.
	indexed := false
	for _, d := range data {
		if d.Index != 0 {
			indexed = true
			break
		}
	}

	vectors := make([][]float32, len(texts))
	for i, d := range data {
		pos := i
		if indexed {
			pos = d.Index
		}
		if pos < 0 || pos >= len(texts) || vectors[pos] != nil {
			return nil, fmt.Errorf("embedding %d has invalid index %d", i, d.Index)
		}
		if c.ExpectedSize > 0 && len(d.Embedding) != c.ExpectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", pos, len(d.Embedding), c.ExpectedSize)
		}

		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vectors[pos] = vec
	}
	return vectors, nil
}

func (c *EmbeddingsClient) post(ctx context.Context, body []byte) ([]EmbeddingData, error) {
	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &statusError{code: resp.StatusCode, body: string(raw)}
	}

	var out EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return out.Data, nil
}
