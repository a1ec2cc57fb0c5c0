// Package embedding turns text into fixed-length vectors.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"insig8-ai/internal/contextutil"
)

// Model is an embedding backend that embeds a batch of texts in one call.
type Model interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces an embedding for text.
// An empty result means the text could not be embedded; it is not a zero vector.
type Generator interface {
	Embed(ctx context.Context, text string) []float32
}

// ModelGenerator embeds text through a Model, chunking long input and
// averaging the chunk vectors. It never returns an error.
type ModelGenerator struct {
	model  Model
	cache  *lru.Cache[string, []float32]
	logger *slog.Logger
}

// NewGenerator creates a generator. model may be nil, in which case every
// call returns an empty vector. cacheSize <= 0 disables result caching.
func NewGenerator(model Model, cacheSize int, logger *slog.Logger) (*ModelGenerator, error) {
	g := &ModelGenerator{model: model, logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New[string, []float32](cacheSize)
		if err != nil {
			return nil, err
		}
		g.cache = cache
	}
	return g, nil
}

// Available reports whether a backing model is configured.
func (g *ModelGenerator) Available() bool {
	return g.model != nil
}

// Embed returns the embedding for text, or nil when no model is available,
// the text is blank or the model call fails.
func (g *ModelGenerator) Embed(ctx context.Context, text string) []float32 {
	text = strings.TrimSpace(text)
	if g.model == nil || text == "" {
		return nil
	}

	key := cacheKey(text)
	if g.cache != nil {
		if v, ok := g.cache.Get(key); ok {
			return clone(v)
		}
	}

	chunks := Chunk(text, ChunkThreshold)
	vectors, err := g.model.EmbedTexts(ctx, chunks)
	if err != nil {
		contextutil.LoggerOr(ctx, g.logger).Warn("embedding failed",
			"chunks", len(chunks),
			"error", err,
		)
		return nil
	}

	vec := Mean(vectors)
	if vec == nil {
		contextutil.LoggerOr(ctx, g.logger).Warn("embedding model returned inconsistent vectors",
			"chunks", len(chunks),
			"vectors", len(vectors),
		)
		return nil
	}

	if g.cache != nil {
		g.cache.Add(key, clone(vec))
	}
	return vec
}

// Mean returns the element-wise mean of vectors. It returns nil when there
// are no vectors or their lengths differ.
func Mean(vectors [][]float32) []float32 {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil
	}
	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil
		}
		for i, x := range v {
			sum[i] += float64(x)
		}
	}

	out := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sum {
		out[i] = float32(s / n)
	}
	return out
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func clone(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
