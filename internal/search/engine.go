// Package search implements semantic, keyword and hybrid retrieval over
// every vector-bearing entity type.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/embedding"
	"insig8-ai/internal/models"
)

// DefaultThreshold is the similarity a result must exceed to be returned.
const DefaultThreshold = 0.7

// Engine answers similarity queries across entity types. It never owns
// entity data: items are persisted through the ItemSource and the Backend
// only derives a similarity view of them.
type Engine struct {
	items     ItemSource
	embedder  embedding.Generator
	backend   Backend
	threshold float64
	logger    *slog.Logger
}

// NewEngine creates an engine. A nil backend scans the item source.
// threshold <= 0 selects DefaultThreshold.
func NewEngine(items ItemSource, embedder embedding.Generator, backend Backend, threshold float64, logger *slog.Logger) *Engine {
	if backend == nil {
		backend = NewScanBackend(items)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{
		items:     items,
		embedder:  embedder,
		backend:   backend,
		threshold: threshold,
		logger:    logger,
	}
}

// Backend returns the name of the similarity backend in use.
func (e *Engine) Backend() string {
	return e.backend.Name()
}

// Embed embeds text with the engine's generator.
func (e *Engine) Embed(ctx context.Context, text string) []float32 {
	return e.embedder.Embed(ctx, text)
}

// Index embeds item when it has no embedding yet, stores it through the
// owning actor and registers it with the backend. A failed embedding leaves
// the item stored but unembedded, so it is excluded from similarity search.
func (e *Engine) Index(ctx context.Context, item models.StorableItem) error {
	logger := contextutil.LoggerOr(ctx, e.logger)

	if len(item.Vector()) == 0 {
		if v := e.embedder.Embed(ctx, item.EmbeddingText()); len(v) > 0 {
			item.SetVector(v)
		}
	}
	if err := e.items.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to store %s: %w", item.ItemType(), err)
	}
	if len(item.Vector()) == 0 {
		logger.Debug("stored item without embedding", "type", item.ItemType(), "id", item.ItemID())
		return nil
	}
	if err := e.backend.Index(ctx, item); err != nil {
		logger.Warn("failed to index item", "type", item.ItemType(), "id", item.ItemID(), "error", err)
	}
	return nil
}

// Register makes an already stored item visible to the backend. Items
// without an embedding are ignored.
func (e *Engine) Register(ctx context.Context, item models.StorableItem) error {
	if len(item.Vector()) == 0 {
		return nil
	}
	if err := e.backend.Index(ctx, item); err != nil {
		return fmt.Errorf("failed to register %s %s: %w", item.ItemType(), item.ItemID(), err)
	}
	return nil
}

// Unindex removes deleted items of typ from the backend.
func (e *Engine) Unindex(ctx context.Context, typ models.EntityType, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := e.backend.Remove(ctx, typ, ids); err != nil {
		return fmt.Errorf("failed to unindex %d %s items: %w", len(ids), typ, err)
	}
	return nil
}

// Search returns the limit most similar items to vec across all searchable
// types. Only results with similarity strictly above the threshold are kept.
// A failing type contributes no results.
func (e *Engine) Search(ctx context.Context, vec []float32, limit int) []models.VectorSearchResult {
	if len(vec) == 0 || limit <= 0 {
		return []models.VectorSearchResult{}
	}
	logger := contextutil.LoggerOr(ctx, e.logger)

	perType := make([][]models.VectorSearchResult, len(models.SearchableTypes))
	var g errgroup.Group
	for i, typ := range models.SearchableTypes {
		g.Go(func() error {
			results, err := e.backend.Query(ctx, typ, vec, limit, e.threshold)
			if err != nil {
				logger.Warn("vector search branch failed", "type", typ, "error", err)
				return nil
			}
			perType[i] = results
			return nil
		})
	}
	_ = g.Wait()

	merged := []models.VectorSearchResult{}
	for _, results := range perType {
		for _, r := range results {
			if r.Similarity > e.threshold {
				merged = append(merged, r)
			}
		}
	}
	sortBySimilarity(merged)
	return truncate(merged, limit)
}

// SemanticSearch embeds text and searches with the vector. When text cannot
// be embedded the keyword ranking is returned instead.
func (e *Engine) SemanticSearch(ctx context.Context, text string, limit int) []models.VectorSearchResult {
	vec := e.embedder.Embed(ctx, text)
	if len(vec) == 0 {
		contextutil.LoggerOr(ctx, e.logger).Debug("query not embedded, using keyword ranking")
		return e.KeywordSearch(ctx, text, limit)
	}
	return e.Search(ctx, vec, limit)
}

// KeywordSearch ranks items by the average share of their words that
// contain each query keyword.
func (e *Engine) KeywordSearch(ctx context.Context, text string, limit int) []models.VectorSearchResult {
	keywords := analyzer.Keywords(text)
	if len(keywords) == 0 || limit <= 0 {
		return []models.VectorSearchResult{}
	}
	logger := contextutil.LoggerOr(ctx, e.logger)

	perType := make([][]models.VectorSearchResult, len(models.SearchableTypes))
	var g errgroup.Group
	for i, typ := range models.SearchableTypes {
		g.Go(func() error {
			items, err := e.items.Items(ctx, typ)
			if err != nil {
				logger.Warn("keyword search branch failed", "type", typ, "error", err)
				return nil
			}
			for _, item := range items {
				score := keywordScore(keywords, analyzer.Tokenize(item.EmbeddingText()))
				if score <= 0 {
					continue
				}
				r := item.Project()
				r.Similarity = score
				perType[i] = append(perType[i], r)
			}
			return nil
		})
	}
	_ = g.Wait()

	merged := []models.VectorSearchResult{}
	for _, results := range perType {
		merged = append(merged, results...)
	}
	sortBySimilarity(merged)
	return truncate(merged, limit)
}

// HybridSearch runs semantic search for limit*2 results and keyword search
// in parallel and fuses the two rankings with reciprocal rank fusion.
// Similarity holds the fused score.
func (e *Engine) HybridSearch(ctx context.Context, text string, limit int) []models.VectorSearchResult {
	if limit <= 0 {
		return []models.VectorSearchResult{}
	}

	var semantic, keyword []models.VectorSearchResult
	var g errgroup.Group
	g.Go(func() error {
		semantic = e.Search(ctx, e.embedder.Embed(ctx, text), limit*2)
		return nil
	})
	g.Go(func() error {
		keyword = e.KeywordSearch(ctx, text, limit*2)
		return nil
	})
	_ = g.Wait()

	return truncate(Fuse(semantic, keyword), limit)
}

// FindSimilar returns up to limit items most similar to item, excluding
// item itself. An unembedded item has no neighbors.
func (e *Engine) FindSimilar(ctx context.Context, item models.StorableItem, limit int) []models.VectorSearchResult {
	vec := item.Vector()
	if len(vec) == 0 || limit <= 0 {
		return []models.VectorSearchResult{}
	}

	results := e.Search(ctx, vec, limit+1)
	out := make([]models.VectorSearchResult, 0, len(results))
	for _, r := range results {
		if r.ID == item.ItemID() {
			continue
		}
		out = append(out, r)
	}
	return truncate(out, limit)
}
