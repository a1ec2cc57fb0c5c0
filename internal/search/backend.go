package search

import (
	"context"
	"fmt"
	"time"

	"insig8-ai/internal/models"
	"insig8-ai/internal/service"
	"insig8-ai/internal/vectorstore"
)

// ItemSource is the per-type item storage the engine reads and writes.
type ItemSource interface {
	Save(ctx context.Context, item models.StorableItem) error
	Items(ctx context.Context, typ models.EntityType) ([]models.StorableItem, error)
}

// Backend answers nearest-neighbor queries for one entity type.
type Backend interface {
	// Index makes an embedded item visible to Query.
	Index(ctx context.Context, item models.StorableItem) error
	// Query returns up to k items of typ with similarity of at least
	// minScore, best first.
	Query(ctx context.Context, typ models.EntityType, vec []float32, k int, minScore float64) ([]models.VectorSearchResult, error)
	// Remove drops items of typ that no longer exist in the item store.
	Remove(ctx context.Context, typ models.EntityType, ids []string) error
	Name() string
}

// ScanBackend computes cosine similarity over every stored embedding of a type.
// Embeddings live on the entities, so indexing is a no-op.
type ScanBackend struct {
	items ItemSource
}

func NewScanBackend(items ItemSource) *ScanBackend {
	return &ScanBackend{items: items}
}

func (b *ScanBackend) Name() string { return "scan" }

func (b *ScanBackend) Index(context.Context, models.StorableItem) error { return nil }

func (b *ScanBackend) Remove(context.Context, models.EntityType, []string) error { return nil }

func (b *ScanBackend) Query(ctx context.Context, typ models.EntityType, vec []float32, k int, minScore float64) ([]models.VectorSearchResult, error) {
	items, err := b.items.Items(ctx, typ)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s items: %w", typ, err)
	}

	results := make([]models.VectorSearchResult, 0, len(items))
	for _, item := range items {
		v := item.Vector()
		if len(v) == 0 {
			continue
		}
		sim := Cosine(vec, v)
		if sim < minScore {
			continue
		}
		r := item.Project()
		r.Similarity = sim
		results = append(results, r)
	}
	sortBySimilarity(results)
	return truncate(results, k), nil
}

// QdrantBackend keeps one vector collection per entity type. Points carry
// the search projection as payload so queries need no item store round trip.
type QdrantBackend struct {
	store  vectorstore.VectorStore
	prefix string
}

func NewQdrantBackend(store vectorstore.VectorStore, prefix string) *QdrantBackend {
	return &QdrantBackend{store: store, prefix: prefix}
}

func (b *QdrantBackend) Name() string { return "qdrant" }

// Collection returns the collection name used for typ.
func (b *QdrantBackend) Collection(typ models.EntityType) string {
	return b.prefix + "_" + string(typ)
}

// EnsureCollections creates the collections of every searchable type.
func (b *QdrantBackend) EnsureCollections(ctx context.Context, vectorSize int) error {
	for _, typ := range models.SearchableTypes {
		if err := b.store.EnsureCollection(ctx, b.Collection(typ), vectorSize); err != nil {
			return err
		}
	}
	return nil
}

func (b *QdrantBackend) Index(ctx context.Context, item models.StorableItem) error {
	if !searchable(item.ItemType()) || len(item.Vector()) == 0 {
		return nil
	}
	p := item.Project()
	meta := make(map[string]any, len(p.Metadata))
	for k, v := range p.Metadata {
		meta[k] = v
	}
	point := vectorstore.Point{
		ID:  p.ID,
		Vec: item.Vector(),
		Meta: map[string]any{
			"type":      string(p.Type),
			"content":   p.Content,
			"timestamp": p.Timestamp.UnixMilli(),
			"metadata":  meta,
		},
	}
	return service.External("qdrant", b.store.Upsert(ctx, b.Collection(p.Type), []vectorstore.Point{point}))
}

func (b *QdrantBackend) Query(ctx context.Context, typ models.EntityType, vec []float32, k int, minScore float64) ([]models.VectorSearchResult, error) {
	hits, err := b.store.Search(ctx, b.Collection(typ), vec, k, float32(minScore))
	if err != nil {
		return nil, service.External("qdrant", err)
	}

	results := make([]models.VectorSearchResult, 0, len(hits))
	for _, h := range hits {
		r := models.VectorSearchResult{
			ID:         h.PointID,
			Similarity: float64(h.Score),
			Type:       typ,
			Metadata:   map[string]string{},
		}
		if s, ok := h.Meta["content"].(string); ok {
			r.Content = s
		}
		if ms, ok := h.Meta["timestamp"].(int64); ok {
			r.Timestamp = time.UnixMilli(ms).UTC()
		}
		if meta, ok := h.Meta["metadata"].(map[string]any); ok {
			for k, v := range meta {
				if s, ok := v.(string); ok {
					r.Metadata[k] = s
				}
			}
		}
		results = append(results, r)
	}
	return results, nil
}

func (b *QdrantBackend) Remove(ctx context.Context, typ models.EntityType, ids []string) error {
	if !searchable(typ) || len(ids) == 0 {
		return nil
	}
	return service.External("qdrant", b.store.Delete(ctx, b.Collection(typ), ids))
}

func searchable(typ models.EntityType) bool {
	for _, t := range models.SearchableTypes {
		if t == typ {
			return true
		}
	}
	return false
}
