package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"insig8-ai/internal/models"
)

const (
	// PipelineVersion identifies how embedding text is built from items.
	// Update this when EmbeddingText changes for any type.
	PipelineVersion = "v1"
	// TokensPerRune is an approximation for token counting (4 chars per token).
	TokensPerRune = 4.0
)

// TypeCoverage counts stored and embedded items of one type.
type TypeCoverage struct {
	Total    int `json:"total"`
	Embedded int `json:"embedded"`
}

// Coverage describes how much of the store is visible to similarity search.
type Coverage struct {
	Types    map[models.EntityType]TypeCoverage `json:"types"`
	Total    int                                `json:"total"`
	Embedded int                                `json:"embedded"`
	// TextTokens estimates the token counts of the embedding texts.
	TextTokens TokenStats `json:"textTokens"`
	// IndexVersion is a hash of the pipeline version and embedding space.
	IndexVersion string `json:"indexVersion"`
}

// TokenStats contains statistics about token counts.
type TokenStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// Coverage counts stored and embedded items per searchable type.
func (p *Pipeline) Coverage(ctx context.Context) (*Coverage, error) {
	cov := &Coverage{
		Types:        make(map[models.EntityType]TypeCoverage, len(models.SearchableTypes)),
		IndexVersion: IndexVersion(p.model, p.dims),
	}

	var tokenCounts []int
	for _, typ := range models.SearchableTypes {
		items, err := p.store.Items(ctx, typ)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s items: %w", typ, err)
		}
		tc := TypeCoverage{Total: len(items)}
		for _, item := range items {
			if len(item.Vector()) > 0 {
				tc.Embedded++
			}
			tokenCounts = append(tokenCounts, estimateTokens(item.EmbeddingText()))
		}
		cov.Types[typ] = tc
		cov.Total += tc.Total
		cov.Embedded += tc.Embedded
	}

	cov.TextTokens = computeTokenStats(tokenCounts)
	return cov, nil
}

// IndexVersion hashes the pipeline version with the embedding model and
// dimension. Vectors from different versions are not comparable.
func IndexVersion(model string, dims int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|dims=%d", PipelineVersion, model, dims)))
	return hex.EncodeToString(hash[:])[:16]
}

func estimateTokens(text string) int {
	n := int(math.Round(float64(utf8.RuneCountInString(text)) / TokensPerRune))
	if n < 1 {
		return 1
	}
	return n
}

// computeTokenStats computes min, max, mean, and p95 from token counts.
func computeTokenStats(tokenCounts []int) TokenStats {
	if len(tokenCounts) == 0 {
		return TokenStats{}
	}

	sorted := make([]int, len(tokenCounts))
	copy(sorted, tokenCounts)
	sort.Ints(sorted)

	sum := 0
	for _, count := range sorted {
		sum += count
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return TokenStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
