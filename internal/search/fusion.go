package search

import (
	"math"
	"sort"
	"strings"

	"insig8-ai/internal/models"
)

// Cosine returns dot(a,b) / (|a| * |b|). It is 0 when either vector is
// empty, the lengths differ or a norm is zero.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Fuse merges ranked lists with reciprocal rank fusion. Each result scores
// the sum of 1/(rank+1) over the lists it appears in, rank being its 0-based
// position. The first occurrence of an id supplies its content and metadata.
// The fused score is returned in Similarity; equal scores keep first
// appearance order.
func Fuse(lists ...[]models.VectorSearchResult) []models.VectorSearchResult {
	index := map[string]int{}
	out := []models.VectorSearchResult{}
	for _, list := range lists {
		for rank, r := range list {
			contribution := 1 / float64(rank+1)
			if i, ok := index[r.ID]; ok {
				out[i].Similarity += contribution
				continue
			}
			index[r.ID] = len(out)
			r.Similarity = contribution
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}

// keywordScore averages, over the query keywords, the share of document
// words that contain the keyword.
func keywordScore(keywords, docWords []string) float64 {
	if len(keywords) == 0 || len(docWords) == 0 {
		return 0
	}
	var total float64
	for _, k := range keywords {
		matches := 0
		for _, w := range docWords {
			if strings.Contains(w, k) {
				matches++
			}
		}
		total += float64(matches) / float64(len(docWords))
	}
	return total / float64(len(keywords))
}

func sortBySimilarity(results []models.VectorSearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
}

func truncate(results []models.VectorSearchResult, limit int) []models.VectorSearchResult {
	if limit >= 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
