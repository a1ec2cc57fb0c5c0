package handlers

import (
	"context"
	"net/http"

	"insig8-ai/internal/models"
)

// SearchHandler handles the search routes. Every route takes the query in
// the q parameter.
type SearchHandler struct {
	agent Agent
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(a Agent) *SearchHandler {
	return &SearchHandler{agent: a}
}

type limitedSearch func(ctx context.Context, query string, limit int) ([]models.VectorSearchResult, error)

func (h *SearchHandler) ranked(search limitedSearch) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryLimit(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		results, err := search(r.Context(), r.URL.Query().Get("q"), limit)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toResults(results))
	}
}

func (h *SearchHandler) category(search func(ctx context.Context, query string) ([]models.VectorSearchResult, error)) http.HandlerFunc {
	return h.ranked(func(ctx context.Context, query string, _ int) ([]models.VectorSearchResult, error) {
		return search(ctx, query)
	})
}

// Semantic ranks every item by similarity.
//
// swagger:route GET /api/search/semantic search semanticSearch
func (h *SearchHandler) Semantic(w http.ResponseWriter, r *http.Request) {
	h.ranked(h.agent.SemanticSearch)(w, r)
}

// Hybrid fuses the semantic and keyword rankings.
//
// swagger:route GET /api/search/hybrid search hybridSearch
func (h *SearchHandler) Hybrid(w http.ResponseWriter, r *http.Request) {
	h.ranked(h.agent.HybridSearch)(w, r)
}

// ByType searches the entity type named by the type parameter.
//
// swagger:route GET /api/search/type search searchByType
func (h *SearchHandler) ByType(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	h.ranked(func(ctx context.Context, query string, limit int) ([]models.VectorSearchResult, error) {
		return h.agent.SearchByType(ctx, query, typ, limit)
	})(w, r)
}

// Commitments searches commitments.
//
// swagger:route GET /api/search/commitments search searchCommitments
func (h *SearchHandler) Commitments(w http.ResponseWriter, r *http.Request) {
	h.category(h.agent.SearchCommitments)(w, r)
}

// Meetings searches meetings.
//
// swagger:route GET /api/search/meetings search searchMeetings
func (h *SearchHandler) Meetings(w http.ResponseWriter, r *http.Request) {
	h.category(h.agent.SearchMeetings)(w, r)
}

// Clipboard searches clipboard history.
//
// swagger:route GET /api/search/clipboard search searchClipboard
func (h *SearchHandler) Clipboard(w http.ResponseWriter, r *http.Request) {
	h.category(h.agent.SearchClipboard)(w, r)
}

// Global runs the combined launcher search.
//
// swagger:route GET /api/search/global search globalSearch
//
// totalResults counts every hit before the category lists were capped at 5.
func (h *SearchHandler) Global(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.agent.GlobalSearch(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toGlobal(result))
}

// Enhanced parses time and type hints out of the query before searching.
//
// swagger:route GET /api/search search enhancedSearch
func (h *SearchHandler) Enhanced(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.agent.EnhancedSearch(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toEnhanced(result))
}
