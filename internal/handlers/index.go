package handlers

import (
	"net/http"
	"strconv"

	"insig8-ai/internal/service"
)

// IndexHandler handles the embedding index maintenance routes.
type IndexHandler struct {
	agent Agent
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(a Agent) *IndexHandler {
	return &IndexHandler{agent: a}
}

// Reindex embeds stored items that were saved without a vector.
//
// swagger:route POST /api/index/reindex index reindexItems
//
// With full=true every embedded item is registered with the vector backend again.
// Fails with 503 capability_unavailable when no embedding model is available.
func (h *IndexHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	full := false
	if raw := r.URL.Query().Get("full"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, &service.ValidationError{Field: "full", Message: "must be a boolean"})
			return
		}
		full = v
	}
	report, err := h.agent.ReindexItems(r.Context(), full)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// Coverage reports how many stored items are embedded, per type.
//
// swagger:route GET /api/index/coverage index indexCoverage
func (h *IndexHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	cov, err := h.agent.IndexCoverage(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cov)
}
