package handlers

import (
	"context"
	"net/http"
	"time"
)

// SystemHandler handles the lifecycle and status routes.
type SystemHandler struct {
	agent Agent
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(a Agent) *SystemHandler {
	return &SystemHandler{agent: a}
}

// Initialize starts the background work. Calling it again is harmless.
//
// swagger:route POST /api/initialize system initialize
func (h *SystemHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	if err := h.agent.Initialize(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r)
}

// Status reports the agent state.
//
// swagger:route GET /api/status system status
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toStatus(h.agent.Status(r.Context())))
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	agent              Agent
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(a Agent) *HealthHandler {
	return &HealthHandler{agent: a, healthCheckTimeout: 5 * time.Second}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check in epoch milliseconds
	Timestamp int64 `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// swagger:route GET /api/health system healthCheck
//
// # Health check endpoint
//
// Returns 200 when the store is reachable, 503 otherwise. A missing model
// or an unreachable vector backend degrades the status without failing it.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checkCtx, cancel := context.WithTimeout(r.Context(), h.healthCheckTimeout)
	defer cancel()

	health := h.agent.Health(checkCtx)
	caps := h.agent.Status(checkCtx).Capabilities

	checks := map[string]string{
		"store":          "ok",
		"vector_backend": caps.VectorBackend,
		"llm":            availability(caps.LLM),
		"embeddings":     availability(caps.Embeddings),
		"reminder_store": caps.ReminderStore,
	}
	var issues []string
	status, httpStatus := "healthy", http.StatusOK

	if health.VectorBackend != nil {
		checks["vector_backend"] = "error"
		issues = append(issues, "vector_backend_unavailable")
		status = "degraded"
	}
	if !caps.Embeddings {
		issues = append(issues, "embeddings_unavailable")
		status = "degraded"
	}
	if health.Store != nil {
		checks["store"] = "error"
		issues = append(issues, "store_unavailable")
		status, httpStatus = "unhealthy", http.StatusServiceUnavailable
	}

	writeJSON(w, r, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UnixMilli(),
		Checks:    checks,
		Issues:    issues,
	})
}

func availability(ok bool) string {
	if ok {
		return "ok"
	}
	return "unavailable"
}
