package handlers

import (
	"net/http"
)

// ScreenHandler handles the screen monitoring routes.
type ScreenHandler struct {
	agent Agent
}

// NewScreenHandler creates a new ScreenHandler.
func NewScreenHandler(a Agent) *ScreenHandler {
	return &ScreenHandler{agent: a}
}

// Start begins screen monitoring.
//
// swagger:route POST /api/screen/start screen startScreenMonitoring
//
// Fails with 403 permission_denied when screen recording is not allowed.
func (h *ScreenHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.agent.StartScreenMonitoring(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r)
}

// Stop ends screen monitoring. It always succeeds.
//
// swagger:route POST /api/screen/stop screen stopScreenMonitoring
func (h *ScreenHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.agent.StopScreenMonitoring(r.Context())
	writeSuccess(w, r)
}

// Unresponded lists on-screen questions without a visible reply.
//
// swagger:route GET /api/screen/unresponded screen unrespondedMessages
func (h *ScreenHandler) Unresponded(w http.ResponseWriter, r *http.Request) {
	list, err := h.agent.UnrespondedMessages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toUnresponded(list))
}
