package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"insig8-ai/internal/agent"
)

// CommitmentHandler handles the commitment routes.
type CommitmentHandler struct {
	agent Agent
}

// NewCommitmentHandler creates a new CommitmentHandler.
func NewCommitmentHandler(a Agent) *CommitmentHandler {
	return &CommitmentHandler{agent: a}
}

// AnalyzeMessageRequest is a message handed in for commitment detection.
//
// swagger:model AnalyzeMessageRequest
type AnalyzeMessageRequest struct {
	Message  string `json:"message" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,max=64"`
	Sender   string `json:"sender" validate:"omitempty,max=256"`
	ThreadID string `json:"threadId" validate:"omitempty,max=256"`
}

// AnalyzeMessageResponse reports whether a commitment was created.
//
// swagger:model AnalyzeMessageResponse
type AnalyzeMessageResponse struct {
	Success    bool                `json:"success"`
	Commitment *CommitmentResponse `json:"commitment"`
}

// UpdateStatusRequest moves a commitment to a new status.
//
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed overdue dismissed snoozed"`
}

// SnoozeRequest defers a commitment.
//
// swagger:model SnoozeRequest
type SnoozeRequest struct {
	// Epoch milliseconds
	Until int64 `json:"until" validate:"required,gt=0"`
}

// Analyze runs commitment detection over one message.
//
// swagger:route POST /api/messages/analyze commitments analyzeMessage
//
// Detect a commitment in a message. The commitment is null when none was found.
func (h *CommitmentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeMessageRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.agent.AnalyzeMessage(r.Context(), agent.MessageInput{
		Message:  req.Message,
		Platform: req.Platform,
		Sender:   req.Sender,
		ThreadID: req.ThreadID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := AnalyzeMessageResponse{Success: true}
	if c != nil {
		dto := toCommitment(c)
		resp.Commitment = &dto
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// List returns the active commitments.
//
// swagger:route GET /api/commitments commitments listCommitments
func (h *CommitmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.agent.ActiveCommitments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCommitments(list))
}

// UpdateStatus changes a commitment's status.
//
// swagger:route POST /api/commitments/{id}/status commitments updateCommitmentStatus
func (h *CommitmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.agent.UpdateCommitmentStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCommitment(c))
}

// Snooze defers a commitment until the requested time.
//
// swagger:route POST /api/commitments/{id}/snooze commitments snoozeCommitment
func (h *CommitmentHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	var req SnoozeRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.agent.SnoozeCommitment(r.Context(), chi.URLParam(r, "id"), req.Until)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCommitment(c))
}

// CheckProgress runs a progress check immediately.
//
// swagger:route POST /api/commitments/progress commitments checkProgress
func (h *CommitmentHandler) CheckProgress(w http.ResponseWriter, r *http.Request) {
	report, err := h.agent.CheckProgress(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toProgress(report))
}
