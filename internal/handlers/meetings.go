package handlers

import (
	"net/http"
)

// MeetingHandler handles the meeting recording routes.
type MeetingHandler struct {
	agent Agent
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(a Agent) *MeetingHandler {
	return &MeetingHandler{agent: a}
}

// StartMeetingRequest starts a recording. The body is optional.
//
// swagger:model StartMeetingRequest
type StartMeetingRequest struct {
	Title string `json:"title" validate:"max=200"`
}

// TranscriptRequest appends a transcript line to the active meeting.
//
// swagger:model TranscriptRequest
type TranscriptRequest struct {
	Speaker string `json:"speaker" validate:"max=100"`
	Text    string `json:"text" validate:"required"`
}

// Start begins recording a meeting.
//
// swagger:route POST /api/meetings/start meetings startMeeting
//
// Fails with 409 already_recording when a meeting is being recorded.
func (h *MeetingHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartMeetingRequest
	if err := decode(r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.agent.StartMeetingRecording(r.Context(), req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toMeeting(m))
}

// Transcript appends a line to the active meeting.
//
// swagger:route POST /api/meetings/transcript meetings appendTranscript
func (h *MeetingHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	var req TranscriptRequest
	if err := decode(r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.agent.AppendTranscript(req.Speaker, req.Text); err != nil {
		writeError(w, r, err)
		return
	}
	writeSuccess(w, r)
}

// Stop finalizes the active meeting.
//
// swagger:route POST /api/meetings/stop meetings stopMeeting
//
// Fails with 409 not_recording when no meeting is being recorded.
func (h *MeetingHandler) Stop(w http.ResponseWriter, r *http.Request) {
	m, err := h.agent.StopMeetingRecording(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toMeeting(m))
}

// History lists recorded meetings, newest first.
//
// swagger:route GET /api/meetings meetings meetingHistory
func (h *MeetingHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := h.agent.MeetingHistory(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toMeetings(list))
}
