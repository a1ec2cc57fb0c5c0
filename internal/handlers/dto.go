package handlers

import (
	"time"

	"insig8-ai/internal/agent"
	"insig8-ai/internal/commitment"
	"insig8-ai/internal/intelligence"
	"insig8-ai/internal/models"
	"insig8-ai/internal/screen"
)

// CommitmentResponse is a commitment as the host sees it.
//
// swagger:model CommitmentResponse
type CommitmentResponse struct {
	ID              string                  `json:"id"`
	Description     string                  `json:"description"`
	Source          models.CommitmentSource `json:"source"`
	Recipient       string                  `json:"recipient"`
	DueDate         *int64                  `json:"dueDate"`
	Status          string                  `json:"status"`
	Priority        string                  `json:"priority"`
	UrgencyScore    float64                 `json:"urgencyScore"`
	Context         string                  `json:"context"`
	RelatedMessages []string                `json:"relatedMessages"`
	CreatedAt       int64                   `json:"createdAt"`
	UpdatedAt       int64                   `json:"updatedAt"`
}

// MeetingResponse is a meeting session as the host sees it.
//
// swagger:model MeetingResponse
type MeetingResponse struct {
	ID             string                  `json:"id"`
	Title          string                  `json:"title"`
	StartTime      int64                   `json:"startTime"`
	EndTime        *int64                  `json:"endTime"`
	Participants   []string                `json:"participants"`
	Transcript     string                  `json:"transcript"`
	Summary        string                  `json:"summary"`
	ActionItems    []string                `json:"actionItems"`
	AudioRecording *AudioRecordingResponse `json:"audioRecording,omitempty"`
}

// AudioRecordingResponse describes a meeting's audio file.
type AudioRecordingResponse struct {
	Path       string `json:"path"`
	Format     string `json:"format"`
	DurationMs int64  `json:"durationMs"`
}

// SearchResultResponse is one ranked search hit.
//
// swagger:model SearchResultResponse
type SearchResultResponse struct {
	ID         string            `json:"id"`
	Similarity float64           `json:"similarity"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata"`
	Type       string            `json:"type"`
	Timestamp  int64             `json:"timestamp"`
}

// GlobalSearchResponse is the combined launcher search answer. TotalResults
// counts the hits before each list was capped.
//
// swagger:model GlobalSearchResponse
type GlobalSearchResponse struct {
	Query           string                 `json:"query"`
	SemanticResults []SearchResultResponse `json:"semanticResults"`
	Commitments     []SearchResultResponse `json:"commitments"`
	Meetings        []SearchResultResponse `json:"meetings"`
	ClipboardItems  []SearchResultResponse `json:"clipboardItems"`
	TotalResults    int                    `json:"totalResults"`
}

// EnhancedSearchResponse carries the parsed query with its results.
//
// swagger:model EnhancedSearchResponse
type EnhancedSearchResponse struct {
	Text           string                 `json:"text"`
	TimeConstraint string                 `json:"timeConstraint"`
	Type           string                 `json:"type,omitempty"`
	Results        []SearchResultResponse `json:"results"`
}

// UnrespondedMessageResponse is a question seen on screen without a reply.
//
// swagger:model UnrespondedMessageResponse
type UnrespondedMessageResponse struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Content     string `json:"content"`
	Platform    string `json:"platform"`
	Application string `json:"application"`
	CaptureID   string `json:"captureId"`
	DetectedAt  int64  `json:"detectedAt"`
	Urgency     string `json:"urgency"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// ProgressResponse reports a progress check.
//
// swagger:model ProgressResponse
type ProgressResponse struct {
	Checked   int      `json:"checked"`
	Completed []string `json:"completed"`
	Overdue   []string `json:"overdue"`
	Resumed   []string `json:"resumed"`
}

// StatusResponse is the agent state.
//
// swagger:model StatusResponse
type StatusResponse struct {
	Initialized       bool               `json:"initialized"`
	Recording         bool               `json:"recording"`
	CurrentMeeting    *MeetingResponse   `json:"currentMeeting"`
	ScreenMonitoring  bool               `json:"screenMonitoring"`
	ActiveCommitments int                `json:"activeCommitments"`
	PendingReminders  int                `json:"pendingReminders"`
	Capabilities      agent.Capabilities `json:"capabilities"`
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func optionalMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toCommitment(c *models.Commitment) CommitmentResponse {
	return CommitmentResponse{
		ID:              c.ID,
		Description:     c.Description,
		Source:          c.Source,
		Recipient:       c.Recipient,
		DueDate:         optionalMillis(c.DueDate),
		Status:          string(c.Status),
		Priority:        string(c.Priority),
		UrgencyScore:    c.UrgencyScore,
		Context:         c.Context,
		RelatedMessages: nonNilStrings(c.RelatedMessages),
		CreatedAt:       millis(c.CreatedAt),
		UpdatedAt:       millis(c.UpdatedAt),
	}
}

func toCommitments(list []*models.Commitment) []CommitmentResponse {
	out := make([]CommitmentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCommitment(c))
	}
	return out
}

func toMeeting(m *models.MeetingSession) MeetingResponse {
	resp := MeetingResponse{
		ID:           m.ID,
		Title:        m.Title,
		StartTime:    millis(m.StartTime),
		EndTime:      optionalMillis(m.EndTime),
		Participants: nonNilStrings(m.Participants),
		Transcript:   m.Transcript,
		Summary:      m.Summary,
		ActionItems:  nonNilStrings(m.ActionItemIDs),
	}
	if a := m.AudioRecording; a != nil {
		resp.AudioRecording = &AudioRecordingResponse{Path: a.Path, Format: a.Format, DurationMs: a.Duration.Milliseconds()}
	}
	return resp
}

func toMeetings(list []*models.MeetingSession) []MeetingResponse {
	out := make([]MeetingResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMeeting(m))
	}
	return out
}

func toResults(list []models.VectorSearchResult) []SearchResultResponse {
	out := make([]SearchResultResponse, 0, len(list))
	for _, r := range list {
		meta := r.Metadata
		if meta == nil {
			meta = map[string]string{}
		}
		out = append(out, SearchResultResponse{
			ID:         r.ID,
			Similarity: r.Similarity,
			Content:    r.Content,
			Metadata:   meta,
			Type:       string(r.Type),
			Timestamp:  millis(r.Timestamp),
		})
	}
	return out
}

func toGlobal(g intelligence.GlobalResult) GlobalSearchResponse {
	return GlobalSearchResponse{
		Query:           g.Query,
		SemanticResults: toResults(g.Semantic),
		Commitments:     toResults(g.Commitments),
		Meetings:        toResults(g.Meetings),
		ClipboardItems:  toResults(g.Clipboard),
		TotalResults:    g.TotalResults,
	}
}

func toEnhanced(e intelligence.EnhancedResult) EnhancedSearchResponse {
	resp := EnhancedSearchResponse{
		Text:           e.Query.Text,
		TimeConstraint: string(e.Query.Time),
		Results:        toResults(e.Results),
	}
	if e.Query.Type != nil {
		resp.Type = string(*e.Query.Type)
	}
	return resp
}

func toUnresponded(list []screen.UnrespondedMessage) []UnrespondedMessageResponse {
	out := make([]UnrespondedMessageResponse, 0, len(list))
	for _, u := range list {
		out = append(out, UnrespondedMessageResponse{
			ID:          u.ID,
			Sender:      u.Sender,
			Content:     u.Content,
			Platform:    u.Platform,
			Application: u.Application,
			CaptureID:   u.CaptureID,
			DetectedAt:  millis(u.DetectedAt),
			Urgency:     string(u.Urgency),
			ExpiresAt:   millis(u.ExpiresAt),
		})
	}
	return out
}

func toProgress(p commitment.ProgressReport) ProgressResponse {
	return ProgressResponse{
		Checked:   p.Checked,
		Completed: nonNilStrings(p.Completed),
		Overdue:   nonNilStrings(p.Overdue),
		Resumed:   nonNilStrings(p.Resumed),
	}
}

func toStatus(s agent.Status) StatusResponse {
	resp := StatusResponse{
		Initialized:       s.Initialized,
		Recording:         s.Recording,
		ScreenMonitoring:  s.ScreenMonitoring,
		ActiveCommitments: s.ActiveCommitments,
		PendingReminders:  s.PendingReminders,
		Capabilities:      s.Capabilities,
	}
	if s.CurrentMeeting != nil {
		m := toMeeting(s.CurrentMeeting)
		resp.CurrentMeeting = &m
	}
	return resp
}
