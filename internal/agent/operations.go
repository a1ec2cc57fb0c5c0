package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"insig8-ai/internal/commitment"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/indexer"
	"insig8-ai/internal/intelligence"
	"insig8-ai/internal/models"
	"insig8-ai/internal/screen"
	"insig8-ai/internal/service"
)

// MessageInput is a message handed in by the host.
type MessageInput struct {
	Message  string
	Platform string
	Sender   string
	ThreadID string
}

// AnalyzeMessage runs the commitment pipeline over one message. It returns
// nil when the message holds no commitment.
func (m *Manager) AnalyzeMessage(ctx context.Context, in MessageInput) (*models.Commitment, error) {
	return m.tracker.AnalyzeMessage(ctx, commitment.Message{
		Text:     in.Message,
		Platform: in.Platform,
		Sender:   in.Sender,
		ThreadID: in.ThreadID,
	})
}

// ActiveCommitments returns the commitments that still need attention.
func (m *Manager) ActiveCommitments(ctx context.Context) ([]*models.Commitment, error) {
	return m.tracker.Active(ctx)
}

// UpdateCommitmentStatus parses status and applies it. Snoozing requires a
// date and goes through SnoozeCommitment.
func (m *Manager) UpdateCommitmentStatus(ctx context.Context, id, status string) (*models.Commitment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &service.ValidationError{Field: "id", Message: "id is required"}
	}
	s, err := models.ParseCommitmentStatus(status)
	if err != nil {
		return nil, &service.ValidationError{Field: "status", Message: err.Error()}
	}
	if s == models.StatusSnoozed {
		return nil, &service.ValidationError{Field: "status", Message: "use snooze to snooze a commitment"}
	}
	return m.tracker.UpdateStatus(ctx, id, s)
}

// SnoozeCommitment defers a commitment until the given epoch milliseconds.
func (m *Manager) SnoozeCommitment(ctx context.Context, id string, untilMillis int64) (*models.Commitment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &service.ValidationError{Field: "id", Message: "id is required"}
	}
	if untilMillis <= 0 {
		return nil, &service.ValidationError{Field: "until", Message: "must be epoch milliseconds"}
	}
	return m.tracker.Snooze(ctx, id, time.UnixMilli(untilMillis))
}

// CheckProgress runs a progress check now instead of waiting for the schedule.
func (m *Manager) CheckProgress(ctx context.Context) (commitment.ProgressReport, error) {
	return m.tracker.CheckProgress(ctx)
}

// StartMeetingRecording begins a meeting. An empty title gets a dated default.
func (m *Manager) StartMeetingRecording(ctx context.Context, title string) (*models.MeetingSession, error) {
	return m.meetings.Start(ctx, title)
}

// AppendTranscript adds a line pushed by the host to the active meeting.
func (m *Manager) AppendTranscript(speaker, text string) error {
	if strings.TrimSpace(text) == "" {
		return &service.ValidationError{Field: "text", Message: "text is required"}
	}
	return m.meetings.AppendTranscript(speaker, text)
}

// StopMeetingRecording finalizes and returns the active meeting.
func (m *Manager) StopMeetingRecording(ctx context.Context) (*models.MeetingSession, error) {
	return m.meetings.Stop(ctx)
}

// MeetingHistory returns recorded meetings, newest first.
func (m *Manager) MeetingHistory(ctx context.Context, limit int) ([]*models.MeetingSession, error) {
	return m.meetings.History(ctx, clampLimit(limit))
}

// SemanticSearch ranks every searchable item by similarity to query.
func (m *Manager) SemanticSearch(ctx context.Context, query string, limit int) ([]models.VectorSearchResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return nonNil(m.search.SemanticSearch(ctx, q, clampLimit(limit))), nil
}

// HybridSearch fuses semantic and keyword rankings.
func (m *Manager) HybridSearch(ctx context.Context, query string, limit int) ([]models.VectorSearchResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return nonNil(m.search.HybridSearch(ctx, q, clampLimit(limit))), nil
}

// GlobalSearch answers the launcher's combined query.
func (m *Manager) GlobalSearch(ctx context.Context, query string, limit int) (intelligence.GlobalResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return intelligence.GlobalResult{}, err
	}
	return m.intel.GlobalSearch(ctx, q, clampLimit(limit)), nil
}

// EnhancedSearch applies the time constraint and type hint found in query.
func (m *Manager) EnhancedSearch(ctx context.Context, query string, limit int) (intelligence.EnhancedResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return intelligence.EnhancedResult{}, err
	}
	return m.intel.EnhancedSearch(ctx, q, clampLimit(limit)), nil
}

// SearchByType searches one entity type, named as the bridge sends it.
func (m *Manager) SearchByType(ctx context.Context, query, typ string, limit int) ([]models.VectorSearchResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	t, err := models.ParseEntityType(typ)
	if err != nil {
		return nil, &service.ValidationError{Field: "type", Message: err.Error()}
	}
	return nonNil(m.intel.SearchByType(ctx, q, t, clampLimit(limit))), nil
}

func (m *Manager) SearchCommitments(ctx context.Context, query string) ([]models.VectorSearchResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return nonNil(m.intel.SearchCommitments(ctx, q)), nil
}

func (m *Manager) SearchMeetings(ctx context.Context, query string) ([]models.VectorSearchResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return nonNil(m.intel.SearchMeetings(ctx, q)), nil
}

func (m *Manager) SearchClipboard(ctx context.Context, query string) ([]models.VectorSearchResult, error) {
	q, err := requireQuery(query)
	if err != nil {
		return nil, err
	}
	return nonNil(m.intel.SearchClipboardHistory(ctx, q)), nil
}

// StartScreenMonitoring starts the capture loop. A denied screen recording
// permission is returned to the caller.
func (m *Manager) StartScreenMonitoring(ctx context.Context) error {
	return m.screen.Start(ctx)
}

// StopScreenMonitoring stops the capture loop. It is idempotent.
func (m *Manager) StopScreenMonitoring(ctx context.Context) {
	m.screen.Stop()
	contextutil.LoggerOr(ctx, m.logger).Info("screen monitoring stopped")
}

// UnrespondedMessages reports the questions seen on screen in the last hour
// that have no visible reply.
func (m *Manager) UnrespondedMessages(ctx context.Context) ([]screen.UnrespondedMessage, error) {
	list, err := m.screen.DetectUnrespondedMessages(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []screen.UnrespondedMessage{}
	}
	return list, nil
}

// ReindexItems embeds stored items that have no vector and registers them
// with the similarity backend. With full set every embedded item is
// registered again.
func (m *Manager) ReindexItems(ctx context.Context, full bool) (indexer.Report, error) {
	if !m.caps.Embeddings {
		return indexer.Report{}, fmt.Errorf("%w: no embedding model", service.ErrCapabilityUnavailable)
	}
	return m.indexer.IndexAll(ctx, full)
}

// IndexCoverage reports how many stored items are embedded, per type.
func (m *Manager) IndexCoverage(ctx context.Context) (*indexer.Coverage, error) {
	return m.indexer.Coverage(ctx)
}

// Status is a snapshot of the agent state.
type Status struct {
	Initialized       bool                   `json:"initialized"`
	Recording         bool                   `json:"recording"`
	CurrentMeeting    *models.MeetingSession `json:"currentMeeting,omitempty"`
	ScreenMonitoring  bool                   `json:"screenMonitoring"`
	ActiveCommitments int                    `json:"activeCommitments"`
	PendingReminders  int                    `json:"pendingReminders"`
	Capabilities      Capabilities           `json:"capabilities"`
}

// Status reports the agent state. A failing commitment count is logged and
// reported as zero.
func (m *Manager) Status(ctx context.Context) Status {
	m.mu.Lock()
	initialized := m.initialized
	m.mu.Unlock()

	s := Status{
		Initialized:      initialized,
		Recording:        m.meetings.Recording(),
		CurrentMeeting:   m.meetings.Current(),
		ScreenMonitoring: m.screen.Running(),
		PendingReminders: len(m.reminders.Pending()),
		Capabilities:     m.caps,
	}
	if active, err := m.tracker.Active(ctx); err != nil {
		contextutil.LoggerOr(ctx, m.logger).Warn("failed to count active commitments", "error", err)
	} else {
		s.ActiveCommitments = len(active)
	}
	return s
}

// Health is the result of probing the store and vector backend.
type Health struct {
	Store         error
	VectorBackend error
}

// Health pings the database and, when Qdrant backs the index, the Qdrant server.
func (m *Manager) Health(ctx context.Context) Health {
	var h Health
	if err := m.db.PingContext(ctx); err != nil {
		h.Store = fmt.Errorf("failed to ping database: %w", err)
	}
	if m.qdrant != nil {
		if err := m.qdrant.Ping(ctx); err != nil {
			h.VectorBackend = fmt.Errorf("failed to ping qdrant: %w", err)
		}
	}
	return h
}

func requireQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", &service.ValidationError{Field: "q", Message: "query is required"}
	}
	return q, nil
}

func nonNil(results []models.VectorSearchResult) []models.VectorSearchResult {
	if results == nil {
		return []models.VectorSearchResult{}
	}
	return results
}
