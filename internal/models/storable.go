package models

import (
	"strings"
	"time"
)

// StorableItem is the closed set of entities that carry an embedding.
// Only types in this package can implement it.
type StorableItem interface {
	ItemID() string
	ItemType() EntityType
	// EmbeddingText is the text the item's embedding is generated from.
	EmbeddingText() string
	Vector() []float32
	SetVector(v []float32)
	// Project builds the search projection with a zero similarity.
	Project() VectorSearchResult
	storable()
}

// VectorSearchResult is the common projection returned by every search path.
type VectorSearchResult struct {
	ID         string            `json:"id"`
	Similarity float64           `json:"similarity"`
	Content    string            `json:"content"`
	Metadata   map[string]string `json:"metadata"`
	Type       EntityType        `json:"type"`
	Timestamp  time.Time         `json:"timestamp"`
}

func (c *Commitment) ItemID() string { return c.ID }
func (c *Commitment) ItemType() EntityType { return TypeCommitment }
func (c *Commitment) EmbeddingText() string { return c.Description }
func (c *Commitment) Vector() []float32 { return c.Embedding }
func (c *Commitment) SetVector(v []float32) { c.Embedding = v }
func (c *Commitment) storable() {}
func (c *Commitment) Project() VectorSearchResult {
	meta := map[string]string{
		"status":    string(c.Status),
		"priority":  string(c.Priority),
		"recipient": c.Recipient,
		"source":    c.Source.String(),
	}
	if c.DueDate != nil {
		meta["due_date"] = c.DueDate.UTC().Format(time.RFC3339)
	}
	return VectorSearchResult{ID: c.ID, Content: c.Description, Metadata: meta, Type: TypeCommitment, Timestamp: c.CreatedAt}
}

func (m *MeetingSession) ItemID() string { return m.ID }
func (m *MeetingSession) ItemType() EntityType { return TypeMeeting }
func (m *MeetingSession) EmbeddingText() string { return m.embeddingText() }
func (m *MeetingSession) Vector() []float32 { return m.Embedding }
func (m *MeetingSession) SetVector(v []float32) { m.Embedding = v }
func (m *MeetingSession) storable() {}
func (m *MeetingSession) Project() VectorSearchResult {
	content := m.Summary
	if content == "" {
		content = m.Transcript
	}
	meta := map[string]string{
		"title":        m.Title,
		"participants": strings.Join(m.Participants, ", "),
	}
	return VectorSearchResult{ID: m.ID, Content: content, Metadata: meta, Type: TypeMeeting, Timestamp: m.StartTime}
}

func (a *ActionItem) ItemID() string { return a.ID }
func (a *ActionItem) ItemType() EntityType { return TypeActionItem }
func (a *ActionItem) EmbeddingText() string { return a.Description }
func (a *ActionItem) Vector() []float32 { return a.Embedding }
func (a *ActionItem) SetVector(v []float32) { a.Embedding = v }
func (a *ActionItem) storable() {}
func (a *ActionItem) Project() VectorSearchResult {
	meta := map[string]string{
		"meeting_id": a.MeetingID,
		"assignee":   a.Assignee,
		"status":     string(a.Status),
		"priority":   string(a.Priority),
	}
	return VectorSearchResult{ID: a.ID, Content: a.Description, Metadata: meta, Type: TypeActionItem, Timestamp: a.CreatedAt}
}

func (c *ClipboardItem) ItemID() string { return c.ID }
func (c *ClipboardItem) ItemType() EntityType { return TypeClipboard }
func (c *ClipboardItem) EmbeddingText() string { return c.Content }
func (c *ClipboardItem) Vector() []float32 { return c.Embedding }
func (c *ClipboardItem) SetVector(v []float32) { c.Embedding = v }
func (c *ClipboardItem) storable() {}
func (c *ClipboardItem) Project() VectorSearchResult {
	meta := map[string]string{
		"content_type":       string(c.ContentType),
		"source_application": c.SourceApplication,
	}
	return VectorSearchResult{ID: c.ID, Content: c.Content, Metadata: meta, Type: TypeClipboard, Timestamp: c.Timestamp}
}

func (s *ScreenCapture) ItemID() string { return s.ID }
func (s *ScreenCapture) ItemType() EntityType { return TypeScreenCapture }
func (s *ScreenCapture) EmbeddingText() string { return s.OCRText }
func (s *ScreenCapture) Vector() []float32 { return s.Embedding }
func (s *ScreenCapture) SetVector(v []float32) { s.Embedding = v }
func (s *ScreenCapture) storable() {}
func (s *ScreenCapture) Project() VectorSearchResult {
	meta := map[string]string{
		"application":   s.Application,
		"active_window": s.Context.ActiveWindow,
	}
	return VectorSearchResult{ID: s.ID, Content: s.OCRText, Metadata: meta, Type: TypeScreenCapture, Timestamp: s.Timestamp}
}

func (a *AIContext) ItemID() string { return a.ID }
func (a *AIContext) ItemType() EntityType { return TypeAIContext }
func (a *AIContext) EmbeddingText() string { return a.Content }
func (a *AIContext) Vector() []float32 { return a.Embedding }
func (a *AIContext) SetVector(v []float32) { a.Embedding = v }
func (a *AIContext) storable() {}
func (a *AIContext) Project() VectorSearchResult {
	meta := make(map[string]string, len(a.Metadata)+1)
	for k, v := range a.Metadata {
		meta[k] = v
	}
	meta["context_type"] = string(a.Type)
	return VectorSearchResult{ID: a.ID, Content: a.Content, Metadata: meta, Type: TypeAIContext, Timestamp: a.Timestamp}
}
