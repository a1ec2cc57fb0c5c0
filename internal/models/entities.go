// Package models defines the entities captured and tracked by the assistant.
package models

import (
	"strings"
	"time"
)

// Commitment is a promise the user made to someone else.
type Commitment struct {
	ID              string           `json:"id"`
	Description     string           `json:"description"`
	Source          CommitmentSource `json:"source"`
	Recipient       string           `json:"recipient"`
	DueDate         *time.Time       `json:"dueDate,omitempty"`
	Status          CommitmentStatus `json:"status"`
	Priority        Priority         `json:"priority"`
	UrgencyScore    float64          `json:"urgencyScore"`
	Context         string           `json:"context"`
	RelatedMessages []string         `json:"relatedMessages"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	Embedding       []float32        `json:"embedding,omitempty"`
}

// MeetingSession is one recorded meeting.
type MeetingSession struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
	Participants   []string        `json:"participants"`
	Transcript     string          `json:"transcript"`
	Summary        string          `json:"summary"`
	ActionItemIDs  []string        `json:"actionItems"`
	AudioRecording *AudioRecording `json:"audioRecording,omitempty"`
	Embedding      []float32       `json:"embedding,omitempty"`
}

// Recording reports whether the session has not been finalized yet.
func (m *MeetingSession) Recording() bool {
	return m.EndTime == nil
}

// AudioRecording describes the audio file kept for a meeting.
type AudioRecording struct {
	Path     string        `json:"path"`
	Format   string        `json:"format"`
	Duration time.Duration `json:"duration"`
}

// ActionItem is a task extracted from a meeting transcript.
type ActionItem struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Assignee    string           `json:"assignee,omitempty"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
	Status      ActionItemStatus `json:"status"`
	Priority    Priority         `json:"priority"`
	MeetingID   string           `json:"meetingId"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Embedding   []float32        `json:"embedding,omitempty"`
}

// ClipboardItem is one observed clipboard change.
type ClipboardItem struct {
	ID                string      `json:"id"`
	Content           string      `json:"content"`
	ContentType       ContentType `json:"contentType"`
	Timestamp         time.Time   `json:"timestamp"`
	SourceApplication string      `json:"sourceApplication,omitempty"`
	Embedding         []float32   `json:"embedding,omitempty"`
}

// ScreenContext is the lightweight analysis attached to a capture.
type ScreenContext struct {
	ActiveWindow   string        `json:"activeWindow"`
	VisibleText    []string      `json:"visibleText"`
	UIElements     []string      `json:"uiElements"`
	DwellTime      time.Duration `json:"dwellTime"`
	HasInteraction bool          `json:"hasInteraction"`
}

// ScreenCapture is one accepted screen frame.
type ScreenCapture struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	ImageData   []byte        `json:"-"`
	ContentHash string        `json:"contentHash"`
	OCRText     string        `json:"ocrText"`
	Application string        `json:"application"`
	Context     ScreenContext `json:"context"`
	Embedding   []float32     `json:"embedding,omitempty"`
}

// AIContext is a relevance scored fact about the user.
type AIContext struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Type      ContextType       `json:"type"`
	Content   string            `json:"content"`
	Relevance float64           `json:"relevance"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Embedding []float32         `json:"embedding,omitempty"`
}

// User is the local owner of the captured data.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// embeddingText is title + summary + transcript.
func (m *MeetingSession) embeddingText() string {
	return strings.TrimSpace(strings.Join([]string{m.Title, m.Summary, m.Transcript}, "\n"))
}
